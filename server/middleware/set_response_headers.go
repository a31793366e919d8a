// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"fmt"
	"maps"
	"net/http"
	"strings"
	"sync/atomic"

	"codeberg.org/docs-ru/docs-ru/config"
)

var (
	// baseHeaders are set on every response.
	baseHeaders = http.Header{
		"Referrer-Policy":        {"same-origin"},
		"X-Frame-Options":        {"DENY"},
		"X-Content-Type-Options": {"nosniff"},
		"Permissions-Policy":     {strings.Join(permissionsPolicy, ", ")},
		"Content-Security-Policy": {strings.Join([]string{
			"base-uri 'self'",
			"default-src 'self'",
			// The preference restore script is inline so it runs before first paint.
			"script-src 'self' 'unsafe-inline'",
			"style-src 'self' 'unsafe-inline'",
			"img-src 'self' data:",
			"connect-src 'self'",
			"form-action 'self'",
			"frame-ancestors 'none'",
		}, "; ") + ";"},
	}

	permissionsPolicy = []string{
		"camera=()",
		"display-capture=()",
		"geolocation=()",
		"microphone=()",
		"payment=()",
		"usb=()",
	}

	// devCacheCleared makes the first response in development clear the
	// browser cache.
	devCacheCleared atomic.Bool
)

// SetResponseHeaders adds security, version and caching headers.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	if config.Global.Development.InDevelopment && devCacheCleared.CompareAndSwap(false, true) {
		headers.Set("Clear-Site-Data", `"cache"`)
	}

	headers.Set("Cache-Control", cacheControl(r))
	headers.Set("Docsru-Version", config.BuildVersion)
	headers.Set("Docsru-Revision", config.Global.Build.Revision())

	// Pages differ per reader by their preference cookies.
	headers.Add("Vary", "Cookie")

	next.ServeHTTP(w, r)
}

// cacheControl picks the caching policy for a request.
func cacheControl(r *http.Request) string {
	path := r.URL.Path

	switch {
	case config.Global.Development.InDevelopment:
		return "no-store"
	case r.Method != http.MethodGet && r.Method != http.MethodHead:
		return "no-store"
	case strings.HasPrefix(path, "/css/"), strings.HasPrefix(path, "/js/"):
		// One week; file names do not change between releases, the ETag does.
		return "max-age=604800"
	case strings.HasPrefix(path, "/docs/"), strings.HasPrefix(path, "/api/"):
		// Rendered pages depend on the reader's cookies.
		return fmt.Sprintf("private, max-age=%d, stale-while-revalidate=%d",
			int(config.Global.HTTPCache.MaxAge.Seconds()),
			int(config.Global.HTTPCache.StaleWhileRevalidate.Seconds()))
	default:
		return "private, no-cache"
	}
}
