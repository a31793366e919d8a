// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"
)

// localePrefix is the path prefix of the translated site on the upstream
// host. Links copied from there are redirected to the same page here.
const localePrefix = "/ru"

// NormalizeURL redirects to the canonical form of a URL:
//  1. the /ru/ locale prefix is removed,
//  2. the .html suffix of page URLs is removed,
//  3. trailing slashes are removed, except for the root.
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	path := r.URL.Path

	canonical := path

	if canonical == localePrefix || strings.HasPrefix(canonical, localePrefix+"/") {
		canonical = strings.TrimPrefix(canonical, localePrefix)
		if canonical == "" {
			canonical = "/"
		}
	}

	if strings.HasPrefix(canonical, "/docs/") {
		canonical = strings.TrimSuffix(canonical, ".html")
	}

	if len(canonical) > 1 {
		canonical = strings.TrimRight(canonical, "/")
		if canonical == "" {
			canonical = "/"
		}
	}

	if canonical == path {
		next.ServeHTTP(w, r)

		return
	}

	target := *r.URL
	target.Path = canonical
	target.RawPath = ""

	// Only the trailing slash case keeps method and body.
	status := http.StatusMovedPermanently
	if strings.TrimRight(path, "/") == canonical {
		status = http.StatusPermanentRedirect
	}

	http.Redirect(w, r, target.String(), status)
}
