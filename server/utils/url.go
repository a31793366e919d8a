// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ParseURL parses an absolute URL from configuration. kind names the setting
// in error messages. A trailing slash on the path is removed.
func ParseURL(raw, kind string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s URL: %w", kind, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s URL %q needs a scheme and a host, e.g. https://codeberg.org/docs-ru/docs-ru", kind, raw)
	}

	u.Path = strings.TrimSuffix(u.Path, "/")

	return u, nil
}

// GetQueryParam returns the named query parameter, or the optional fallback
// when it is missing or empty.
func GetQueryParam(r *http.Request, name string, fallback ...string) string {
	return orDefault(r.URL.Query().Get(name), fallback)
}

// GetFormValue returns the named form value from the body or the query.
// A body that cannot be parsed counts as a missing value.
func GetFormValue(r *http.Request, name string, fallback ...string) string {
	if err := r.ParseForm(); err != nil {
		return orDefault("", fallback)
	}

	return orDefault(r.FormValue(name), fallback)
}

// GetPathVar returns a wildcard matched by the route pattern.
func GetPathVar(r *http.Request, name string, fallback ...string) string {
	return orDefault(r.PathValue(name), fallback)
}

func orDefault(v string, fallback []string) string {
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}

	return v
}

// SanitizeReturnPath accepts only a local absolute path, as sent in the
// returnPath field of the preference forms. Anything else yields "".
func SanitizeReturnPath(s string) string {
	s = strings.TrimSpace(s)

	switch {
	case !strings.HasPrefix(s, "/"),
		strings.HasPrefix(s, "//"),
		strings.ContainsAny(s, "\\\r\n\t"),
		strings.Contains(s, "://"):
		return ""
	}

	return s
}
