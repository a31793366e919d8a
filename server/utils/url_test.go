// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/docs-ru/docs-ru/server/utils"
)

func TestParseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		urlStr   string
		wantErr  bool
		expected string
	}{
		{"Valid URL", "https://example.com", false, "https://example.com"},
		{"Valid URL with path", "https://example.com/path", false, "https://example.com/path"},
		{"Missing scheme", "example.com", true, ""},
		{"Missing host", "https://", true, ""},
		{"Trailing slash", "https://example.com/", false, "https://example.com"},
		{"Empty URL", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := utils.ParseURL(tt.urlStr, "Test")
			if (err != nil) != tt.wantErr {
				t.Errorf("utils.ParseURL() error = %v, wantErr %v", err, tt.wantErr)

				return
			}

			if !tt.wantErr && got.String() != tt.expected {
				t.Errorf("utils.ParseURL() got = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSanitizeReturnPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"/docs/guide", "/docs/guide"},
		{"  /settings ", "/settings"},
		{"", ""},
		{"https://evil.example/", ""},
		{"//evil.example/", ""},
		{"/\\evil.example", ""},
		{"docs/guide", ""},
		{"/docs/guide\r\nSet-Cookie: x=1", ""},
		{"/docs/guide?next=https://evil.example", ""},
	}

	for _, tt := range tests {
		if got := utils.SanitizeReturnPath(tt.in); got != tt.want {
			t.Errorf("SanitizeReturnPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedirectBack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		returnPath string
		referrer   string
		want       string
	}{
		{"explicit path", "/docs/a", "", "/docs/a"},
		{"same origin referrer", "", "http://example.com/docs/b#x", "/docs/b#x"},
		{"foreign referrer", "", "http://evil.example/docs/b", "/settings"},
		{"unsafe explicit path", "//evil.example", "", "/settings"},
		{"referrer with query", "", "http://example.com/docs/b?tab=2", "/docs/b?tab=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "http://example.com/settings/reset_all", nil)
			if tt.referrer != "" {
				r.Header.Set("Referer", tt.referrer)
			}

			w := httptest.NewRecorder()
			utils.RedirectBack(w, r, tt.returnPath, "/settings")

			if w.Code != http.StatusSeeOther {
				t.Fatalf("status = %d", w.Code)
			}

			if got := w.Header().Get("Location"); got != tt.want {
				t.Errorf("Location = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsConnectionSecure(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.2:1234"
	r.Header.Set("X-Forwarded-Proto", "https")

	if !utils.IsConnectionSecure(r) {
		t.Error("expected private proxy with https to be secure")
	}

	r.RemoteAddr = "203.0.113.9:1234"
	if utils.IsConnectionSecure(r) {
		t.Error("expected public peer to be untrusted")
	}
}
