// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		status   int
		location string
	}{
		{name: "root", url: "/", status: http.StatusOK},
		{name: "canonical page", url: "/docs/guide/introduction", status: http.StatusOK},
		{name: "static file", url: "/css/site.css", status: http.StatusOK},
		{
			name:     "trailing slash",
			url:      "/docs/guide/",
			status:   http.StatusPermanentRedirect,
			location: "/docs/guide",
		},
		{
			name:     "locale prefix keeps the query",
			url:      "/ru/docs/guide/introduction?lang=ru",
			status:   http.StatusMovedPermanently,
			location: "/docs/guide/introduction?lang=ru",
		},
		{
			name:     "bare locale prefix",
			url:      "/ru/",
			status:   http.StatusMovedPermanently,
			location: "/",
		},
		{
			name:     "html suffix",
			url:      "/docs/guide/introduction.html",
			status:   http.StatusMovedPermanently,
			location: "/docs/guide/introduction",
		},
		{
			name:     "html suffix outside docs is kept",
			url:      "/ru/about.html",
			status:   http.StatusMovedPermanently,
			location: "/about.html",
		},
		{name: "ru as a page name", url: "/docs/ru", status: http.StatusOK},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			Wrap(NormalizeURL, next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.location, rr.Header().Get("Location"))
		})
	}
}
