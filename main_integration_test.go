// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

//go:build integration

/*
To run these tests, specify `-tags=integration` when running `go test`.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

const (
	// Server configuration constants.
	host      = "127.0.0.1:8282"
	authority = "http://127.0.0.1:8282"

	// Polling constants.
	retryCount  = 10
	dialTimeout = 250 * time.Millisecond
)

// httpTestCase defines a test case.
type httpTestCase struct {
	URL                string
	Method             string
	ExpectedStatusCode int
	Cookies            []*http.Cookie

	// POST requests specific fields
	FormData map[string]string
}

// setDefault sets the default values for the test case.
func (c *httpTestCase) setDefault() {
	if c.ExpectedStatusCode == 0 {
		c.ExpectedStatusCode = 200
	}
}

// TestMain is used for global setup and teardown.
//
// It starts the server and waits for it to be available before running tests.
func TestMain(m *testing.M) {
	os.Setenv("DOCSRU_HOST", "127.0.0.1")
	os.Setenv("DOCSRU_PORT", "8282")
	os.Setenv("DOCSRU_CONTENT_DIR", "./content")

	go func() {
		if err := run(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for the server.
	if !waitForServerReady() {
		log.Fatalf("Server did not start in time")
	}

	os.Exit(m.Run())
}

// waitForServerReady polls the server until it's available or the retries are exhausted.
func waitForServerReady() bool {
	for range retryCount {
		conn, err := net.DialTimeout("tcp", host, dialTimeout)
		if err == nil {
			_ = conn.Close()

			return true // Server is up.
		}

		time.Sleep(dialTimeout)
	}

	return false
}

// noRedirectClient reports redirects instead of following them.
var noRedirectClient = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// TestBasicAllRoutes tests all basic routes of the server.
func TestBasicAllRoutes(t *testing.T) {
	t.Parallel()

	compositionOff := []*http.Cookie{{Name: "vue-docs-prefer-composition", Value: "false"}}

	testCases := []httpTestCase{
		{URL: "/", Method: http.MethodGet, ExpectedStatusCode: http.StatusFound},
		{URL: "/docs/index", Method: http.MethodGet},
		{URL: "/docs/guide/introduction", Method: http.MethodGet},
		{URL: "/docs/guide/introduction", Method: http.MethodGet, Cookies: compositionOff},
		{URL: "/docs/guide/essentials/reactivity-fundamentals", Method: http.MethodGet},
		{URL: "/docs/guide/components/slots", Method: http.MethodGet},
		{URL: "/docs/guide/introduction/", Method: http.MethodGet, ExpectedStatusCode: http.StatusPermanentRedirect},
		{URL: "/ru/docs/guide/introduction", Method: http.MethodGet, ExpectedStatusCode: http.StatusMovedPermanently},
		{URL: "/guide/introduction.html", Method: http.MethodGet, ExpectedStatusCode: http.StatusPermanentRedirect},
		{URL: "/docs/guide/missing", Method: http.MethodGet, ExpectedStatusCode: http.StatusNotFound},
		{URL: "/nowhere", Method: http.MethodGet, ExpectedStatusCode: http.StatusNotFound},
		{URL: "/api/toc?path=guide/introduction", Method: http.MethodGet},
		{URL: "/api/preferences", Method: http.MethodGet},
		{URL: "/settings", Method: http.MethodGet},
		{URL: "/css/site.css", Method: http.MethodGet},
		{URL: "/js/preferences.js", Method: http.MethodGet},
		{URL: "/robots.txt", Method: http.MethodGet},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s %s", tc.Method, tc.URL), func(t *testing.T) {
			t.Parallel()
			tc.setDefault()

			resp := makeRequest(t, buildRequest(t, authority+tc.URL, tc.Method, tc.Cookies))
			defer resp.Body.Close()

			if resp.StatusCode != tc.ExpectedStatusCode {
				t.Errorf("expected status %d, got %d", tc.ExpectedStatusCode, resp.StatusCode)
			}
		})
	}
}

// TestPreferenceSwitch toggles the API style the way the switch script does.
func TestPreferenceSwitch(t *testing.T) {
	t.Parallel()

	req := buildRequestWithFormData(t, authority+"/settings/toggle_preference", http.MethodPost, map[string]string{
		"key":        "prefer-composition",
		"returnPath": "/docs/guide/introduction",
	}, nil)
	req.Header.Set("HX-Request", "true")

	resp := makeRequest(t, req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(string(body), `<div id="doc-body"`) {
		t.Errorf("expected the #doc-body fragment, got %.80q", body)
	}

	var stored string

	for _, c := range resp.Cookies() {
		if c.Name == "vue-docs-prefer-composition" {
			stored = c.Value
		}
	}

	if stored != "false" {
		t.Errorf("expected the preference cookie to be false, got %q", stored)
	}
}

// TestSettingsFormRedirects checks the form fallback used without JavaScript.
func TestSettingsFormRedirects(t *testing.T) {
	t.Parallel()

	req := buildRequestWithFormData(t, authority+"/settings/set_preference", http.MethodPost, map[string]string{
		"key":        "prefer-sfc",
		"value":      "false",
		"returnPath": "/settings",
	}, nil)

	resp, err := noRedirectClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, resp.StatusCode)
	}

	if location := resp.Header.Get("Location"); location != "/settings?status=saved" {
		t.Errorf("unexpected Location %q", location)
	}
}

func buildRequest(t *testing.T, link, method string, cookies []*http.Cookie) *http.Request {
	t.Helper()

	req, err := http.NewRequestWithContext(context.TODO(), method, link, nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	for _, v := range cookies {
		req.AddCookie(v)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:122.0) Gecko/20100101 Firefox/122.0")

	return req
}

func buildRequestWithFormData(t *testing.T, link, method string, formData map[string]string, cookies []*http.Cookie) *http.Request {
	t.Helper()

	form := url.Values{}

	for k, v := range formData {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(context.TODO(), method, link, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	for _, v := range cookies {
		req.AddCookie(v)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:122.0) Gecko/20100101 Firefox/122.0")
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	return req
}

func makeRequest(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := noRedirectClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	return resp
}
