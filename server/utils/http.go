// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"net"
	"net/http"
	"net/url"
)

// IsConnectionSecure returns whether a connection is secure.
//
// X-Forwarded-Proto is only trusted when the peer has a private address,
// which covers the usual reverse proxy on the same host or LAN.
func IsConnectionSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return false
	}

	parsedIP := net.ParseIP(host)
	if parsedIP == nil {
		return false
	}

	return (parsedIP.IsPrivate() || parsedIP.IsLoopback()) && r.Header.Get("X-Forwarded-Proto") == "https"
}

// RedirectBack sends the user to returnPath, or to the referring page when
// returnPath is empty and the referrer is on this host. Falls back to fallback.
func RedirectBack(w http.ResponseWriter, r *http.Request, returnPath, fallback string) {
	returnPath = SanitizeReturnPath(returnPath)

	if returnPath == "" {
		returnPath = sameHostReferrer(r)
	}

	if returnPath == "" {
		returnPath = fallback
	}

	http.Redirect(w, r, returnPath, http.StatusSeeOther)
}

func sameHostReferrer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Host == "" || ref.Host != r.Host {
		return ""
	}

	target := ref.RequestURI()
	if ref.Fragment != "" {
		target += "#" + ref.Fragment
	}

	return SanitizeReturnPath(target)
}
