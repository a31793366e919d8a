// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted

import (
	"net/http"
	"net/url"
	"time"

	"codeberg.org/docs-ru/docs-ru/core/cookie"
	"codeberg.org/docs-ru/docs-ru/server/utils"
)

// SameSite=Lax keeps preferences on top-level navigations from external links.
const CookieSameSite = http.SameSiteLaxMode

// Cookies will expire in 30 days from when they are set.
const cookieMaxAge = 30 * 24 * time.Hour

// Clear a cookie by setting its expiration date to this.
var cookieExpireDelete = time.Date(2009, time.November, 10, 23, 0, 0, 0, time.UTC)

func createCookieUnencoded(name cookie.CookieName, value string, expires time.Time, isSecure bool) http.Cookie {
	c := http.Cookie{
		Name:     string(name),
		Value:    value,
		Path:     "/",
		Expires:  expires,
		Secure:   isSecure,
		HttpOnly: cookie.IsHttpOnly(name),
		SameSite: CookieSameSite,
	}

	if expires.Equal(cookieExpireDelete) {
		c.MaxAge = -1
	}

	return c
}

// GetCookie returns the unescaped value of the named cookie, or "" when it is
// missing or undecodable.
func GetCookie(r *http.Request, name cookie.CookieName) string {
	c, err := r.Cookie(string(name))
	if err != nil {
		return ""
	}

	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}

	return value
}

// HasCookie reports whether the request carries the named cookie at all.
func HasCookie(r *http.Request, name cookie.CookieName) bool {
	_, err := r.Cookie(string(name))

	return err == nil
}

// SetCookie stores value under name. An empty value clears the cookie.
func SetCookie(w http.ResponseWriter, r *http.Request, name cookie.CookieName, value string) {
	if value == "" {
		ClearCookie(w, r, name)

		return
	}

	c := createCookieUnencoded(
		name, url.QueryEscape(value),
		time.Now().Add(cookieMaxAge),
		utils.IsConnectionSecure(r))
	http.SetCookie(w, &c)
}

// ClearCookie expires the named cookie.
func ClearCookie(w http.ResponseWriter, r *http.Request, name cookie.CookieName) {
	c := createCookieUnencoded(
		name, "",
		cookieExpireDelete,
		utils.IsConnectionSecure(r))
	http.SetCookie(w, &c)
}
