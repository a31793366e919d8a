// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
This package defines the cookie names used by this application.
*/
package cookie

type CookieName string

// Cookie names defined as constants.
//
// The preference cookie names match the storage keys used by the client-side
// switch script, so a preference set by either side is read by the other.
const (
	// Reader preference cookies.
	PreferCompositionCookie CookieName = "vue-docs-prefer-composition"
	PreferSFCCookie         CookieName = "vue-docs-prefer-sfc"

	LangCookie CookieName = "Lang" // for i18n use
)

// IsHttpOnly reports whether the cookie should be hidden from client scripts.
//
// Preference cookies are mirrored by the inline restore script, so none of the
// current cookies are HttpOnly.
func IsHttpOnly(name CookieName) bool {
	switch name {
	case PreferCompositionCookie, PreferSFCCookie, LangCookie:
		return false
	default:
		return true
	}
}
