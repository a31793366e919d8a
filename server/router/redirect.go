// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

// The code in this file redirects addresses of the old site to ours, so
// links from search engines and other sites keep working.
//
// Add more sections in legacySections.

package router

import (
	"net/http"

	"codeberg.org/docs-ru/docs-ru/core/page"
)

// legacySections were served from the site root before the /docs/ prefix.
var legacySections = []string{"guide", "tutorial", "examples", "style-guide", "about", "ecosystem"}

// redirectLegacyPage sends /guide/introduction.html to /docs/guide/introduction,
// keeping the query string.
//
// Example:   /guide/essentials/reactivity-fundamentals.html   ->   /docs/guide/essentials/reactivity-fundamentals
func redirectLegacyPage(w http.ResponseWriter, r *http.Request) {
	pagePath, err := page.CleanPath(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)

		return
	}

	target := page.URL(pagePath)
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	http.Redirect(w, r, target, http.StatusPermanentRedirect)
}
