// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/i18n"
)

// restorePreferenceScript re-applies the preference classes from the
// cookies before first paint, for pages served from a shared cache.
const restorePreferenceScript = `(function () {
  var cookies = document.cookie, root = document.documentElement;
  function restore(name, cls) {
    var m = cookies.match(new RegExp("(?:^|; )" + name + "=(true|false)"));
    if (m) root.classList.toggle(cls, m[1] === "true");
  }
  restore("vue-docs-prefer-composition", "prefer-composition");
  restore("vue-docs-prefer-sfc", "prefer-sfc");
})();`

// LayoutProps are the document-wide values of a page.
type LayoutProps struct {
	Title       string
	Description string
	// Preferences become classes on <html> so CSS and scripts agree with
	// the server-side render.
	Preferences map[preference.Key]bool
	// CacheID busts cached static assets after a deployment.
	CacheID string
}

// PreferenceClasses returns the <html> classes for prefs: the key name of
// every preference that is on.
func PreferenceClasses(prefs map[preference.Key]bool) string {
	names := make([]string, 0, len(prefs))

	for _, key := range preference.Keys() {
		if prefs[key] {
			names = append(names, string(key))
		}
	}

	return classes(names...)
}

// Layout wraps body in the HTML document.
func Layout(props LayoutProps, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		title := i18n.Tr(ctx, "Vue.js documentation")
		if props.Title != "" {
			title = props.Title + " | " + title
		}

		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", i18n.TagFrom(ctx).String(), "class", PreferenceClasses(props.Preferences))
		h.raw("<head>", `<meta charset="utf-8">`, `<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.element("title", title)

		if props.Description != "" {
			h.open("meta", "name", "description", "content", props.Description)
		}

		h.raw("<script>", restorePreferenceScript, "</script>")
		h.open("link", "rel", "stylesheet", "href", "/css/site.css?v="+props.CacheID)
		h.open("script", "src", "/js/preferences.js?v="+props.CacheID, "defer", "")
		h.close("script")
		h.raw("</head>")

		h.raw("<body>")
		h.element("a", i18n.Tr(ctx, "Skip to content"), "class", "skip-link", "href", "#main")
		h.raw(`<header class="site-header">`)
		h.element("a", i18n.Tr(ctx, "Vue.js documentation"), "class", "site-title", "href", "/")
		h.element("a", i18n.Tr(ctx, "Settings"), "class", "site-settings", "href", "/settings")
		h.raw("</header>")
		h.component(body)
		h.raw("</body></html>")

		return h.err
	})
}
