// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"codeberg.org/docs-ru/docs-ru/core/page"
	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/i18n"
)

// NavItem is a link in the sidebar.
type NavItem struct {
	Path   string
	Title  string
	Active bool
}

// NavSection groups sidebar links under a heading.
type NavSection struct {
	Title string
	Items []NavItem
}

// DocProps is everything a documentation page shows.
type DocProps struct {
	Page        *page.Rendered
	Nav         []NavSection
	Preferences map[preference.Key]bool
	Alert       *AlertProps
	// EditURL links to the page source. Empty hides the link.
	EditURL string
	CacheID string
}

// DocPage is the full HTML document of a page.
func DocPage(props DocProps) templ.Component {
	return Layout(LayoutProps{
		Title:       props.Page.Title,
		Description: props.Page.Description,
		Preferences: props.Preferences,
		CacheID:     props.CacheID,
	}, DocBody(props))
}

// DocBody is the part of a page that depends on the preferences. It is
// also the fragment returned to the switch script.
func DocBody(props DocProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.open("div", "id", SwapTarget, "class", classes("doc-layout", PreferenceClasses(props.Preferences)))

		h.raw(`<aside class="sidebar">`)
		sidebarNav(h, props.Nav)
		h.component(PreferenceSwitch(SwitchProps{
			Preferences: props.Preferences,
			ShowAPI:     true,
			ShowSFC:     props.Page.Variants.SFC,
			ReturnPath:  page.URL(props.Page.Path),
		}))
		h.raw("</aside>")

		h.open("main", "id", "main", "class", "content")
		h.component(Alert(props.Alert))
		h.open("article", "class", "doc", "data-path", props.Page.Path)
		h.raw(props.Page.HTML())
		h.close("article")

		if props.EditURL != "" {
			h.raw(`<footer class="doc-footer">`)
			h.element("a", i18n.Tr(ctx, "Edit this page"), "href", props.EditURL, "rel", "noopener")
			h.raw("</footer>")
		}

		h.close("main")

		h.raw(`<aside class="aside">`)
		h.component(TOC(props.Page.TOC))
		h.raw("</aside>")

		h.close("div")

		return h.err
	})
}

func sidebarNav(h *htmlWriter, sections []NavSection) {
	if len(sections) == 0 {
		return
	}

	h.open("nav", "class", "sidebar-nav", "aria-label", i18n.Tr(h.ctx, "Documentation"))

	for _, section := range sections {
		h.raw(`<section class="sidebar-section">`)
		h.element("p", section.Title, "class", "sidebar-section-title")
		h.raw("<ul>")

		for _, item := range section.Items {
			h.raw("<li>")

			if item.Active {
				h.element("a", item.Title, "href", page.URL(item.Path), "class", "active", "aria-current", "page")
			} else {
				h.element("a", item.Title, "href", page.URL(item.Path))
			}

			h.raw("</li>")
		}

		h.raw("</ul></section>")
	}

	h.close("nav")
}
