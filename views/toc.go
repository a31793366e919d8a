// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"codeberg.org/docs-ru/docs-ru/core/heading"
	"codeberg.org/docs-ru/docs-ru/i18n"
)

// TOC renders the "on this page" outline. It renders nothing for a page
// without headings in the outline range.
func TOC(items []heading.TOCItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(items) == 0 {
			return nil
		}

		h := newHTMLWriter(ctx, w)

		label := i18n.Tr(ctx, "On this page")

		h.open("nav", "class", "toc", "aria-label", label)
		h.element("p", label, "class", "toc-title")
		tocList(h, items)
		h.close("nav")

		return h.err
	})
}

func tocList(h *htmlWriter, items []heading.TOCItem) {
	h.raw("<ul>")

	for _, item := range items {
		h.raw("<li>")
		h.element("a", item.Text, "href", "#"+item.Slug, "class", "toc-link")

		if len(item.Children) > 0 {
			tocList(h, item.Children)
		}

		h.raw("</li>")
	}

	h.raw("</ul>")
}
