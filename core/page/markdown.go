// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package page

import (
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// HighlightStyle is the chroma style used for fenced code.
const HighlightStyle = "github"

// NewMarkdown returns the goldmark instance used for every page.
//
// Heading ids are not generated by goldmark; the renderer assigns them from
// the visible heading set.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(HighlightStyle),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}
