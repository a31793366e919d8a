// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package page

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"

	"codeberg.org/docs-ru/docs-ru/core/heading"
	"codeberg.org/docs-ru/docs-ru/core/variant"
)

// RenderedBlock is the HTML of one visible block.
type RenderedBlock struct {
	ID    string `json:"id"`
	Tag   string `json:"tag"`
	Class string `json:"class,omitempty"`
	HTML  string `json:"html"`
}

// Variants records which preferences a page reacts to.
type Variants struct {
	API bool `json:"api"`
	SFC bool `json:"sfc"`
}

// Rendered is a page as seen by one reader.
type Rendered struct {
	Path        string            `json:"path"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Blocks      []RenderedBlock   `json:"blocks"`
	Headings    []heading.Entry   `json:"headings"`
	TOC         []heading.TOCItem `json:"toc"`
	Variants    Variants          `json:"variants"`
}

// HTML joins the rendered blocks.
func (r *Rendered) HTML() string {
	var b bytes.Buffer
	for _, block := range r.Blocks {
		b.WriteString(block.HTML)
	}

	return b.String()
}

// Renderer renders documents for a preference snapshot.
type Renderer struct {
	Markdown    goldmark.Markdown
	Registrar   *heading.Registrar
	TOCMinLevel int
	TOCMaxLevel int
}

// NewRenderer returns a renderer with the default markdown setup.
func NewRenderer(slugger heading.Slugger, tocMin, tocMax int) *Renderer {
	return &Renderer{
		Markdown:    NewMarkdown(),
		Registrar:   heading.NewRegistrar(slugger),
		TOCMinLevel: tocMin,
		TOCMaxLevel: tocMax,
	}
}

// Render shows the blocks visible under prefs and builds anchors and the
// table of contents from the headings inside them.
func (r *Renderer) Render(doc *Document, prefs variant.Reader) (*Rendered, error) {
	visible := make(map[string]bool, len(doc.Blocks))
	for _, b := range doc.Blocks {
		visible[b.ID] = variant.ResolveVisibility(b.Block, prefs)
	}

	tags := variant.Tags(doc.VariantBlocks())

	entries := r.Registrar.BuildAnchors(doc.Headings, func(id string) bool { return visible[id] })

	minLevel, maxLevel := r.TOCMinLevel, r.TOCMaxLevel
	if !doc.Meta.Outline.IsZero() {
		minLevel, maxLevel = doc.Meta.Outline.MinLevel, doc.Meta.Outline.MaxLevel
	}

	out := &Rendered{
		Path:        doc.Path,
		Title:       doc.Title,
		Description: doc.Meta.Description,
		Headings:    entries,
		TOC:         heading.BuildTOC(entries, minLevel, maxLevel),
		Variants: Variants{
			API: tags[variant.Composition] || tags[variant.Options],
			SFC: tags[variant.SFC] || tags[variant.NonSFC],
		},
	}

	doc.render.Lock()
	defer doc.render.Unlock()

	for _, e := range entries {
		doc.headingNodes[e.Index].SetAttributeString("id", []byte(e.Slug))
	}

	var buf bytes.Buffer

	for _, b := range doc.Blocks {
		if !visible[b.ID] {
			continue
		}

		buf.Reset()

		class := b.Tag.Class()
		if class != "" {
			fmt.Fprintf(&buf, "<div class=\"%s\">\n", class)
		}

		if err := r.Markdown.Renderer().Render(&buf, b.source, b.node); err != nil {
			return nil, fmt.Errorf("rendering %s block %s: %w", doc.Path, b.ID, err)
		}

		if class != "" {
			buf.WriteString("</div>\n")
		}

		out.Blocks = append(out.Blocks, RenderedBlock{
			ID:    b.ID,
			Tag:   b.Tag.String(),
			Class: class,
			HTML:  buf.String(),
		})
	}

	return out, nil
}
