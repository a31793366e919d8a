// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package heading

import (
	"strconv"
)

// Source is a heading as it appears in the document.
type Source struct {
	Text  string
	Level int
	// BlockID is the enclosing content block. Empty means always visible.
	BlockID string
}

// Entry is a heading with its assigned anchor.
type Entry struct {
	Text    string `json:"text"`
	Level   int    `json:"level"`
	Slug    string `json:"slug"`
	Visible bool   `json:"visible"`
	// Index is the position of the heading in the source list.
	Index int `json:"-"`
}

// VisibilityFunc reports whether a content block is shown.
type VisibilityFunc func(blockID string) bool

// Registrar assigns anchors. The zero value uses UnicodeSlugger.
type Registrar struct {
	Slugger Slugger
}

// NewRegistrar returns a registrar using slugger.
func NewRegistrar(slugger Slugger) *Registrar {
	return &Registrar{Slugger: slugger}
}

// BuildAnchors drops headings whose block is hidden and gives the rest
// unique slugs in document order.
//
// The first occurrence of a slug is bare, later ones get "-2", "-3" and so
// on, skipping any suffix a literal heading already took. Text that
// normalizes to nothing becomes "heading-<n>", n being the 1-based position
// among the visible headings. The result depends only on the inputs.
func (reg *Registrar) BuildAnchors(headings []Source, visible VisibilityFunc) []Entry {
	slugger := reg.Slugger
	if slugger == nil {
		slugger = UnicodeSlugger{}
	}

	entries := make([]Entry, 0, len(headings))
	used := make(map[string]bool, len(headings))
	next := make(map[string]int, len(headings))

	for i, h := range headings {
		if h.BlockID != "" && visible != nil && !visible(h.BlockID) {
			continue
		}

		base := slugger.Slug(h.Text)
		if base == "" {
			base = "heading-" + strconv.Itoa(len(entries)+1)
		}

		entries = append(entries, Entry{
			Text:    h.Text,
			Level:   h.Level,
			Slug:    uniqueSlug(base, used, next),
			Visible: true,
			Index:   i,
		})
	}

	return entries
}

func uniqueSlug(base string, used map[string]bool, next map[string]int) string {
	candidate := base

	if used[candidate] {
		n := next[base]
		if n < 2 {
			n = 2
		}

		for {
			candidate = base + "-" + strconv.Itoa(n)
			n++

			if !used[candidate] {
				break
			}
		}

		next[base] = n
	}

	used[candidate] = true

	return candidate
}

// BuildAnchors is Registrar.BuildAnchors with the default slugger.
func BuildAnchors(headings []Source, visible VisibilityFunc) []Entry {
	var reg Registrar

	return reg.BuildAnchors(headings, visible)
}
