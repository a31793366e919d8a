// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package heading

// TOCItem is one node of a table of contents.
type TOCItem struct {
	Text     string    `json:"text"`
	Slug     string    `json:"slug"`
	Level    int       `json:"level"`
	Children []TOCItem `json:"children,omitempty"`
}

// BuildTOC nests the entries with minLevel <= Level <= maxLevel.
//
// An entry becomes a child of the closest preceding entry with a lower
// level. Entries deeper than their predecessor by more than one level are
// attached to that predecessor anyway.
func BuildTOC(entries []Entry, minLevel, maxLevel int) []TOCItem {
	var root []TOCItem

	// stack of paths into root; each element is the child index at that depth.
	type frame struct {
		level int
		path  []int
	}

	var stack []frame

	for _, e := range entries {
		if !e.Visible || e.Level < minLevel || e.Level > maxLevel {
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].level >= e.Level {
			stack = stack[:len(stack)-1]
		}

		item := TOCItem{Text: e.Text, Slug: e.Slug, Level: e.Level}

		var path []int

		if len(stack) == 0 {
			root = append(root, item)
			path = []int{len(root) - 1}
		} else {
			parent := stack[len(stack)-1].path
			siblings := childrenAt(&root, parent)
			*siblings = append(*siblings, item)
			path = append(append([]int(nil), parent...), len(*siblings)-1)
		}

		stack = append(stack, frame{level: e.Level, path: path})
	}

	return root
}

func childrenAt(root *[]TOCItem, path []int) *[]TOCItem {
	items := root
	for _, i := range path {
		items = &(*items)[i].Children
	}

	return items
}
