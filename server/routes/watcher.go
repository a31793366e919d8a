// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/url"
	"strings"

	"codeberg.org/docs-ru/docs-ru/core/page"
	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/core/variant"
)

// VisibleBlocksHeader lists the ids of the variant blocks shown after a
// preference change, separated by spaces.
const VisibleBlocksHeader = "Docsru-Visible-Blocks"

// pageWatcher follows the variant blocks of one page while preferences change.
type pageWatcher struct {
	selector *variant.Selector
	visible  []variant.Block
	changes  int
}

func watchPage(lib *page.Library, pagePath string, prefs *preference.Store) (*pageWatcher, error) {
	doc, err := lib.Page(pagePath)
	if err != nil {
		return nil, err
	}

	selector, err := variant.NewSelector(prefs)
	if err != nil {
		return nil, err
	}

	if err := selector.Mount(doc.VariantBlocks()...); err != nil {
		selector.Close()

		return nil, err
	}

	pw := &pageWatcher{selector: selector, visible: selector.VisibleBlocks()}

	selector.OnChange(func(visible []variant.Block) {
		pw.visible = visible
		pw.changes++
	})

	return pw, nil
}

func (pw *pageWatcher) visibleIDs() []string {
	ids := make([]string, 0, len(pw.visible))
	for _, b := range pw.visible {
		ids = append(ids, b.ID)
	}

	return ids
}

func (pw *pageWatcher) Close() {
	pw.selector.Close()
}

// docPagePath resolves a return path such as "/docs/guide/intro#slots" to
// the page it shows.
func docPagePath(lib *page.Library, returnPath string) (string, bool) {
	u, err := url.Parse(returnPath)
	if err != nil || !strings.HasPrefix(u.Path, page.DocsPrefix) {
		return "", false
	}

	pagePath, err := resolvePage(lib, u.Path)
	if err != nil {
		return "", false
	}

	return pagePath, true
}
