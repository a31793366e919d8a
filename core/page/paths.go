// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package page

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// DocsPrefix is the URL prefix pages are served under.
const DocsPrefix = "/docs/"

const mdExt = ".md"

// CleanPath turns a URL or file path into a page path:
// "/docs/guide/intro.html" and "guide/intro.md" both become "guide/intro".
// Directory paths resolve to their index page.
func CleanPath(p string) (string, error) {
	p = strings.TrimPrefix(p, DocsPrefix)
	p = strings.Trim(p, "/")

	switch {
	case p == "":
		return "index", nil
	case strings.HasSuffix(p, mdExt):
		p = strings.TrimSuffix(p, mdExt)
	case strings.HasSuffix(p, ".html"):
		p = strings.TrimSuffix(p, ".html")
	}

	if !fs.ValidPath(p) || strings.HasPrefix(path.Base(p), ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}

	return p, nil
}

// URL is the address a page is served at.
func URL(pagePath string) string {
	return DocsPrefix + pagePath
}

func fileName(pagePath string) string {
	return pagePath + mdExt
}
