// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/a-h/templ"

	"codeberg.org/docs-ru/docs-ru/config"
	"codeberg.org/docs-ru/docs-ru/core/page"
	"codeberg.org/docs-ru/docs-ru/server/request_context"
	"codeberg.org/docs-ru/docs-ru/views"
)

// Pages is the documentation served by the routes. It is set once at
// startup, before the server accepts connections.
var Pages *page.Library

var (
	// ErrBadRequest marks errors caused by malformed input from the client.
	ErrBadRequest = errors.New("bad request")

	errNoLibrary = errors.New("no page library is configured")
)

// HTMXHeader is sent by the preference switch script on fragment requests.
const HTMXHeader = "HX-Request"

func library() (*page.Library, error) {
	if Pages == nil {
		return nil, errNoLibrary
	}

	return Pages, nil
}

// isHTMX reports whether r asks for a fragment instead of a full document.
func isHTMX(r *http.Request) bool {
	return r.Header.Get(HTMXHeader) == "true"
}

func renderHTML(w http.ResponseWriter, r *http.Request, c templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	return c.Render(r.Context(), w)
}

// editURL points at the source of pagePath in the repository, or is empty
// when no repository is configured.
func editURL(pagePath string) string {
	repo := strings.TrimSuffix(config.Global.Instance.RepoURL, "/")
	if repo == "" {
		return ""
	}

	return repo + "/_edit/main/" + path.Join(path.Base(config.Global.Content.Dir), pagePath+".md")
}

// buildNav groups the pages by their top-level directory. Pages at the root
// form the first section.
func buildNav(lib *page.Library, current string) []views.NavSection {
	var (
		sections []views.NavSection
		index    = make(map[string]int)
	)

	for _, p := range lib.Paths() {
		doc, err := lib.Page(p)
		if err != nil {
			continue
		}

		dir := path.Dir(p)
		if dir == "." {
			dir = ""
		}

		i, ok := index[dir]
		if !ok {
			i = len(sections)
			index[dir] = i

			sections = append(sections, views.NavSection{Title: sectionTitle(lib, dir)})
		}

		sections[i].Items = append(sections[i].Items, views.NavItem{
			Path:   p,
			Title:  doc.Title,
			Active: p == current,
		})
	}

	return sections
}

func sectionTitle(lib *page.Library, dir string) string {
	if dir == "" {
		return ""
	}

	if doc, err := lib.Page(dir + "/index"); err == nil {
		return doc.Title
	}

	return path.Base(dir)
}

func docProps(r *http.Request, lib *page.Library, rendered *page.Rendered) views.DocProps {
	rc := request_context.FromRequest(r)

	return views.DocProps{
		Page:        rendered,
		Nav:         buildNav(lib, rendered.Path),
		Preferences: rc.Preferences.Snapshot(),
		EditURL:     editURL(rendered.Path),
		CacheID:     config.Global.Instance.FileServerCacheID,
	}
}
