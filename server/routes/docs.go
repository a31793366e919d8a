// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"
	"net/http"

	"codeberg.org/docs-ru/docs-ru/config"
	"codeberg.org/docs-ru/docs-ru/core/page"
	"codeberg.org/docs-ru/docs-ru/server/request_context"
	"codeberg.org/docs-ru/docs-ru/server/utils"
	"codeberg.org/docs-ru/docs-ru/views"
)

// IndexPage sends the reader to the configured start page.
func IndexPage(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, page.URL(config.Global.Content.Index), http.StatusFound)

	return nil
}

// DocPage renders a documentation page for the preferences of the reader.
//
// Requests from the preference switch script get only the #doc-body fragment.
func DocPage(w http.ResponseWriter, r *http.Request) error {
	lib, err := library()
	if err != nil {
		return err
	}

	pagePath, err := resolvePage(lib, utils.GetPathVar(r, "path"))
	if err != nil {
		return err
	}

	rendered, err := lib.Render(r.Context(), pagePath, request_context.FromRequest(r).Preferences)
	if err != nil {
		return err
	}

	props := docProps(r, lib, rendered)

	if isHTMX(r) {
		return renderHTML(w, r, views.DocBody(props))
	}

	return renderHTML(w, r, views.DocPage(props))
}

// resolvePage turns a raw path into the path of an existing page.
func resolvePage(lib *page.Library, raw string) (string, error) {
	pagePath, err := page.CleanPath(raw)
	if err != nil {
		return "", err
	}

	resolved, ok := lib.Resolve(pagePath)
	if !ok {
		return "", fmt.Errorf("%w: %s", page.ErrPageNotFound, pagePath)
	}

	return resolved, nil
}
