// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"net/http"

	"codeberg.org/docs-ru/docs-ru/core/heading"
	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/server/request_context"
	"codeberg.org/docs-ru/docs-ru/server/utils"
)

// TOCResponse is the outline of a page for the current preferences.
type TOCResponse struct {
	Path        string                  `json:"path"`
	Title       string                  `json:"title"`
	Preferences map[preference.Key]bool `json:"preferences"`
	Headings    []heading.Entry         `json:"headings"`
	TOC         []heading.TOCItem       `json:"toc"`
}

// PreferenceResponse describes one preference and where its value came from.
type PreferenceResponse struct {
	Key    preference.Key `json:"key"`
	Value  bool           `json:"value"`
	Source string         `json:"source"`
}

// TOCAPI returns the visible headings of the page named by the "path" query
// parameter.
func TOCAPI(w http.ResponseWriter, r *http.Request) error {
	lib, err := library()
	if err != nil {
		return err
	}

	pagePath, err := resolvePage(lib, utils.GetQueryParam(r, "path"))
	if err != nil {
		return err
	}

	prefs := request_context.FromRequest(r).Preferences

	rendered, err := lib.Render(r.Context(), pagePath, prefs)
	if err != nil {
		return err
	}

	headings := rendered.Headings
	if headings == nil {
		headings = []heading.Entry{}
	}

	toc := rendered.TOC
	if toc == nil {
		toc = []heading.TOCItem{}
	}

	return writeJSON(w, TOCResponse{
		Path:        rendered.Path,
		Title:       rendered.Title,
		Preferences: prefs.Snapshot(),
		Headings:    headings,
		TOC:         toc,
	})
}

// PreferencesAPI lists every preference of the reader.
func PreferencesAPI(w http.ResponseWriter, r *http.Request) error {
	prefs := request_context.FromRequest(r).Preferences

	out := make([]PreferenceResponse, 0, len(preference.Keys()))
	for _, key := range preference.Keys() {
		p := prefs.Preference(key)

		out = append(out, PreferenceResponse{Key: p.Key, Value: p.Value, Source: p.Source.String()})
	}

	return writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")

	return json.NewEncoder(w).Encode(v)
}
