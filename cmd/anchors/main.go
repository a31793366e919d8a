// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command anchors prints the heading anchors and table of contents of a
// markdown page as a reader with the given preferences would see them.
//
//	go run ./cmd/anchors -composition=false -sfc=true content/guide/reactivity.md
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/docs-ru/docs-ru/core/audit"
	"codeberg.org/docs-ru/docs-ru/core/heading"
	"codeberg.org/docs-ru/docs-ru/core/page"
	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/core/variant"
)

var errNoInput = errors.New("expected exactly one markdown file")

type options struct {
	composition bool
	sfc         bool
	slugMode    string
	tocMin      int
	tocMax      int
	asJSON      bool
	check       bool
}

func main() {
	audit.SetDefaultLogger()

	var opts options

	flag.BoolVar(&opts.composition, "composition", true, "prefer Composition API samples")
	flag.BoolVar(&opts.sfc, "sfc", true, "prefer Single-File Component samples")
	flag.StringVar(&opts.slugMode, "slug", heading.SlugModeUnicode, "slug mode: unicode or translit")
	flag.IntVar(&opts.tocMin, "toc-min", 2, "shallowest heading level in the table of contents")
	flag.IntVar(&opts.tocMax, "toc-max", 3, "deepest heading level in the table of contents")
	flag.BoolVar(&opts.asJSON, "json", false, "print the rendered outline as JSON")
	flag.BoolVar(&opts.check, "check", false, "fail if a variant block has no counterpart")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal().Err(errNoInput).Msg("Usage: anchors [flags] FILE.md")
	}

	file := flag.Arg(0)

	src, err := os.ReadFile(file)
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("Failed to read page")
	}

	if err := run(os.Stdout, opts, file, src); err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("Failed to build anchors")
	}
}

func run(w io.Writer, opts options, file string, src []byte) error {
	slugger, err := heading.NewSlugger(opts.slugMode)
	if err != nil {
		return err
	}

	renderer := page.NewRenderer(slugger, opts.tocMin, opts.tocMax)

	name := strings.TrimSuffix(filepath.ToSlash(file), filepath.Ext(file))

	doc, err := page.Parse(renderer.Markdown, name, src)
	if err != nil {
		return err
	}

	if opts.check {
		if err := variant.CheckPairs(doc.VariantBlocks()); err != nil {
			return err
		}
	}

	store := preference.NewStore(preference.NewMemoryBackend(map[preference.Key]string{
		preference.PreferComposition: preference.Encode(opts.composition),
		preference.PreferSFC:         preference.Encode(opts.sfc),
	}))

	rendered, err := renderer.Render(doc, store)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(struct {
			Headings []heading.Entry   `json:"headings"`
			TOC      []heading.TOCItem `json:"toc"`
		}{rendered.Headings, rendered.TOC})
	}

	for _, e := range rendered.Headings {
		if !e.Visible {
			continue
		}

		fmt.Fprintf(w, "%s#%s\t%s\n", strings.Repeat("  ", e.Level-1), e.Slug, e.Text)
	}

	return nil
}
