// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// poDomain is the gettext domain loaded under each locale.
const poDomain = "docs-ru"

var errNoCatalogues = errors.New("no gettext catalogues found")

var (
	// localesByTag maps canonical BCP 47 tags to their loaded catalogue.
	localesByTag map[string]*gotext.Locale

	// supportedTags lists the default tag first, then the rest sorted.
	supportedTags []language.Tag

	matcher language.Matcher
)

// Setup loads every po/<locale>.po file in fsys and builds the language
// matcher. defaultLocale is what readers get when nothing they accept is
// available; it falls back to [BaseLocale] when empty.
//
// Locale file names may use hyphens or underscores ("pt-BR.po", "pt_BR.po").
// The template file po/docs-ru.pot is ignored. Calling Setup again replaces
// the loaded state.
func Setup(fsys fs.FS, defaultLocale string) error {
	Logger = log.With().Str("sys", "i18n").Logger()

	if defaultLocale == "" {
		defaultLocale = BaseLocale
	}

	def, err := language.Parse(defaultLocale)
	if err != nil {
		return fmt.Errorf("invalid default locale %q: %w", defaultLocale, err)
	}

	entries, err := fs.ReadDir(fsys, "po")
	if err != nil {
		return fmt.Errorf("failed to read po directory: %w", err)
	}

	loaded := make(map[string]*gotext.Locale)

	var tags []language.Tag

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".po" {
			continue
		}

		t, err := language.Parse(strings.ReplaceAll(strings.TrimSuffix(name, ".po"), "_", "-"))
		if err != nil {
			Logger.Warn().Err(err).Str("file", name).Msg("Skipping invalid locale file")

			continue
		}

		po := gotext.NewPoFS(fsys)
		po.ParseFile(path.Join("po", name))

		loc := gotext.NewLocale("", t.String())
		loc.AddTranslator(poDomain, po)

		loaded[t.String()] = loc
		tags = append(tags, t)

		Logger.Debug().Str("locale", t.String()).Msg("Loaded locale")
	}

	if len(loaded) == 0 && def != baseTag {
		return fmt.Errorf("%w for default locale %s", errNoCatalogues, def)
	}

	// The source language needs no catalogue; msgids are English text.
	if !slices.Contains(tags, baseTag) {
		tags = append(tags, baseTag)
	}

	slices.SortFunc(tags, func(a, b language.Tag) int { return strings.Compare(a.String(), b.String()) })

	// The first tag is the matcher's fallback.
	ordered := make([]language.Tag, 0, len(tags)+1)
	ordered = append(ordered, def)

	for _, t := range tags {
		if t != def {
			ordered = append(ordered, t)
		}
	}

	localesByTag = loaded
	supportedTags = ordered
	matcher = language.NewMatcher(ordered)
	defaultTag = def

	Logger.Info().
		Str("default", def.String()).
		Int("locales", len(loaded)).
		Msg("Initialized translations")

	return nil
}
