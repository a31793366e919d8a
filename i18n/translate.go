// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"text/template"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

// templateCache holds parsed templates keyed by their text.
var templateCache sync.Map

// Vars holds named placeholder values.
type Vars map[string]any

// UserError is an error whose message is already translated and can be
// shown to the reader as is.
type UserError struct {
	msg string
}

// NewUserError translates msgid in the locale of ctx.
func NewUserError(ctx context.Context, msgid string, kv ...any) *UserError {
	return &UserError{msg: Tr(ctx, msgid, kv...)}
}

func (e *UserError) Error() string {
	return e.msg
}

// Tr translates msgid, the English UI text, into the locale of ctx.
// Key-value pairs fill {{.Name}} style placeholders.
//
// A missing translation yields msgid, wrapped as "⟦msgid⟧" in strict mode.
func Tr(ctx context.Context, msgid string, kv ...any) string {
	return translate(ctx, "", msgid, "", 0, false, vars(kv...))
}

// TrC translates msgid under a disambiguating gettext context.
func TrC(ctx context.Context, contextKey, msgid string, kv ...any) string {
	return translate(ctx, contextKey, msgid, "", 0, false, vars(kv...))
}

// TrN picks the plural form for n. Without a translation, singular is used
// when n == 1 and plural otherwise.
func TrN(ctx context.Context, singular, plural string, n int, kv ...any) string {
	return translate(ctx, "", singular, plural, n, true, vars(kv...))
}

func translate(
	ctx context.Context,
	contextKey, singular, plural string,
	n int,
	pluralMode bool,
	data Vars,
) string {
	loc, matched := resolveLocale(TagFrom(ctx))

	text := singular
	if pluralMode && n != 1 {
		text = plural
	}

	found := matched == baseTag

	if loc != nil {
		switch {
		case pluralMode && contextKey != "":
			if loc.IsTranslatedNDC(poDomain, singular, n, contextKey) {
				text, found = loc.GetNDC(poDomain, singular, plural, n, contextKey), true
			}
		case pluralMode:
			if loc.IsTranslatedND(poDomain, singular, n) {
				text, found = loc.GetND(poDomain, singular, plural, n), true
			}
		case contextKey != "":
			if loc.IsTranslatedDC(poDomain, singular, contextKey) {
				text, found = loc.GetDC(poDomain, singular, contextKey), true
			}
		default:
			if loc.IsTranslatedD(poDomain, singular) {
				text, found = loc.GetD(poDomain, singular), true
			}
		}
	}

	if !found && strictMissingKeys() {
		logMissingOnce(strippedTagString(matched), buildLogKey(contextKey, singular))

		text = "⟦" + text + "⟧"
	}

	return render(matched, text, data)
}

// render fills the placeholders of s.
func render(locale language.Tag, s string, data Vars) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	var tmpl *template.Template

	if cached, ok := templateCache.Load(s); ok {
		tmpl = cached.(*template.Template)
	} else {
		parsed, err := template.New("msg").Option("missingkey=error").Parse(s)
		if err != nil {
			Logger.Error().Err(err).Stringer("locale", locale).Str("text", s).Msg("Failed to parse translation")

			return s
		}

		templateCache.Store(s, parsed)
		tmpl = parsed
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(data)); err != nil {
		Logger.Error().Err(err).Stringer("locale", locale).Str("text", s).Msg("Failed to format translation")

		return s
	}

	return buf.String()
}

// resolveLocale matches t against the loaded locales. Before Setup it
// returns nil and the default tag.
func resolveLocale(t language.Tag) (*gotext.Locale, language.Tag) {
	if matcher == nil {
		return nil, defaultTag
	}

	_, idx := language.MatchStrings(matcher, t.String())
	matched := supportedTags[idx]

	return localesByTag[matched.String()], matched
}

// vars builds Vars from alternating key, value pairs. It panics on
// malformed input since that is a programming error.
func vars(kv ...any) Vars {
	if len(kv)%2 != 0 {
		panic("i18n: odd number of arguments, want key, value pairs")
	}

	m := make(Vars, len(kv)/2)

	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("i18n: key must be string")
		}

		m[k] = kv[i+1]
	}

	return m
}
