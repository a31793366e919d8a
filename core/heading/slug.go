// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package heading

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Slugger turns heading text into an anchor. An empty result means the text
// has nothing usable and the registrar substitutes a placeholder.
type Slugger interface {
	Slug(text string) string
}

// UnicodeSlugger keeps letters of every script.
//
// Text is NFC-normalized and lower-cased. Characters other than letters,
// combining marks, digits, '-' and '_' are dropped, and runs of whitespace
// and hyphens become a single hyphen.
type UnicodeSlugger struct{}

func (UnicodeSlugger) Slug(text string) string {
	var b strings.Builder

	b.Grow(len(text))

	pendingHyphen := false

	text = cases.Lower(language.Und).String(norm.NFC.String(text))

	for _, r := range text {
		switch {
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc) || r == '_':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}

			pendingHyphen = false

			b.WriteRune(r)
		}
	}

	return b.String()
}

// TransliterateSlugger produces ASCII anchors: "Пример 1" becomes "primer-1".
type TransliterateSlugger struct{}

func (TransliterateSlugger) Slug(text string) string {
	return slug.Make(text)
}

// Slug modes accepted by NewSlugger.
const (
	SlugModeUnicode  = "unicode"
	SlugModeTranslit = "translit"
)

// NewSlugger returns the slugger for a configured mode.
func NewSlugger(mode string) (Slugger, error) {
	switch mode {
	case SlugModeUnicode, "":
		return UnicodeSlugger{}, nil
	case SlugModeTranslit:
		return TransliterateSlugger{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlugMode, mode)
	}
}
