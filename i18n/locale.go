// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// BaseLocale is the language of the msgids.
const BaseLocale = "en"

var (
	baseTag = language.Make(BaseLocale)

	// defaultTag is served when a request carries no usable preference.
	defaultTag = baseTag
)

// DefaultTag returns the locale configured in Setup.
func DefaultTag() language.Tag {
	return defaultTag
}

// Languages returns the supported tags sorted by tag string.
//
// It panics if Setup has not been called.
func Languages() []language.Tag {
	if matcher == nil {
		panic("i18n: Setup must be called before calling Languages")
	}

	out := slices.Clone(supportedTags)
	slices.SortFunc(out, func(a, b language.Tag) int { return strings.Compare(a.String(), b.String()) })

	return out
}
