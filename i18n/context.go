// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"codeberg.org/docs-ru/docs-ru/core/cookie"
	"codeberg.org/docs-ru/docs-ru/core/untrusted"
)

type contextKeyType struct{}

var tagKey = contextKeyType{}

// LangParam is the query parameter carrying a preferred UI language.
// Its cookie counterpart is [cookie.LangCookie].
const LangParam = "lang"

// WithTag returns a context carrying t.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// TagFrom returns the tag stored in ctx, or the default tag. ctx may be nil.
func TagFrom(ctx context.Context) language.Tag {
	if ctx != nil {
		if t, _ := ctx.Value(tagKey).(language.Tag); t != (language.Tag{}) {
			return t
		}
	}

	return defaultTag
}

// FromRequest picks the best supported language for r, looking at the
// [LangParam] query parameter, then the [cookie.LangCookie] cookie, then
// Accept-Language. A query value of "auto" ignores the cookie.
//
// Before Setup, or for a nil request, it returns the default tag.
func FromRequest(r *http.Request) language.Tag {
	if r == nil || matcher == nil {
		return defaultTag
	}

	q := r.URL.Query().Get(LangParam)
	auto := strings.EqualFold(q, "auto")

	preferred := make([]string, 0, 3)
	if q != "" && !auto {
		preferred = append(preferred, q)
	}

	if !auto {
		if c := untrusted.GetCookie(r, cookie.LangCookie); c != "" {
			preferred = append(preferred, c)
		}
	}

	if al := r.Header.Get("Accept-Language"); al != "" {
		preferred = append(preferred, al)
	}

	// The index gives the supported tag without the regional extensions
	// the matcher may attach.
	_, idx := language.MatchStrings(matcher, preferred...)

	return supportedTags[idx]
}

// WithRequest is WithTag(ctx, FromRequest(r)).
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return WithTag(ctx, FromRequest(r))
}
