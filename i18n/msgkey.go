// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"io"
)

// MsgKey is a msgid that is translated when rendered, so labels can be
// declared before a request context exists.
//
// MsgKey implements templ.Component.
type MsgKey string

// Tr translates s in the locale of ctx.
func (s MsgKey) Tr(ctx context.Context) string {
	return Tr(ctx, string(s))
}

// Render writes the translation as plain text. Callers that render into
// HTML must escape it.
func (s MsgKey) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, s.Tr(ctx))

	return err
}
