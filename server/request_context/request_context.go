// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package request_context holds per-request state shared by middleware,
handlers and views.

It is a separate package so that views can read it without importing the
route handlers.
*/
package request_context

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/docs-ru/docs-ru/config"
	"codeberg.org/docs-ru/docs-ru/core/idgen"
	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/core/untrusted"
	"codeberg.org/docs-ru/docs-ru/i18n"
)

// RequestContext carries request-scoped data through the middleware chain.
type RequestContext struct {
	// RequestID identifies the request in logs and on error pages.
	RequestID string

	// RequestError is set by middleware.CatchError when a handler fails.
	RequestError error

	// StatusCode is the status sent to the client. Defaults to 200 OK.
	StatusCode int

	// Lang is the UI language negotiated for the request.
	Lang language.Tag

	// Preferences reads the reader's preference cookies and writes changes
	// back as Set-Cookie headers on the response.
	Preferences *preference.Store
}

type requestContextKeyType struct{}

var requestContextKey = requestContextKeyType{}

// WithRequestContext attaches a fresh RequestContext for r to ctx. w receives
// the cookies of preference changes; nil makes the store read-only.
func WithRequestContext(ctx context.Context, w http.ResponseWriter, r *http.Request) context.Context {
	ctx = i18n.WithRequest(ctx, r)

	rc := &RequestContext{
		RequestID:  idgen.Make(),
		StatusCode: http.StatusOK,
		Lang:       i18n.TagFrom(ctx),
	}

	rc.Preferences = NewPreferenceStore(w, r, rc.RequestID)

	return context.WithValue(ctx, requestContextKey, rc)
}

// NewPreferenceStore returns a store over the cookies of r that uses the
// site-wide defaults from the configuration.
func NewPreferenceStore(w http.ResponseWriter, r *http.Request, requestID string) *preference.Store {
	cfg := config.Global.Preferences

	return preference.NewStore(
		untrusted.NewCookieBackend(w, r),
		preference.WithDefaults(map[preference.Key]bool{
			preference.PreferComposition: cfg.PreferComposition,
			preference.PreferSFC:         cfg.PreferSFC,
		}),
		preference.WithSkipUnchanged(cfg.SkipUnchanged),
		preference.WithLogger(log.With().Str("sys", "preference").Str("request_id", requestID).Logger()),
	)
}

// FromContext returns the RequestContext in ctx. Without one it returns a
// zero value with an in-memory preference store, so callers never get nil.
func FromContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(requestContextKey).(*RequestContext); ok {
		return rc
	}

	return &RequestContext{
		StatusCode:  http.StatusOK,
		Lang:        i18n.TagFrom(ctx),
		Preferences: preference.NewStore(nil),
	}
}

// FromRequest is FromContext(r.Context()).
func FromRequest(r *http.Request) *RequestContext {
	return FromContext(r.Context())
}
