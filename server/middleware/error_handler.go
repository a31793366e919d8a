// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"errors"
	"maps"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	"codeberg.org/docs-ru/docs-ru/config"
	"codeberg.org/docs-ru/docs-ru/core/audit"
	"codeberg.org/docs-ru/docs-ru/core/page"
	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/server/request_context"
	"codeberg.org/docs-ru/docs-ru/server/routes"
)

// CatchError adapts a handler that returns an error.
//
// The handler writes into a buffer. If it returns an error without having
// written an error status, or if it wrote 404, the buffer is discarded and
// the themed error page is rendered instead with a status derived from the
// error. Otherwise the buffered response is sent as is. Every request is
// then logged through an audit span.
func CatchError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := request_context.FromRequest(r)

		span := audit.Span{
			Kind:      audit.KindRequest,
			RequestID: rc.RequestID,
			Method:    r.Method,
			URL:       r.URL.String(),
		}

		r = r.WithContext(span.Begin(r.Context()))
		defer span.End()

		recorder := httptest.NewRecorder()

		err := handler(recorder, r)
		rc.RequestError = err

		// Server-Timing is written with the status line, so the metric has
		// to be complete before that.
		span.End()

		switch {
		case (err != nil && recorder.Code < http.StatusBadRequest) || recorder.Code == http.StatusNotFound:
			rc.StatusCode = statusFor(err, recorder.Code)

			// Headers set on the real writer so far, such as preference
			// cookies, are kept.
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("Cache-Control", "no-store")
			w.WriteHeader(rc.StatusCode)

			span.Size = routes.ErrorPage(w, r)

		default:
			if recorder.Code == 0 {
				recorder.Code = http.StatusOK
			}

			rc.StatusCode = recorder.Code

			maps.Copy(w.Header(), recorder.Header())
			w.WriteHeader(recorder.Code)

			span.Size = recorder.Body.Len()

			if _, err := recorder.Body.WriteTo(w); err != nil {
				log.Err(err).Str("request_id", rc.RequestID).Msg("Failed to write response body")
			}
		}

		span.StatusCode = rc.StatusCode
		span.Error = rc.RequestError

		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}

// statusFor maps a handler error to the status of the error page.
func statusFor(err error, recorded int) int {
	switch {
	case errors.Is(err, page.ErrPageNotFound), recorded == http.StatusNotFound:
		return http.StatusNotFound
	case errors.Is(err, preference.ErrUnknownPreferenceKey),
		errors.Is(err, page.ErrInvalidPath),
		errors.Is(err, routes.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
