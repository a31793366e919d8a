// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/docs-ru/docs-ru/config"
	"codeberg.org/docs-ru/docs-ru/i18n"
	"codeberg.org/docs-ru/docs-ru/server/request_context"
	"codeberg.org/docs-ru/docs-ru/views"
)

// countingWriter counts the bytes that reach the client.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n

	return n, err
}

// ErrorPage renders the error page for the status and error stored in the
// request context and returns the number of bytes written.
//
// The status line must already be written.
func ErrorPage(w http.ResponseWriter, r *http.Request) int {
	rc := request_context.FromRequest(r)
	cw := &countingWriter{w: w}

	props := views.ErrorProps{
		StatusCode:  rc.StatusCode,
		Message:     errorMessage(r.Context(), rc.StatusCode, rc.RequestError),
		RequestID:   rc.RequestID,
		Preferences: rc.Preferences.Snapshot(),
		CacheID:     config.Global.Instance.FileServerCacheID,
	}

	if err := views.ErrorPage(props).Render(r.Context(), cw); err != nil {
		log.Err(err).Str("request_id", rc.RequestID).Msg("Failed to render error page")
	}

	return cw.n
}

// errorMessage is what the reader is told about err. Internal error text is
// never shown.
func errorMessage(ctx context.Context, status int, err error) string {
	var userErr *i18n.UserError
	if errors.As(err, &userErr) {
		return userErr.Error()
	}

	switch status {
	case http.StatusNotFound:
		return i18n.Tr(ctx, "There is no page at this address.")
	case http.StatusBadRequest:
		return i18n.Tr(ctx, "The request could not be understood.")
	default:
		return ""
	}
}
