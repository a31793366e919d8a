// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/i18n"
)

// ErrorProps describes a failed request.
type ErrorProps struct {
	StatusCode int
	// Message is shown for client errors. Server errors show a generic
	// text so internals do not leak.
	Message     string
	RequestID   string
	Preferences map[preference.Key]bool
	CacheID     string
}

// ErrorPage is the themed error document.
func ErrorPage(props ErrorProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := statusTitle(props.StatusCode).Tr(ctx)

		return Layout(LayoutProps{
			Title:       title,
			Preferences: props.Preferences,
			CacheID:     props.CacheID,
		}, errorBody(props, title)).Render(ctx, w)
	})
}

func errorBody(props ErrorProps, title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw(`<main id="main" class="content error-page">`)
		h.element("p", strconv.Itoa(props.StatusCode), "class", "error-code")
		h.element("h1", title)

		message := i18n.Tr(ctx, "Something went wrong on our side. Please try again later.")
		if props.StatusCode < http.StatusInternalServerError && props.Message != "" {
			message = props.Message
		}

		h.element("p", message, "class", "error-message")

		if props.RequestID != "" {
			h.element("p", i18n.Tr(ctx, "Request ID: {{.ID}}", "ID", props.RequestID), "class", "error-request-id")
		}

		h.element("a", i18n.Tr(ctx, "Go to the home page"), "href", "/")
		h.raw("</main>")

		return h.err
	})
}

func statusTitle(status int) i18n.MsgKey {
	switch status {
	case http.StatusNotFound:
		return "Page not found"
	case http.StatusBadRequest:
		return "Bad request"
	case http.StatusTooManyRequests:
		return "Too many requests"
	default:
		return "Something went wrong"
	}
}
