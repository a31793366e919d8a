// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Alert levels.
const (
	AlertInfo    = "info"
	AlertWarning = "warning"
)

// AlertProps is a message shown above the page content. Message is
// already translated.
type AlertProps struct {
	Message string
	Level   string
}

// Alert renders a status message. A nil props renders nothing.
func Alert(props *AlertProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if props == nil || props.Message == "" {
			return nil
		}

		level := props.Level
		if level == "" {
			level = AlertInfo
		}

		role := "status"
		if level == AlertWarning {
			role = "alert"
		}

		h := newHTMLWriter(ctx, w)
		h.element("div", props.Message, "class", classes("alert", "alert-"+level), "role", role)

		return h.err
	})
}
