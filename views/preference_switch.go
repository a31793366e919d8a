// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/i18n"
)

// Form and action names shared with the settings handlers.
const (
	ActionToggle   = "toggle_preference"
	ActionSet      = "set_preference"
	ActionResetAll = "reset_all"

	FormKey        = "key"
	FormValue      = "value"
	FormReturnPath = "returnPath"

	// SwapTarget is the element replaced by the switch script.
	SwapTarget = "doc-body"
)

// SwitchProps configures the preference switch.
type SwitchProps struct {
	Preferences map[preference.Key]bool
	// ShowAPI and ShowSFC hide switches that would change nothing on the
	// current page.
	ShowAPI bool
	ShowSFC bool
	// ReturnPath is where the plain form posts redirect back to.
	ReturnPath string
}

// switchLabels names the off and on states of each preference.
var switchLabels = map[preference.Key][3]i18n.MsgKey{
	preference.PreferComposition: {"API style", "Options", "Composition"},
	preference.PreferSFC:         {"Component format", "HTML", "SFC"},
}

// PreferenceSwitch renders one toggle per shown preference. Each toggle is
// a form posting to the settings endpoint, so it works without scripts; the
// switch script submits it in the background and swaps in the response.
func PreferenceSwitch(props SwitchProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.open("div", "class", "preference-switch")
		h.element("p", i18n.Tr(ctx, "Preferences"), "class", "preference-switch-title")

		if props.ShowAPI {
			switchForm(h, preference.PreferComposition, props)
		}

		if props.ShowSFC {
			switchForm(h, preference.PreferSFC, props)
		}

		h.close("div")

		return h.err
	})
}

func switchForm(h *htmlWriter, key preference.Key, props SwitchProps) {
	labels := switchLabels[key]
	on := props.Preferences[key]
	label := labels[0].Tr(h.ctx)

	h.open("form",
		"class", "switch-form",
		"method", "post",
		"action", "/settings/"+ActionToggle,
		"data-swap", "#"+SwapTarget,
	)
	h.open("input", "type", "hidden", "name", FormKey, "value", string(key))
	h.open("input", "type", "hidden", "name", FormReturnPath, "value", props.ReturnPath)

	h.element("span", labels[1].Tr(h.ctx), "class", classes("switch-state", activeClass(!on)))
	h.open("button",
		"type", "submit",
		"class", "switch",
		"role", "switch",
		"aria-checked", strconv.FormatBool(on),
		"aria-label", label,
		"title", label,
		"data-key", string(key),
	)
	h.raw(`<span class="switch-thumb"></span>`)
	h.close("button")
	h.element("span", labels[2].Tr(h.ctx), "class", classes("switch-state", activeClass(on)))

	h.close("form")
}

func activeClass(active bool) string {
	if active {
		return "active"
	}

	return ""
}
