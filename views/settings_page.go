// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/i18n"
)

// SettingsProps is the state shown on the settings page.
type SettingsProps struct {
	// Preferences are listed in this order.
	Preferences []preference.Preference
	Alert       *AlertProps
	ReturnPath  string
	CacheID     string
}

// SettingsPage lists every preference with a choice between its two values.
func SettingsPage(props SettingsProps) templ.Component {
	current := make(map[preference.Key]bool, len(props.Preferences))
	for _, p := range props.Preferences {
		current[p.Key] = p.Value
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := i18n.Tr(ctx, "Settings")

		return Layout(LayoutProps{
			Title:       title,
			Preferences: current,
			CacheID:     props.CacheID,
		}, settingsBody(props, title)).Render(ctx, w)
	})
}

func settingsBody(props SettingsProps, title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw(`<main id="main" class="content settings-page">`)
		h.element("h1", title)
		h.component(Alert(props.Alert))
		h.element("p", i18n.Tr(ctx, "Code samples are shown in the style you choose. The choice is stored in cookies in this browser."))

		for _, p := range props.Preferences {
			settingsForm(h, p, props.ReturnPath)
		}

		h.open("form", "method", "post", "action", "/settings/"+ActionResetAll, "class", "settings-reset")
		h.open("input", "type", "hidden", "name", FormReturnPath, "value", props.ReturnPath)
		h.element("button", i18n.Tr(ctx, "Reset preferences"), "type", "submit")
		h.close("form")

		h.raw("</main>")

		return h.err
	})
}

func settingsForm(h *htmlWriter, p preference.Preference, returnPath string) {
	labels, ok := switchLabels[p.Key]
	if !ok {
		return
	}

	source := i18n.Tr(h.ctx, "Default")
	if p.Source == preference.SourceUserSet {
		source = i18n.Tr(h.ctx, "Chosen by you")
	}

	h.open("form", "method", "post", "action", "/settings/"+ActionSet, "class", "settings-form")
	h.open("input", "type", "hidden", "name", FormKey, "value", string(p.Key))
	h.open("input", "type", "hidden", "name", FormReturnPath, "value", returnPath)
	h.raw("<fieldset>")
	h.element("legend", labels[0].Tr(h.ctx))

	for _, option := range []struct {
		value bool
		label i18n.MsgKey
	}{{false, labels[1]}, {true, labels[2]}} {
		value := preference.Encode(option.value)

		h.raw("<label>")

		if option.value == p.Value {
			h.open("input", "type", "radio", "name", FormValue, "value", value, "checked", "")
		} else {
			h.open("input", "type", "radio", "name", FormValue, "value", value)
		}

		h.text(option.label.Tr(h.ctx))
		h.raw("</label>")
	}

	h.element("p", source, "class", "settings-source", "data-source", p.Source.String())
	h.raw("</fieldset>")
	h.element("button", i18n.Tr(h.ctx, "Save"), "type", "submit")
	h.close("form")
}
