// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/docs-ru/docs-ru/config"
	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/i18n"
	"codeberg.org/docs-ru/docs-ru/server/request_context"
	"codeberg.org/docs-ru/docs-ru/server/utils"
	"codeberg.org/docs-ru/docs-ru/views"
)

const settingsPath = "/settings"

// Values of the "status" query parameter of the settings page.
const (
	statusSaved = "saved"
	statusReset = "reset"
)

// settingsAction changes the preferences of the reader and returns the
// status to report.
type settingsAction func(r *http.Request, prefs *preference.Store) (string, error)

var actions = map[string]settingsAction{
	views.ActionToggle:   togglePreference,
	views.ActionSet:      setPreference,
	views.ActionResetAll: resetAll,
}

func formKey(r *http.Request) (preference.Key, error) {
	name := utils.GetFormValue(r, views.FormKey)

	key, err := preference.ParseKey(name)
	if err != nil {
		return "", errors.Join(i18n.NewUserError(r.Context(), "Unknown preference: {{.Key}}", "Key", name), err)
	}

	return key, nil
}

func togglePreference(r *http.Request, prefs *preference.Store) (string, error) {
	key, err := formKey(r)
	if err != nil {
		return "", err
	}

	if _, err := prefs.Toggle(key); err != nil {
		return "", err
	}

	return statusSaved, nil
}

func setPreference(r *http.Request, prefs *preference.Store) (string, error) {
	key, err := formKey(r)
	if err != nil {
		return "", err
	}

	raw := utils.GetFormValue(r, views.FormValue)

	value, ok := preference.Decode(raw)
	if !ok {
		return "", errors.Join(
			i18n.NewUserError(r.Context(), "Invalid value for {{.Key}}.", "Key", key.String()),
			fmt.Errorf("%w: value %q", ErrBadRequest, raw),
		)
	}

	if err := prefs.Set(key, value); err != nil {
		return "", err
	}

	return statusSaved, nil
}

//nolint:unparam
func resetAll(_ *http.Request, prefs *preference.Store) (string, error) {
	prefs.Reset()

	return statusReset, nil
}

// SettingsPage lists the preferences with their current values.
func SettingsPage(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Cache-Control", "no-store")

	prefs := request_context.FromRequest(r).Preferences

	list := make([]preference.Preference, 0, len(preference.Keys()))
	for _, key := range preference.Keys() {
		list = append(list, prefs.Preference(key))
	}

	return renderHTML(w, r, views.SettingsPage(views.SettingsProps{
		Preferences: list,
		Alert:       statusAlert(r),
		ReturnPath:  utils.SanitizeReturnPath(utils.GetQueryParam(r, views.FormReturnPath)),
		CacheID:     config.Global.Instance.FileServerCacheID,
	}))
}

func statusAlert(r *http.Request) *views.AlertProps {
	switch utils.GetQueryParam(r, "status") {
	case statusSaved:
		return &views.AlertProps{Message: i18n.Tr(r.Context(), "Preferences saved."), Level: views.AlertInfo}
	case statusReset:
		return &views.AlertProps{
			Message: i18n.Tr(r.Context(), "All preferences have been reset to default values."),
			Level:   views.AlertInfo,
		}
	default:
		return nil
	}
}

// SettingsPOST runs a preference action.
//
// Plain form posts are redirected back. Requests from the preference switch
// script get the re-rendered #doc-body of the page they came from.
func SettingsPOST(w http.ResponseWriter, r *http.Request) error {
	rc := request_context.FromRequest(r)
	returnPath := utils.SanitizeReturnPath(utils.GetFormValue(r, views.FormReturnPath))

	action, ok := actions[utils.GetPathVar(r, "action")]
	if !ok {
		err := errors.Join(
			i18n.NewUserError(r.Context(), "No such setting is available."),
			fmt.Errorf("%w: action %q", ErrBadRequest, utils.GetPathVar(r, "action")),
		)

		if isHTMX(r) {
			return renderAlert(w, r, err)
		}

		return err
	}

	if isHTMX(r) {
		return settingsFragment(w, r, action, rc.Preferences, returnPath)
	}

	status, err := action(r, rc.Preferences)
	if err != nil {
		return err
	}

	if returnPath == settingsPath {
		returnPath += "?status=" + status
	}

	utils.RedirectBack(w, r, returnPath, settingsPath+"?status="+status)

	return nil
}

// settingsFragment runs action while a Selector watches the blocks of the
// page at returnPath, then sends that page's body as the reader now sees it.
func settingsFragment(
	w http.ResponseWriter,
	r *http.Request,
	action settingsAction,
	prefs *preference.Store,
	returnPath string,
) error {
	lib, err := library()
	if err != nil {
		return err
	}

	var watcher *pageWatcher

	pagePath, isPage := docPagePath(lib, returnPath)
	if isPage {
		watcher, err = watchPage(lib, pagePath, prefs)
		if err != nil {
			return err
		}

		defer watcher.Close()
	}

	if _, err := action(r, prefs); err != nil {
		return renderAlert(w, r, err)
	}

	if watcher == nil {
		// Not a documentation page: the client reloads returnPath.
		if returnPath == "" {
			returnPath = settingsPath
		}

		w.Header().Set("HX-Redirect", returnPath)
		w.WriteHeader(http.StatusNoContent)

		return nil
	}

	log.Debug().
		Str("request_id", request_context.FromRequest(r).RequestID).
		Str("page", pagePath).
		Int("changes", watcher.changes).
		Int("visible_blocks", len(watcher.visible)).
		Msg("Re-evaluated variant blocks")

	w.Header().Set(VisibleBlocksHeader, strings.Join(watcher.visibleIDs(), " "))

	rendered, err := lib.Render(r.Context(), pagePath, prefs)
	if err != nil {
		return err
	}

	return renderHTML(w, r, views.DocBody(docProps(r, lib, rendered)))
}

// renderAlert answers a failed fragment request with a 400 alert. Errors
// without a message for the reader are returned to the error handler.
func renderAlert(w http.ResponseWriter, r *http.Request, err error) error {
	var userErr *i18n.UserError
	if !errors.As(err, &userErr) {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)

	return views.Alert(&views.AlertProps{Message: userErr.Error(), Level: views.AlertWarning}).Render(r.Context(), w)
}
