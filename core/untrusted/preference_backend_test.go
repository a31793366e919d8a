// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/core/untrusted"
)

func responseCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}

func TestCookieBackend_Load(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/docs/guide", nil)
	r.AddCookie(&http.Cookie{Name: "vue-docs-prefer-composition", Value: "false"})
	r.AddCookie(&http.Cookie{Name: "vue-docs-prefer-sfc", Value: "maybe"})

	store := preference.NewStore(untrusted.NewCookieBackend(nil, r))

	assert.Equal(t, preference.Preference{
		Key:    preference.PreferComposition,
		Value:  false,
		Source: preference.SourceUserSet,
	}, store.Preference(preference.PreferComposition))

	// Malformed values fall back to the default.
	assert.Equal(t, preference.SourceDefault, store.Preference(preference.PreferSFC).Source)
	assert.True(t, store.Get(preference.PreferSFC))
}

func TestCookieBackend_SaveWritesCookie(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/settings/toggle_preference", nil)
	w := httptest.NewRecorder()

	store := preference.NewStore(untrusted.NewCookieBackend(w, r))
	require.NoError(t, store.Set(preference.PreferSFC, false))

	c := responseCookie(t, w, "vue-docs-prefer-sfc")
	require.NotNil(t, c)
	assert.Equal(t, "false", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.False(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestCookieBackend_ClearExpiresCookie(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/settings/reset_all", nil)
	r.AddCookie(&http.Cookie{Name: "vue-docs-prefer-composition", Value: "false"})

	w := httptest.NewRecorder()
	backend := untrusted.NewCookieBackend(w, r)

	store := preference.NewStore(backend)
	store.Reset()

	c := responseCookie(t, w, "vue-docs-prefer-composition")
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)

	// The cleared value is visible to a second store in the same request.
	assert.Equal(t, preference.SourceDefault, preference.NewStore(backend).Preference(preference.PreferComposition).Source)
}

func TestCookieBackend_ReadOnly(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	backend := untrusted.NewCookieBackend(nil, r)

	require.Error(t, backend.Save(preference.PreferSFC, "false"))

	raw, ok, err := backend.Load(preference.PreferSFC)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", raw)
}
