// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package untrusted

import (
	"net/http"

	"codeberg.org/docs-ru/docs-ru/core/preference"
)

// CookieBackend persists preferences as cookies on the current exchange.
//
// Loads read the incoming request. Saves and clears are written to the
// response and also recorded, so a store built later in the same request
// sees them.
type CookieBackend struct {
	r       *http.Request
	w       http.ResponseWriter
	pending map[preference.Key]*string
}

var _ preference.Backend = (*CookieBackend)(nil)

// NewCookieBackend returns a backend over one request/response pair.
// w may be nil for read-only use.
func NewCookieBackend(w http.ResponseWriter, r *http.Request) *CookieBackend {
	return &CookieBackend{r: r, w: w, pending: make(map[preference.Key]*string)}
}

func (b *CookieBackend) Load(key preference.Key) (string, bool, error) {
	if v, ok := b.pending[key]; ok {
		if v == nil {
			return "", false, nil
		}

		return *v, true, nil
	}

	name := key.StorageName()
	if !HasCookie(b.r, name) {
		return "", false, nil
	}

	return GetCookie(b.r, name), true, nil
}

func (b *CookieBackend) Save(key preference.Key, raw string) error {
	b.pending[key] = &raw

	if b.w == nil {
		return errReadOnlyBackend
	}

	SetCookie(b.w, b.r, key.StorageName(), raw)

	return nil
}

func (b *CookieBackend) Clear(key preference.Key) error {
	b.pending[key] = nil

	if b.w == nil {
		return errReadOnlyBackend
	}

	ClearCookie(b.w, b.r, key.StorageName())

	return nil
}
