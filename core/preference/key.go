// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package preference

import (
	"fmt"

	"codeberg.org/docs-ru/docs-ru/core/cookie"
)

// Key names a recognized preference.
type Key string

const (
	// PreferComposition selects Composition API samples over Options API samples.
	PreferComposition Key = "prefer-composition"
	// PreferSFC selects Single-File Component samples over plain HTML/JS samples.
	PreferSFC Key = "prefer-sfc"
)

// allKeys is ordered; Keys, Snapshot and Reset iterate in this order.
var allKeys = []Key{PreferComposition, PreferSFC}

// Keys returns the recognized keys in a stable order.
func Keys() []Key {
	out := make([]Key, len(allKeys))
	copy(out, allKeys)

	return out
}

// ParseKey validates a preference name coming from untrusted input.
func ParseKey(name string) (Key, error) {
	key := Key(name)
	if !key.Valid() {
		return "", &UnknownKeyError{Key: name}
	}

	return key, nil
}

// Valid reports whether k is one of the recognized keys.
func (k Key) Valid() bool {
	switch k {
	case PreferComposition, PreferSFC:
		return true
	default:
		return false
	}
}

// Default is the value used when nothing has been stored for k.
//
// Unrecognized keys default to false.
func (k Key) Default() bool {
	switch k {
	case PreferComposition, PreferSFC:
		return true
	default:
		return false
	}
}

// StorageName is the cookie under which k is persisted.
func (k Key) StorageName() cookie.CookieName {
	switch k {
	case PreferComposition:
		return cookie.PreferCompositionCookie
	case PreferSFC:
		return cookie.PreferSFCCookie
	default:
		panic(fmt.Sprintf("preference: no storage name for unknown key %q", string(k)))
	}
}

func (k Key) String() string {
	return string(k)
}
