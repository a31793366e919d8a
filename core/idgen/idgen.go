// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package idgen makes short identifiers for requests and cache busting.
package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"time"
)

// Len is the length of every identifier returned by Make.
const Len = 10

// Make returns a URL-safe identifier made of the UTC time of day and
// 24 random bits.
func Make() string {
	return makeAt(time.Now(), rand.Reader)
}

func makeAt(t time.Time, entropy io.Reader) string {
	var buf [3]byte

	if _, err := io.ReadFull(entropy, buf[:]); err != nil {
		// Sub-second clock bits keep IDs distinct within one second.
		ns := t.Nanosecond()
		buf = [3]byte{byte(ns >> 16), byte(ns >> 8), byte(ns)}
	}

	return t.UTC().Format("150405") + base64.RawURLEncoding.EncodeToString(buf[:])
}
