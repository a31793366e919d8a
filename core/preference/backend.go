// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package preference

import (
	"sync"
)

// Encoded values written to a Backend.
const (
	encodedTrue  = "true"
	encodedFalse = "false"
)

// Backend is durable key-value storage for preferences.
//
// Load reports ok=false when nothing is stored. Errors from any method are
// treated by the Store as "no stored value" and are never surfaced to readers.
type Backend interface {
	Load(key Key) (raw string, ok bool, err error)
	Save(key Key, raw string) error
	Clear(key Key) error
}

// Encode returns the storage form of v.
func Encode(v bool) string {
	if v {
		return encodedTrue
	}

	return encodedFalse
}

// Decode parses a stored value. Anything other than the literal "true" or
// "false" is malformed and reported with ok=false.
func Decode(raw string) (value, ok bool) {
	switch raw {
	case encodedTrue:
		return true, true
	case encodedFalse:
		return false, true
	default:
		return false, false
	}
}

// MemoryBackend keeps encoded values in memory. The zero value is ready for use.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[Key]string
}

// NewMemoryBackend returns a MemoryBackend seeded with raw values.
func NewMemoryBackend(seed map[Key]string) *MemoryBackend {
	b := &MemoryBackend{values: make(map[Key]string, len(seed))}

	for k, v := range seed {
		b.values[k] = v
	}

	return b
}

func (b *MemoryBackend) Load(key Key) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	raw, ok := b.values[key]

	return raw, ok, nil
}

func (b *MemoryBackend) Save(key Key, raw string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.values == nil {
		b.values = make(map[Key]string)
	}

	b.values[key] = raw

	return nil
}

func (b *MemoryBackend) Clear(key Key) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.values, key)

	return nil
}
