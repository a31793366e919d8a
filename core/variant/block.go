// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package variant

import (
	"errors"
	"fmt"
	"strings"

	"codeberg.org/docs-ru/docs-ru/core/preference"
)

var ErrUnpairedVariant = errors.New("variant block has no counterpart on the page")

// Block is one region of page content.
type Block struct {
	// ID is stable within a page and follows document order.
	ID      string
	Tag     Tag
	Content string
}

// Reader is the read side of a preference store.
type Reader interface {
	Get(key preference.Key) bool
}

// ResolveVisibility reports whether block is shown under the current preferences.
func ResolveVisibility(block Block, prefs Reader) bool {
	return TagVisible(block.Tag, prefs)
}

// TagVisible reports whether blocks tagged t are shown under prefs.
func TagVisible(t Tag, prefs Reader) bool {
	key, ok := t.Key()
	if !ok {
		return true
	}

	return prefs.Get(key) == t.shownWhen()
}

// Filter returns the visible blocks in their original order.
func Filter(blocks []Block, prefs Reader) []Block {
	out := make([]Block, 0, len(blocks))

	for _, b := range blocks {
		if ResolveVisibility(b, prefs) {
			out = append(out, b)
		}
	}

	return out
}

// CheckPairs reports tagged blocks whose counterpart tag does not appear
// anywhere in blocks.
func CheckPairs(blocks []Block) error {
	present := make(map[Tag]bool, len(tagNames))
	for _, b := range blocks {
		present[b.Tag] = true
	}

	var unpaired []string

	for _, b := range blocks {
		if b.Tag == Untagged || present[b.Tag.Counterpart()] {
			continue
		}

		unpaired = append(unpaired, fmt.Sprintf("%s (%s)", b.ID, b.Tag))
	}

	if len(unpaired) > 0 {
		return fmt.Errorf("%w: %s", ErrUnpairedVariant, strings.Join(unpaired, ", "))
	}

	return nil
}

// Tags returns the distinct tags used in blocks.
func Tags(blocks []Block) map[Tag]bool {
	out := make(map[Tag]bool)
	for _, b := range blocks {
		out[b.Tag] = true
	}

	return out
}
