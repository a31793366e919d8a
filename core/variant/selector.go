// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package variant

import (
	"errors"
	"slices"
	"sync"

	"codeberg.org/docs-ru/docs-ru/core/preference"
)

var ErrSelectorClosed = errors.New("selector is closed")

// Preferences is the part of a preference store a Selector needs.
type Preferences interface {
	Reader
	Subscribe(key preference.Key, fn preference.Callback) (func(), error)
}

// ChangeFunc receives the visible blocks after a preference change.
type ChangeFunc func(visible []Block)

// Selector keeps the visibility of a set of mounted blocks in step with a
// preference store.
//
// On every change of a preference the Selector re-evaluates all mounted
// blocks first and only then runs the OnChange listeners, so listeners never
// see a half-updated page.
type Selector struct {
	prefs Preferences

	mu        sync.Mutex
	blocks    []Block
	visible   map[string]bool
	listeners []ChangeFunc
	disposers []func()
	closed    bool
}

// NewSelector subscribes to every preference a block can depend on.
func NewSelector(prefs Preferences) (*Selector, error) {
	s := &Selector{
		prefs:   prefs,
		visible: make(map[string]bool),
	}

	for _, key := range preference.Keys() {
		dispose, err := prefs.Subscribe(key, s.onPreference)
		if err != nil {
			s.Close()

			return nil, err
		}

		s.disposers = append(s.disposers, dispose)
	}

	return s, nil
}

// Mount adds blocks and evaluates their visibility. Mounting an id twice
// replaces the earlier block.
func (s *Selector) Mount(blocks ...Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSelectorClosed
	}

	for _, b := range blocks {
		if i := s.indexOf(b.ID); i >= 0 {
			s.blocks[i] = b
		} else {
			s.blocks = append(s.blocks, b)
		}

		s.visible[b.ID] = ResolveVisibility(b, s.prefs)
	}

	return nil
}

// Unmount removes the block with id. Unknown ids are ignored.
func (s *Selector) Unmount(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.blocks = slices.Delete(s.blocks, i, i+1)
		delete(s.visible, id)
	}
}

// Visible reports whether the mounted block id is currently shown.
func (s *Selector) Visible(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.visible[id]
}

// VisibleBlocks returns the shown blocks in mount order.
func (s *Selector) VisibleBlocks() []Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.visibleLocked()
}

// OnChange registers fn to run after every re-evaluation.
func (s *Selector) OnChange(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, fn)
}

// Close disposes the store subscriptions. It is safe to call more than once.
func (s *Selector) Close() {
	s.mu.Lock()
	disposers := s.disposers
	s.disposers = nil
	s.closed = true
	s.mu.Unlock()

	for _, dispose := range disposers {
		dispose()
	}
}

func (s *Selector) onPreference(p preference.Preference) {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()

		return
	}

	for _, b := range s.blocks {
		if key, ok := b.Tag.Key(); ok && key == p.Key {
			s.visible[b.ID] = p.Value == b.Tag.shownWhen()
		}
	}

	visible := s.visibleLocked()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(visible)
	}
}

func (s *Selector) visibleLocked() []Block {
	out := make([]Block, 0, len(s.blocks))

	for _, b := range s.blocks {
		if s.visible[b.ID] {
			out = append(out, b)
		}
	}

	return out
}

func (s *Selector) indexOf(id string) int {
	return slices.IndexFunc(s.blocks, func(b Block) bool { return b.ID == id })
}
