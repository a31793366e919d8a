// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package preference

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Source records where a preference value came from.
type Source int

const (
	// SourceDefault means no stored value exists and the key default applies.
	SourceDefault Source = iota
	// SourceUserSet means the value was stored by an explicit toggle.
	SourceUserSet
)

func (s Source) String() string {
	if s == SourceUserSet {
		return "user-set"
	}

	return "default"
}

// Preference is the current state of one key.
type Preference struct {
	Key    Key
	Value  bool
	Source Source
}

// Callback receives the new state of a key after every Set.
type Callback func(Preference)

type subscription struct {
	fn     Callback
	active atomic.Bool
}

// Store is the single source of truth for the reader's preferences.
//
// Set calls are serialized: the update and the notification of every
// subscriber happen under one lock, so subscribers observe changes in the
// order they were made even with concurrent callers. Callbacks may call Get
// but must not call Set, Toggle or Reset.
type Store struct {
	setMu sync.Mutex

	mu       sync.RWMutex
	values   map[Key]Preference
	subs     map[Key][]*subscription
	defaults map[Key]bool

	backend       Backend
	skipUnchanged bool
	logger        zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSkipUnchanged suppresses notifications for a Set that does not change
// the value. Off by default: every Set notifies.
func WithSkipUnchanged(skip bool) Option {
	return func(s *Store) {
		s.skipUnchanged = skip
	}
}

// WithDefaults overrides the built-in defaults. Unknown keys are ignored.
func WithDefaults(defaults map[Key]bool) Option {
	return func(s *Store) {
		for k, v := range defaults {
			if k.Valid() {
				s.defaults[k] = v
			}
		}
	}
}

// WithLogger sets the logger used for recovered storage failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore reads every recognized key from backend and returns a ready Store.
//
// Absent, malformed or unreadable values fall back to the defaults. A nil
// backend is replaced by an empty MemoryBackend.
func NewStore(backend Backend, opts ...Option) *Store {
	if backend == nil {
		backend = &MemoryBackend{}
	}

	s := &Store{
		values:   make(map[Key]Preference, len(allKeys)),
		subs:     make(map[Key][]*subscription, len(allKeys)),
		defaults: make(map[Key]bool, len(allKeys)),
		backend:  backend,
		logger:   log.With().Str("sys", "preference").Logger(),
	}

	for _, k := range allKeys {
		s.defaults[k] = k.Default()
	}

	for _, opt := range opts {
		opt(s)
	}

	for _, k := range allKeys {
		s.values[k] = s.load(k)
	}

	return s
}

func (s *Store) load(key Key) Preference {
	fallback := Preference{Key: key, Value: s.defaults[key], Source: SourceDefault}

	raw, ok, err := s.backend.Load(key)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", key.String()).
			Msg("Failed to read stored preference, using default")

		return fallback
	}

	if !ok {
		return fallback
	}

	value, ok := Decode(raw)
	if !ok {
		s.logger.Debug().
			Str("key", key.String()).
			Str("raw", raw).
			Msg("Ignoring malformed stored preference")

		return fallback
	}

	return Preference{Key: key, Value: value, Source: SourceUserSet}
}

// Get returns the current value of key. It never fails; unrecognized keys
// report false.
func (s *Store) Get(key Key) bool {
	return s.Preference(key).Value
}

// Lookup is Get for untrusted names. Unrecognized names return false and an
// error matching ErrUnknownPreferenceKey.
func (s *Store) Lookup(name string) (bool, error) {
	key, err := ParseKey(name)
	if err != nil {
		return false, err
	}

	return s.Get(key), nil
}

// Preference returns the current value of key together with its source.
func (s *Store) Preference(key Key) Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.values[key]; ok {
		return p
	}

	return Preference{Key: key, Value: key.Default(), Source: SourceDefault}
}

// Snapshot returns every recognized key with its current value.
func (s *Store) Snapshot() map[Key]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[Key]bool, len(s.values))
	for k, p := range s.values {
		out[k] = p.Value
	}

	return out
}

// Set stores value for key, notifies the key's subscribers and persists.
//
// Persistence happens after notification and its failure is only logged:
// the in-memory value is never rolled back.
func (s *Store) Set(key Key, value bool) error {
	_, err := s.update(key, func(bool) bool { return value })

	return err
}

// Toggle flips key and returns the new value.
func (s *Store) Toggle(key Key) (bool, error) {
	return s.update(key, func(old bool) bool { return !old })
}

func (s *Store) update(key Key, next func(old bool) bool) (bool, error) {
	if !key.Valid() {
		return false, &UnknownKeyError{Key: string(key)}
	}

	s.setMu.Lock()
	defer s.setMu.Unlock()

	s.mu.Lock()
	old := s.values[key]
	p := Preference{Key: key, Value: next(old.Value), Source: SourceUserSet}
	s.values[key] = p
	subs := append([]*subscription(nil), s.subs[key]...)
	s.mu.Unlock()

	if old.Value != p.Value || !s.skipUnchanged {
		notify(subs, p)
	}

	if err := s.backend.Save(key, Encode(p.Value)); err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", key.String()).
			Bool("value", p.Value).
			Msg("Failed to persist preference")
	}

	return p.Value, nil
}

// Reset returns every key to its default and clears stored values.
// Subscribers are notified as for Set.
func (s *Store) Reset() {
	s.setMu.Lock()
	defer s.setMu.Unlock()

	for _, key := range allKeys {
		s.mu.Lock()
		old := s.values[key]
		p := Preference{Key: key, Value: s.defaults[key], Source: SourceDefault}
		s.values[key] = p
		subs := append([]*subscription(nil), s.subs[key]...)
		s.mu.Unlock()

		if old.Value != p.Value || !s.skipUnchanged {
			notify(subs, p)
		}

		if err := s.backend.Clear(key); err != nil {
			s.logger.Warn().
				Err(err).
				Str("key", key.String()).
				Msg("Failed to clear stored preference")
		}
	}
}

// Subscribe registers fn for every Set of key and returns its disposer.
// The disposer is idempotent; fn is not called by any Set that starts after
// it returns.
func (s *Store) Subscribe(key Key, fn Callback) (func(), error) {
	if !key.Valid() {
		return func() {}, &UnknownKeyError{Key: string(key)}
	}

	sub := &subscription{fn: fn}
	sub.active.Store(true)

	s.mu.Lock()
	s.subs[key] = append(s.subs[key], sub)
	s.mu.Unlock()

	return func() {
		if !sub.active.Swap(false) {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		subs := s.subs[key]
		for i, other := range subs {
			if other == sub {
				s.subs[key] = append(subs[:i:i], subs[i+1:]...)

				break
			}
		}
	}, nil
}

// notify runs subscribers in registration order, skipping any disposed
// while earlier callbacks ran.
func notify(subs []*subscription, p Preference) {
	for _, sub := range subs {
		if sub.active.Load() {
			sub.fn(p)
		}
	}
}
