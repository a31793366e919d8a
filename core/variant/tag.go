// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package variant

import (
	"codeberg.org/docs-ru/docs-ru/core/preference"
)

// Tag is the closed set of variant markers a block may carry.
type Tag int

const (
	Untagged Tag = iota
	Composition
	Options
	SFC
	NonSFC
)

var tagNames = [...]string{
	Untagged:    "untagged",
	Composition: "composition",
	Options:     "options",
	SFC:         "sfc",
	NonSFC:      "non-sfc",
}

// CSS classes used by content authors. "html" is the older spelling of non-sfc.
var tagClasses = map[string]Tag{
	"composition-api": Composition,
	"options-api":     Options,
	"sfc":             SFC,
	"non-sfc":         NonSFC,
	"html":            NonSFC,
}

// ParseTag maps a container class to its tag. Unknown classes report false.
func ParseTag(class string) (Tag, bool) {
	tag, ok := tagClasses[class]

	return tag, ok
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return "invalid"
	}

	return tagNames[t]
}

// Class is the canonical container class for t, empty for Untagged.
func (t Tag) Class() string {
	switch t {
	case Composition:
		return "composition-api"
	case Options:
		return "options-api"
	case SFC:
		return "sfc"
	case NonSFC:
		return "non-sfc"
	default:
		return ""
	}
}

// Key is the preference that controls t. Untagged blocks have none.
func (t Tag) Key() (preference.Key, bool) {
	switch t {
	case Composition, Options:
		return preference.PreferComposition, true
	case SFC, NonSFC:
		return preference.PreferSFC, true
	default:
		return "", false
	}
}

// Counterpart is the other member of t's pair. Untagged is its own counterpart.
func (t Tag) Counterpart() Tag {
	switch t {
	case Composition:
		return Options
	case Options:
		return Composition
	case SFC:
		return NonSFC
	case NonSFC:
		return SFC
	default:
		return Untagged
	}
}

// shownWhen is the preference value under which a tagged block is visible.
func (t Tag) shownWhen() bool {
	return t == Composition || t == SFC
}
