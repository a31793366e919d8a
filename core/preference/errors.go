// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package preference

import (
	"errors"
	"fmt"
)

// ErrUnknownPreferenceKey is matched by every error returned for a key outside
// the recognized set. It signals a programming error in the caller.
var ErrUnknownPreferenceKey = errors.New("unknown preference key")

// UnknownKeyError carries the offending key.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownPreferenceKey, e.Key)
}

// Is makes errors.Is(err, ErrUnknownPreferenceKey) succeed.
func (e *UnknownKeyError) Is(target error) bool {
	return target == ErrUnknownPreferenceKey
}
