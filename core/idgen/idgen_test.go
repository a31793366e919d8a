// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package idgen

import (
	"bytes"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMakeAt(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 1, 9, 5, 7, 0, time.UTC)

	id := makeAt(at, bytes.NewReader([]byte{0xff, 0xff, 0xff}))
	assert.Equal(t, "090507____", id)
	assert.Len(t, id, Len)
}

func TestMakeAtWithoutEntropy(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 1, 23, 59, 59, 0x010203, time.UTC)

	assert.Equal(t, "235959AQID", makeAt(at, iotest.ErrReader(assert.AnError)))
}

func TestMake(t *testing.T) {
	t.Parallel()

	a, b := Make(), Make()

	assert.Len(t, a, Len)
	assert.Regexp(t, `^[0-9]{6}[A-Za-z0-9_-]{4}$`, a)
	assert.NotEqual(t, a, b)
}
