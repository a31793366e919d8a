// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lrucache_test

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/docs-ru/docs-ru/core/lrucache"
)

func newCache(t *testing.T, size int, compress bool) *lrucache.Cache {
	t.Helper()

	c, err := lrucache.New(size, compress)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	return c
}

func TestNew_InvalidSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -1} {
		_, err := lrucache.New(size, false)
		assert.ErrorIs(t, err, lrucache.ErrInvalidSize)
	}
}

func TestCache_Eviction(t *testing.T) {
	t.Parallel()

	c := newCache(t, 2, false)

	assert.False(t, c.Add("a", []byte("1")))
	assert.False(t, c.Add("b", []byte("2")))

	// Touch "a" so "b" becomes the oldest.
	_, ok := c.Get("a")
	require.True(t, ok)

	assert.True(t, c.Add("c", []byte("3")))

	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "c"}, c.Keys())
}

func TestCache_UpdateExisting(t *testing.T) {
	t.Parallel()

	c := newCache(t, 2, false)

	c.Add("a", []byte("1"))
	assert.False(t, c.Add("a", []byte("2")))

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("2"), got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_ValuesAreCopied(t *testing.T) {
	t.Parallel()

	for _, compress := range []bool{false, true} {
		c := newCache(t, 4, compress)

		value := []byte("short")
		c.Add("k", value)
		value[0] = 'X'

		got, ok := c.Get("k")
		require.True(t, ok)
		assert.Equal(t, []byte("short"), got)

		got[0] = 'Y'

		again, _ := c.Get("k")
		assert.Equal(t, []byte("short"), again)
	}
}

func TestCache_CompressionRoundTrip(t *testing.T) {
	t.Parallel()

	c := newCache(t, 4, true)

	html := bytes.Repeat([]byte("<p>Пример компонента</p>\n"), 200)
	c.Add("page", html)

	got, ok := c.Get("page")
	require.True(t, ok)
	assert.Equal(t, html, got)

	c.Add("empty", nil)
	got, ok = c.Get("empty")
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestCache_RemovePrefixAndPurge(t *testing.T) {
	t.Parallel()

	c := newCache(t, 10, false)

	for _, k := range []string{"guide/a|cs", "guide/a|Cs", "guide/b|cs", "api/x|cs"} {
		c.Add(k, []byte(k))
	}

	assert.Equal(t, 2, c.RemovePrefix("guide/a|"))
	assert.Equal(t, []string{"guide/b|cs", "api/x|cs"}, c.Keys())
	assert.True(t, c.Remove("api/x|cs"))
	assert.False(t, c.Remove("api/x|cs"))

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestCache_Stats(t *testing.T) {
	t.Parallel()

	c := newCache(t, 2, false)
	c.Add("a", []byte("1"))

	c.Get("a")
	c.Get("a")
	c.Get("missing")

	assert.Equal(t, lrucache.Stats{Len: 1, Hits: 2, Misses: 1}, c.Stats())
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := newCache(t, 16, true)

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range 100 {
				key := fmt.Sprintf("k%d", (i*j)%32)
				c.Add(key, []byte(key))

				if v, ok := c.Get(key); ok && !bytes.HasPrefix(v, []byte("k")) {
					t.Errorf("corrupt value %q", v)
				}
			}
		}()
	}

	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 16)
}
