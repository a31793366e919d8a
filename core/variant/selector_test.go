// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package variant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/core/variant"
)

func blockIDs(blocks []variant.Block) []string {
	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.ID)
	}

	return ids
}

func mountedSelector(t *testing.T, store *preference.Store) *variant.Selector {
	t.Helper()

	sel, err := variant.NewSelector(store)
	require.NoError(t, err)
	t.Cleanup(sel.Close)

	require.NoError(t, sel.Mount(
		variant.Block{ID: "intro"},
		variant.Block{ID: "composition", Tag: variant.Composition},
		variant.Block{ID: "options", Tag: variant.Options},
		variant.Block{ID: "sfc", Tag: variant.SFC},
		variant.Block{ID: "html", Tag: variant.NonSFC},
	))

	return sel
}

func TestSelector_FollowsStore(t *testing.T) {
	t.Parallel()

	store := preference.NewStore(nil)
	sel := mountedSelector(t, store)

	assert.Equal(t, []string{"intro", "composition", "sfc"}, blockIDs(sel.VisibleBlocks()))

	require.NoError(t, store.Set(preference.PreferComposition, false))

	assert.True(t, sel.Visible("options"))
	assert.False(t, sel.Visible("composition"))
	assert.True(t, sel.Visible("sfc"))
	assert.Equal(t, []string{"intro", "options", "sfc"}, blockIDs(sel.VisibleBlocks()))

	require.NoError(t, store.Set(preference.PreferSFC, false))
	assert.Equal(t, []string{"intro", "options", "html"}, blockIDs(sel.VisibleBlocks()))
}

func TestSelector_OnChangeSeesCompleteState(t *testing.T) {
	t.Parallel()

	store := preference.NewStore(nil)
	sel := mountedSelector(t, store)

	var seen [][]string

	sel.OnChange(func(visible []variant.Block) {
		seen = append(seen, blockIDs(visible))
		// Every block is already re-evaluated by the time listeners run.
		assert.Equal(t, blockIDs(visible), blockIDs(sel.VisibleBlocks()))
	})

	require.NoError(t, store.Set(preference.PreferComposition, false))
	require.NoError(t, store.Set(preference.PreferComposition, true))

	assert.Equal(t, [][]string{
		{"intro", "options", "sfc"},
		{"intro", "composition", "sfc"},
	}, seen)
}

func TestSelector_MountUnmount(t *testing.T) {
	t.Parallel()

	store := preference.NewStore(nil)
	sel := mountedSelector(t, store)

	sel.Unmount("composition")
	sel.Unmount("missing")

	assert.False(t, sel.Visible("composition"))
	assert.Equal(t, []string{"intro", "sfc"}, blockIDs(sel.VisibleBlocks()))

	require.NoError(t, sel.Mount(variant.Block{ID: "intro", Tag: variant.Options}))
	assert.False(t, sel.Visible("intro"))
}

func TestSelector_Close(t *testing.T) {
	t.Parallel()

	store := preference.NewStore(nil)
	sel := mountedSelector(t, store)

	calls := 0
	sel.OnChange(func([]variant.Block) { calls++ })

	sel.Close()
	sel.Close()

	require.NoError(t, store.Set(preference.PreferComposition, false))

	assert.Zero(t, calls)
	assert.True(t, sel.Visible("composition"))
	assert.ErrorIs(t, sel.Mount(variant.Block{ID: "late"}), variant.ErrSelectorClosed)
}
