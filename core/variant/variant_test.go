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

func storeWith(t *testing.T, composition, sfc bool) *preference.Store {
	t.Helper()

	s := preference.NewStore(nil)
	require.NoError(t, s.Set(preference.PreferComposition, composition))
	require.NoError(t, s.Set(preference.PreferSFC, sfc))

	return s
}

func TestResolveVisibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag         variant.Tag
		composition bool
		sfc         bool
		want        bool
	}{
		{variant.Composition, true, true, true},
		{variant.Composition, false, true, false},
		{variant.Options, true, true, false},
		{variant.Options, false, true, true},
		{variant.SFC, true, true, true},
		{variant.SFC, true, false, false},
		{variant.NonSFC, true, true, false},
		{variant.NonSFC, true, false, true},
		{variant.Untagged, true, true, true},
		{variant.Untagged, false, false, true},
	}

	for _, tt := range tests {
		s := storeWith(t, tt.composition, tt.sfc)

		got := variant.ResolveVisibility(variant.Block{ID: "b", Tag: tt.tag}, s)
		assert.Equal(t, tt.want, got, "%s with composition=%v sfc=%v", tt.tag, tt.composition, tt.sfc)
	}
}

func TestPairsAreMutuallyExclusive(t *testing.T) {
	t.Parallel()

	for _, tag := range []variant.Tag{variant.Composition, variant.Options, variant.SFC, variant.NonSFC} {
		for _, composition := range []bool{true, false} {
			for _, sfc := range []bool{true, false} {
				s := storeWith(t, composition, sfc)

				a := variant.TagVisible(tag, s)
				b := variant.TagVisible(tag.Counterpart(), s)
				assert.NotEqual(t, a, b, "%s/%s composition=%v sfc=%v", tag, tag.Counterpart(), composition, sfc)
			}
		}
	}
}

func TestDefaultsShowCompositionAndSFC(t *testing.T) {
	t.Parallel()

	s := preference.NewStore(nil)

	assert.True(t, variant.TagVisible(variant.Composition, s))
	assert.False(t, variant.TagVisible(variant.Options, s))
	assert.True(t, variant.TagVisible(variant.SFC, s))
	assert.False(t, variant.TagVisible(variant.NonSFC, s))
}

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		class  string
		want   variant.Tag
		wantOK bool
	}{
		{"composition-api", variant.Composition, true},
		{"options-api", variant.Options, true},
		{"sfc", variant.SFC, true},
		{"non-sfc", variant.NonSFC, true},
		{"html", variant.NonSFC, true},
		{"tip", variant.Untagged, false},
		{"", variant.Untagged, false},
	}

	for _, tt := range tests {
		got, ok := variant.ParseTag(tt.class)
		assert.Equal(t, tt.want, got, tt.class)
		assert.Equal(t, tt.wantOK, ok, tt.class)
	}
}

func TestTagKey(t *testing.T) {
	t.Parallel()

	key, ok := variant.Options.Key()
	assert.True(t, ok)
	assert.Equal(t, preference.PreferComposition, key)

	key, ok = variant.NonSFC.Key()
	assert.True(t, ok)
	assert.Equal(t, preference.PreferSFC, key)

	_, ok = variant.Untagged.Key()
	assert.False(t, ok)

	assert.Equal(t, "non-sfc", variant.NonSFC.String())
	assert.Equal(t, "options-api", variant.Options.Class())
}

func TestCheckPairs(t *testing.T) {
	t.Parallel()

	paired := []variant.Block{
		{ID: "b1", Tag: variant.Untagged},
		{ID: "b2", Tag: variant.Options},
		{ID: "b3", Tag: variant.Composition},
	}
	require.NoError(t, variant.CheckPairs(paired))
	require.NoError(t, variant.CheckPairs(nil))

	unpaired := append(paired, variant.Block{ID: "b4", Tag: variant.SFC})

	err := variant.CheckPairs(unpaired)
	require.ErrorIs(t, err, variant.ErrUnpairedVariant)
	assert.Contains(t, err.Error(), "b4 (sfc)")
	assert.NotContains(t, err.Error(), "b2")
}

func TestFilterKeepsOrder(t *testing.T) {
	t.Parallel()

	blocks := []variant.Block{
		{ID: "intro"},
		{ID: "options", Tag: variant.Options},
		{ID: "composition", Tag: variant.Composition},
		{ID: "outro"},
	}

	got := variant.Filter(blocks, preference.NewStore(nil))

	ids := make([]string, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}

	assert.Equal(t, []string{"intro", "composition", "outro"}, ids)
}

func TestTags(t *testing.T) {
	t.Parallel()

	blocks := []variant.Block{
		{ID: "b1"},
		{ID: "b2", Tag: variant.Options},
		{ID: "b3", Tag: variant.Composition},
		{ID: "b4", Tag: variant.Options},
	}

	want := map[variant.Tag]bool{
		variant.Untagged:    true,
		variant.Options:     true,
		variant.Composition: true,
	}

	assert.Equal(t, want, variant.Tags(blocks))
	assert.Empty(t, variant.Tags(nil))
}
