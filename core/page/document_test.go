// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/docs-ru/docs-ru/core/heading"
	"codeberg.org/docs-ru/docs-ru/core/variant"
)

func TestParse_Regions(t *testing.T) {
	t.Parallel()

	doc, err := Parse(NewMarkdown(), "guide/reactivity", []byte(reactivityPage))
	require.NoError(t, err)

	assert.Equal(t, "Основы реактивности", doc.Title)
	assert.Equal(t, Outline{MinLevel: 2, MaxLevel: 3}, doc.Meta.Outline)

	tags := make([]variant.Tag, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		tags = append(tags, b.Tag)
	}

	assert.Equal(t, []variant.Tag{variant.Untagged, variant.Options, variant.Composition, variant.Untagged}, tags)
	assert.Equal(t, "b2", doc.Blocks[1].ID)

	// The </div> inside the fenced code does not close the region.
	assert.Contains(t, doc.Blocks[2].Content, "const count = ref(0)")

	require.NoError(t, variant.CheckPairs(doc.VariantBlocks()))
}

func TestParse_Headings(t *testing.T) {
	t.Parallel()

	doc, err := Parse(NewMarkdown(), "guide/reactivity", []byte(reactivityPage))
	require.NoError(t, err)

	want := []heading.Source{
		{Text: "Основы реактивности", Level: 1},
		{Text: "Объявление реактивного состояния", Level: 2, BlockID: "b2"},
		{Text: "Пример", Level: 2, BlockID: "b2"},
		{Text: "Объявление реактивного состояния", Level: 2, BlockID: "b3"},
		{Text: "Пример", Level: 2, BlockID: "b3"},
		{Text: "Пример", Level: 2},
	}

	assert.Equal(t, want, doc.Headings)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"unterminated region", "<div class=\"sfc\">\n\ntext\n", ErrUnterminatedVariant},
		{"unterminated front matter", "---\ntitle: x\n", ErrUnterminatedMeta},
		{"bad outline", "---\noutline: [4, 2]\n---\n", ErrInvalidOutline},
		{"unknown outline", "---\noutline: shallow\n---\n", ErrInvalidOutline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(NewMarkdown(), "x", []byte(tt.src))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParse_TitleFallback(t *testing.T) {
	t.Parallel()

	doc, err := Parse(NewMarkdown(), "guide/no-title", []byte("Просто текст.\n"))
	require.NoError(t, err)
	assert.Equal(t, "no-title", doc.Title)
}

func TestParse_HtmlAlias(t *testing.T) {
	t.Parallel()

	src := "<div class=\"sfc\">\n\nSFC\n\n</div>\n<div class=\"html\">\n\nHTML\n\n</div>\n"

	doc, err := Parse(NewMarkdown(), "x", []byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, variant.NonSFC, doc.Blocks[1].Tag)
}

func TestParse_InlineDivIsContent(t *testing.T) {
	t.Parallel()

	src := "<div class=\"composition-api\">inline</div>\n"

	doc, err := Parse(NewMarkdown(), "x", []byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, variant.Untagged, doc.Blocks[0].Tag)
}

func TestOutline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want Outline
	}{
		{"---\noutline: 2\n---\n", Outline{MinLevel: 2, MaxLevel: 2}},
		{"---\noutline: deep\n---\n", Outline{MinLevel: 2, MaxLevel: 6}},
		{"---\ntitle: x\n---\n", Outline{}},
	}

	for _, tt := range tests {
		meta, _, _, err := splitFrontMatter([]byte(tt.src))
		require.NoError(t, err, tt.src)
		assert.Equal(t, tt.want, meta.Outline, tt.src)
	}
}

func TestCleanPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"/docs/guide/introduction", "guide/introduction", false},
		{"guide/introduction.md", "guide/introduction", false},
		{"guide/introduction.html", "guide/introduction", false},
		{"/docs/", "index", false},
		{"guide/", "guide", false},
		{"../etc/passwd", "", true},
		{"guide/.hidden", "", true},
	}

	for _, tt := range tests {
		got, err := CleanPath(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPath, tt.in)

			continue
		}

		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRewriteLink(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"./ref.md#details", "./ref#details"},
		{"/guide/intro.md", "/docs/guide/intro"},
		{"https://example.com/a.md", "https://example.com/a.md"},
		{"#local", "#local"},
		{"image.png", "image.png"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, string(rewriteLink([]byte(tt.in))), tt.in)
	}
}
