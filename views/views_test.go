// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/docs-ru/docs-ru/core/heading"
	"codeberg.org/docs-ru/docs-ru/core/page"
	"codeberg.org/docs-ru/docs-ru/core/preference"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()

	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	require.NoError(t, err)

	return doc
}

func renderedPage(sfc bool) *page.Rendered {
	return &page.Rendered{
		Path:  "guide/reactivity",
		Title: "Основы реактивности",
		Blocks: []page.RenderedBlock{
			{ID: "b1", HTML: "<h1 id=\"основы-реактивности\">Основы реактивности</h1>\n"},
			{ID: "b2", Tag: "composition", Class: "composition-api", HTML: "<div class=\"composition-api\">\n<p>ref()</p>\n</div>\n"},
		},
		TOC: []heading.TOCItem{
			{Text: "Объявление состояния", Slug: "объявление-состояния", Level: 2, Children: []heading.TOCItem{
				{Text: "ref()", Slug: "ref", Level: 3},
			}},
			{Text: "Пример", Slug: "пример", Level: 2},
		},
		Variants: page.Variants{API: true, SFC: sfc},
	}
}

func TestPreferenceClasses(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "prefer-composition prefer-sfc", PreferenceClasses(map[preference.Key]bool{
		preference.PreferSFC:         true,
		preference.PreferComposition: true,
	}))
	assert.Equal(t, "prefer-sfc", PreferenceClasses(map[preference.Key]bool{preference.PreferSFC: true}))
	assert.Empty(t, PreferenceClasses(nil))
}

func TestDocPage(t *testing.T) {
	t.Parallel()

	doc := render(t, DocPage(DocProps{
		Page: renderedPage(true),
		Nav: []NavSection{{Title: "Основы", Items: []NavItem{
			{Path: "guide/introduction", Title: "Введение"},
			{Path: "guide/reactivity", Title: "Основы реактивности", Active: true},
		}}},
		Preferences: map[preference.Key]bool{preference.PreferComposition: false, preference.PreferSFC: true},
		EditURL:     "https://codeberg.org/docs-ru/docs-ru/_edit/main/content/guide/reactivity.md",
		CacheID:     "abc",
	}))

	assert.Equal(t, "prefer-sfc", doc.Find("html").AttrOr("class", ""))
	assert.Equal(t, "Основы реактивности | Vue.js documentation", doc.Find("title").Text())
	assert.Equal(t, "/css/site.css?v=abc", doc.Find(`link[rel="stylesheet"]`).AttrOr("href", ""))

	body := doc.Find("#" + SwapTarget)
	require.Equal(t, 1, body.Length())
	assert.True(t, body.HasClass("prefer-sfc"))
	assert.False(t, body.HasClass("prefer-composition"))

	assert.Equal(t, "/docs/guide/reactivity", doc.Find(".sidebar-nav a.active").AttrOr("href", ""))
	assert.Equal(t, 1, doc.Find("article.doc .composition-api").Length())

	toc := doc.Find("nav.toc")
	assert.Equal(t, []string{"#объявление-состояния", "#ref", "#пример"}, toc.Find("a").Map(func(_ int, s *goquery.Selection) string {
		return s.AttrOr("href", "")
	}))
	assert.Equal(t, 1, toc.Find("ul ul").Length())

	assert.Contains(t, doc.Find(".doc-footer a").AttrOr("href", ""), "_edit/main")
}

func TestPreferenceSwitch(t *testing.T) {
	t.Parallel()

	t.Run("both switches", func(t *testing.T) {
		t.Parallel()

		doc := render(t, DocBody(DocProps{
			Page:        renderedPage(true),
			Preferences: map[preference.Key]bool{preference.PreferComposition: true, preference.PreferSFC: false},
		}))

		forms := doc.Find("form.switch-form")
		require.Equal(t, 2, forms.Length())

		api := forms.Eq(0)
		assert.Equal(t, "/settings/"+ActionToggle, api.AttrOr("action", ""))
		assert.Equal(t, string(preference.PreferComposition), api.Find(`input[name="key"]`).AttrOr("value", ""))
		assert.Equal(t, "/docs/guide/reactivity", api.Find(`input[name="returnPath"]`).AttrOr("value", ""))
		assert.Equal(t, "true", api.Find("button").AttrOr("aria-checked", ""))
		assert.Equal(t, "Composition", api.Find(".switch-state.active").Text())

		sfc := forms.Eq(1)
		assert.Equal(t, "false", sfc.Find("button").AttrOr("aria-checked", ""))
		assert.Equal(t, "HTML", sfc.Find(".switch-state.active").Text())
	})

	t.Run("sfc switch hidden without sfc samples", func(t *testing.T) {
		t.Parallel()

		doc := render(t, DocBody(DocProps{Page: renderedPage(false)}))

		forms := doc.Find("form.switch-form")
		require.Equal(t, 1, forms.Length())
		assert.Equal(t, string(preference.PreferComposition), forms.Find(`input[name="key"]`).AttrOr("value", ""))
	})
}

func TestAlert(t *testing.T) {
	t.Parallel()

	doc := render(t, Alert(&AlertProps{Message: "<b>Сохранено</b>", Level: AlertWarning}))

	alert := doc.Find(".alert")
	assert.True(t, alert.HasClass("alert-warning"))
	assert.Equal(t, "alert", alert.AttrOr("role", ""))
	assert.Equal(t, "<b>Сохранено</b>", alert.Text())
	assert.Zero(t, alert.Find("b").Length())

	assert.Zero(t, render(t, Alert(nil)).Find(".alert").Length())
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	notFound := render(t, ErrorPage(ErrorProps{StatusCode: http.StatusNotFound, Message: "нет такой страницы", RequestID: "120000abcd"}))
	assert.Equal(t, "Page not found", notFound.Find("h1").Text())
	assert.Equal(t, "нет такой страницы", notFound.Find(".error-message").Text())
	assert.Contains(t, notFound.Find(".error-request-id").Text(), "120000abcd")

	internal := render(t, ErrorPage(ErrorProps{StatusCode: http.StatusInternalServerError, Message: "open /etc/secret: permission denied"}))
	assert.NotContains(t, internal.Text(), "/etc/secret")
	assert.Zero(t, internal.Find(".error-request-id").Length())
}

func TestSettingsPage(t *testing.T) {
	t.Parallel()

	doc := render(t, SettingsPage(SettingsProps{
		Preferences: []preference.Preference{
			{Key: preference.PreferComposition, Value: false, Source: preference.SourceUserSet},
			{Key: preference.PreferSFC, Value: true, Source: preference.SourceDefault},
		},
		Alert:      &AlertProps{Message: "Saved"},
		ReturnPath: "/docs/guide/introduction",
	}))

	forms := doc.Find("form.settings-form")
	require.Equal(t, 2, forms.Length())

	assert.Equal(t, "false", forms.Eq(0).Find("input[checked]").AttrOr("value", ""))
	assert.Equal(t, "user-set", forms.Eq(0).Find(".settings-source").AttrOr("data-source", ""))
	assert.Equal(t, "true", forms.Eq(1).Find("input[checked]").AttrOr("value", ""))
	assert.Equal(t, "default", forms.Eq(1).Find(".settings-source").AttrOr("data-source", ""))

	assert.Equal(t, "/settings/"+ActionResetAll, doc.Find("form.settings-reset").AttrOr("action", ""))
	assert.Equal(t, "Saved", doc.Find(".alert").Text())
	assert.Equal(t, "prefer-sfc", doc.Find("html").AttrOr("class", ""))
}
