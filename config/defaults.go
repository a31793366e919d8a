// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"time"

	"codeberg.org/docs-ru/docs-ru/core/heading"
)

const (
	// Default HTTP cache max age in seconds.
	defaultHTTPCacheMaxAgeSeconds = 60
	// Default HTTP cache stale while revalidate in seconds.
	defaultHTTPCacheStaleWhileRevalidateSeconds = 300

	defaultPort = "8080"
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = defaultPort

	cfg.Content.Dir = "./content"
	cfg.Content.Index = "index"
	cfg.Content.SlugMode = heading.SlugModeUnicode
	cfg.Content.TOCMinLevel = 2
	cfg.Content.TOCMaxLevel = 3

	cfg.Preferences.PreferComposition = true
	cfg.Preferences.PreferSFC = true
	cfg.Preferences.SkipUnchanged = false

	cfg.Cache.Enabled = true
	cfg.Cache.Size = 256
	cfg.Cache.Compress = true

	cfg.HTTPCache.MaxAge = defaultHTTPCacheMaxAgeSeconds * time.Second
	cfg.HTTPCache.StaleWhileRevalidate = defaultHTTPCacheStaleWhileRevalidateSeconds * time.Second

	cfg.Instance.RepoURL = "https://codeberg.org/docs-ru/docs-ru"

	cfg.Development.InDevelopment = false
	cfg.Development.WatchContent = false

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Limiter.Enabled = false
	cfg.Limiter.Rate = 2
	cfg.Limiter.Burst = 20
	cfg.Limiter.Prefixes = []string{"/settings/"}
	cfg.Limiter.IPv4Prefix = 24
	cfg.Limiter.IPv6Prefix = 48

	cfg.Internationalization.DefaultLocale = "ru"
	cfg.Internationalization.StrictMissingKeys = false
}
