// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"

	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"

	"codeberg.org/docs-ru/docs-ru/core/heading"
	"codeberg.org/docs-ru/docs-ru/server/utils"
)

// validation errors.
var (
	errUnixSocketWithHostPort       = errors.New("unix socket configured - cannot specify Host and Port simultaneously")
	errUnixSocketInvalidPermissions = errors.New("invalid Basic.UnixSocketPermissions value")
	errContentDirMissing            = errors.New("content.dir does not exist or is not a directory")
	errInvalidTOCLevels             = errors.New("content.tocMinLevel and content.tocMaxLevel must satisfy 1 <= min <= max <= 6")
	errInvalidCacheSize             = errors.New("cache.cacheSize must be positive when the cache is enabled")
	errInvalidLimiterRate           = errors.New("limiter.rate and limiter.burst must be positive")
	errInvalidIPv4Prefix            = errors.New("IPv4 prefix must be between 0 and 32")
	errInvalidIPv6Prefix            = errors.New("IPv6 prefix must be between 0 and 128")
	errInvalidPassIP                = errors.New("limiter.passList entry is not an IP or CIDR")
	errInvalidLogFormat             = errors.New("log.logFormat must be console or json")
)

var (
	fileModeOctalRegexp  = regexp.MustCompile(`^0?[0-7]{3}$`)
	fileModeStringRegexp = regexp.MustCompile(`^(?:[r-][w-][x-]){3}$`)
)

// validateAndSet validates the configuration and fills derived fields.
// Every problem found is reported, not just the first.
func (cfg *ServerConfig) validateAndSet() error {
	var errs error

	multierr.AppendInto(&errs, cfg.validateListener())

	if info, err := os.Stat(cfg.Content.Dir); err != nil || !info.IsDir() {
		multierr.AppendInto(&errs, fmt.Errorf("%w: %s", errContentDirMissing, cfg.Content.Dir))
	}

	if _, err := heading.NewSlugger(cfg.Content.SlugMode); err != nil {
		multierr.AppendInto(&errs, fmt.Errorf("content.slugMode: %w", err))
	}

	if cfg.Content.TOCMinLevel < 1 || cfg.Content.TOCMaxLevel > 6 || cfg.Content.TOCMinLevel > cfg.Content.TOCMaxLevel {
		multierr.AppendInto(&errs, errInvalidTOCLevels)
	}

	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		multierr.AppendInto(&errs, errInvalidCacheSize)
	}

	if repoURL, err := utils.ParseURL(cfg.Instance.RepoURL, "Repo"); err != nil {
		multierr.AppendInto(&errs, fmt.Errorf("invalid repo URL: %w", err))
	} else {
		cfg.Instance.RepoURL = repoURL.String()
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		multierr.AppendInto(&errs, fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format))
	}

	if cfg.Limiter.Enabled {
		multierr.AppendInto(&errs, cfg.validateLimiter())
	}

	return errs
}

func (cfg *ServerConfig) validateListener() error {
	if cfg.Basic.UnixSocket == "" {
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = "localhost"
			log.Info().
				Str("host", cfg.Basic.Host).
				Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			cfg.Basic.Port = defaultPort
			log.Info().
				Str("port", cfg.Basic.Port).
				Msg("Using default port")
		}

		return nil
	}

	if cfg.Basic.Host != "" || cfg.Basic.Port != "" {
		return errUnixSocketWithHostPort
	}

	raw := cfg.Basic.RawUnixSocketPermissions

	switch {
	case raw == "":
		cfg.Basic.UnixSocketPermissions = 0o666
	case fileModeOctalRegexp.MatchString(raw):
		mode, _ := strconv.ParseUint(raw, 8, 32)

		cfg.Basic.UnixSocketPermissions = os.FileMode(mode)
	case fileModeStringRegexp.MatchString(raw):
		var mode os.FileMode

		// "rwxr-x---": bit 8 is the first character.
		for i, c := range raw {
			if c != '-' {
				mode |= 1 << (8 - i)
			}
		}

		cfg.Basic.UnixSocketPermissions = mode
	default:
		return errUnixSocketInvalidPermissions
	}

	return nil
}

func (cfg *ServerConfig) validateLimiter() error {
	var errs error

	if cfg.Limiter.Rate <= 0 || cfg.Limiter.Burst <= 0 {
		multierr.AppendInto(&errs, errInvalidLimiterRate)
	}

	if cfg.Limiter.IPv4Prefix < 0 || cfg.Limiter.IPv4Prefix > 32 {
		multierr.AppendInto(&errs, errInvalidIPv4Prefix)
	}

	if cfg.Limiter.IPv6Prefix < 0 || cfg.Limiter.IPv6Prefix > 128 {
		multierr.AppendInto(&errs, errInvalidIPv6Prefix)
	}

	for _, entry := range cfg.Limiter.PassIPs {
		if net.ParseIP(entry) != nil {
			continue
		}

		if _, _, err := net.ParseCIDR(entry); err != nil {
			multierr.AppendInto(&errs, fmt.Errorf("%w: %q", errInvalidPassIP, entry))
		}
	}

	return errs
}
