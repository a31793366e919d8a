// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

// readYAML overlays the YAML file at path onto cfg. A missing file is skipped.
// Unknown keys are rejected so that a misspelled setting fails loudly instead
// of silently keeping its default.
func (cfg *ServerConfig) readYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied config path
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("path", path).Msg("No YAML configuration file, using defaults and environment")

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return fmt.Errorf("invalid configuration file %s:\n%s", path, yaml.FormatError(err, false, true))
	}

	log.Info().Str("path", path).Msg("Loaded configuration file")

	return nil
}
