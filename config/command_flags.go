// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "flag"

// parseCommandLineArgs defines and parses flags, returning the value of the "config" flag.
func parseCommandLineArgs() string {
	configFilePath := "./config.yaml"

	if flag.Lookup("config") == nil {
		flag.StringVar(&configFilePath, "config", configFilePath, "Path to a configuration file in YAML format.")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	return flag.Lookup("config").Value.String()
}
