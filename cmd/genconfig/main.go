// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command genconfig writes example .env and YAML configuration files from
// the configuration defaults.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/docs-ru/docs-ru/config"
	"codeberg.org/docs-ru/docs-ru/core/audit"
)

const (
	envOutputFile  = ".env.example"
	yamlOutputFile = "config.yaml.example"
	filePerm       = 0o644

	envFileHeader = `# docs-ru configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# docs-ru configuration (via configuration file)
#
# Copy this file to config.yaml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
)

// essentialEnv are written uncommented.
var essentialEnv = map[string]bool{
	"DOCSRU_HOST":        true,
	"DOCSRU_PORT":        true,
	"DOCSRU_CONTENT_DIR": true,
}

func main() {
	outDir := flag.String("out", "deploy", "directory to write the example files to")
	flag.Parse()

	audit.SetDefaultLogger()

	cfg := &config.ServerConfig{}
	cfg.SetDefaults()

	yamlText, err := renderYAMLFile(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config to YAML")
	}

	files := map[string]string{
		envOutputFile:  renderEnvFile(cfg),
		yamlOutputFile: yamlText,
	}

	for name, content := range files {
		path := filepath.Join(*outDir, name)

		if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Failed to write example file")
		}

		log.Info().Str("path", path).Msg("Generated example file")
	}
}

// renderEnvFile lists every env-tagged setting, grouped by config section.
func renderEnvFile(cfg *config.ServerConfig) string {
	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	for i := range typ.NumField() {
		section := val.Field(i)
		if section.Kind() != reflect.Struct || typ.Field(i).Name == "Build" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", typ.Field(i).Name)

		for j := range section.NumField() {
			tag, ok := section.Type().Field(j).Tag.Lookup("env")
			if !ok {
				continue
			}

			name, _, _ := strings.Cut(tag, ",")
			value := section.Field(j)

			switch {
			case essentialEnv[name]:
				fmt.Fprintf(&sb, "%s=\"%v\"\n", name, value.Interface())
			case value.Kind() == reflect.Slice:
				items := make([]string, value.Len())
				for k := range value.Len() {
					items[k] = fmt.Sprint(value.Index(k).Interface())
				}

				fmt.Fprintf(&sb, "# %s=%s\n", name, strings.Join(items, ","))
			case value.Kind() == reflect.String && value.Len() == 0:
				fmt.Fprintf(&sb, "# %s=\n", name)
			default:
				fmt.Fprintf(&sb, "# %s=%v\n", name, value.Interface())
			}
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// renderYAMLFile marshals the defaults and comments out every setting,
// keeping section headers.
func renderYAMLFile(cfg *config.ServerConfig) (string, error) {
	var yamlContent strings.Builder

	encoder := yaml.NewEncoder(&yamlContent, config.GetDurationEncoderOption(), yaml.Indent(2))
	if err := encoder.Encode(cfg); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	for line := range strings.SplitSeq(yamlContent.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !strings.HasPrefix(line, " ") {
			fmt.Fprintf(&sb, "\n%s\n", line)

			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indent), trimmed)
	}

	return sb.String(), nil
}
