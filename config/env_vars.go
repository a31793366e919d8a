// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	errExpectedPointerToStruct = errors.New("expected a pointer to a struct")
	errUnsupportedSliceType    = errors.New("unsupported slice type")
	errUnsupportedFieldType    = errors.New("unsupported field type")
)

var durationType = reflect.TypeFor[time.Duration]()

// readEnv populates a config struct from the environment variables named by
// its `env` tags. A tag option "overwrite" lets the variable replace a value
// already set by defaults or YAML.
func readEnv(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %s", errExpectedPointerToStruct, v.Kind())
	}

	return readEnvStruct(v.Elem())
}

func readEnvStruct(v reflect.Value) error {
	t := v.Type()

	for i := range v.NumField() {
		field, meta := v.Field(i), t.Field(i)

		name, opts, tagged := strings.Cut(meta.Tag.Get("env"), ",")
		if name == "" {
			if field.Kind() == reflect.Struct && field.CanSet() {
				if err := readEnvStruct(field); err != nil {
					return err
				}
			}

			continue
		}

		raw, ok := os.LookupEnv(name)
		if !ok || !field.CanSet() {
			continue
		}

		overwrite := tagged && slices.Contains(strings.Split(opts, ","), "overwrite")
		if !overwrite && !field.IsZero() {
			continue
		}

		if err := setFieldValue(field, meta.Name, name, raw); err != nil {
			return err
		}
	}

	return nil
}

// setFieldValue parses raw into field according to the field's type.
func setFieldValue(field reflect.Value, fieldName, envVarName, raw string) error {
	parseErr := func(kind string, err error) error {
		return fmt.Errorf("failed to parse %s for %s from env var %s (%s): %w", kind, fieldName, envVarName, raw, err)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return parseErr("duration", err)
			}

			field.SetInt(int64(d))

			return nil
		}

		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return parseErr("int", err)
		}

		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return parseErr("float", err)
		}

		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return parseErr("bool", err)
		}

		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("%w for field %s", errUnsupportedSliceType, fieldName)
		}

		values := make([]string, 0)

		for item := range strings.SplitSeq(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				values = append(values, item)
			}
		}

		field.Set(reflect.ValueOf(values))
	default:
		return fmt.Errorf("%w for field %s: %s", errUnsupportedFieldType, fieldName, field.Kind())
	}

	return nil
}

// useDotEnv loads a .env file from the working directory, or failing that
// from the directory of the binary. A missing file is not an error.
func useDotEnv() error {
	dirs := make([]string, 0, 2)

	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	} else {
		log.Warn().Err(err).Msg("Could not get current working directory")
	}

	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	for _, dir := range dirs {
		envPath := filepath.Join(dir, ".env")

		loaded, err := tryLoadDotEnv(envPath)
		if err != nil {
			return err
		}

		if loaded {
			return nil
		}
	}

	log.Debug().Msg("No .env file found, skipping")

	return nil
}

// tryLoadDotEnv sets the variables of one .env file. Variables already
// present in the environment win. Unreadable files are logged and skipped.
func tryLoadDotEnv(envPath string) (bool, error) {
	data, err := os.ReadFile(envPath) // #nosec G304 -- fixed locations only
	if os.IsNotExist(err) {
		return false, nil
	}

	if err != nil {
		log.Warn().
			Err(err).
			Str("path", envPath).
			Msg("Could not read .env file")

		return false, nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		if !ok {
			log.Warn().
				Str("path", envPath).
				Int("line", lineNumber).
				Msg("Invalid format in .env file")

			continue
		}

		key, value = strings.TrimSpace(key), unquote(strings.TrimSpace(value))

		if _, exists := os.LookupEnv(key); exists {
			continue
		}

		if err := os.Setenv(key, value); err != nil {
			return false, fmt.Errorf("setting %s from %s: %w", key, envPath, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("reading %s: %w", envPath, err)
	}

	log.Info().
		Str("path", envPath).
		Msg("Loaded configuration from .env file")

	return true, nil
}

func unquote(value string) string {
	if len(value) >= 2 && value[0] == value[len(value)-1] && (value[0] == '"' || value[0] == '\'') {
		return value[1 : len(value)-1]
	}

	return value
}
