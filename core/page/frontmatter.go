// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package page

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

// FrontMatter is the YAML header of a page.
type FrontMatter struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Outline     Outline `yaml:"outline"`
}

// Outline limits which heading levels appear in the table of contents.
// The zero value means "use the site default".
type Outline struct {
	MinLevel int
	MaxLevel int

	invalid bool
}

// IsZero reports whether the page leaves the outline to the site default.
func (o Outline) IsZero() bool {
	return o.MinLevel == 0 && o.MaxLevel == 0
}

// UnmarshalYAML accepts `2`, `[2, 3]` and `deep` (levels 2 to 6). Other
// values are reported by validate, after decoding.
func (o *Outline) UnmarshalYAML(unmarshal func(any) error) error {
	var level int
	if err := unmarshal(&level); err == nil {
		o.MinLevel, o.MaxLevel = level, level

		return nil
	}

	var pair []int
	if err := unmarshal(&pair); err == nil && len(pair) == 2 {
		o.MinLevel, o.MaxLevel = pair[0], pair[1]

		return nil
	}

	var word string
	if err := unmarshal(&word); err == nil && word == "deep" {
		o.MinLevel, o.MaxLevel = 2, 6

		return nil
	}

	o.invalid = true

	return nil
}

func (o Outline) validate() error {
	if o.IsZero() && !o.invalid {
		return nil
	}

	if o.invalid || o.MinLevel < 1 || o.MaxLevel > 6 || o.MinLevel > o.MaxLevel {
		return fmt.Errorf("%w: got %d..%d", ErrInvalidOutline, o.MinLevel, o.MaxLevel)
	}

	return nil
}

var fmDelimiter = []byte("---")

func isDelimiter(line []byte) bool {
	return bytes.Equal(bytes.TrimRight(line, " \r\n"), fmDelimiter)
}

// splitFrontMatter separates a leading `---` YAML block from the body. The
// returned count is the number of lines consumed by the header.
func splitFrontMatter(src []byte) (FrontMatter, []byte, int, error) {
	var meta FrontMatter

	lines := bytes.SplitAfter(src, []byte("\n"))
	if !isDelimiter(lines[0]) {
		return meta, src, 0, nil
	}

	offset := len(lines[0])

	for i := 1; i < len(lines); i++ {
		if isDelimiter(lines[i]) {
			if err := yaml.Unmarshal(src[len(lines[0]):offset], &meta); err != nil {
				return meta, nil, 0, fmt.Errorf("front matter: %w", err)
			}

			if err := meta.Outline.validate(); err != nil {
				return meta, nil, 0, fmt.Errorf("front matter: %w", err)
			}

			return meta, src[offset+len(lines[i]):], i + 1, nil
		}

		offset += len(lines[i])
	}

	return meta, nil, 0, ErrUnterminatedMeta
}
