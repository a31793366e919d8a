// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package page

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"codeberg.org/docs-ru/docs-ru/core/variant"
)

// region is a run of source lines sharing one tag.
type region struct {
	tag  variant.Tag
	src  []byte
	line int // 1-based line of the first content line
}

// openingDiv reports whether line consists of a single <div> start tag and
// returns its class attribute.
func openingDiv(line []byte) (class string, ok bool) {
	trimmed := bytes.TrimSpace(line)
	if !bytes.HasPrefix(trimmed, []byte("<div")) {
		return "", false
	}

	z := html.NewTokenizer(bytes.NewReader(trimmed))
	if z.Next() != html.StartTagToken {
		return "", false
	}

	tok := z.Token()
	if tok.DataAtom != atom.Div {
		return "", false
	}

	// Anything after the tag on the same line makes it inline HTML.
	if z.Next() != html.ErrorToken {
		return "", false
	}

	for _, attr := range tok.Attr {
		if attr.Key == "class" {
			return attr.Val, true
		}
	}

	return "", true
}

func closingDiv(line []byte) bool {
	return bytes.EqualFold(bytes.TrimSpace(line), []byte("</div>"))
}

// variantTag returns the first variant tag among the space separated classes.
func variantTag(class string) (variant.Tag, bool) {
	for _, c := range strings.Fields(class) {
		if tag, ok := variant.ParseTag(c); ok {
			return tag, true
		}
	}

	return variant.Untagged, false
}

func fence(line []byte) []byte {
	trimmed := bytes.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return nil
	}

	for _, marker := range [][]byte{[]byte("```"), []byte("~~~")} {
		if bytes.HasPrefix(trimmed, marker) {
			return marker
		}
	}

	return nil
}

// splitRegions cuts body into untagged and tagged regions in document order.
// Markers inside fenced code are ignored. Nested <div> lines inside a region
// stay part of it.
func splitRegions(body []byte, firstLine int) ([]region, error) {
	var (
		regions  []region
		current  region
		buf      bytes.Buffer
		depth    int
		inFence  []byte
		openedAt int
	)

	flush := func() {
		if len(bytes.TrimSpace(buf.Bytes())) > 0 {
			current.src = bytes.Clone(buf.Bytes())
			regions = append(regions, current)
		}

		buf.Reset()
	}

	lines := bytes.SplitAfter(body, []byte("\n"))

	for i, line := range lines {
		lineNo := firstLine + i

		if inFence != nil {
			if f := fence(line); f != nil && bytes.Equal(f, inFence) {
				inFence = nil
			}

			buf.Write(line)

			continue
		}

		if f := fence(line); f != nil {
			inFence = f

			buf.Write(line)

			continue
		}

		if depth == 0 {
			if class, ok := openingDiv(line); ok {
				if tag, ok := variantTag(class); ok {
					flush()

					current = region{tag: tag, line: lineNo + 1}
					depth = 1
					openedAt = lineNo

					continue
				}
			}

			if buf.Len() == 0 {
				current = region{tag: variant.Untagged, line: lineNo}
			}

			buf.Write(line)

			continue
		}

		if _, ok := openingDiv(line); ok {
			depth++
		} else if closingDiv(line) {
			depth--

			if depth == 0 {
				flush()

				current = region{tag: variant.Untagged, line: lineNo + 1}

				continue
			}
		}

		buf.Write(line)
	}

	if depth > 0 {
		return nil, fmt.Errorf("%w: %s region opened on line %d", ErrUnterminatedVariant, current.tag, openedAt)
	}

	flush()

	return regions, nil
}
