// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package page

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"codeberg.org/docs-ru/docs-ru/core/heading"
	"codeberg.org/docs-ru/docs-ru/core/variant"
)

// Block is one parsed region of a page.
type Block struct {
	variant.Block

	// Line is the first source line of the block.
	Line int

	node   ast.Node
	source []byte
}

// Document is a parsed markdown page.
type Document struct {
	Path     string
	Title    string
	Meta     FrontMatter
	Blocks   []Block
	Headings []heading.Source

	// headingNodes is parallel to Headings.
	headingNodes []*ast.Heading

	// render serializes renders; heading ids are written into the AST.
	render sync.Mutex
}

// VariantBlocks returns the blocks without their parse state.
func (d *Document) VariantBlocks() []variant.Block {
	out := make([]variant.Block, len(d.Blocks))
	for i, b := range d.Blocks {
		out[i] = b.Block
	}

	return out
}

// Parse reads a markdown page. p is the page path, e.g. "guide/introduction".
func Parse(md goldmark.Markdown, p string, src []byte) (*Document, error) {
	meta, body, metaLines, err := splitFrontMatter(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	regions, err := splitRegions(body, metaLines+1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	doc := &Document{
		Path:   p,
		Meta:   meta,
		Blocks: make([]Block, 0, len(regions)),
	}

	var firstH1 string

	for i, r := range regions {
		block := Block{
			Block: variant.Block{
				ID:      "b" + strconv.Itoa(i+1),
				Tag:     r.tag,
				Content: string(r.src),
			},
			Line:   r.line,
			source: r.src,
		}

		block.node = md.Parser().Parse(text.NewReader(r.src))

		err := ast.Walk(block.node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}

			switch node := n.(type) {
			case *ast.Heading:
				txt := plainText(node, r.src)

				if node.Level == 1 && firstH1 == "" {
					firstH1 = txt
				}

				src := heading.Source{Text: txt, Level: node.Level}
				if r.tag != variant.Untagged {
					src.BlockID = block.ID
				}

				doc.Headings = append(doc.Headings, src)
				doc.headingNodes = append(doc.headingNodes, node)

				return ast.WalkSkipChildren, nil
			case *ast.Link:
				node.Destination = rewriteLink(node.Destination)
			}

			return ast.WalkContinue, nil
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}

		doc.Blocks = append(doc.Blocks, block)
	}

	switch {
	case meta.Title != "":
		doc.Title = meta.Title
	case firstH1 != "":
		doc.Title = firstH1
	default:
		doc.Title = path.Base(p)
	}

	return doc, nil
}

// plainText concatenates the text content of n.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder

	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))

			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

// rewriteLink maps relative links to markdown files onto page URLs:
// "./reactivity.md#ref" becomes "reactivity#ref".
func rewriteLink(dest []byte) []byte {
	s := string(dest)
	if strings.Contains(s, "://") || strings.HasPrefix(s, "#") || strings.HasPrefix(s, "mailto:") {
		return dest
	}

	target, fragment, _ := strings.Cut(s, "#")
	if !strings.HasSuffix(target, ".md") {
		return dest
	}

	target = strings.TrimSuffix(target, ".md")
	if strings.HasPrefix(target, "/") {
		target = DocsPrefix + strings.TrimPrefix(target, "/")
	}

	if fragment != "" {
		target += "#" + fragment
	}

	return []byte(target)
}
