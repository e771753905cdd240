// Package markdown splits generated benchmark documents at heading
// boundaries, the way a header-aware retrieval chunker would see them.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

// Chunk is one heading-delimited section of a document.
type Chunk struct {
	Index      int    // Position in document (0, 1, 2...)
	Level      int    // Heading level, 0 for a headerless document
	Title      string // Heading text
	HeaderPath string // Hierarchy: "# Doc Title > ## Section Name"
	Content    string // Section text with the header path prepended
	RawContent string // Section text from its heading up to the next split heading
}

// Chunker splits markdown at H1 and H2 headings.
type Chunker struct {
	parser   goldmark.Markdown
	maxDepth int
}

// NewChunker creates a chunker splitting at H1 and H2.
func NewChunker() *Chunker {
	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Chunker{
		parser:   md,
		maxDepth: 2,
	}
}

// heading is a flattened TOC entry with its resolved AST node.
type heading struct {
	title string
	path  []string
	node  *ast.Heading
}

// ChunkDocument splits source into one chunk per H1/H2 heading. A chunk ends
// where the next H1/H2 heading begins, so deeper headings stay inside it.
func (c *Chunker) ChunkDocument(source []byte) ([]Chunk, error) {
	doc := c.parser.Parser().Parse(text.NewReader(source))

	tree, err := toc.Inspect(doc, source,
		toc.MinDepth(1),
		toc.MaxDepth(c.maxDepth),
		toc.Compact(true),
	)
	if err != nil {
		return nil, fmt.Errorf("inspect TOC: %w", err)
	}

	if len(tree.Items) == 0 {
		return []Chunk{{
			Index:      0,
			Content:    string(source),
			RawContent: string(source),
		}}, nil
	}

	nodes := headingsByID(doc)
	var flat []heading
	flatten(tree.Items, nil, nodes, &flat)

	chunks := make([]Chunk, 0, len(flat))
	for i, h := range flat {
		start := lineStart(source, h.node.Lines().At(0).Start)
		end := len(source)
		if i+1 < len(flat) {
			end = lineStart(source, flat[i+1].node.Lines().At(0).Start)
		}

		raw := strings.TrimSpace(string(source[start:end]))
		headerPath := formatHeaderPath(h.path)
		chunks = append(chunks, Chunk{
			Index:      len(chunks),
			Level:      h.node.Level,
			Title:      h.title,
			HeaderPath: headerPath,
			RawContent: raw,
			Content:    fmt.Sprintf("%s\n\n%s", headerPath, raw),
		})
	}
	return chunks, nil
}

// SectionTitles returns the titles of the H2 headings in document order.
func (c *Chunker) SectionTitles(source []byte) ([]string, error) {
	chunks, err := c.ChunkDocument(source)
	if err != nil {
		return nil, err
	}
	var titles []string
	for _, ch := range chunks {
		if ch.Level == 2 {
			titles = append(titles, ch.Title)
		}
	}
	return titles, nil
}

// flatten walks TOC items depth-first, skipping items whose heading node
// cannot be resolved or carries no source lines.
func flatten(items toc.Items, ancestors []string, nodes map[string]*ast.Heading, out *[]heading) {
	for _, item := range items {
		path := append(append([]string(nil), ancestors...), string(item.Title))
		if node, ok := nodes[string(item.ID)]; ok && node.Lines().Len() > 0 {
			*out = append(*out, heading{
				title: string(item.Title),
				path:  path,
				node:  node,
			})
		}
		if len(item.Items) > 0 {
			flatten(item.Items, path, nodes, out)
		}
	}
}

// formatHeaderPath builds a header hierarchy string.
// Example: ["Installation", "Prerequisites"] -> "# Installation > ## Prerequisites"
func formatHeaderPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	parts := make([]string, len(path))
	for i, segment := range path {
		parts[i] = fmt.Sprintf("%s %s", strings.Repeat("#", i+1), segment)
	}
	return strings.Join(parts, " > ")
}

// headingsByID indexes every heading by its auto-generated id in one walk.
func headingsByID(root ast.Node) map[string]*ast.Heading {
	nodes := make(map[string]*ast.Heading)
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		h := n.(*ast.Heading)
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				nodes[string(b)] = h
			}
		}
		return ast.WalkContinue, nil
	})
	return nodes
}

// lineStart moves pos back to the first byte of its line, so a heading's
// "#" markers belong to the chunk it opens.
func lineStart(source []byte, pos int) int {
	if pos > len(source) {
		pos = len(source)
	}
	return bytes.LastIndexByte(source[:pos], '\n') + 1
}
