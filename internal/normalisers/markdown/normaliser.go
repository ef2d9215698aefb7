// Package markdown normalises Markdown chapters into prose.
package markdown

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var multiNewlines = regexp.MustCompile(`\n{3,}`)

// Normaliser handles Markdown chapters.
// Code, raw HTML, images and tables are dropped. Link text is kept.
type Normaliser struct {
	md goldmark.Markdown
}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise converts Markdown to prose. Paragraphs are separated by a blank line.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawManuscript) (*domain.Manuscript, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	source := raw.Content
	doc := n.md.Parser().Parse(text.NewReader(source))

	var title string
	var b strings.Builder
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := node.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.CodeSpan, *ast.HTMLBlock, *ast.RawHTML, *ast.Image, *extast.Table:
			return ast.WalkSkipChildren, nil

		case *ast.Heading:
			if entering && title == "" && node.Level == 1 {
				title = plainText(node, source)
			}
			if !entering {
				b.WriteString("\n\n")
			}

		case *ast.Paragraph:
			if !entering {
				b.WriteString("\n\n")
			}

		case *ast.TextBlock:
			if !entering {
				b.WriteString("\n")
			}

		case *ast.Text:
			if entering {
				b.Write(node.Segment.Value(source))
				switch {
				case node.HardLineBreak():
					b.WriteString("\n")
				case node.SoftLineBreak():
					b.WriteString(" ")
				}
			}

		case *ast.String:
			if entering {
				b.Write(node.Value)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = normalisers.TitleFromURI(raw.URI)
	}

	content := multiNewlines.ReplaceAllString(b.String(), "\n\n")

	return &domain.Manuscript{
		ID:        uuid.New().String(),
		URI:       raw.URI,
		Title:     title,
		Format:    "markdown",
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now(),
	}, nil
}

// plainText collects the text beneath node.
func plainText(node ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(source))
			if n.SoftLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(n.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
