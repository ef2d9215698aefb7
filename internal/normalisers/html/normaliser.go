package html

import (
	"context"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML chapters.
type Normaliser struct {
	policy *bluemonday.Policy
}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{policy: bluemonday.StrictPolicy()}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise converts HTML to prose. Block elements become paragraphs
// separated by a blank line; <br> becomes a line break.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawManuscript) (*domain.Manuscript, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	source := string(raw.Content)

	title := extractTitle(source)
	if title == "" {
		title = normalisers.TitleFromURI(raw.URI)
	}

	return &domain.Manuscript{
		ID:        uuid.New().String(),
		URI:       raw.URI,
		Title:     title,
		Format:    "html",
		Content:   n.toText(source),
		CreatedAt: time.Now(),
	}, nil
}

var (
	titleTag      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	svgTag        = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	whitespace    = regexp.MustCompile(`\s+`)
	blockElements = regexp.MustCompile(`(?i)</?(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article|header|footer)(\s[^>]*)?>`)
	breakTags     = regexp.MustCompile(`(?i)<br\s*/?>`)
	ruleTags      = regexp.MustCompile(`(?i)<hr\s*/?>`)
)

func extractTitle(source string) string {
	matches := titleTag.FindStringSubmatch(source)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(matches[1]))
}

func (n *Normaliser) toText(source string) string {
	source = svgTag.ReplaceAllString(source, "")
	source = whitespace.ReplaceAllString(source, " ")
	source = blockElements.ReplaceAllString(source, "\n\n")
	source = ruleTags.ReplaceAllString(source, "\n\n")
	source = breakTags.ReplaceAllString(source, "\n")

	text := html.UnescapeString(n.policy.Sanitize(source))

	// Trim every line and fold runs of blank lines into one paragraph break.
	var b strings.Builder
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank = b.Len() > 0
			continue
		}
		if b.Len() > 0 {
			if blank {
				b.WriteString("\n\n")
			} else {
				b.WriteString("\n")
			}
		}
		b.WriteString(line)
		blank = false
	}
	return b.String()
}
