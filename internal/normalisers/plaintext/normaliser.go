// Package plaintext provides the fallback normaliser for plain text chapters.
package plaintext

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/inkwell/internal/core/domain"
	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

const byteOrderMark = "\uFEFF"

// Normaliser handles plain text chapters.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
// Markdown is listed so that it still loads, unstripped, when the
// markdown normaliser is not registered.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/plain", "text/markdown", "text/x-markdown", "text/rtf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise keeps the text as written, with line endings unified,
// a leading byte order mark removed and invalid UTF-8 replaced.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawManuscript) (*domain.Manuscript, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := string(raw.Content)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "\uFFFD")
	}
	content = strings.TrimPrefix(content, byteOrderMark)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	return &domain.Manuscript{
		ID:        uuid.New().String(),
		URI:       raw.URI,
		Title:     normalisers.TitleFromURI(raw.URI),
		Format:    "text",
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now(),
	}, nil
}
