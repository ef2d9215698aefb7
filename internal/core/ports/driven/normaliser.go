package driven

import (
	"context"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// Normaliser turns a raw chapter file into plain prose.
// Each normaliser handles specific MIME types (e.g., Markdown, HTML).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise strips markup from a raw manuscript.
	Normalise(ctx context.Context, raw *domain.RawManuscript) (*domain.Manuscript, error)
}
