package driven

import (
	"context"

	"github.com/custodia-labs/inkwell/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a manuscript.
// It maintains a priority-ordered list of normalisers and dispatches on MIME type.
type NormaliserRegistry interface {
	// Normalise transforms a raw manuscript using the best matching normaliser.
	Normalise(ctx context.Context, raw *domain.RawManuscript) (*domain.Manuscript, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
