package driven

import (
	"context"

	"github.com/custodia-labs/footprint/internal/core/domain"
)

// ExtractionEngine vectorises the valid-data region of a coverage.
type ExtractionEngine interface {
	// Extract returns the footprints of cov in order: the precise footprint
	// first, then the simplified one when cfg enables simplification.
	Extract(ctx context.Context, cov *domain.Coverage, cfg domain.ExtractionConfig) (FootprintIterator, error)
}

// FootprintIterator yields extracted footprints in order.
type FootprintIterator interface {
	// Next returns the next footprint, or false when exhausted.
	Next() (domain.Footprint, bool)

	// Close releases the iterator.
	Close() error
}
