package driving

import (
	"context"

	"github.com/custodia-labs/footprint/internal/core/domain"
)

// ExtractRequest describes one extraction run.
type ExtractRequest struct {
	// InputPath is the raster to process.
	InputPath string

	// Parameters are the raw extraction parameters; nil means defaults.
	Parameters map[string]any

	// PrimaryFormat is the precise footprint format. Empty means wkb.
	PrimaryFormat domain.OutputFormat

	// SecondaryFormat is the simplified footprint format. Empty means wkb.
	SecondaryFormat domain.OutputFormat
}

// FootprintService extracts raster footprints.
type FootprintService interface {
	// Run processes one raster. It never fails: every error is recorded
	// in the returned outcome.
	Run(ctx context.Context, req ExtractRequest) *domain.ProcessingOutcome

	// Formats lists the output formats the service can write.
	Formats() []domain.OutputFormat

	// Resolve returns the configuration a run with raw parameters would use.
	Resolve(raw map[string]any) domain.ExtractionConfig
}
