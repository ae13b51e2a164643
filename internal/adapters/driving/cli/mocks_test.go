package cli

import (
	"bytes"
	"context"

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driving"
	"github.com/custodia-labs/footprint/internal/core/services"
	"github.com/custodia-labs/footprint/internal/logger"
)

// mockFootprintService implements driving.FootprintService for testing.
type mockFootprintService struct {
	outcome  *domain.ProcessingOutcome
	requests []driving.ExtractRequest
}

func (m *mockFootprintService) Run(_ context.Context, req driving.ExtractRequest) *domain.ProcessingOutcome {
	m.requests = append(m.requests, req)
	if m.outcome != nil {
		return m.outcome
	}
	outcome := domain.NewProcessingOutcome("3f2c9a10-run", req.InputPath, req.PrimaryFormat, req.SecondaryFormat)
	outcome.AddOutput(domain.NewOutputDescriptor(req.InputPath, req.PrimaryFormat, domain.RolePrimary))
	outcome.Advance(domain.StateWritten)
	outcome.Finish()
	return outcome
}

func (m *mockFootprintService) Formats() []domain.OutputFormat {
	return domain.OutputFormats()
}

func (m *mockFootprintService) Resolve(raw map[string]any) domain.ExtractionConfig {
	return services.NewParameterResolver().Resolve(raw)
}

// setupCLITest swaps in svc, resets flag values and captures command output.
func setupCLITest(svc driving.FootprintService) (*bytes.Buffer, func()) {
	oldService := footprintService
	oldFactory := serviceFactory
	oldDefault := defaultCacheMB

	footprintService = svc
	verbose = false
	cacheMB = 0
	paramsPath = ""
	libraryDefaults = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	return buf, func() {
		footprintService = oldService
		serviceFactory = oldFactory
		defaultCacheMB = oldDefault
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		logger.SetVerbose(false)
	}
}
