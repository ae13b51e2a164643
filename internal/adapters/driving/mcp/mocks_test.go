package mcp

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driving"
)

// mockFootprintService is a mock implementation of driving.FootprintService.
type mockFootprintService struct {
	mu       sync.Mutex
	outcome  *domain.ProcessingOutcome
	formats  []domain.OutputFormat
	requests []driving.ExtractRequest
	resolved []map[string]any
}

func (m *mockFootprintService) Run(_ context.Context, req driving.ExtractRequest) *domain.ProcessingOutcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.outcome != nil {
		return m.outcome
	}
	outcome := domain.NewProcessingOutcome("run-1", req.InputPath, req.PrimaryFormat, req.SecondaryFormat)
	outcome.Advance(domain.StateWritten)
	outcome.Finish()
	return outcome
}

func (m *mockFootprintService) Formats() []domain.OutputFormat {
	return m.formats
}

func (m *mockFootprintService) Resolve(raw map[string]any) domain.ExtractionConfig {
	m.mu.Lock()
	m.resolved = append(m.resolved, raw)
	m.mu.Unlock()

	cfg := domain.DefaultExtractionConfig()
	if f, ok := raw[domain.KeySimplifierFactor.String()].(float64); ok {
		cfg.SimplifierFactor = f
	}
	if b, ok := raw[domain.KeyComputeSimplified.String()].(bool); ok {
		cfg.ComputeSimplified = b
	}
	return cfg
}

func (m *mockFootprintService) lastRequest() driving.ExtractRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1]
}

// failedOutcome builds an outcome for a run that failed to open its input.
func failedOutcome(path string, err error) *domain.ProcessingOutcome {
	outcome := domain.NewProcessingOutcome("run-2", path, domain.FormatWKB, domain.FormatWKB)
	outcome.Fail(err)
	outcome.AddWarning(domain.ErrCleanup)
	outcome.FinishedAt = outcome.StartedAt.Add(15 * time.Millisecond)
	return outcome
}

func ptr[T any](v T) *T {
	return &v
}
