package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driven"
	"github.com/custodia-labs/footprint/internal/core/ports/driving"
	"github.com/custodia-labs/footprint/internal/logger"
)

// Ensure FootprintService implements the interface.
var _ driving.FootprintService = (*FootprintService)(nil)

// FootprintService runs the raster-to-footprint pipeline for one file at a time.
// It keeps no per-run state, so concurrent runs on distinct inputs are independent.
type FootprintService struct {
	reader   driven.RasterReader
	engine   driven.ExtractionEngine
	writers  driven.WriterRegistry
	resolver *ParameterResolver
}

// NewFootprintService creates a new footprint service.
// If resolver is nil a default resolver is used.
func NewFootprintService(
	reader driven.RasterReader,
	engine driven.ExtractionEngine,
	writers driven.WriterRegistry,
	resolver *ParameterResolver,
) *FootprintService {
	if resolver == nil {
		resolver = NewParameterResolver()
	}
	return &FootprintService{
		reader:   reader,
		engine:   engine,
		writers:  writers,
		resolver: resolver,
	}
}

// Formats lists the output formats the service can write.
func (s *FootprintService) Formats() []domain.OutputFormat {
	if s.writers == nil {
		return nil
	}
	return s.writers.Formats()
}

// Resolve returns the configuration a run with raw parameters would use.
func (s *FootprintService) Resolve(raw map[string]any) domain.ExtractionConfig {
	return s.resolver.Resolve(raw)
}

// Run extracts the footprint of req.InputPath and writes it beside the input.
// Failures never escape: each one is recorded in the returned outcome. A
// second geometry from the engine is written with the secondary format.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (s *FootprintService) Run(ctx context.Context, req driving.ExtractRequest) (outcome *domain.ProcessingOutcome) {
	outcome = domain.NewProcessingOutcome(
		uuid.NewString(),
		req.InputPath,
		req.PrimaryFormat.OrDefault(),
		req.SecondaryFormat.OrDefault(),
	)
	log := logger.ForRun(outcome.RunID)

	// Releases run in reverse order of acquisition. Their errors and panics
	// are warnings only and never fail the run.
	var releases []func()
	release := func(name string, fn func() error) {
		releases = append(releases, func() {
			defer func() {
				if r := recover(); r != nil {
					log.Warn("releasing %s: recovered panic: %v", name, r)
					outcome.AddWarning(fmt.Errorf("%w: %s: panic: %v", domain.ErrCleanup, name, r))
				}
			}()
			if err := fn(); err != nil {
				log.Warn("releasing %s: %v", name, err)
				outcome.AddWarning(fmt.Errorf("%w: %s: %w", domain.ErrCleanup, name, err))
			}
		})
	}

	stageKind := domain.ErrIO
	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered panic: %v", r)
			outcome.Fail(fmt.Errorf("%w: panic: %v", stageKind, r))
		}
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
		outcome.Finish()
		log.Debug("finished in state %s with %d error(s), %d warning(s)",
			outcome.State, len(outcome.Errors), len(outcome.Warnings))
	}()

	// 1. Acquire and decode the raster
	log.Debug("opening %s", req.InputPath)
	resource, err := s.reader.Open(ctx, req.InputPath)
	if err != nil {
		outcome.Fail(fmt.Errorf("%w: open %s: %w", domain.ErrIO, req.InputPath, err))
		return outcome
	}
	release("raster", resource.Dispose)

	cov, err := resource.Read(ctx)
	if err != nil {
		outcome.Fail(fmt.Errorf("%w: read %s: %w", domain.ErrIO, req.InputPath, err))
		return outcome
	}
	outcome.Advance(domain.StateOpen)

	// 2. Resolve parameters
	cfg := s.resolver.Resolve(req.Parameters)
	outcome.Advance(domain.StateParamsResolved)
	log.Debug("parameters: threshold=%g ranges=%v simplify=%t factor=%g collinear=%t valid=%t loading=%s",
		cfg.ThresholdArea, cfg.ExclusionRanges, cfg.ComputeSimplified, cfg.SimplifierFactor,
		cfg.RemoveCollinear, cfg.ForceValid, cfg.LoadingStrategy)

	// 3. Extract
	stageKind = domain.ErrExtraction
	footprints, err := s.engine.Extract(ctx, cov, cfg)
	if err != nil {
		outcome.Fail(fmt.Errorf("%w: %s: %w", domain.ErrExtraction, req.InputPath, err))
		return outcome
	}
	release("footprint iterator", footprints.Close)

	precise, ok := footprints.Next()
	if !ok {
		outcome.Fail(fmt.Errorf("%w: %s: %w", domain.ErrExtraction, req.InputPath, domain.ErrNoFootprint))
		return outcome
	}
	outcome.Advance(domain.StateExtracted)

	// 4. Write outputs. The two writes are independent of each other.
	stageKind = domain.ErrWrite
	s.write(ctx, outcome, log, precise, domain.RolePrimary, outcome.PrimaryFormat, cov.SpatialReference)

	if simplified, ok := footprints.Next(); ok {
		s.write(ctx, outcome, log, simplified, domain.RoleSimplified, outcome.SecondaryFormat, cov.SpatialReference)
	}

	outcome.Advance(domain.StateWritten)
	return outcome
}

// write persists one footprint and records the result in outcome.
func (s *FootprintService) write(
	ctx context.Context,
	outcome *domain.ProcessingOutcome,
	log logger.Run,
	fp domain.Footprint,
	role domain.OutputRole,
	format domain.OutputFormat,
	srs domain.SpatialReference,
) {
	desc := domain.NewOutputDescriptor(outcome.InputPath, format, role)

	writer, err := s.writers.Writer(format)
	if err != nil {
		outcome.AddError(fmt.Errorf("%w: %s: %w", domain.ErrWrite, desc.Path, err))
		return
	}

	if err := removeExisting(desc.Path); err != nil {
		outcome.AddError(fmt.Errorf("%w: remove %s: %w", domain.ErrIO, desc.Path, err))
		return
	}

	result, err := writer.Write(ctx, driven.WriteRequest{
		Geometry:         fp.Geometry,
		Path:             desc.Path,
		SpatialReference: srs,
	})
	for _, w := range result.Warnings {
		log.Warn("%s output %s: %v", role, desc.Path, w)
		outcome.AddWarning(fmt.Errorf("%w: %s: %w", domain.ErrCleanup, desc.Path, w))
	}
	if err != nil {
		log.Error("%s output %s: %v", role, desc.Path, err)
		outcome.AddError(fmt.Errorf("%w: %s: %w", domain.ErrWrite, desc.Path, err))
		return
	}

	outcome.AddOutput(desc)
	log.Info("wrote %s footprint to %s", role, desc.Path)
}

// removeExisting deletes path if it exists.
func removeExisting(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
