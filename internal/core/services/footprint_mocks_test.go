package services

import (
	"context"
	"sync"

	"github.com/twpayne/go-geom"

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driven"
)

// events records the order of calls across mocks.
type events struct {
	mu   sync.Mutex
	list []string
}

func (e *events) add(name string) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.list = append(e.list, name)
}

func (e *events) all() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.list...)
}

// mockReader implements driven.RasterReader for testing.
type mockReader struct {
	openErr      error
	readErr      error
	disposeErr   error
	disposePanic any
	coverage     *domain.Coverage
	events       *events
}

func (m *mockReader) Open(_ context.Context, path string) (driven.RasterResource, error) {
	m.events.add("open")
	if m.openErr != nil {
		return nil, m.openErr
	}
	cov := m.coverage
	if cov == nil {
		cov = &domain.Coverage{Path: path, Transform: domain.PixelTransform}
	}
	return &mockResource{reader: m, coverage: cov}, nil
}

type mockResource struct {
	reader   *mockReader
	coverage *domain.Coverage
}

func (r *mockResource) Read(_ context.Context) (*domain.Coverage, error) {
	r.reader.events.add("read")
	if r.reader.readErr != nil {
		return nil, r.reader.readErr
	}
	return r.coverage, nil
}

func (r *mockResource) Dispose() error {
	r.reader.events.add("dispose")
	if r.reader.disposePanic != nil {
		panic(r.reader.disposePanic)
	}
	return r.reader.disposeErr
}

// mockEngine implements driven.ExtractionEngine for testing.
type mockEngine struct {
	footprints []domain.Footprint
	err        error
	closeErr   error
	panicWith  any
	closePanic any
	events     *events
	lastConfig domain.ExtractionConfig
}

func (m *mockEngine) Extract(_ context.Context, _ *domain.Coverage, cfg domain.ExtractionConfig) (driven.FootprintIterator, error) {
	m.events.add("extract")
	m.lastConfig = cfg
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	if m.err != nil {
		return nil, m.err
	}
	return &mockIterator{engine: m}, nil
}

type mockIterator struct {
	engine *mockEngine
	pos    int
}

func (it *mockIterator) Next() (domain.Footprint, bool) {
	if it.pos >= len(it.engine.footprints) {
		return domain.Footprint{}, false
	}
	fp := it.engine.footprints[it.pos]
	it.pos++
	return fp, true
}

func (it *mockIterator) Close() error {
	it.engine.events.add("close iterator")
	if it.engine.closePanic != nil {
		panic(it.engine.closePanic)
	}
	return it.engine.closeErr
}

// mockWriter implements driven.GeometryWriter for testing.
type mockWriter struct {
	format   domain.OutputFormat
	err      error
	warnings []error

	mu    sync.Mutex
	paths []string
}

func (m *mockWriter) Format() domain.OutputFormat { return m.format }
func (m *mockWriter) Extension() string           { return m.format.Extension() }

func (m *mockWriter) Write(_ context.Context, req driven.WriteRequest) (driven.WriteResult, error) {
	m.mu.Lock()
	m.paths = append(m.paths, req.Path)
	m.mu.Unlock()
	return driven.WriteResult{Warnings: m.warnings}, m.err
}

func (m *mockWriter) written() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

// mockRegistry implements driven.WriterRegistry for testing.
type mockRegistry map[domain.OutputFormat]driven.GeometryWriter

func (r mockRegistry) Writer(format domain.OutputFormat) (driven.GeometryWriter, error) {
	w, ok := r[format]
	if !ok {
		return nil, domain.ErrUnsupportedFormat
	}
	return w, nil
}

func (r mockRegistry) Formats() []domain.OutputFormat {
	var out []domain.OutputFormat
	for _, f := range domain.OutputFormats() {
		if _, ok := r[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

func footprintPair() []domain.Footprint {
	return []domain.Footprint{
		{Kind: domain.FootprintPrecise, Geometry: geom.NewMultiPolygon(geom.XY)},
		{Kind: domain.FootprintSimplified, Geometry: geom.NewMultiPolygon(geom.XY)},
	}
}
