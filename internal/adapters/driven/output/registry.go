package output

import (
	"fmt"

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.WriterRegistry = (*Registry)(nil)

// Registry maps output formats to their writers.
type Registry struct {
	writers map[domain.OutputFormat]driven.GeometryWriter
}

// NewRegistry creates a registry of writers. A later writer for the same
// format replaces an earlier one.
func NewRegistry(writers ...driven.GeometryWriter) *Registry {
	r := &Registry{writers: make(map[domain.OutputFormat]driven.GeometryWriter, len(writers))}
	for _, w := range writers {
		r.writers[w.Format()] = w
	}
	return r
}

// DefaultRegistry registers a writer for every output format.
// Dataset outputs are created through store.
func DefaultRegistry(store driven.VectorDatasetStore) *Registry {
	return NewRegistry(
		NewWKBWriter(),
		NewWKTWriter(),
		NewDatasetWriter(store),
	)
}

// Writer returns the writer registered for format.
func (r *Registry) Writer(format domain.OutputFormat) (driven.GeometryWriter, error) {
	w, ok := r.writers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	return w, nil
}

// Formats lists the registered formats in declaration order.
func (r *Registry) Formats() []domain.OutputFormat {
	var out []domain.OutputFormat
	for _, f := range domain.OutputFormats() {
		if _, ok := r.writers[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
