package output

import (
	"context"
	"fmt"

	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driven"
)

// Ensure WKTWriter implements the interface.
var _ driven.GeometryWriter = (*WKTWriter)(nil)

// WKTWriter writes geometries as Well-Known Text.
type WKTWriter struct{}

// NewWKTWriter creates a WKT writer.
func NewWKTWriter() *WKTWriter {
	return &WKTWriter{}
}

// Format returns domain.FormatWKT.
func (w *WKTWriter) Format() domain.OutputFormat {
	return domain.FormatWKT
}

// Extension returns ".wkt".
func (w *WKTWriter) Extension() string {
	return domain.FormatWKT.Extension()
}

// Write encodes req.Geometry and writes it to req.Path.
// The text is fully rendered before the file is opened, so nothing is
// created when encoding fails. With an empty path it is only rendered.
func (w *WKTWriter) Write(ctx context.Context, req driven.WriteRequest) (driven.WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return driven.WriteResult{}, err
	}
	if err := checkGeometry(req.Geometry); err != nil {
		return driven.WriteResult{}, err
	}

	text, err := wkt.Marshal(req.Geometry)
	if err != nil {
		return driven.WriteResult{}, fmt.Errorf("encoding wkt: %w", err)
	}
	if req.Path == "" {
		return driven.WriteResult{Bytes: len(text)}, nil
	}
	if err := writeFile(req.Path, []byte(text)); err != nil {
		return driven.WriteResult{}, err
	}
	return driven.WriteResult{Bytes: len(text)}, nil
}
