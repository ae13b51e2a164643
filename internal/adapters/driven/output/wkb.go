package output

import (
	"context"
	"fmt"

	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driven"
)

// Ensure WKBWriter implements the interface.
var _ driven.GeometryWriter = (*WKBWriter)(nil)

// WKBWriter writes geometries as big-endian Well-Known Binary.
type WKBWriter struct{}

// NewWKBWriter creates a WKB writer.
func NewWKBWriter() *WKBWriter {
	return &WKBWriter{}
}

// Format returns domain.FormatWKB.
func (w *WKBWriter) Format() domain.OutputFormat {
	return domain.FormatWKB
}

// Extension returns ".wkb".
func (w *WKBWriter) Extension() string {
	return domain.FormatWKB.Extension()
}

// Write encodes req.Geometry and writes it to req.Path.
// With an empty path the geometry is only encoded.
func (w *WKBWriter) Write(ctx context.Context, req driven.WriteRequest) (driven.WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return driven.WriteResult{}, err
	}
	if err := checkGeometry(req.Geometry); err != nil {
		return driven.WriteResult{}, err
	}

	data, err := wkb.Marshal(req.Geometry, wkb.XDR)
	if err != nil {
		return driven.WriteResult{}, fmt.Errorf("encoding wkb: %w", err)
	}
	if req.Path == "" {
		return driven.WriteResult{Bytes: len(data)}, nil
	}
	if err := writeFile(req.Path, data); err != nil {
		return driven.WriteResult{}, err
	}
	return driven.WriteResult{Bytes: len(data)}, nil
}
