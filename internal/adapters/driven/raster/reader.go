package raster

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png" // PNG decoder
	"io"
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/tiff" // TIFF decoder

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.RasterReader = (*Reader)(nil)

// Reader opens raster files from the local filesystem.
type Reader struct{}

// NewReader creates a new raster reader.
func NewReader() *Reader {
	return &Reader{}
}

// Open opens path and validates its header. Pixel data is decoded by Read.
func (r *Reader) Open(ctx context.Context, path string) (driven.RasterResource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		f.Close()
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedRaster, path)
		}
		return nil, fmt.Errorf("decoding header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		f.Close()
		return nil, fmt.Errorf("%w: empty raster %dx%d", domain.ErrInvalidInput, cfg.Width, cfg.Height)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &resource{
		file:   f,
		path:   path,
		key:    fmt.Sprintf("%s|%d|%d", abs, info.Size(), info.ModTime().UnixNano()),
		format: format,
	}, nil
}

// resource is an open raster file.
type resource struct {
	mu     sync.Mutex
	file   *os.File
	path   string
	key    string
	format string
}

// Read decodes the raster and its sidecars.
func (r *resource) Read(ctx context.Context) (*domain.Coverage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil, domain.ErrClosed
	}

	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding: %w", err)
	}
	img, _, err := image.Decode(r.file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.format, err)
	}

	transform, err := readWorldFile(r.path)
	if err != nil {
		return nil, err
	}
	srs, err := readProjection(r.path)
	if err != nil {
		return nil, err
	}

	return &domain.Coverage{
		Path:             r.path,
		Key:              r.key,
		Image:            img,
		Transform:        transform,
		SpatialReference: srs,
	}, nil
}

// Dispose closes the file. Subsequent calls are no-ops.
func (r *resource) Dispose() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
