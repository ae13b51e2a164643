package engine

import (
	"context"
	"fmt"

	"github.com/twpayne/go-geom"

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driven"
	"github.com/custodia-labs/footprint/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.ExtractionEngine = (*Engine)(nil)

// DefaultCacheBytes is the decode cache capacity used when none is configured.
const DefaultCacheBytes int64 = 1024 << 20

// Engine extracts footprints from coverages. It is safe for concurrent use;
// the decode cache is its only shared state.
type Engine struct {
	cache *DecodeCache
}

// New creates an engine whose decode cache holds at most cacheBytes.
func New(cacheBytes int64) *Engine {
	return &Engine{cache: NewDecodeCache(cacheBytes)}
}

// Cache returns the engine's decode cache.
func (e *Engine) Cache() *DecodeCache {
	return e.cache
}

// Extract vectorises the valid-data region of cov. The returned iterator is
// empty when no polygon survives the area threshold.
func (e *Engine) Extract(ctx context.Context, cov *domain.Coverage, cfg domain.ExtractionConfig) (driven.FootprintIterator, error) {
	if cov == nil || cov.Image == nil {
		return nil, fmt.Errorf("%w: no coverage", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := e.mask(ctx, cov, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("engine: %s: %dx%d, %d valid pixels", cov.Path, m.width, m.height, m.count())

	rings := traceRings(m)
	polys := filterByArea(assemble(rings, cfg.ForceValid), cfg.ThresholdArea)
	logger.Debug("engine: %s: %d ring(s) traced, %d polygon(s) kept", cov.Path, len(rings), len(polys))
	if len(polys) == 0 {
		return &iterator{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.RemoveCollinear {
		for i := range polys {
			polys[i].shell = removeCollinear(polys[i].shell)
			for j := range polys[i].holes {
				polys[i].holes[j] = removeCollinear(polys[i].holes[j])
			}
		}
	}

	precise, err := buildPrecise(polys, cov.Transform, cov.SpatialReference)
	if err != nil {
		return nil, err
	}
	footprints := []domain.Footprint{{Kind: domain.FootprintPrecise, Geometry: precise}}

	if cfg.SimplificationEnabled() {
		tolerance := cfg.SimplifierFactor * cov.Transform.PixelSize()
		simplified, err := buildSimplified(precise, tolerance)
		if err != nil {
			return nil, err
		}
		footprints = append(footprints, domain.Footprint{Kind: domain.FootprintSimplified, Geometry: simplified})
	}

	return &iterator{items: footprints}, nil
}

// mask classifies the pixels of cov according to the loading strategy.
func (e *Engine) mask(ctx context.Context, cov *domain.Coverage, cfg domain.ExtractionConfig) (*mask, error) {
	w, h := cov.Width(), cov.Height()

	if cfg.LoadingStrategy == domain.LoadingImmediate {
		g, ok := e.cache.get(cov.Key)
		if ok {
			logger.Debug("engine: decode cache hit for %s", cov.Path)
		} else {
			var err error
			if g, err = decodeGrid(ctx, cov.Image); err != nil {
				return nil, err
			}
			e.cache.put(cov.Key, g)
		}
		return buildMask(ctx, w, h, g.at, cfg.IsBackground)
	}

	origin := cov.Image.Bounds().Min
	sample := func(x, y int) int {
		return intensityAt(cov.Image, origin.X+x, origin.Y+y)
	}
	return buildMask(ctx, w, h, sample, cfg.IsBackground)
}

func buildPrecise(polys []pixelPolygon, t domain.GeoTransform, srs domain.SpatialReference) (*geom.MultiPolygon, error) {
	mp := geom.NewMultiPolygon(geom.XY)
	for _, p := range polys {
		rings := make([][]geom.Coord, 0, len(p.holes)+1)
		rings = append(rings, toWorld(p.shell, t))
		for _, hole := range p.holes {
			rings = append(rings, toWorld(hole, t))
		}
		if err := pushPolygon(mp, rings); err != nil {
			return nil, err
		}
	}
	mp.SetSRID(srs.EPSG)
	return mp, nil
}

// buildSimplified simplifies every ring of precise. Shells that collapse are
// kept unsimplified; holes that collapse are dropped.
func buildSimplified(precise *geom.MultiPolygon, tolerance float64) (*geom.MultiPolygon, error) {
	mp := geom.NewMultiPolygon(geom.XY)
	for i := 0; i < precise.NumPolygons(); i++ {
		src := precise.Polygon(i).Coords()

		shell := simplifyRing(src[0], tolerance)
		if shell == nil {
			shell = cloneCoords(src[0])
		}
		rings := [][]geom.Coord{shell}
		for _, hole := range src[1:] {
			if simplified := simplifyRing(hole, tolerance); simplified != nil {
				rings = append(rings, simplified)
			}
		}
		if err := pushPolygon(mp, rings); err != nil {
			return nil, err
		}
	}
	mp.SetSRID(precise.SRID())
	return mp, nil
}

func pushPolygon(mp *geom.MultiPolygon, rings [][]geom.Coord) error {
	poly, err := geom.NewPolygon(geom.XY).SetCoords(rings)
	if err != nil {
		return fmt.Errorf("building polygon: %w", err)
	}
	if err := mp.Push(poly); err != nil {
		return fmt.Errorf("building multipolygon: %w", err)
	}
	return nil
}

// iterator yields a fixed list of footprints.
type iterator struct {
	items  []domain.Footprint
	pos    int
	closed bool
}

func (it *iterator) Next() (domain.Footprint, bool) {
	if it.closed || it.pos >= len(it.items) {
		return domain.Footprint{}, false
	}
	fp := it.items[it.pos]
	it.pos++
	return fp, true
}

func (it *iterator) Close() error {
	it.closed = true
	return nil
}
