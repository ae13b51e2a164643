package gpkg

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

const (
	flagLittleEndian = 0x01
	flagEnvelopeXY   = 1 << 1
	flagEmpty        = 1 << 4

	headerSize    = 8
	envelopeXYLen = 32
)

// extent is an XY bounding box. The zero value is empty.
type extent struct {
	minX, minY, maxX, maxY float64
	valid                  bool
}

func (e extent) union(o extent) extent {
	switch {
	case !o.valid:
		return e
	case !e.valid:
		return o
	}
	return extent{
		minX:  min(e.minX, o.minX),
		minY:  min(e.minY, o.minY),
		maxX:  max(e.maxX, o.maxX),
		maxY:  max(e.maxY, o.maxY),
		valid: true,
	}
}

func boundsOf(g geom.T) extent {
	b := g.Bounds()
	if b.IsEmpty() {
		return extent{}
	}
	return extent{minX: b.Min(0), minY: b.Min(1), maxX: b.Max(0), maxY: b.Max(1), valid: true}
}

// encodeGeometry renders g as a GeoPackage binary blob.
func encodeGeometry(g geom.T, srsID int32) ([]byte, error) {
	body, err := wkb.Marshal(g, wkb.NDR)
	if err != nil {
		return nil, fmt.Errorf("encoding wkb: %w", err)
	}

	env := boundsOf(g)
	flags := byte(flagLittleEndian)
	if env.valid {
		flags |= flagEnvelopeXY
	} else {
		flags |= flagEmpty
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + envelopeXYLen + len(body))
	buf.Write([]byte{'G', 'P', 0, flags})
	_ = binary.Write(&buf, binary.LittleEndian, srsID)
	if env.valid {
		_ = binary.Write(&buf, binary.LittleEndian, [4]float64{env.minX, env.maxX, env.minY, env.maxY})
	}
	buf.Write(body)
	return buf.Bytes(), nil
}
