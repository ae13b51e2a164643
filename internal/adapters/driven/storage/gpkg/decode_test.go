package gpkg

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

const envelopeMask = 0x0e

var errInvalidBlob = errors.New("invalid geopackage geometry")

// decodeGeometry parses a GeoPackage binary blob.
func decodeGeometry(blob []byte) (geom.T, int32, error) {
	if len(blob) < headerSize || blob[0] != 'G' || blob[1] != 'P' || blob[2] != 0 {
		return nil, 0, errInvalidBlob
	}
	flags := blob[3]

	var order binary.ByteOrder = binary.BigEndian
	if flags&flagLittleEndian != 0 {
		order = binary.LittleEndian
	}
	srsID := int32(order.Uint32(blob[4:8]))

	var envLen int
	switch (flags & envelopeMask) >> 1 {
	case 0:
	case 1:
		envLen = 32
	case 2, 3:
		envLen = 48
	case 4:
		envLen = 64
	default:
		return nil, 0, errInvalidBlob
	}
	if len(blob) < headerSize+envLen {
		return nil, 0, errInvalidBlob
	}

	g, err := wkb.Unmarshal(blob[headerSize+envLen:])
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", errInvalidBlob, err)
	}
	return g, srsID, nil
}
