package mcp

import (
	"github.com/custodia-labs/footprint/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Footprint runs extractions.
	Footprint driving.FootprintService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Footprint == nil {
		return ErrMissingFootprintService
	}
	return nil
}
