// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// footprint tool. It lets AI assistants run extractions on local rasters.
package mcp

import "errors"

// ErrMissingFootprintService is returned when the footprint service is not provided.
var ErrMissingFootprintService = errors.New("mcp: footprint service is required")
