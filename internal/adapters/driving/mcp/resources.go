package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/footprint/internal/core/domain"
)

// uriScheme is the custom URI scheme for footprint resources.
const uriScheme = "footprint://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "formats",
		Name:        "formats",
		Description: "Output formats the server can write",
		MIMEType:    "application/json",
	}, s.handleFormatsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "parameters/defaults",
		Name:        "default-parameters",
		Description: "Extraction parameters used when a call sets none",
		MIMEType:    "application/json",
	}, s.handleDefaultsResource)
}

// handleFormatsResource lists the writable output formats.
func (s *Server) handleFormatsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type formatInfo struct {
		Name        string `json:"name"`
		Extension   string `json:"extension"`
		Description string `json:"description"`
	}

	formats := s.ports.Footprint.Formats()
	infos := make([]formatInfo, len(formats))
	for i, f := range formats {
		infos[i] = formatInfo{
			Name:        f.String(),
			Extension:   f.Extension(),
			Description: f.Description(),
		}
	}

	return jsonResource(req.Params.URI, infos, "formats")
}

// handleDefaultsResource returns the command-line default configuration.
func (s *Server) handleDefaultsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	cfg := s.ports.Footprint.Resolve(domain.DriverParams())
	return jsonResource(req.Params.URI, newParametersOutput(cfg), "parameters")
}

func jsonResource(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
