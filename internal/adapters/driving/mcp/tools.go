package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/footprint/internal/core/domain"
	"github.com/custodia-labs/footprint/internal/core/ports/driving"
)

// ErrMissingInputPath is returned when a tool call names no raster.
var ErrMissingInputPath = errors.New("input_path is required")

// ParameterInput holds optional extraction tunables. Unset fields fall back to
// the command-line defaults, or to the library defaults when LibraryDefaults is set.
type ParameterInput struct {
	ThresholdArea     *float64 `json:"threshold_area,omitempty" jsonschema:"minimum polygon area in pixels"`
	ExclusionRanges   [][]int  `json:"exclusion_ranges,omitempty" jsonschema:"inclusive [min, max] intensity ranges treated as background"`
	ComputeSimplified *bool    `json:"compute_simplified,omitempty" jsonschema:"also compute a simplified footprint"`
	SimplifierFactor  *float64 `json:"simplifier_factor,omitempty" jsonschema:"simplification tolerance in pixels"`
	RemoveCollinear   *bool    `json:"remove_collinear,omitempty" jsonschema:"drop vertices on straight edge runs"`
	ForceValid        *bool    `json:"force_valid,omitempty" jsonschema:"repair self-touching rings"`
	LoadingType       string   `json:"loading_type,omitempty" jsonschema:"immediate or deferred sample loading"`
	LibraryDefaults   bool     `json:"library_defaults,omitempty" jsonschema:"start from library defaults instead of command-line defaults"`
}

// ExtractInput is the input schema for the extract_footprint tool.
type ExtractInput struct {
	InputPath       string `json:"input_path" jsonschema:"path of the raster to process"`
	PrimaryFormat   string `json:"primary_format,omitempty" jsonschema:"format of the precise footprint: wkb, wkt or gpkg (default wkb)"`
	SecondaryFormat string `json:"secondary_format,omitempty" jsonschema:"format of the simplified footprint (default wkb)"`

	Parameters ParameterInput `json:"parameters,omitempty" jsonschema:"optional extraction tunables"`
}

// ExtractOutput is the output schema for the extract_footprint tool.
type ExtractOutput struct {
	RunID      string       `json:"run_id"`
	State      string       `json:"state"`
	OK         bool         `json:"ok"`
	Outputs    []OutputInfo `json:"outputs"`
	Errors     []string     `json:"errors,omitempty"`
	Warnings   []string     `json:"warnings,omitempty"`
	DurationMS int64        `json:"duration_ms"`
}

// OutputInfo describes one written file.
type OutputInfo struct {
	Role   string `json:"role"`
	Format string `json:"format"`
	Path   string `json:"path"`
}

// ParametersOutput is a resolved extraction configuration.
type ParametersOutput struct {
	ThresholdArea     float64 `json:"threshold_area"`
	ExclusionRanges   [][]int `json:"exclusion_ranges"`
	ComputeSimplified bool    `json:"compute_simplified"`
	SimplifierFactor  float64 `json:"simplifier_factor"`
	RemoveCollinear   bool    `json:"remove_collinear"`
	ForceValid        bool    `json:"force_valid"`
	LoadingType       string  `json:"loading_type"`
	Simplifies        bool    `json:"simplifies"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_footprint",
		Description: "Extract the vector footprint of a raster and write it beside the input",
	}, s.handleExtract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_parameters",
		Description: "Show the extraction configuration the given parameters resolve to",
	}, s.handleResolve)
}

// handleExtract handles the extract_footprint tool invocation. A failed run
// is reported in the output, not as a tool error.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	if strings.TrimSpace(input.InputPath) == "" {
		return nil, ExtractOutput{}, ErrMissingInputPath
	}

	primary, err := parseFormat(input.PrimaryFormat)
	if err != nil {
		return nil, ExtractOutput{}, fmt.Errorf("primary_format: %w", err)
	}
	secondary, err := parseFormat(input.SecondaryFormat)
	if err != nil {
		return nil, ExtractOutput{}, fmt.Errorf("secondary_format: %w", err)
	}

	outcome := s.ports.Footprint.Run(ctx, driving.ExtractRequest{
		InputPath:       input.InputPath,
		Parameters:      input.Parameters.params(),
		PrimaryFormat:   primary,
		SecondaryFormat: secondary,
	})

	return nil, newExtractOutput(outcome), nil
}

// handleResolve handles the resolve_parameters tool invocation.
func (s *Server) handleResolve(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ParameterInput,
) (*mcp.CallToolResult, ParametersOutput, error) {
	return nil, newParametersOutput(s.ports.Footprint.Resolve(input.params())), nil
}

// params builds the raw parameter mapping passed to the service.
func (p ParameterInput) params() map[string]any {
	params := map[string]any{}
	if !p.LibraryDefaults {
		params = domain.DriverParams()
	}

	if p.ThresholdArea != nil {
		params[domain.KeyThresholdArea.String()] = *p.ThresholdArea
	}
	if len(p.ExclusionRanges) > 0 {
		params[domain.KeyExclusionRanges.String()] = p.ExclusionRanges
	}
	if p.ComputeSimplified != nil {
		params[domain.KeyComputeSimplified.String()] = *p.ComputeSimplified
	}
	if p.SimplifierFactor != nil {
		params[domain.KeySimplifierFactor.String()] = *p.SimplifierFactor
	}
	if p.RemoveCollinear != nil {
		params[domain.KeyRemoveCollinear.String()] = *p.RemoveCollinear
	}
	if p.ForceValid != nil {
		params[domain.KeyForceValid.String()] = *p.ForceValid
	}
	if p.LoadingType != "" {
		params[domain.KeyLoadingType.String()] = p.LoadingType
	}
	return params
}

func parseFormat(token string) (domain.OutputFormat, error) {
	if strings.TrimSpace(token) == "" {
		return domain.DefaultOutputFormat, nil
	}
	return domain.ParseOutputFormat(token)
}

func newExtractOutput(outcome *domain.ProcessingOutcome) ExtractOutput {
	out := ExtractOutput{
		RunID:      outcome.RunID,
		State:      string(outcome.State),
		OK:         outcome.OK(),
		Outputs:    make([]OutputInfo, len(outcome.Outputs)),
		DurationMS: outcome.Duration().Milliseconds(),
	}
	for i, o := range outcome.Outputs {
		out.Outputs[i] = OutputInfo{
			Role:   string(o.Role),
			Format: o.Format.String(),
			Path:   o.Path,
		}
	}
	for _, err := range outcome.Errors {
		out.Errors = append(out.Errors, err.Error())
	}
	for _, w := range outcome.Warnings {
		out.Warnings = append(out.Warnings, w.Error())
	}
	return out
}

func newParametersOutput(cfg domain.ExtractionConfig) ParametersOutput {
	ranges := make([][]int, len(cfg.ExclusionRanges))
	for i, r := range cfg.ExclusionRanges {
		ranges[i] = []int{r.Min, r.Max}
	}
	return ParametersOutput{
		ThresholdArea:     cfg.ThresholdArea,
		ExclusionRanges:   ranges,
		ComputeSimplified: cfg.ComputeSimplified,
		SimplifierFactor:  cfg.SimplifierFactor,
		RemoveCollinear:   cfg.RemoveCollinear,
		ForceValid:        cfg.ForceValid,
		LoadingType:       cfg.LoadingStrategy.String(),
		Simplifies:        cfg.SimplificationEnabled(),
	}
}
