package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// SimplifiedSuffix is inserted before the extension of the secondary output.
const SimplifiedSuffix = "_simplified"

// RunState is a stage of the extraction state machine.
type RunState string

// Run states, in the order a successful run visits them.
const (
	StatePending        RunState = "pending"
	StateOpen           RunState = "open"
	StateParamsResolved RunState = "params_resolved"
	StateExtracted      RunState = "extracted"
	StateWritten        RunState = "written"

	// StateError is absorbing: once entered, the run never advances.
	StateError RunState = "error"
)

// IsTerminal reports whether the state ends a run.
func (s RunState) IsTerminal() bool {
	return s == StateWritten || s == StateError
}

// OutputRole distinguishes the two outputs a run may produce.
type OutputRole string

// Output roles.
const (
	RolePrimary    OutputRole = "primary"
	RoleSimplified OutputRole = "simplified"
)

// OutputDescriptor names one output file.
type OutputDescriptor struct {
	Format OutputFormat
	Role   OutputRole
	Path   string
}

// NewOutputDescriptor places an output beside inputPath, named after its base name.
func NewOutputDescriptor(inputPath string, format OutputFormat, role OutputRole) OutputDescriptor {
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	name := base
	if role == RoleSimplified {
		name += SimplifiedSuffix
	}
	name += format.Extension()

	return OutputDescriptor{
		Format: format,
		Role:   role,
		Path:   filepath.Join(dir, name),
	}
}

// ProcessingOutcome reports the result of one extraction run.
// An empty Errors list means every intended output was written.
type ProcessingOutcome struct {
	RunID           string
	InputPath       string
	PrimaryFormat   OutputFormat
	SecondaryFormat OutputFormat
	State           RunState
	Outputs         []OutputDescriptor

	// Errors holds hard failures, each wrapping ErrIO, ErrExtraction or ErrWrite.
	Errors []error

	// Warnings holds best-effort cleanup failures. They never affect OK.
	Warnings []error

	StartedAt  time.Time
	FinishedAt time.Time
}

// NewProcessingOutcome creates an outcome for a run that has not started.
func NewProcessingOutcome(runID, inputPath string, primary, secondary OutputFormat) *ProcessingOutcome {
	return &ProcessingOutcome{
		RunID:           runID,
		InputPath:       inputPath,
		PrimaryFormat:   primary,
		SecondaryFormat: secondary,
		State:           StatePending,
		StartedAt:       time.Now(),
	}
}

// OK reports whether the run recorded no errors.
func (o *ProcessingOutcome) OK() bool {
	return len(o.Errors) == 0
}

// Advance moves the run to state unless it already failed.
func (o *ProcessingOutcome) Advance(state RunState) {
	if o.State == StateError {
		return
	}
	o.State = state
}

// Fail records err and moves the run to StateError.
func (o *ProcessingOutcome) Fail(err error) {
	o.AddError(err)
	o.State = StateError
}

// AddError appends a hard failure without changing state.
func (o *ProcessingOutcome) AddError(err error) {
	if err == nil {
		return
	}
	o.Errors = append(o.Errors, err)
}

// AddWarning appends a cleanup warning.
func (o *ProcessingOutcome) AddWarning(err error) {
	if err == nil {
		return
	}
	o.Warnings = append(o.Warnings, err)
}

// AddOutput records a written output.
func (o *ProcessingOutcome) AddOutput(desc OutputDescriptor) {
	o.Outputs = append(o.Outputs, desc)
}

// Finish stamps the finish time and settles the final state.
func (o *ProcessingOutcome) Finish() {
	o.FinishedAt = time.Now()
	if o.State != StateError && len(o.Errors) > 0 {
		o.State = StateError
	}
}

// Duration returns the run's wall-clock time.
func (o *ProcessingOutcome) Duration() time.Duration {
	if o.FinishedAt.IsZero() {
		return 0
	}
	return o.FinishedAt.Sub(o.StartedAt)
}
