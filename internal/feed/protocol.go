package feed

import (
	"encoding/json"

	"github.com/planhaus/planhaus/backend-go/internal/sketch"
)

type Message struct {
	Type    string          `json:"type"`
	Seq     int64           `json:"seq,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// StatePayload is the full mirrored sketch pushed to every subscriber:
// the solver-facing primitives plus the active building constraints in
// document form.
type StatePayload struct {
	Rev         uint64                          `json:"rev"`
	Sketch      sketch.SolverSketch             `json:"sketch"`
	Constraints map[string]sketch.ConstraintDoc `json:"constraints"`
}

// SolveReportPayload carries the solver's post-solve diagnosis back from
// a client.
type SolveReportPayload struct {
	Conflicting []string `json:"conflicting"`
	Redundant   []string `json:"redundant"`
}

const (
	TypeState       = "sketch.state"
	TypeUpdate      = "sketch.update"
	TypeSolveReport = "solver.report"
	TypeError       = "error"
)
