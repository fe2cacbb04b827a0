package building

import (
	"github.com/planhaus/planhaus/backend-go/internal/geo"
	"github.com/planhaus/planhaus/backend-go/internal/sketch"
)

type ReferenceSide string

const (
	ReferenceInside  ReferenceSide = "inside"
	ReferenceOutside ReferenceSide = "outside"
)

type OpeningKind string

const (
	OpeningDoor   OpeningKind = "door"
	OpeningWindow OpeningKind = "window"
)

type Storey struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Elevation float64 `json:"elevation"`
}

type Corner struct {
	ID       string  `json:"id"`
	Position geo.Vec `json:"position"`
}

type Opening struct {
	ID     string      `json:"id"`
	Kind   OpeningKind `json:"kind"`
	Offset float64     `json:"offset"`
	Width  float64     `json:"width"`
}

type Post struct {
	ID     string  `json:"id"`
	Offset float64 `json:"offset"`
	Width  float64 `json:"width"`
}

type Wall struct {
	ID             string    `json:"id"`
	Thickness      float64   `json:"thickness"`
	LengthOverride *float64  `json:"lengthOverride,omitempty"`
	Openings       []Opening `json:"openings,omitempty"`
	Posts          []Post    `json:"posts,omitempty"`
}

// Perimeter is a closed ring of corners; wall i runs from corner i to
// corner i+1 (wrapping). Corner positions describe the reference face.
type Perimeter struct {
	ID            string        `json:"id"`
	Storey        string        `json:"storey"`
	Mode          sketch.Mode   `json:"mode"`
	ReferenceSide ReferenceSide `json:"referenceSide"`
	Corners       []Corner      `json:"corners"`
	Walls         []Wall        `json:"walls"`
}

type Plan struct {
	Storeys      []Storey         `json:"storeys"`
	ActiveStorey string           `json:"activeStorey"`
	Perimeters   []*Perimeter     `json:"perimeters"`
	Constraints  []PlanConstraint `json:"constraints,omitempty"`
}

type PlanConstraint struct {
	Perimeter  string
	Constraint sketch.BuildingConstraint
}
