package building

import (
	"github.com/planhaus/planhaus/backend-go/internal/geo"
	"github.com/planhaus/planhaus/backend-go/internal/sketch"
	"github.com/planhaus/planhaus/backend-go/internal/typeid"
)

func f64(v float64) *float64 { return &v }

// NewSamplePlan builds the demo plan used when no plan file is
// configured: a two-storey house with a preset rectangle on the ground
// floor and a freeform outline with a split south wall upstairs.
func NewSamplePlan() *Plan {
	ground := Storey{ID: typeid.NewStoreyID(), Name: "Ground floor", Elevation: 0}
	upper := Storey{ID: typeid.NewStoreyID(), Name: "Upper floor", Elevation: 2800}

	// Ground floor: 6m x 4m preset rectangle, 24cm walls.
	gSW := Corner{ID: typeid.NewCornerID(), Position: geo.Vec{X: 0, Y: 0}}
	gSE := Corner{ID: typeid.NewCornerID(), Position: geo.Vec{X: 6000, Y: 0}}
	gNE := Corner{ID: typeid.NewCornerID(), Position: geo.Vec{X: 6000, Y: 4000}}
	gNW := Corner{ID: typeid.NewCornerID(), Position: geo.Vec{X: 0, Y: 4000}}

	frontDoor := Opening{ID: typeid.NewOpeningID(), Kind: OpeningDoor, Offset: 1500, Width: 900}
	eastWindow := Opening{ID: typeid.NewOpeningID(), Kind: OpeningWindow, Offset: 2000, Width: 1200}
	northPost := Post{ID: typeid.NewPostID(), Offset: 3000, Width: 300}

	south := Wall{ID: typeid.NewWallID(), Thickness: 240, Openings: []Opening{frontDoor}}
	east := Wall{ID: typeid.NewWallID(), Thickness: 240, Openings: []Opening{eastWindow}}
	north := Wall{ID: typeid.NewWallID(), Thickness: 240, Posts: []Post{northPost}}
	west := Wall{ID: typeid.NewWallID(), Thickness: 240}

	groundPerimeter := &Perimeter{
		ID:            typeid.NewPerimeterID(),
		Storey:        ground.ID,
		Mode:          sketch.ModePreset,
		ReferenceSide: ReferenceInside,
		Corners:       []Corner{gSW, gSE, gNE, gNW},
		Walls:         []Wall{south, east, north, west},
	}

	// Upper floor: freeform outline with the south wall split in two and
	// the western half pinned to 3m. Thicker walls upstairs.
	uSW := Corner{ID: typeid.NewCornerID(), Position: geo.Vec{X: 0, Y: 0}}
	uSM := Corner{ID: typeid.NewCornerID(), Position: geo.Vec{X: 3000, Y: 0}}
	uSE := Corner{ID: typeid.NewCornerID(), Position: geo.Vec{X: 6000, Y: 0}}
	uNE := Corner{ID: typeid.NewCornerID(), Position: geo.Vec{X: 6000, Y: 4500}}
	uNW := Corner{ID: typeid.NewCornerID(), Position: geo.Vec{X: 0, Y: 4500}}

	upperPerimeter := &Perimeter{
		ID:            typeid.NewPerimeterID(),
		Storey:        upper.ID,
		Mode:          sketch.ModeFreeform,
		ReferenceSide: ReferenceInside,
		Corners:       []Corner{uSW, uSM, uSE, uNE, uNW},
		Walls: []Wall{
			{ID: typeid.NewWallID(), Thickness: 300, LengthOverride: f64(3000)},
			{ID: typeid.NewWallID(), Thickness: 300},
			{ID: typeid.NewWallID(), Thickness: 300},
			{ID: typeid.NewWallID(), Thickness: 300},
			{ID: typeid.NewWallID(), Thickness: 300},
		},
	}

	return &Plan{
		Storeys:      []Storey{ground, upper},
		ActiveStorey: ground.ID,
		Perimeters:   []*Perimeter{groundPerimeter, upperPerimeter},
		Constraints: []PlanConstraint{
			{
				Perimeter:  groundPerimeter.ID,
				Constraint: sketch.Parallel{WallA: south.ID, WallB: north.ID, Distance: f64(4000)},
			},
			{
				Perimeter:  groundPerimeter.ID,
				Constraint: sketch.WallEntityAbsolute{Entity: frontDoor.ID, Corner: gSW.ID, Distance: 1500},
			},
		},
	}
}
