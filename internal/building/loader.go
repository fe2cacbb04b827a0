package building

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/planhaus/planhaus/backend-go/internal/geo"
	"github.com/planhaus/planhaus/backend-go/internal/sketch"
	"github.com/planhaus/planhaus/backend-go/internal/typeid"
)

const defaultThickness = 240.0

type planDoc struct {
	Active  string      `yaml:"active"`
	Storeys []storeyDoc `yaml:"storeys"`
}

type storeyDoc struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Elevation  float64        `yaml:"elevation"`
	Perimeters []perimeterDoc `yaml:"perimeters"`
}

type perimeterDoc struct {
	ID            string                 `yaml:"id"`
	Mode          string                 `yaml:"mode"`
	ReferenceSide string                 `yaml:"referenceSide"`
	Thickness     float64                `yaml:"thickness"`
	Corners       []cornerDoc            `yaml:"corners"`
	Walls         []wallDoc              `yaml:"walls"`
	Constraints   []sketch.ConstraintDoc `yaml:"constraints"`
}

type cornerDoc struct {
	ID string  `yaml:"id"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
}

type wallDoc struct {
	ID        string       `yaml:"id"`
	Thickness float64      `yaml:"thickness"`
	Override  *float64     `yaml:"override"`
	Openings  []openingDoc `yaml:"openings"`
	Posts     []postDoc    `yaml:"posts"`
}

type openingDoc struct {
	ID     string  `yaml:"id"`
	Kind   string  `yaml:"kind"`
	Offset float64 `yaml:"offset"`
	Width  float64 `yaml:"width"`
}

type postDoc struct {
	ID     string  `yaml:"id"`
	Offset float64 `yaml:"offset"`
	Width  float64 `yaml:"width"`
}

// LoadPlan reads a plan from a YAML file.
func LoadPlan(path string) (*Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	plan, err := ParsePlan(raw)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return plan, nil
}

// ParsePlan parses a YAML plan document. Ids may be omitted and are then
// minted; the wall list may be omitted entirely, in which case one wall
// per corner is synthesized with the perimeter's default thickness.
// Constraints that name ids must use explicit ids for the walls, corners
// and openings they reference.
func ParsePlan(raw []byte) (*Plan, error) {
	var doc planDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(doc.Storeys) == 0 {
		return nil, fmt.Errorf("no storeys")
	}

	plan := &Plan{}
	for si := range doc.Storeys {
		sd := &doc.Storeys[si]
		if sd.ID == "" {
			sd.ID = typeid.NewStoreyID()
		}
		plan.Storeys = append(plan.Storeys, Storey{ID: sd.ID, Name: sd.Name, Elevation: sd.Elevation})
		for pi := range sd.Perimeters {
			p, cons, err := perimeterFromDoc(&sd.Perimeters[pi], sd.ID)
			if err != nil {
				return nil, fmt.Errorf("storey %s: %w", sd.ID, err)
			}
			plan.Perimeters = append(plan.Perimeters, p)
			plan.Constraints = append(plan.Constraints, cons...)
		}
	}

	if doc.Active == "" {
		plan.ActiveStorey = plan.Storeys[0].ID
	} else {
		for _, st := range plan.Storeys {
			if st.ID == doc.Active || st.Name == doc.Active {
				plan.ActiveStorey = st.ID
				break
			}
		}
		if plan.ActiveStorey == "" {
			return nil, fmt.Errorf("active storey %q not found", doc.Active)
		}
	}
	return plan, nil
}

func perimeterFromDoc(pd *perimeterDoc, storeyID string) (*Perimeter, []PlanConstraint, error) {
	if pd.ID == "" {
		pd.ID = typeid.NewPerimeterID()
	}
	if len(pd.Corners) < 3 {
		return nil, nil, fmt.Errorf("perimeter %s needs at least 3 corners", pd.ID)
	}

	mode := sketch.Mode(pd.Mode)
	if pd.Mode == "" {
		mode = sketch.ModeFreeform
	}
	thickness := pd.Thickness
	if thickness == 0 {
		thickness = defaultThickness
	}

	p := &Perimeter{
		ID:            pd.ID,
		Storey:        storeyID,
		Mode:          mode,
		ReferenceSide: ReferenceSide(pd.ReferenceSide),
	}
	for _, cd := range pd.Corners {
		id := cd.ID
		if id == "" {
			id = typeid.NewCornerID()
		}
		p.Corners = append(p.Corners, Corner{ID: id, Position: geo.Vec{X: cd.X, Y: cd.Y}})
	}

	switch {
	case len(pd.Walls) == 0:
		for range p.Corners {
			p.Walls = append(p.Walls, Wall{ID: typeid.NewWallID(), Thickness: thickness})
		}
	case len(pd.Walls) == len(p.Corners):
		for _, wd := range pd.Walls {
			w, err := wallFromDoc(&wd, thickness)
			if err != nil {
				return nil, nil, fmt.Errorf("perimeter %s: %w", pd.ID, err)
			}
			p.Walls = append(p.Walls, w)
		}
	default:
		return nil, nil, fmt.Errorf("perimeter %s has %d walls for %d corners", pd.ID, len(pd.Walls), len(p.Corners))
	}

	var cons []PlanConstraint
	for i, cd := range pd.Constraints {
		c, err := sketch.DecodeConstraint(cd)
		if err != nil {
			return nil, nil, fmt.Errorf("perimeter %s constraint %d: %w", pd.ID, i, err)
		}
		cons = append(cons, PlanConstraint{Perimeter: pd.ID, Constraint: c})
	}
	return p, cons, nil
}

func wallFromDoc(wd *wallDoc, defaultT float64) (Wall, error) {
	w := Wall{
		ID:             wd.ID,
		Thickness:      wd.Thickness,
		LengthOverride: wd.Override,
	}
	if w.ID == "" {
		w.ID = typeid.NewWallID()
	}
	if w.Thickness == 0 {
		w.Thickness = defaultT
	}
	for _, od := range wd.Openings {
		o := Opening{ID: od.ID, Kind: OpeningKind(od.Kind), Offset: od.Offset, Width: od.Width}
		if o.ID == "" {
			o.ID = typeid.NewOpeningID()
		}
		if o.Kind == "" {
			o.Kind = OpeningDoor
		}
		if o.Kind != OpeningDoor && o.Kind != OpeningWindow {
			return Wall{}, fmt.Errorf("opening %s has invalid kind %q", o.ID, od.Kind)
		}
		w.Openings = append(w.Openings, o)
	}
	for _, pd := range wd.Posts {
		post := Post{ID: pd.ID, Offset: pd.Offset, Width: pd.Width}
		if post.ID == "" {
			post.ID = typeid.NewPostID()
		}
		w.Posts = append(w.Posts, post)
	}
	return w, nil
}
