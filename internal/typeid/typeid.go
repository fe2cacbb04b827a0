package typeid

import (
	"go.jetify.com/typeid/v2"
)

const (
	PrefixStorey    = "storey"
	PrefixPerimeter = "perim"
	PrefixCorner    = "corner"
	PrefixWall      = "wall"
	PrefixOpening   = "open"
	PrefixPost      = "post"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewStoreyID() string    { return New(PrefixStorey) }
func NewPerimeterID() string { return New(PrefixPerimeter) }
func NewCornerID() string    { return New(PrefixCorner) }
func NewWallID() string      { return New(PrefixWall) }
func NewOpeningID() string   { return New(PrefixOpening) }
func NewPostID() string      { return New(PrefixPost) }
