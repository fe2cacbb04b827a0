package sketch

import (
	"sort"
	"strings"
)

// Key prefixes. Kinds that are mutually exclusive on the same geometry
// share a prefix so their keys collide: a horizontal and a vertical on the
// same wall, or a parallel and a perpendicular on the same wall pair, can
// never both be stored. Every other prefix is namespace-disjoint.
const (
	keyWallLength          = "wl"
	keyColinearCorner      = "col"
	keyWallPair            = "pp" // parallel and perpendicular
	keyPerpendicularCorner = "pc"
	keyCornerAngle         = "ang"
	keyAxis                = "hv" // horizontal and vertical
	keyEntityAbsolute      = "wea"
	keyEntityRelative      = "wer"
)

// composeKey joins a prefix with the sorted participant ids. Sorting makes
// the key independent of argument order. Values such as lengths, sides and
// angles never participate in the key.
func composeKey(prefix string, participants ...string) string {
	sort.Strings(participants)
	return prefix + ":" + strings.Join(participants, ":")
}

func (c WallLength) Key() string {
	return composeKey(keyWallLength, c.Wall)
}

func (c ColinearCorner) Key() string {
	return composeKey(keyColinearCorner, c.Corner)
}

func (c Parallel) Key() string {
	return composeKey(keyWallPair, c.WallA, c.WallB)
}

func (c Perpendicular) Key() string {
	return composeKey(keyWallPair, c.WallA, c.WallB)
}

func (c PerpendicularCorner) Key() string {
	return composeKey(keyPerpendicularCorner, c.Corner)
}

func (c CornerAngle) Key() string {
	return composeKey(keyCornerAngle, c.Corner)
}

func (c HorizontalWall) Key() string {
	return composeKey(keyAxis, c.Wall)
}

func (c VerticalWall) Key() string {
	return composeKey(keyAxis, c.Wall)
}

func (c WallEntityAbsolute) Key() string {
	return composeKey(keyEntityAbsolute, c.Entity, c.Corner)
}

func (c WallEntityRelative) Key() string {
	return composeKey(keyEntityRelative, c.EntityA, c.EntityB)
}
