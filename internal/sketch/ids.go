package sketch

// Generated sketch ids are derived from domain ids so that regenerating a
// perimeter reproduces the exact same id set. The "__" separator keeps a
// compound id unambiguous because domain ids never contain it.

// cornerPointID is the reference-side point of a corner.
func cornerPointID(corner string) string {
	return "pt_" + corner
}

// cornerWallPointID is the non-reference-side point of a corner, one per
// adjacent wall.
func cornerWallPointID(corner, wall string) string {
	return "pt_" + corner + "__" + wall
}

// wallLineID is the reference-side line of a wall.
func wallLineID(wall string) string {
	return "ln_" + wall
}

// wallOffsetLineID is the non-reference-side line of a wall.
func wallOffsetLineID(wall string) string {
	return "ln_" + wall + "__off"
}

// connectorLineID is the helper line tying a straight corner's projected
// point back to its reference point.
func connectorLineID(corner, wall string) string {
	return "cn_" + corner + "__" + wall
}

// Entity points: start, center and end of an opening or post footprint.
func entityStartID(entity string) string  { return "pt_" + entity + "__s" }
func entityCenterID(entity string) string { return "pt_" + entity + "__c" }
func entityEndID(entity string) string    { return "pt_" + entity + "__e" }

// Generated constraint ids, by role.
func genParallelID(wall string) string          { return "gc_par_" + wall }
func genOffsetID(corner, wall string) string    { return "gc_off_" + corner + "__" + wall }
func genCoincidentID(corner string) string      { return "gc_coin_" + corner }
func genConnectorID(corner, wall string) string { return "gc_perp_" + corner + "__" + wall }
func genOnLineID(entity, suffix string) string  { return "gc_onl_" + entity + "__" + suffix }
func genBisectorID(entity string) string        { return "gc_bis_" + entity }
func genWidthID(entity string) string           { return "gc_wid_" + entity }

// Translated building-constraint ids. A key always owns the same fixed id
// triple, so removal never has to re-run the translation.
func bcID(key string) string     { return "bc_" + key }
func bcParID(key string) string  { return "bc_" + key + "_par" }
func bcDistID(key string) string { return "bc_" + key + "_dist" }

// translatedIDs returns every primitive id a building constraint with the
// given key could have produced.
func translatedIDs(key string) []string {
	return []string{bcID(key), bcParID(key), bcDistID(key)}
}
