package sketch

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// ErrMissingEntity reports a building constraint referencing a domain
// entity that has no geometry in the sketch.
var ErrMissingEntity = errors.New("missing sketch entity")

// Domain is the narrow read-only view of the building model. The store
// queries it when (re)generating perimeter geometry and when translating
// building constraints; it never writes through it.
type Domain interface {
	WallCorners(wallID string) (start, end string, ok bool)
	CornerWalls(cornerID string) (prev, next string, ok bool)
	CornerSide(cornerID string) (Side, bool)
	PerimeterGeometry(perimeterID string) (*PerimeterGeometry, bool)
}

// RegistryEntry lists the sketch ids generated for one perimeter, in
// creation order, enabling atomic teardown.
type RegistryEntry struct {
	Points      []string `json:"points"`
	Lines       []string `json:"lines"`
	Constraints []string `json:"constraints"`
}

// ConstraintStatus is the post-solve diagnosis for one building
// constraint, derived from the solver's conflicting/redundant id report.
type ConstraintStatus struct {
	Conflicting bool `json:"conflicting"`
	Redundant   bool `json:"redundant"`
}

type changeSub struct {
	id int
	fn func()
}

// Store owns the solver-facing sketch: points, lines, primitive
// constraints, the active building constraints by canonical key, and the
// per-perimeter registry of generated ids. All mutation goes through its
// method surface; reads return copies so callers never observe a partial
// update.
type Store struct {
	domain Domain

	mu          sync.RWMutex
	points      map[string]Point
	lines       map[string]Line
	primitives  map[string]Constraint
	declared    map[string]BuildingConstraint
	registry    map[string]*RegistryEntry
	conflicting map[string]struct{}
	redundant   map[string]struct{}
	rev         uint64
	nextSub     int
	subs        []changeSub
}

func NewStore(domain Domain) *Store {
	return &Store{
		domain:      domain,
		points:      make(map[string]Point),
		lines:       make(map[string]Line),
		primitives:  make(map[string]Constraint),
		declared:    make(map[string]BuildingConstraint),
		registry:    make(map[string]*RegistryEntry),
		conflicting: make(map[string]struct{}),
		redundant:   make(map[string]struct{}),
	}
}

// OnChange registers fn to run synchronously after every state change, in
// registration order. The returned function unregisters it.
func (s *Store) OnChange(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, changeSub{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// fireLocked bumps the revision and snapshots the change handlers. The
// caller must invoke the returned functions after releasing the lock.
func (s *Store) fireLocked() []func() {
	s.rev++
	fns := make([]func(), len(s.subs))
	for i, sub := range s.subs {
		fns[i] = sub.fn
	}
	return fns
}

func dispatch(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

// AddPoint inserts or replaces a point. No validation: callers inside this
// package are responsible for referential integrity.
func (s *Store) AddPoint(p Point) {
	s.mu.Lock()
	s.points[p.ID] = p
	fns := s.fireLocked()
	s.mu.Unlock()
	dispatch(fns)
}

// AddLine inserts or replaces a line.
func (s *Store) AddLine(l Line) {
	s.mu.Lock()
	s.lines[l.ID] = l
	fns := s.fireLocked()
	s.mu.Unlock()
	dispatch(fns)
}

// AddConstraint inserts or replaces a primitive constraint.
func (s *Store) AddConstraint(c Constraint) {
	s.mu.Lock()
	s.primitives[c.ID] = c
	fns := s.fireLocked()
	s.mu.Unlock()
	dispatch(fns)
}

// RemovePoints removes the given points. An empty input is a no-op and
// emits no change notification.
func (s *Store) RemovePoints(ids ...string) {
	if len(ids) == 0 {
		return
	}
	s.mu.Lock()
	for _, id := range ids {
		delete(s.points, id)
	}
	fns := s.fireLocked()
	s.mu.Unlock()
	dispatch(fns)
}

// RemoveLines removes the given lines. An empty input is a no-op.
func (s *Store) RemoveLines(ids ...string) {
	if len(ids) == 0 {
		return
	}
	s.mu.Lock()
	for _, id := range ids {
		delete(s.lines, id)
	}
	fns := s.fireLocked()
	s.mu.Unlock()
	dispatch(fns)
}

// RemoveConstraints removes the given primitive constraints. An empty
// input is a no-op.
func (s *Store) RemoveConstraints(ids ...string) {
	if len(ids) == 0 {
		return
	}
	s.mu.Lock()
	for _, id := range ids {
		delete(s.primitives, id)
	}
	fns := s.fireLocked()
	s.mu.Unlock()
	dispatch(fns)
}

// AddBuildingConstraint validates, translates and stores a building
// constraint together with its primitives. If the key is already present
// the original is kept, a warning is logged, and the existing key is
// returned without error. A reference to an entity without sketch
// geometry fails the call with ErrMissingEntity.
func (s *Store) AddBuildingConstraint(c BuildingConstraint) (string, error) {
	key := c.Key()

	s.mu.Lock()
	if existing, ok := s.declared[key]; ok {
		s.mu.Unlock()
		slog.Warn("building constraint already stored, keeping original",
			"key", key, "kind", existing.Kind(), "discarded", c.Kind())
		return key, nil
	}
	if err := s.validateLocked(c); err != nil {
		s.mu.Unlock()
		return "", err
	}
	prims, err := Translate(c, key, storeResolver{domain: s.domain, lines: s.lines})
	if err != nil {
		s.mu.Unlock()
		return "", fmt.Errorf("translate %s: %w", key, err)
	}
	s.declared[key] = c
	for _, p := range prims {
		s.primitives[p.ID] = p
	}
	fns := s.fireLocked()
	s.mu.Unlock()
	dispatch(fns)
	return key, nil
}

// RemoveBuildingConstraint drops a building constraint and its fixed
// primitive id set. An unknown key is logged and ignored.
func (s *Store) RemoveBuildingConstraint(key string) {
	s.mu.Lock()
	if _, ok := s.declared[key]; !ok {
		s.mu.Unlock()
		slog.Warn("building constraint not found", "key", key)
		return
	}
	s.removeBuildingLocked(key)
	fns := s.fireLocked()
	s.mu.Unlock()
	dispatch(fns)
}

func (s *Store) removeBuildingLocked(key string) {
	delete(s.declared, key)
	for _, id := range translatedIDs(key) {
		delete(s.primitives, id)
	}
}

// validateLocked checks that every entity a constraint references has
// geometry in the sketch.
func (s *Store) validateLocked(c BuildingConstraint) error {
	for _, ref := range c.refs() {
		switch ref.kind {
		case refCorner:
			if _, ok := s.points[cornerPointID(ref.id)]; !ok {
				return fmt.Errorf("%w: no point for corner %q", ErrMissingEntity, ref.id)
			}
		case refWall:
			if _, ok := s.lines[wallLineID(ref.id)]; !ok {
				return fmt.Errorf("%w: no line for wall %q", ErrMissingEntity, ref.id)
			}
		case refEntity:
			if _, ok := s.points[entityCenterID(ref.id)]; !ok {
				return fmt.Errorf("%w: no point for entity %q", ErrMissingEntity, ref.id)
			}
		}
	}
	return nil
}

// storeResolver answers translation lookups from the domain plus the
// store's own lines. It is only used while the store lock is held.
type storeResolver struct {
	domain Domain
	lines  map[string]Line
}

func (r storeResolver) WallCorners(id string) (string, string, bool) {
	return r.domain.WallCorners(id)
}

func (r storeResolver) CornerWalls(id string) (string, string, bool) {
	return r.domain.CornerWalls(id)
}

func (r storeResolver) CornerSide(id string) (Side, bool) {
	return r.domain.CornerSide(id)
}

func (r storeResolver) LineFirstPoint(id string) (string, bool) {
	l, ok := r.lines[id]
	if !ok {
		return "", false
	}
	return l.P1, true
}

// SetSolveReport records the solver's post-solve conflicting/redundant
// primitive id sets. Ids that match nothing are kept but never surface.
func (s *Store) SetSolveReport(conflicting, redundant []string) {
	s.mu.Lock()
	s.conflicting = make(map[string]struct{}, len(conflicting))
	for _, id := range conflicting {
		s.conflicting[id] = struct{}{}
	}
	s.redundant = make(map[string]struct{}, len(redundant))
	for _, id := range redundant {
		s.redundant[id] = struct{}{}
	}
	fns := s.fireLocked()
	s.mu.Unlock()
	dispatch(fns)
}

// ConstraintStatus reports whether any of a building constraint's
// primitives were flagged by the last solve. The bool is false when the
// key is not stored.
func (s *Store) ConstraintStatus(key string) (ConstraintStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.declared[key]; !ok {
		return ConstraintStatus{}, false
	}
	var st ConstraintStatus
	for _, id := range translatedIDs(key) {
		if _, ok := s.conflicting[id]; ok {
			st.Conflicting = true
		}
		if _, ok := s.redundant[id]; ok {
			st.Redundant = true
		}
	}
	return st, true
}

// Rev returns the store revision, incremented on every state change.
func (s *Store) Rev() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// Points returns all sketch points sorted by id.
func (s *Store) Points() []Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Point, 0, len(s.points))
	for _, p := range s.points {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lines returns all sketch lines sorted by id.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Line, 0, len(s.lines))
	for _, l := range s.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Constraints returns all primitive constraints sorted by id.
func (s *Store) Constraints() []Constraint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Constraint, 0, len(s.primitives))
	for _, c := range s.primitives {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BuildingConstraints returns the active building constraints by key.
func (s *Store) BuildingConstraints() map[string]BuildingConstraint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]BuildingConstraint, len(s.declared))
	for k, c := range s.declared {
		out[k] = c
	}
	return out
}

// Registry returns a copy of the per-perimeter id registry.
func (s *Store) Registry() map[string]RegistryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]RegistryEntry, len(s.registry))
	for id, reg := range s.registry {
		out[id] = RegistryEntry{
			Points:      append([]string(nil), reg.Points...),
			Lines:       append([]string(nil), reg.Lines...),
			Constraints: append([]string(nil), reg.Constraints...),
		}
	}
	return out
}

// Tracked reports whether a perimeter's geometry is in the sketch.
func (s *Store) Tracked(perimeterID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.registry[perimeterID]
	return ok
}

// TrackedPerimeters returns the ids of all tracked perimeters, sorted.
func (s *Store) TrackedPerimeters() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.registry))
	for id := range s.registry {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// SolverSketch returns the primitive sketch in the solver's wire shape.
func (s *Store) SolverSketch() SolverSketch {
	return SolverSketch{
		Points:      s.Points(),
		Lines:       s.Lines(),
		Constraints: s.Constraints(),
	}
}
