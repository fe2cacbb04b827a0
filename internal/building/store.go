package building

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/planhaus/planhaus/backend-go/internal/sketch"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// ConstraintGenerator infers the baseline constraints for a freshly
// created perimeter.
type ConstraintGenerator func(sketch.GeneratorInput) []sketch.BuildingConstraint

type constraintRecord struct {
	constraint sketch.BuildingConstraint
	perimeter  string
}

// entityLoc locates a corner, wall or wall-mounted entity inside its
// perimeter. For corners and walls index is the ring position; for
// openings and posts it is the carrying wall's ring position.
type entityLoc struct {
	perimeter string
	index     int
}

type storeySub struct {
	id int
	fn func(current, previous string)
}

type perimeterSub struct {
	id int
	fn func(current, previous *Perimeter)
}

type constraintSub struct {
	id int
	fn func(storey string, current, previous sketch.BuildingConstraint)
}

// Store holds the building model: storeys, perimeter rings and authored
// constraints. Mutations notify subscribers synchronously, in
// registration order, after the store lock is released; handlers may call
// back into the store.
type Store struct {
	generate ConstraintGenerator

	mu          sync.RWMutex
	storeys     map[string]Storey
	active      string
	perimeters  map[string]*Perimeter
	constraints map[string]constraintRecord
	corners     map[string]entityLoc
	walls       map[string]entityLoc
	entities    map[string]entityLoc

	nextSub        int
	storeySubs     []storeySub
	perimeterSubs  []perimeterSub
	constraintSubs []constraintSub
}

// NewStore builds an empty store. gen may be nil, in which case perimeters
// are created without baseline constraints.
func NewStore(gen ConstraintGenerator) *Store {
	return &Store{
		generate:    gen,
		storeys:     make(map[string]Storey),
		perimeters:  make(map[string]*Perimeter),
		constraints: make(map[string]constraintRecord),
		corners:     make(map[string]entityLoc),
		walls:       make(map[string]entityLoc),
		entities:    make(map[string]entityLoc),
	}
}

// AddStorey registers a storey. It does not become active automatically.
func (s *Store) AddStorey(st Storey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == "" {
		return errors.New("storey id required")
	}
	if _, ok := s.storeys[st.ID]; ok {
		return fmt.Errorf("storey %s: %w", st.ID, ErrConflict)
	}
	s.storeys[st.ID] = st
	return nil
}

// SetActiveStorey switches the active storey and notifies subscribers.
// Switching to the already active storey is a no-op.
func (s *Store) SetActiveStorey(id string) error {
	s.mu.Lock()
	if id == s.active {
		s.mu.Unlock()
		return nil
	}
	if _, ok := s.storeys[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("storey %s: %w", id, ErrNotFound)
	}
	previous := s.active
	s.active = id
	ev := s.storeyEventLocked(id, previous)
	s.mu.Unlock()
	ev()
	return nil
}

// ActiveStorey returns the id of the active storey, empty if none.
func (s *Store) ActiveStorey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Storeys returns all storeys ordered by elevation, then id.
func (s *Store) Storeys() []Storey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Storey, 0, len(s.storeys))
	for _, st := range s.storeys {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Elevation != out[j].Elevation {
			return out[i].Elevation < out[j].Elevation
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AddPerimeter validates, normalizes and indexes a perimeter, then runs
// the constraint generator on it. Subscribers see the perimeter first,
// followed by one event per generated constraint. The store takes
// ownership of p.
func (s *Store) AddPerimeter(p *Perimeter) error {
	s.mu.Lock()
	if p == nil || p.ID == "" {
		s.mu.Unlock()
		return errors.New("perimeter id required")
	}
	if _, ok := s.perimeters[p.ID]; ok {
		s.mu.Unlock()
		return fmt.Errorf("perimeter %s: %w", p.ID, ErrConflict)
	}
	if err := s.validatePerimeterLocked(p); err != nil {
		s.mu.Unlock()
		return err
	}
	p.Normalize()
	s.indexLocked(p)
	s.perimeters[p.ID] = p

	events := []func(){s.perimeterEventLocked(p, nil)}
	if s.generate != nil {
		for _, c := range s.generate(p.GeneratorInput()) {
			key := c.Key()
			if _, exists := s.constraints[key]; exists {
				slog.Warn("generated constraint collides with existing key, skipping", "key", key)
				continue
			}
			s.constraints[key] = constraintRecord{constraint: c, perimeter: p.ID}
			events = append(events, s.constraintEventLocked(p.Storey, c, nil))
		}
	}
	s.mu.Unlock()
	run(events)
	return nil
}

// UpdatePerimeter replaces a perimeter wholesale. Constraints whose
// referenced corners, walls or entities no longer resolve are dropped,
// with a removal event each after the perimeter event. The store takes
// ownership of p.
func (s *Store) UpdatePerimeter(p *Perimeter) error {
	s.mu.Lock()
	if p == nil || p.ID == "" {
		s.mu.Unlock()
		return errors.New("perimeter id required")
	}
	old, ok := s.perimeters[p.ID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("perimeter %s: %w", p.ID, ErrNotFound)
	}
	if err := s.validatePerimeterLocked(p); err != nil {
		s.mu.Unlock()
		return err
	}
	p.Normalize()
	s.deindexLocked(old)
	s.indexLocked(p)
	s.perimeters[p.ID] = p

	events := []func(){s.perimeterEventLocked(p, old)}
	for _, key := range s.perimeterConstraintKeysLocked(p.ID) {
		rec := s.constraints[key]
		if s.resolvableLocked(rec.constraint) {
			continue
		}
		delete(s.constraints, key)
		events = append(events, s.constraintEventLocked(p.Storey, nil, rec.constraint))
	}
	s.mu.Unlock()
	run(events)
	return nil
}

// RemovePerimeter drops a perimeter and every constraint recorded against
// it. Subscribers see the perimeter removal first, then one removal event
// per constraint.
func (s *Store) RemovePerimeter(id string) error {
	s.mu.Lock()
	old, ok := s.perimeters[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("perimeter %s: %w", id, ErrNotFound)
	}
	s.deindexLocked(old)
	delete(s.perimeters, id)

	events := []func(){s.perimeterEventLocked(nil, old)}
	for _, key := range s.perimeterConstraintKeysLocked(id) {
		rec := s.constraints[key]
		delete(s.constraints, key)
		events = append(events, s.constraintEventLocked(old.Storey, nil, rec.constraint))
	}
	s.mu.Unlock()
	run(events)
	return nil
}

// Perimeter returns the perimeter with the given id. The returned value
// is shared, treat it as read-only.
func (s *Store) Perimeter(id string) (*Perimeter, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.perimeters[id]
	return p, ok
}

// PerimetersOnStorey returns the storey's perimeters ordered by id.
func (s *Store) PerimetersOnStorey(storey string) []*Perimeter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Perimeter
	for _, p := range s.perimeters {
		if p.Storey == storey {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddConstraint records an authored constraint against a perimeter. The
// constraint's key must be unused.
func (s *Store) AddConstraint(perimeterID string, c sketch.BuildingConstraint) (string, error) {
	s.mu.Lock()
	p, ok := s.perimeters[perimeterID]
	if !ok {
		s.mu.Unlock()
		return "", fmt.Errorf("perimeter %s: %w", perimeterID, ErrNotFound)
	}
	key := c.Key()
	if _, exists := s.constraints[key]; exists {
		s.mu.Unlock()
		return "", fmt.Errorf("constraint %s: %w", key, ErrConflict)
	}
	s.constraints[key] = constraintRecord{constraint: c, perimeter: perimeterID}
	ev := s.constraintEventLocked(p.Storey, c, nil)
	s.mu.Unlock()
	ev()
	return key, nil
}

// UpdateConstraint replaces the value of an existing constraint. The
// replacement must produce the same key; changing participants means
// removing and re-adding.
func (s *Store) UpdateConstraint(key string, c sketch.BuildingConstraint) error {
	s.mu.Lock()
	rec, ok := s.constraints[key]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("constraint %s: %w", key, ErrNotFound)
	}
	if got := c.Key(); got != key {
		s.mu.Unlock()
		return fmt.Errorf("constraint key mismatch: have %s, replacement yields %s", key, got)
	}
	s.constraints[key] = constraintRecord{constraint: c, perimeter: rec.perimeter}
	storey := s.perimeters[rec.perimeter].Storey
	ev := s.constraintEventLocked(storey, c, rec.constraint)
	s.mu.Unlock()
	ev()
	return nil
}

// RemoveConstraint drops an authored constraint.
func (s *Store) RemoveConstraint(key string) error {
	s.mu.Lock()
	rec, ok := s.constraints[key]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("constraint %s: %w", key, ErrNotFound)
	}
	delete(s.constraints, key)
	storey := s.perimeters[rec.perimeter].Storey
	ev := s.constraintEventLocked(storey, nil, rec.constraint)
	s.mu.Unlock()
	ev()
	return nil
}

// Constraint returns the constraint stored under key.
func (s *Store) Constraint(key string) (sketch.BuildingConstraint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.constraints[key]
	if !ok {
		return nil, false
	}
	return rec.constraint, true
}

// ConstraintsForPerimeter returns a perimeter's constraints ordered by key.
func (s *Store) ConstraintsForPerimeter(perimeterID string) []sketch.BuildingConstraint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []sketch.BuildingConstraint
	for _, key := range s.perimeterConstraintKeysLocked(perimeterID) {
		out = append(out, s.constraints[key].constraint)
	}
	return out
}

// Plan snapshots the whole store into a plan document. Perimeter pointers
// are shared, treat them as read-only.
func (s *Store) Plan() *Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan := &Plan{ActiveStorey: s.active}
	for _, st := range s.storeys {
		plan.Storeys = append(plan.Storeys, st)
	}
	sort.Slice(plan.Storeys, func(i, j int) bool {
		if plan.Storeys[i].Elevation != plan.Storeys[j].Elevation {
			return plan.Storeys[i].Elevation < plan.Storeys[j].Elevation
		}
		return plan.Storeys[i].ID < plan.Storeys[j].ID
	})
	for _, p := range s.perimeters {
		plan.Perimeters = append(plan.Perimeters, p)
	}
	sort.Slice(plan.Perimeters, func(i, j int) bool { return plan.Perimeters[i].ID < plan.Perimeters[j].ID })
	keys := make([]string, 0, len(s.constraints))
	for key := range s.constraints {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rec := s.constraints[key]
		plan.Constraints = append(plan.Constraints, PlanConstraint{Perimeter: rec.perimeter, Constraint: rec.constraint})
	}
	return plan
}

// ReplacePlan swaps the store content for the given plan in one pass:
// removal events for the old perimeters and their constraints, a storey
// switch, then creation events for the new content. Generated baseline
// constraints are produced for every perimeter; plan constraints whose
// key collides with a generated one are skipped with a warning. The store
// takes ownership of the plan's perimeters.
func (s *Store) ReplacePlan(plan *Plan) error {
	s.mu.Lock()
	if plan == nil || len(plan.Storeys) == 0 {
		s.mu.Unlock()
		return errors.New("plan needs at least one storey")
	}
	storeys := make(map[string]Storey, len(plan.Storeys))
	for _, st := range plan.Storeys {
		if st.ID == "" {
			s.mu.Unlock()
			return errors.New("storey id required")
		}
		if _, dup := storeys[st.ID]; dup {
			s.mu.Unlock()
			return fmt.Errorf("storey %s appears twice", st.ID)
		}
		storeys[st.ID] = st
	}
	if _, ok := storeys[plan.ActiveStorey]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("active storey %s not in plan", plan.ActiveStorey)
	}

	// Validate the whole plan before touching store state so a bad plan
	// leaves the current one intact.
	seen := make(map[string]struct{})
	planClaim := func(id, what string) error {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s id %s used twice in plan", what, id)
		}
		seen[id] = struct{}{}
		return nil
	}
	for _, p := range plan.Perimeters {
		if p == nil || p.ID == "" {
			s.mu.Unlock()
			return errors.New("perimeter id required")
		}
		if err := planClaim(p.ID, "perimeter"); err != nil {
			s.mu.Unlock()
			return err
		}
		if _, ok := storeys[p.Storey]; !ok {
			s.mu.Unlock()
			return fmt.Errorf("perimeter %s references unknown storey %s", p.ID, p.Storey)
		}
		if err := validatePerimeterShape(p, planClaim); err != nil {
			s.mu.Unlock()
			return err
		}
	}

	var events []func()

	// Tear down the old content first so handlers never see two plans at
	// once.
	oldIDs := make([]string, 0, len(s.perimeters))
	for id := range s.perimeters {
		oldIDs = append(oldIDs, id)
	}
	sort.Strings(oldIDs)
	for _, id := range oldIDs {
		old := s.perimeters[id]
		s.deindexLocked(old)
		delete(s.perimeters, id)
		events = append(events, s.perimeterEventLocked(nil, old))
		for _, key := range s.perimeterConstraintKeysLocked(id) {
			rec := s.constraints[key]
			delete(s.constraints, key)
			events = append(events, s.constraintEventLocked(old.Storey, nil, rec.constraint))
		}
	}

	s.storeys = storeys
	if plan.ActiveStorey != s.active {
		events = append(events, s.storeyEventLocked(plan.ActiveStorey, s.active))
		s.active = plan.ActiveStorey
	}

	for _, p := range plan.Perimeters {
		p.Normalize()
		s.indexLocked(p)
		s.perimeters[p.ID] = p
		events = append(events, s.perimeterEventLocked(p, nil))
		if s.generate == nil {
			continue
		}
		for _, c := range s.generate(p.GeneratorInput()) {
			key := c.Key()
			if _, exists := s.constraints[key]; exists {
				slog.Warn("generated constraint collides with existing key, skipping", "key", key)
				continue
			}
			s.constraints[key] = constraintRecord{constraint: c, perimeter: p.ID}
			events = append(events, s.constraintEventLocked(p.Storey, c, nil))
		}
	}

	for _, pc := range plan.Constraints {
		p, ok := s.perimeters[pc.Perimeter]
		if !ok {
			slog.Warn("plan constraint references unknown perimeter, skipping", "perimeter", pc.Perimeter)
			continue
		}
		key := pc.Constraint.Key()
		if _, exists := s.constraints[key]; exists {
			slog.Warn("plan constraint collides with existing key, skipping", "key", key)
			continue
		}
		s.constraints[key] = constraintRecord{constraint: pc.Constraint, perimeter: pc.Perimeter}
		events = append(events, s.constraintEventLocked(p.Storey, pc.Constraint, nil))
	}

	s.mu.Unlock()
	run(events)
	return nil
}

// SubscribeActiveStorey registers a handler for active storey switches.
// The returned function unsubscribes.
func (s *Store) SubscribeActiveStorey(fn func(current, previous string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.storeySubs = append(s.storeySubs, storeySub{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.storeySubs {
			if sub.id == id {
				s.storeySubs = append(s.storeySubs[:i], s.storeySubs[i+1:]...)
				return
			}
		}
	}
}

// SubscribePerimeters registers a handler for perimeter changes. current
// is nil on removal, previous is nil on creation.
func (s *Store) SubscribePerimeters(fn func(current, previous *Perimeter)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.perimeterSubs = append(s.perimeterSubs, perimeterSub{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.perimeterSubs {
			if sub.id == id {
				s.perimeterSubs = append(s.perimeterSubs[:i], s.perimeterSubs[i+1:]...)
				return
			}
		}
	}
}

// SubscribeConstraints registers a handler for constraint changes on any
// storey. current is nil on removal, previous is nil on creation.
func (s *Store) SubscribeConstraints(fn func(storey string, current, previous sketch.BuildingConstraint)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.constraintSubs = append(s.constraintSubs, constraintSub{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.constraintSubs {
			if sub.id == id {
				s.constraintSubs = append(s.constraintSubs[:i], s.constraintSubs[i+1:]...)
				return
			}
		}
	}
}

// WallCorners resolves a wall to its (start, end) corner ids.
func (s *Store) WallCorners(wallID string) (string, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.walls[wallID]
	if !ok {
		return "", "", false
	}
	p := s.perimeters[loc.perimeter]
	n := len(p.Corners)
	return p.Corners[loc.index].ID, p.Corners[(loc.index+1)%n].ID, true
}

// CornerWalls resolves a corner to its (entering, leaving) wall ids.
func (s *Store) CornerWalls(cornerID string) (string, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.corners[cornerID]
	if !ok {
		return "", "", false
	}
	p := s.perimeters[loc.perimeter]
	prev, next := p.cornerWallIndexes(loc.index)
	return p.Walls[prev].ID, p.Walls[next].ID, true
}

// CornerSide reports which side of its walls the corner's perimeter uses
// as reference face.
func (s *Store) CornerSide(cornerID string) (sketch.Side, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.corners[cornerID]
	if !ok {
		return "", false
	}
	return s.perimeters[loc.perimeter].SketchSide(), true
}

// PerimeterGeometry derives the sketch geometry of a perimeter on demand.
func (s *Store) PerimeterGeometry(perimeterID string) (*sketch.PerimeterGeometry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.perimeters[perimeterID]
	if !ok {
		return nil, false
	}
	return p.Geometry(), true
}

func (s *Store) validatePerimeterLocked(p *Perimeter) error {
	if _, ok := s.storeys[p.Storey]; !ok {
		return fmt.Errorf("perimeter %s references unknown storey %s", p.ID, p.Storey)
	}
	seen := make(map[string]struct{}, 3*len(p.Corners))
	claim := func(id, what string) error {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("perimeter %s reuses id %s", p.ID, id)
		}
		seen[id] = struct{}{}
		var owned map[string]entityLoc
		switch what {
		case "corner":
			owned = s.corners
		case "wall":
			owned = s.walls
		default:
			owned = s.entities
		}
		if loc, taken := owned[id]; taken && loc.perimeter != p.ID {
			return fmt.Errorf("%s %s already belongs to perimeter %s", what, id, loc.perimeter)
		}
		return nil
	}
	return validatePerimeterShape(p, claim)
}

// validatePerimeterShape checks the shape rules every perimeter must meet
// and calls claim for each corner, wall, opening and post id so the caller
// can enforce its own uniqueness scope. Defaults an empty reference side
// to inside.
func validatePerimeterShape(p *Perimeter, claim func(id, what string) error) error {
	if len(p.Corners) < 3 {
		return fmt.Errorf("perimeter %s needs at least 3 corners", p.ID)
	}
	if len(p.Walls) != len(p.Corners) {
		return fmt.Errorf("perimeter %s needs one wall per corner, have %d walls for %d corners", p.ID, len(p.Walls), len(p.Corners))
	}
	if p.Mode != sketch.ModePreset && p.Mode != sketch.ModeFreeform {
		return fmt.Errorf("perimeter %s has invalid mode %q", p.ID, p.Mode)
	}
	if p.ReferenceSide == "" {
		p.ReferenceSide = ReferenceInside
	}
	if p.ReferenceSide != ReferenceInside && p.ReferenceSide != ReferenceOutside {
		return fmt.Errorf("perimeter %s has invalid reference side %q", p.ID, p.ReferenceSide)
	}
	check := func(id, what string) error {
		if id == "" {
			return fmt.Errorf("perimeter %s has a %s without id", p.ID, what)
		}
		return claim(id, what)
	}
	for _, c := range p.Corners {
		if err := check(c.ID, "corner"); err != nil {
			return err
		}
	}
	for _, w := range p.Walls {
		if err := check(w.ID, "wall"); err != nil {
			return err
		}
		if w.Thickness <= 0 {
			return fmt.Errorf("wall %s needs a positive thickness", w.ID)
		}
		for _, o := range w.Openings {
			if err := check(o.ID, "opening"); err != nil {
				return err
			}
			if o.Width <= 0 {
				return fmt.Errorf("opening %s needs a positive width", o.ID)
			}
		}
		for _, post := range w.Posts {
			if err := check(post.ID, "post"); err != nil {
				return err
			}
			if post.Width <= 0 {
				return fmt.Errorf("post %s needs a positive width", post.ID)
			}
		}
	}
	return nil
}

func (s *Store) indexLocked(p *Perimeter) {
	for i, c := range p.Corners {
		s.corners[c.ID] = entityLoc{perimeter: p.ID, index: i}
	}
	for i, w := range p.Walls {
		s.walls[w.ID] = entityLoc{perimeter: p.ID, index: i}
		for _, o := range w.Openings {
			s.entities[o.ID] = entityLoc{perimeter: p.ID, index: i}
		}
		for _, post := range w.Posts {
			s.entities[post.ID] = entityLoc{perimeter: p.ID, index: i}
		}
	}
}

func (s *Store) deindexLocked(p *Perimeter) {
	for _, c := range p.Corners {
		delete(s.corners, c.ID)
	}
	for _, w := range p.Walls {
		delete(s.walls, w.ID)
		for _, o := range w.Openings {
			delete(s.entities, o.ID)
		}
		for _, post := range w.Posts {
			delete(s.entities, post.ID)
		}
	}
}

// resolvableLocked reports whether every entity the constraint names is
// still indexed.
func (s *Store) resolvableLocked(c sketch.BuildingConstraint) bool {
	corners, walls, entities := sketch.References(c)
	for _, id := range corners {
		if _, ok := s.corners[id]; !ok {
			return false
		}
	}
	for _, id := range walls {
		if _, ok := s.walls[id]; !ok {
			return false
		}
	}
	for _, id := range entities {
		if _, ok := s.entities[id]; !ok {
			return false
		}
	}
	return true
}

func (s *Store) perimeterConstraintKeysLocked(perimeterID string) []string {
	var keys []string
	for key, rec := range s.constraints {
		if rec.perimeter == perimeterID {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Event closures snapshot the subscriber list at emit time so handlers
// registered mid-mutation do not see earlier events.

func (s *Store) storeyEventLocked(current, previous string) func() {
	subs := append([]storeySub(nil), s.storeySubs...)
	return func() {
		for _, sub := range subs {
			sub.fn(current, previous)
		}
	}
}

func (s *Store) perimeterEventLocked(current, previous *Perimeter) func() {
	subs := append([]perimeterSub(nil), s.perimeterSubs...)
	return func() {
		for _, sub := range subs {
			sub.fn(current, previous)
		}
	}
}

func (s *Store) constraintEventLocked(storey string, current, previous sketch.BuildingConstraint) func() {
	subs := append([]constraintSub(nil), s.constraintSubs...)
	return func() {
		for _, sub := range subs {
			sub.fn(storey, current, previous)
		}
	}
}

func run(events []func()) {
	for _, ev := range events {
		ev()
	}
}
