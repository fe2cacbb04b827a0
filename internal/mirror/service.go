package mirror

import (
	"log/slog"
	"sync"

	"github.com/planhaus/planhaus/backend-go/internal/building"
	"github.com/planhaus/planhaus/backend-go/internal/sketch"
)

// Source is the building-store surface the mirror consumes.
type Source interface {
	ActiveStorey() string
	PerimetersOnStorey(storey string) []*building.Perimeter
	ConstraintsForPerimeter(perimeterID string) []sketch.BuildingConstraint
	SubscribeActiveStorey(fn func(current, previous string)) func()
	SubscribePerimeters(fn func(current, previous *building.Perimeter)) func()
	SubscribeConstraints(fn func(storey string, current, previous sketch.BuildingConstraint)) func()
}

// Service keeps the sketch store mirroring the active storey of the
// building model: perimeter geometry and constraints appear when their
// storey is active and disappear when it is not. Constraints the sketch
// rejects are logged and dropped from the mirror, never from the model.
type Service struct {
	source Source
	sink   *sketch.Store

	mu     sync.Mutex
	active string
	unsubs []func()
}

func New(source Source, sink *sketch.Store) *Service {
	return &Service{source: source, sink: sink}
}

// Start subscribes to the source and mirrors its current active storey.
// Calling Start twice is a no-op.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubs != nil {
		return
	}
	s.unsubs = append(s.unsubs,
		s.source.SubscribeActiveStorey(s.onStorey),
		s.source.SubscribePerimeters(s.onPerimeter),
		s.source.SubscribeConstraints(s.onConstraint),
	)
	s.syncStoreyLocked(s.source.ActiveStorey())
}

// Stop unsubscribes in reverse registration order. The sketch keeps its
// last mirrored state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.unsubs) - 1; i >= 0; i-- {
		s.unsubs[i]()
	}
	s.unsubs = nil
}

func (s *Service) onStorey(current, previous string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncStoreyLocked(current)
}

// syncStoreyLocked rebuilds the sketch from scratch for the given storey.
func (s *Service) syncStoreyLocked(storey string) {
	s.active = storey
	for _, id := range s.sink.TrackedPerimeters() {
		s.sink.RemovePerimeterGeometry(id)
	}
	if storey == "" {
		return
	}
	for _, p := range s.source.PerimetersOnStorey(storey) {
		if s.applyGeometryLocked(p) {
			s.applyConstraintsLocked(p.ID)
		}
	}
}

func (s *Service) onPerimeter(current, previous *building.Perimeter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case current == nil:
		if s.sink.Tracked(previous.ID) {
			s.sink.RemovePerimeterGeometry(previous.ID)
		}
	case current.Storey != s.active:
		// Created elsewhere, or moved off the active storey.
		if s.sink.Tracked(current.ID) {
			s.sink.RemovePerimeterGeometry(current.ID)
		}
	default:
		ok := s.applyGeometryLocked(current)
		// On creation the source emits the constraints as separate
		// events right after this one; re-apply only on updates, where
		// the upsert just swept them out of the sketch.
		if ok && previous != nil {
			s.applyConstraintsLocked(current.ID)
		}
	}
}

func (s *Service) onConstraint(storey string, current, previous sketch.BuildingConstraint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if storey != s.active {
		return
	}
	if previous != nil {
		s.sink.RemoveBuildingConstraint(previous.Key())
	}
	if current != nil {
		s.addConstraintLocked(current)
	}
}

func (s *Service) applyGeometryLocked(p *building.Perimeter) bool {
	if err := s.sink.AddPerimeterGeometry(p.ID); err != nil {
		slog.Warn("mirror: perimeter geometry rejected", "perimeter", p.ID, "err", err)
		return false
	}
	return true
}

func (s *Service) applyConstraintsLocked(perimeterID string) {
	existing := s.sink.BuildingConstraints()
	for _, c := range s.source.ConstraintsForPerimeter(perimeterID) {
		if _, ok := existing[c.Key()]; ok {
			continue
		}
		s.addConstraintLocked(c)
	}
}

// addConstraintLocked forwards a constraint to the sketch. Rejections are
// expected when a constraint names entities the sketch has no geometry
// for; the model keeps the constraint either way.
func (s *Service) addConstraintLocked(c sketch.BuildingConstraint) {
	if _, err := s.sink.AddBuildingConstraint(c); err != nil {
		slog.Warn("mirror: constraint rejected by sketch", "key", c.Key(), "err", err)
	}
}
