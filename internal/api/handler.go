package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/planhaus/planhaus/backend-go/internal/building"
	"github.com/planhaus/planhaus/backend-go/internal/sketch"
)

// Handler serves the HTTP surface over the building model and the sketch
// derived from it.
type Handler struct {
	model *building.Store
	sk    *sketch.Store
}

func NewHandler(model *building.Store, sk *sketch.Store) *Handler {
	return &Handler{model: model, sk: sk}
}

type sketchResponse struct {
	Rev         uint64                          `json:"rev"`
	Sketch      sketch.SolverSketch             `json:"sketch"`
	Constraints map[string]sketch.ConstraintDoc `json:"constraints"`
}

// Sketch returns the active storey's derived sketch together with the
// building constraints currently mirrored into it.
func (h *Handler) Sketch(w http.ResponseWriter, r *http.Request) {
	docs := make(map[string]sketch.ConstraintDoc)
	for key, c := range h.sk.BuildingConstraints() {
		docs[key] = sketch.EncodeConstraint(c)
	}
	writeJSON(w, http.StatusOK, sketchResponse{
		Rev:         h.sk.Rev(),
		Sketch:      h.sk.SolverSketch(),
		Constraints: docs,
	})
}

type constraintView struct {
	Perimeter  string               `json:"perimeter"`
	Constraint sketch.ConstraintDoc `json:"constraint"`
}

// ListConstraints returns every declared constraint in the plan by key,
// generated baselines included.
func (h *Handler) ListConstraints(w http.ResponseWriter, r *http.Request) {
	plan := h.model.Plan()
	out := make(map[string]constraintView, len(plan.Constraints))
	for _, pc := range plan.Constraints {
		out[pc.Constraint.Key()] = constraintView{
			Perimeter:  pc.Perimeter,
			Constraint: sketch.EncodeConstraint(pc.Constraint),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// ConstraintStatus reports the post-solve flags for one constraint key.
func (h *Handler) ConstraintStatus(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	st, ok := h.sk.ConstraintStatus(key)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	writeJSON(w, http.StatusOK, st)
}

type addConstraintRequest struct {
	Perimeter  string               `json:"perimeter"`
	Constraint sketch.ConstraintDoc `json:"constraint"`
}

func (h *Handler) AddConstraint(w http.ResponseWriter, r *http.Request) {
	var req addConstraintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Perimeter == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "perimeter is required"})
		return
	}

	c, err := sketch.DecodeConstraint(req.Constraint)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	key, err := h.model.AddConstraint(req.Perimeter, c)
	if err != nil {
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

func (h *Handler) RemoveConstraint(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	if err := h.model.RemoveConstraint(key); err != nil {
		handleStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SolverSketch hands the primitive sketch to an external solver run.
func (h *Handler) SolverSketch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sk.SolverSketch())
}

type solveReportRequest struct {
	Conflicting []string `json:"conflicting"`
	Redundant   []string `json:"redundant"`
}

// SolveReport records the solver's conflicting/redundant primitive ids.
func (h *Handler) SolveReport(w http.ResponseWriter, r *http.Request) {
	var req solveReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	h.sk.SetSolveReport(req.Conflicting, req.Redundant)
	w.WriteHeader(http.StatusNoContent)
}

type planConstraintView struct {
	Key        string               `json:"key"`
	Perimeter  string               `json:"perimeter"`
	Constraint sketch.ConstraintDoc `json:"constraint"`
}

type planView struct {
	Storeys      []building.Storey     `json:"storeys"`
	ActiveStorey string                `json:"activeStorey"`
	Perimeters   []*building.Perimeter `json:"perimeters"`
	Constraints  []planConstraintView  `json:"constraints"`
}

// Plan returns the whole building model snapshot.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	plan := h.model.Plan()

	view := planView{
		Storeys:      plan.Storeys,
		ActiveStorey: plan.ActiveStorey,
		Perimeters:   plan.Perimeters,
		Constraints:  make([]planConstraintView, 0, len(plan.Constraints)),
	}
	for _, pc := range plan.Constraints {
		view.Constraints = append(view.Constraints, planConstraintView{
			Key:        pc.Constraint.Key(),
			Perimeter:  pc.Perimeter,
			Constraint: sketch.EncodeConstraint(pc.Constraint),
		})
	}

	writeJSON(w, http.StatusOK, view)
}

func handleStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, building.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, building.ErrConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "already exists"})
	default:
		slog.Error("store error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
