//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/planhaus/planhaus/backend-go/internal/building"
	"github.com/planhaus/planhaus/backend-go/internal/mirror"
	"github.com/planhaus/planhaus/backend-go/internal/sketch"
)

var (
	model *building.Store
	sk    *sketch.Store
)

func main() {
	model = building.NewStore(sketch.Generate)
	sk = sketch.NewStore(model)
	mirror.New(model, sk).Start()

	// Create the engine API object
	engine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	engine.Set("loadSamplePlan", js.FuncOf(loadSamplePlan))
	engine.Set("loadPlan", js.FuncOf(loadPlan))
	engine.Set("addConstraint", js.FuncOf(addConstraint))
	engine.Set("removeConstraint", js.FuncOf(removeConstraint))
	engine.Set("solverReport", js.FuncOf(solverReport))

	// --- Queries (frontend ← backend) ---
	engine.Set("sketch", js.FuncOf(sketchState))
	engine.Set("constraintStatus", js.FuncOf(constraintStatus))

	// Register on global scope
	js.Global().Set("planhausEngine", engine)

	// Signal that WASM is ready
	js.Global().Set("planhausWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errResult(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func okResult() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Command Handlers ---

func loadSamplePlan(this js.Value, args []js.Value) interface{} {
	if err := model.ReplacePlan(building.NewSamplePlan()); err != nil {
		return errResult(err)
	}
	return okResult()
}

func loadPlan(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing plan text"})
	}

	plan, err := building.ParsePlan([]byte(args[0].String()))
	if err != nil {
		return errResult(err)
	}
	if err := model.ReplacePlan(plan); err != nil {
		return errResult(err)
	}

	return okResult()
}

func addConstraint(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing constraint JSON"})
	}

	var req struct {
		Perimeter  string               `json:"perimeter"`
		Constraint sketch.ConstraintDoc `json:"constraint"`
	}
	if err := json.Unmarshal([]byte(args[0].String()), &req); err != nil {
		return errResult(err)
	}

	c, err := sketch.DecodeConstraint(req.Constraint)
	if err != nil {
		return errResult(err)
	}

	key, err := model.AddConstraint(req.Perimeter, c)
	if err != nil {
		return errResult(err)
	}

	return js.ValueOf(map[string]interface{}{"key": key})
}

func removeConstraint(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing constraint key"})
	}

	if err := model.RemoveConstraint(args[0].String()); err != nil {
		return errResult(err)
	}

	return okResult()
}

func solverReport(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing report JSON"})
	}

	var req struct {
		Conflicting []string `json:"conflicting"`
		Redundant   []string `json:"redundant"`
	}
	if err := json.Unmarshal([]byte(args[0].String()), &req); err != nil {
		return errResult(err)
	}

	sk.SetSolveReport(req.Conflicting, req.Redundant)
	return okResult()
}

// --- Query Handlers ---

func sketchState(this js.Value, args []js.Value) interface{} {
	docs := make(map[string]sketch.ConstraintDoc)
	for key, c := range sk.BuildingConstraints() {
		docs[key] = sketch.EncodeConstraint(c)
	}

	out, err := json.Marshal(map[string]interface{}{
		"rev":         sk.Rev(),
		"sketch":      sk.SolverSketch(),
		"constraints": docs,
	})
	if err != nil {
		return js.ValueOf("{}")
	}

	return js.ValueOf(string(out))
}

func constraintStatus(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing constraint key"})
	}

	st, ok := sk.ConstraintStatus(args[0].String())
	if !ok {
		return js.ValueOf(map[string]interface{}{"error": "not found"})
	}

	return js.ValueOf(map[string]interface{}{
		"conflicting": st.Conflicting,
		"redundant":   st.Redundant,
	})
}
