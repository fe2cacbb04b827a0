package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/planhaus/planhaus/backend-go/internal/api"
	"github.com/planhaus/planhaus/backend-go/internal/building"
	"github.com/planhaus/planhaus/backend-go/internal/config"
	"github.com/planhaus/planhaus/backend-go/internal/feed"
	mw "github.com/planhaus/planhaus/backend-go/internal/middleware"
	"github.com/planhaus/planhaus/backend-go/internal/mirror"
	"github.com/planhaus/planhaus/backend-go/internal/sketch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := building.NewStore(sketch.Generate)
	sk := sketch.NewStore(model)

	mirrorSvc := mirror.New(model, sk)
	mirrorSvc.Start()

	if err := seedPlan(model, cfg.PlanFile); err != nil {
		slog.Error("seed plan", "error", err)
		os.Exit(1)
	}

	if cfg.PlanWatch && cfg.PlanFile != "" {
		go watchPlan(ctx, model, cfg.PlanFile)
	}

	hub := feed.NewHub(sk)
	go hub.Run(ctx)

	h := api.NewHandler(model, sk)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/api/sketch", h.Sketch).Methods("GET")
	r.HandleFunc("/api/constraints", h.ListConstraints).Methods("GET")
	r.HandleFunc("/api/constraints", h.AddConstraint).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/constraints/{key}/status", h.ConstraintStatus).Methods("GET")
	r.HandleFunc("/api/constraints/{key}", h.RemoveConstraint).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/api/solver/sketch", h.SolverSketch).Methods("GET")
	r.HandleFunc("/api/solver/report", h.SolveReport).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/plan", h.Plan).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(ctx, w, r, hub, cfg.Origins())
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		mirrorSvc.Stop()
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request, hub *feed.Hub, origins []string) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(origins),
	})
	if err != nil {
		slog.Debug("websocket accept failed", "error", err)
		return
	}

	client := feed.NewClient(hub, conn, "conn-"+uuid.New().String()[:8])
	hub.Register(client)

	slog.Info("feed client connected", "client", client.ID)

	go client.WritePump(ctx)
	client.ReadPump(ctx)

	slog.Info("feed client disconnected", "client", client.ID)
}

// originPatterns strips the scheme from configured origins; the websocket
// library matches host patterns only.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		out = append(out, o)
	}
	return out
}

// seedPlan fills the model from the plan file, or from the built-in
// sample when none is configured.
func seedPlan(model *building.Store, path string) error {
	if path == "" {
		return model.ReplacePlan(building.NewSamplePlan())
	}
	plan, err := building.LoadPlan(path)
	if err != nil {
		return err
	}
	return model.ReplacePlan(plan)
}

// watchPlan reloads the plan file whenever it changes. The watch is on
// the directory: editors that replace the file on save emit Create or
// Rename for the file itself.
func watchPlan(ctx context.Context, model *building.Store, path string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("plan watcher", "error", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		slog.Error("watch plan dir", "error", err)
		return
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// Editors emit several events per save; let the file settle.
			time.Sleep(100 * time.Millisecond)
			if err := seedPlan(model, path); err != nil {
				slog.Warn("reload plan", "file", path, "error", err)
				continue
			}
			slog.Info("plan reloaded", "file", path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("plan watcher error", "error", err)

		case <-ctx.Done():
			return
		}
	}
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
