package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/planhaus/planhaus/backend-go/internal/sketch"
)

// Hub fans the sketch store out to websocket subscribers. Bursts of store
// changes coalesce into a single pending broadcast; every subscriber gets
// the current state on join.
type Hub struct {
	store *sketch.Store

	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	changed    chan struct{}
	seq        int64
}

func NewHub(store *sketch.Store) *Hub {
	return &Hub{
		store:      store,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		changed:    make(chan struct{}, 1),
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	cancel := h.store.OnChange(h.notify)
	defer cancel()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.changed:
			h.broadcastState()
		case <-ctx.Done():
			return
		}
	}
}

// notify runs synchronously inside store mutations; the buffered channel
// turns any burst into at most one broadcast.
func (h *Hub) notify() {
	select {
	case h.changed <- struct{}{}:
	default:
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	if msg := h.stateMessage(TypeState); msg != nil {
		client.Send(msg)
	}
	slog.Info("feed client joined", "clients", n)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	n := len(h.clients)
	close(client.send)
	h.mu.Unlock()

	slog.Info("feed client left", "clients", n)
}

func (h *Hub) broadcastState() {
	msg := h.stateMessage(TypeUpdate)
	if msg == nil {
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func (h *Hub) stateMessage(msgType string) *Message {
	docs := make(map[string]sketch.ConstraintDoc)
	for key, c := range h.store.BuildingConstraints() {
		docs[key] = sketch.EncodeConstraint(c)
	}
	payload, err := json.Marshal(StatePayload{
		Rev:         h.store.Rev(),
		Sketch:      h.store.SolverSketch(),
		Constraints: docs,
	})
	if err != nil {
		slog.Error("marshal sketch state", "error", err)
		return nil
	}
	h.seq++
	return &Message{Type: msgType, Seq: h.seq, Payload: payload}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeSolveReport:
		var report SolveReportPayload
		if err := json.Unmarshal(msg.Payload, &report); err != nil {
			slog.Warn("invalid solve report payload", "error", err)
			return
		}
		h.store.SetSolveReport(report.Conflicting, report.Redundant)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ID)
	}
}
