package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Surajr36/cricket-auction-simulator/internal/clock"
	"github.com/Surajr36/cricket-auction-simulator/internal/engine"
)

// Status represents a health check result.
type Status struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// Checker defines a named health check function.
type Checker struct {
	Name  string
	Check func(ctx context.Context) error
}

// StateSource exposes the current auction state for the snapshot endpoint.
type StateSource interface {
	State() engine.State
	AuctionID() string
}

// Handler provides HTTP health check and auction snapshot endpoints.
type Handler struct {
	mu       sync.RWMutex
	ready    bool
	checkers []Checker
	clock    clock.Clock
	source   StateSource
}

// NewHandler creates a new health handler with the given checkers. source
// may be nil; the snapshot endpoint then reports no auction.
func NewHandler(clk clock.Clock, source StateSource, checkers ...Checker) *Handler {
	return &Handler{checkers: checkers, clock: clk, source: source}
}

// SetReady marks the service as ready to receive traffic.
func (h *Handler) SetReady(ready bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ready = ready
}

// LivenessHandler returns HTTP 200 if the process is alive.
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Status{
			Status:    "ok",
			Timestamp: h.clock.Now().UTC().Format(time.RFC3339),
		})
	}
}

// ReadinessHandler returns HTTP 200 if the service is ready.
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.RLock()
		ready := h.ready
		h.mu.RUnlock()

		if !ready {
			writeJSON(w, http.StatusServiceUnavailable, Status{
				Status:    "not_ready",
				Timestamp: h.clock.Now().UTC().Format(time.RFC3339),
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := make(map[string]string)
		allOK := true
		for _, c := range h.checkers {
			if err := c.Check(ctx); err != nil {
				checks[c.Name] = err.Error()
				allOK = false
			} else {
				checks[c.Name] = "ok"
			}
		}

		status := "ready"
		code := http.StatusOK
		if !allOK {
			status = "not_ready"
			code = http.StatusServiceUnavailable
		}

		writeJSON(w, code, Status{
			Status:    status,
			Checks:    checks,
			Timestamp: h.clock.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Snapshot is the read-only view of the running auction served over HTTP.
type Snapshot struct {
	AuctionID string         `json:"auction_id,omitempty"`
	Phase     string         `json:"phase,omitempty"`
	Message   string         `json:"message,omitempty"`
	Completed int            `json:"completed_players"`
	Teams     []TeamSnapshot `json:"teams,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// TeamSnapshot is one team's budget and squad size.
type TeamSnapshot struct {
	TeamID          string `json:"team_id"`
	RemainingBudget int    `json:"remaining_budget"`
	SquadSize       int    `json:"squad_size"`
}

// SnapshotHandler serves the current auction state.
func (h *Handler) SnapshotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := Snapshot{Timestamp: h.clock.Now().UTC().Format(time.RFC3339)}
		if h.source != nil {
			if st := h.source.State(); st != nil {
				snap.AuctionID = h.source.AuctionID()
				snap.Phase = string(st.Phase())
				snap.Message = st.Message()
				snap.Completed = len(st.CompletedPlayerIDs())
				for _, ts := range st.TeamStates() {
					snap.Teams = append(snap.Teams, TeamSnapshot{
						TeamID:          ts.TeamID,
						RemainingBudget: ts.RemainingBudget,
						SquadSize:       ts.Size(),
					})
				}
			}
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
