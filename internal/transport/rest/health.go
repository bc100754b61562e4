package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"

	healthCheckTimeout = 2 * time.Second
)

// HealthChecker is a dependency whose reachability is reported by /health.
type HealthChecker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	DurationMs int64        `json:"duration_ms"`
}

type HealthHandler struct {
	checkers []HealthChecker
}

func NewHealthHandler(checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

// pingHandler reports liveness only.
func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
}

// healthCheckHandler pings every dependency concurrently.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:     HealthHealthy,
		Components: make(map[string]CheckEntry, len(h.checkers)),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, checker := range h.checkers {
		wg.Add(1)
		go func(c HealthChecker) {
			defer wg.Done()
			entry := check(ctx, c)

			mu.Lock()
			defer mu.Unlock()
			resp.Components[c.Name()] = entry
			if entry.Status == HealthUnhealthy {
				resp.Status = HealthUnhealthy
			}
		}(checker)
	}
	wg.Wait()
	resp.CheckedAt = time.Now()

	statusCode := http.StatusOK
	if resp.Status == HealthUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func check(ctx context.Context, c HealthChecker) CheckEntry {
	start := time.Now()
	err := c.HealthCheck(ctx)

	entry := CheckEntry{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	}
	return entry
}
