package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/frahmantamala/sewa-portal/internal"
)

// RecoveryMiddleware turns panics into the standard failure envelope.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic recovered",
						"error", err,
						"method", r.Method,
						"url", r.URL.String(),
						"trace_id", internal.TraceIDFromContext(r.Context()),
						"stack", string(debug.Stack()))

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(internal.Response{Success: false, Message: "Internal server error"})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
