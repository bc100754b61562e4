package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/sewa-portal/internal"
	"github.com/frahmantamala/sewa-portal/pkg/logger"

	"github.com/google/uuid"
)

const TraceHeader = "X-Trace-ID"

// RequestID tags the request with a trace id and attaches base, carrying
// that id, as the request logger.
func RequestID(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := internal.ContextWithTraceID(r.Context(), traceID)
			if base != nil {
				ctx = logger.Attach(ctx, base.With("trace_id", traceID))
			} else {
				ctx = logger.With(ctx, "trace_id", traceID)
			}

			w.Header().Set(TraceHeader, traceID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
