package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/sewa-portal/internal"
	"github.com/frahmantamala/sewa-portal/pkg/logger"
)

// BaseHandler provides the JSON envelope helpers shared by every handler.
type BaseHandler struct {
	Logger *slog.Logger
}

// SuccessResponse is the envelope for successful API calls.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	h.WriteJSON(w, status, SuccessResponse{Success: true, Data: data})
}

// Log returns the request-scoped logger when one is attached to ctx.
func (h *BaseHandler) Log(ctx context.Context) *slog.Logger {
	if l, ok := logger.FromContext(ctx); ok {
		return l
	}
	return h.Logger
}

// WriteError writes a {success:false,message} response
func (h *BaseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if status >= http.StatusInternalServerError {
		h.Log(r.Context()).Error("http error", "status", status, "message", message)
	} else {
		h.Log(r.Context()).Warn("http error", "status", status, "message", message)
	}
	h.WriteJSON(w, status, internal.Response{Success: false, Message: message})
}

// HandleServiceError maps AppErrors to their status code. Anything else is
// wrapped as an internal error carrying the error text.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		appErr = internal.NewInternalError(err.Error(), err)
	}

	status, body := appErr.ToHTTPResponse()
	if status >= http.StatusInternalServerError {
		h.Log(r.Context()).Error("service error", "status", status, "code", appErr.Code, "error", err)
	} else {
		h.Log(r.Context()).Warn("request rejected", "status", status, "code", appErr.Code, "message", appErr.GetDetailedMessage())
	}
	h.WriteJSON(w, status, body)
}
