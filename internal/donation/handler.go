package donation

import (
	"errors"
	"io"
	"net/http"

	"github.com/frahmantamala/sewa-portal/internal"
	"github.com/frahmantamala/sewa-portal/internal/transport"
)

// MaxRequestBytes bounds the donation form body.
const MaxRequestBytes = 64 << 10

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.HandleServiceError(w, r, internal.NewTooLargeError("request body too large"))
			return
		}
		h.Log(r.Context()).Error("CreateDonation: failed to read body", "error", err)
		h.HandleServiceError(w, r, internal.ErrInvalidJSON)
		return
	}

	req, err := ParseDonationRequest(body)
	if err != nil {
		h.Log(r.Context()).Warn("CreateDonation: malformed body", "error", err)
		h.HandleServiceError(w, r, err)
		return
	}

	result, err := h.Service.CreateIntent(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, result)
}

func (h *Handler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	img, err := h.Service.RenderQR(r.URL.Query().Get("link"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		h.Log(r.Context()).Error("GetQRCode: failed to write image", "error", err)
	}
}
