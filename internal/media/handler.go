package media

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/frahmantamala/sewa-portal/internal"
	"github.com/frahmantamala/sewa-portal/internal/transport"
)

// multipartOverhead covers form boundaries and the title field on top of
// the per-kind file limit.
const multipartOverhead = 1 << 20

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

func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, KindMedia)
}

func (h *Handler) UploadReport(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, KindReport)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request, kind string) {
	spec, _ := LookupKind(kind)
	r.Body = http.MaxBytesReader(w, r.Body, spec.MaxBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.Log(r.Context()).Warn("upload: unreadable form", "kind", kind, "error", err)
		h.HandleServiceError(w, r, formError(err, spec))
		return
	}
	defer file.Close()

	if header.Size > spec.MaxBytes {
		h.HandleServiceError(w, r, tooLarge(spec))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, spec.MaxBytes+1))
	if err != nil {
		h.Log(r.Context()).Error("upload: failed to read file", "kind", kind, "error", err)
		h.HandleServiceError(w, r, internal.ErrInvalidForm)
		return
	}

	asset, err := h.Service.Upload(r.Context(), &UploadInput{
		Kind:     kind,
		Title:    r.FormValue("title"),
		FileName: header.Filename,
		Data:     data,
	})
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, asset)
}

func (h *Handler) GetGallery(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	assets, err := h.Service.List(r.Context(), r.URL.Query().Get("kind"), limit)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, GalleryResponse{Items: assets})
}

func formError(err error, spec KindSpec) error {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return tooLarge(spec)
	case errors.Is(err, http.ErrMissingFile):
		return internal.ErrMissingFile
	default:
		return internal.ErrInvalidForm
	}
}

func tooLarge(spec KindSpec) error {
	return internal.NewTooLargeError("file exceeds the " + strconv.FormatInt(spec.MaxBytes>>20, 10) + " MiB limit")
}
