package media_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/sewa-portal/internal/media"
	"github.com/frahmantamala/sewa-portal/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type assetEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    *media.MediaAsset `json:"data"`
}

type galleryEnvelope struct {
	Success bool                  `json:"success"`
	Data    media.GalleryResponse `json:"data"`
}

func multipartBody(fileName string, data []byte, title string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if title != "" {
		Expect(writer.WriteField("title", title)).To(Succeed())
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write(data)
		Expect(err).NotTo(HaveOccurred())
	}
	Expect(writer.Close()).To(Succeed())
	return body, writer.FormDataContentType()
}

var _ = Describe("Media Handler", func() {
	var (
		repo    *MockRepository
		storage *FakeStorage
		handler *media.Handler
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		storage = &FakeStorage{}
		service := media.NewService(media.ServiceDeps{
			Repository: repo,
			Storage:    storage,
			Logger:     newTestLogger(),
		})
		handler = media.NewHandler(&transport.BaseHandler{Logger: newTestLogger()}, service)
	})

	upload := func(fn http.HandlerFunc, fileName string, data []byte) (*httptest.ResponseRecorder, assetEnvelope) {
		body, contentType := multipartBody(fileName, data, "Camp photos")
		req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		fn(w, req)

		var resp assetEnvelope
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return w, resp
	}

	It("should create a media asset", func() {
		w, resp := upload(handler.UploadMedia, "camp.png", pngHeader)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(resp.Success).To(BeTrue())
		Expect(resp.Data.Kind).To(Equal(media.KindMedia))
		Expect(resp.Data.Title).To(Equal("Camp photos"))
		Expect(resp.Data.FileName).To(Equal("camp.png"))
		Expect(resp.Data.ObjectKey).To(HavePrefix("media/"))
		Expect(resp.Data.ObjectKey).To(HaveSuffix("-camp.png"))
		Expect(repo.assets).To(HaveLen(1))
	})

	It("should create a report", func() {
		w, resp := upload(handler.UploadReport, "annual.pdf", pdfHeader)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(resp.Data.Kind).To(Equal(media.KindReport))
		Expect(resp.Data.ContentType).To(Equal("application/pdf"))
	})

	It("should refuse a PDF on the media endpoint", func() {
		w, resp := upload(handler.UploadMedia, "annual.pdf", pdfHeader)

		Expect(w.Code).To(Equal(http.StatusUnsupportedMediaType))
		Expect(resp.Success).To(BeFalse())
		Expect(storage.puts).To(BeEmpty())
	})

	It("should require a file", func() {
		w, resp := upload(handler.UploadMedia, "", nil)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(resp.Message).To(Equal("file is required"))
	})

	It("should reject non-multipart requests", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/uploads/media", strings.NewReader(`{"file":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.UploadMedia(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should reject files over the kind limit", func() {
		data := append(append([]byte{}, pngHeader...), make([]byte, 10<<20)...)
		w, resp := upload(handler.UploadMedia, "huge.png", data)

		Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))
		Expect(resp.Success).To(BeFalse())
		Expect(storage.puts).To(BeEmpty())
	})

	Describe("GetGallery", func() {
		BeforeEach(func() {
			base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			for i := 0; i < 3; i++ {
				repo.assets = append(repo.assets, &media.MediaAsset{
					ID:         string(rune('a' + i)),
					Kind:       media.KindMedia,
					UploadedAt: base.Add(time.Duration(i) * time.Minute),
				})
			}
		})

		It("should list newest first with a limit", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/gallery?kind=media&limit=2", nil)
			w := httptest.NewRecorder()

			handler.GetGallery(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp galleryEnvelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Success).To(BeTrue())
			Expect(resp.Data.Items).To(HaveLen(2))
			Expect(resp.Data.Items[0].ID).To(Equal("c"))
		})

		It("should ignore an unparseable limit", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/gallery?limit=lots", nil)
			w := httptest.NewRecorder()

			handler.GetGallery(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp galleryEnvelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Data.Items).To(HaveLen(3))
		})

		It("should reject an unknown kind", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/gallery?kind=secrets", nil)
			w := httptest.NewRecorder()

			handler.GetGallery(w, req)

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})
	})
})
