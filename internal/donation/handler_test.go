package donation_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/frahmantamala/sewa-portal/internal"
	"github.com/frahmantamala/sewa-portal/internal/donation"
	"github.com/frahmantamala/sewa-portal/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type envelope struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    *donation.LinkResult `json:"data"`
}

var _ = Describe("Donation Handler", func() {
	var (
		repo    *MockRepository
		handler *donation.Handler
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		service := donation.NewService(donation.ServiceDeps{
			Repository: repo,
			Links:      donation.NewLinkBuilder(internal.PayeeConfig{}),
			References: donation.NewReferenceGenerator(fixedClock),
			QR:         donation.NewQRCodeEncoder(),
			Logger:     newTestLogger(),
		})
		handler = donation.NewHandler(&transport.BaseHandler{Logger: newTestLogger()}, service)
	})

	post := func(body string) (*httptest.ResponseRecorder, envelope) {
		req := httptest.NewRequest(http.MethodPost, "/api/donations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.CreateDonation(w, req)

		var resp envelope
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return w, resp
	}

	It("should return the reference and link for a valid donation", func() {
		w, resp := post(`{"amount": 500, "donor_name": "Asha", "note": "Website Donation"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))
		Expect(resp.Success).To(BeTrue())
		Expect(resp.Data).NotTo(BeNil())
		Expect(resp.Data.Reference).To(Equal("DON-1700000000000"))
		Expect(resp.Data.UpiLink).To(Equal("upi://pay?pa=sewafoundation%40sbi&pn=Sewa%20Foundation&am=500.00&cu=INR&tn=Website%20Donation&tr=DON-1700000000000"))
		Expect(resp.Data.QRCode).To(HavePrefix("data:image/png;base64,"))
		Expect(repo.Intents()).To(HaveLen(1))
	})

	It("should pad amounts to two decimals", func() {
		_, resp := post(`{"amount": 100.5}`)
		Expect(resp.Data.UpiLink).To(ContainSubstring("am=100.50"))
	})

	It("should reject a negative amount with 422", func() {
		w, resp := post(`{"amount": -5}`)

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(resp.Success).To(BeFalse())
		Expect(resp.Message).To(Equal("Amount must be positive"))
		Expect(resp.Data).To(BeNil())
		Expect(repo.Intents()).To(BeEmpty())
	})

	DescribeTable("should reject malformed bodies with 400",
		func(body string) {
			w, resp := post(body)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp.Success).To(BeFalse())
			Expect(resp.Message).To(Equal("Invalid JSON"))
			Expect(repo.Intents()).To(BeEmpty())
		},
		Entry("empty", ""),
		Entry("garbage", "amount=5"),
	)

	DescribeTable("should treat well-formed JSON without an amount as a 422",
		func(body string) {
			w, resp := post(body)

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(resp.Success).To(BeFalse())
			Expect(resp.Message).To(Equal("Amount must be positive"))
			Expect(repo.Intents()).To(BeEmpty())
		},
		Entry("empty array", "[]"),
		Entry("null", "null"),
		Entry("string", `"500"`),
	)

	It("should reject an amount the store cannot hold", func() {
		w, resp := post(`{"amount": 1e20}`)

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(resp.Message).To(Equal("Amount must not exceed 9999999999.99"))
		Expect(repo.Intents()).To(BeEmpty())
	})

	It("should return 500 with the store error text", func() {
		repo.SetShouldFail(true, errors.New("server selection timeout"))

		w, resp := post(`{"amount": 10}`)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(resp.Success).To(BeFalse())
		Expect(resp.Message).To(Equal("server selection timeout"))
		Expect(resp.Data).To(BeNil())
	})

	It("should reject oversized bodies", func() {
		body := `{"amount": 1, "note": "` + strings.Repeat("x", donation.MaxRequestBytes) + `"}`
		w, resp := post(body)

		Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))
		Expect(resp.Success).To(BeFalse())
	})

	Describe("GetQRCode", func() {
		It("should stream a PNG", func() {
			link := "upi://pay?pa=sewafoundation%40sbi&am=1.00"
			req := httptest.NewRequest(http.MethodGet, "/api/donations/qr?link="+url.QueryEscape(link), nil)
			w := httptest.NewRecorder()

			handler.GetQRCode(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("image/png"))
			Expect(w.Body.Bytes()[:4]).To(Equal([]byte("\x89PNG")))
		})

		It("should reject a missing link", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/donations/qr", nil)
			w := httptest.NewRecorder()

			handler.GetQRCode(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var resp envelope
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Success).To(BeFalse())
		})
	})
})
