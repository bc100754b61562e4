package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/sewa-portal/internal/observability"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObservability(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Observability Suite")
}

var _ = Describe("Metrics", func() {
	var metrics *observability.Metrics

	BeforeEach(func() {
		metrics = observability.NewMetrics()
	})

	It("should count donation outcomes", func() {
		metrics.DonationIntent("accepted")
		metrics.DonationIntent("accepted")
		metrics.DonationIntent("rejected")

		count, err := testutil.GatherAndCount(metrics.Registry(), "sewa_donation_intents_total")
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(2))
	})

	It("should expose counters in the text format", func() {
		metrics.MediaUpload("report", "accepted")

		w := httptest.NewRecorder()
		metrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		body, err := io.ReadAll(w.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`sewa_media_uploads_total{kind="report",outcome="accepted"} 1`))
	})

	It("should count instrumented requests by status", func() {
		handler := metrics.Instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/donations", nil))

		w := httptest.NewRecorder()
		metrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		Expect(w.Body.String()).To(ContainSubstring(`sewa_http_requests_total{code="418",method="post"} 1`))
	})
})
