package donation_test

import (
	"math"
	"net/http"

	"github.com/frahmantamala/sewa-portal/internal"
	"github.com/frahmantamala/sewa-portal/internal/donation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseDonationRequest", func() {
	DescribeTable("should reject bodies that are not valid JSON",
		func(body string) {
			_, err := donation.ParseDonationRequest([]byte(body))
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(appErr.Message).To(Equal("Invalid JSON"))
		},
		Entry("empty", ""),
		Entry("whitespace", "   \n"),
		Entry("truncated", `{"amount": 5`),
		Entry("form encoded", `amount=5`),
	)

	It("should default the note and leave donors unset", func() {
		req, err := donation.ParseDonationRequest([]byte(`{"amount": 500}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Amount).To(Equal(500.0))
		Expect(req.Note).To(Equal(donation.DefaultNote))
		Expect(req.DonorName).To(BeNil())
		Expect(req.DonorEmail).To(BeNil())
	})

	It("should pass optional fields through", func() {
		req, err := donation.ParseDonationRequest([]byte(`{"amount":"250","donor_name":"Asha","donor_email":"asha@example.org","note":"For books"}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Amount).To(Equal(250.0))
		Expect(*req.DonorName).To(Equal("Asha"))
		Expect(*req.DonorEmail).To(Equal("asha@example.org"))
		Expect(req.Note).To(Equal("For books"))
	})

	It("should round to paise", func() {
		req, err := donation.ParseDonationRequest([]byte(`{"amount": 100.456}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Amount).To(Equal(100.46))
	})

	DescribeTable("should leave the amount invalid for Validate",
		func(body string) {
			req, err := donation.ParseDonationRequest([]byte(body))
			Expect(err).NotTo(HaveOccurred())

			err = req.Validate()
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusUnprocessableEntity))
			Expect(appErr.GetDetailedMessage()).To(Equal("Amount must be positive"))
		},
		Entry("missing", `{}`),
		Entry("null", `{"amount": null}`),
		Entry("text", `{"amount": "abc"}`),
		Entry("boolean", `{"amount": true}`),
		Entry("zero", `{"amount": 0}`),
		Entry("negative", `{"amount": -5}`),
		Entry("rounds to zero", `{"amount": 0.004}`),
		Entry("empty array", `[]`),
		Entry("array", `[1,2]`),
		Entry("null body", `null`),
		Entry("bare number", `42`),
	)

	It("should reject amounts beyond the stored precision", func() {
		req, err := donation.ParseDonationRequest([]byte(`{"amount": 1e20}`))
		Expect(err).NotTo(HaveOccurred())

		err = req.Validate()
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusUnprocessableEntity))
		Expect(appErr.GetDetailedMessage()).To(Equal("Amount must not exceed 9999999999.99"))
	})

	It("should accept the largest storable amount", func() {
		req, err := donation.ParseDonationRequest([]byte(`{"amount": 9999999999.99}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Validate()).To(Succeed())
	})

	DescribeTable("should default the note only when none is submitted",
		func(body, expected string) {
			req, err := donation.ParseDonationRequest([]byte(body))
			Expect(err).NotTo(HaveOccurred())
			Expect(req.Note).To(Equal(expected))
		},
		Entry("absent", `{"amount": 1}`, donation.DefaultNote),
		Entry("null", `{"amount": 1, "note": null}`, donation.DefaultNote),
		Entry("empty", `{"amount": 1, "note": ""}`, donation.DefaultNote),
		Entry("whitespace is kept", `{"amount": 1, "note": "   "}`, "   "),
	)

	It("should mark a missing amount as NaN", func() {
		req, err := donation.ParseDonationRequest([]byte(`{"note":"hi"}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(math.IsNaN(req.Amount)).To(BeTrue())
	})
})
