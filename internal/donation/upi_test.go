package donation_test

import (
	"net/url"
	"strings"

	"github.com/frahmantamala/sewa-portal/internal"
	"github.com/frahmantamala/sewa-portal/internal/donation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LinkBuilder", func() {
	var builder *donation.LinkBuilder

	BeforeEach(func() {
		builder = donation.NewLinkBuilder(internal.PayeeConfig{})
	})

	It("should fall back to the default payee", func() {
		Expect(builder.PayeeVPA()).To(Equal(donation.DefaultPayeeVPA))
		Expect(builder.PayeeName()).To(Equal(donation.DefaultPayeeName))
	})

	It("should use the configured payee", func() {
		builder = donation.NewLinkBuilder(internal.PayeeConfig{VPA: "trust@okaxis", Name: "Gram Trust"})

		link := builder.Build(&donation.DonationRequest{Amount: 1, Note: "x"}, "DON-1")
		Expect(link).To(HavePrefix("upi://pay?pa=trust%40okaxis&pn=Gram%20Trust&"))
	})

	It("should emit parameters in a fixed order", func() {
		link := builder.Build(&donation.DonationRequest{Amount: 500, Note: "Website Donation"}, "DON-1700000000000")
		Expect(link).To(Equal("upi://pay?pa=sewafoundation%40sbi&pn=Sewa%20Foundation&am=500.00&cu=INR&tn=Website%20Donation&tr=DON-1700000000000"))
	})

	DescribeTable("should render amounts with two fraction digits",
		func(amount float64, expected string) {
			link := builder.Build(&donation.DonationRequest{Amount: amount, Note: "n"}, "DON-1")
			Expect(link).To(ContainSubstring("&am=" + expected + "&"))
		},
		Entry("integer", 500.0, "500.00"),
		Entry("one decimal", 100.5, "100.50"),
		Entry("two decimals", 99.99, "99.99"),
		Entry("small", 0.01, "0.01"),
	)

	It("should encode reserved characters in the note", func() {
		link := builder.Build(&donation.DonationRequest{Amount: 1, Note: "food & shelter=50%"}, "DON-1")
		Expect(link).To(ContainSubstring("&tn=food%20%26%20shelter%3D50%25&"))
	})

	It("should leave the encodeURIComponent mark characters unescaped", func() {
		link := builder.Build(&donation.DonationRequest{Amount: 1, Note: "a!b*c'(d)~ e+f"}, "DON-1")
		Expect(link).To(ContainSubstring("&tn=a!b*c'(d)~%20e%2Bf&"))

		parsed, err := url.Parse(link)
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.Query().Get("tn")).To(Equal("a!b*c'(d)~ e+f"))
	})

	It("should truncate the note to 40 characters before encoding", func() {
		note := strings.Repeat("a", 38) + "ब्द" + "tail"
		link := builder.Build(&donation.DonationRequest{Amount: 1, Note: note}, "DON-1")

		parsed, err := url.Parse(link)
		Expect(err).NotTo(HaveOccurred())
		tn := parsed.Query().Get("tn")
		Expect([]rune(tn)).To(HaveLen(40))
		Expect(tn).To(Equal(string([]rune(note)[:40])))
	})

	It("should recognise links it produced", func() {
		link := builder.Build(&donation.DonationRequest{Amount: 1, Note: "n"}, "DON-1")
		Expect(donation.IsUPILink(link)).To(BeTrue())
		Expect(donation.IsUPILink("upi://pay?")).To(BeFalse())
		Expect(donation.IsUPILink("https://pay.example")).To(BeFalse())
	})
})
