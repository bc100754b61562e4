package donation_test

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"

	"github.com/frahmantamala/sewa-portal/internal/donation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("QRCodeEncoder", func() {
	link := "upi://pay?pa=sewafoundation%40sbi&pn=Sewa%20Foundation&am=500.00&cu=INR&tn=Website%20Donation&tr=DON-1700000000000"

	It("should render a fixed-width PNG", func() {
		img, err := donation.NewQRCodeEncoder().Encode(link)
		Expect(err).NotTo(HaveOccurred())

		cfg, err := png.DecodeConfig(bytes.NewReader(img))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Width).To(Equal(donation.DefaultQRSize))
		Expect(cfg.Height).To(Equal(donation.DefaultQRSize))
	})

	It("should keep a light quiet zone", func() {
		img, err := donation.NewQRCodeEncoder().Encode(link)
		Expect(err).NotTo(HaveOccurred())

		decoded, err := png.Decode(bytes.NewReader(img))
		Expect(err).NotTo(HaveOccurred())
		r, g, b, _ := decoded.At(0, 0).RGBA()
		Expect([]uint32{r, g, b}).To(Equal([]uint32{0xffff, 0xffff, 0xffff}))
	})

	It("should fail for content beyond QR capacity", func() {
		_, err := donation.NewQRCodeEncoder().Encode(strings.Repeat("x", 4000))
		Expect(err).To(HaveOccurred())
	})

	It("should wrap PNG bytes in a data URL", func() {
		url := donation.DataURL([]byte{1, 2, 3})
		Expect(url).To(Equal("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{1, 2, 3})))
	})
})
