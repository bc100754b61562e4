package media_test

import (
	"strings"

	"github.com/frahmantamala/sewa-portal/internal/media"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Media helpers", func() {
	DescribeTable("SanitizeFileName",
		func(in, out string) {
			Expect(media.SanitizeFileName(in)).To(Equal(out))
		},
		Entry("plain", "report.pdf", "report.pdf"),
		Entry("spaces and case", "Annual Report 2023.PDF", "annual-report-2023.pdf"),
		Entry("path traversal", "../../etc/passwd", "passwd"),
		Entry("windows path", `C:\Users\me\photo.jpg`, "photo.jpg"),
		Entry("non ascii", "स्वास्थ्य शिविर.png", "png"),
		Entry("empty", "", "file"),
		Entry("only symbols", "###", "file"),
	)

	It("should cap long names", func() {
		name := strings.Repeat("a", 300) + ".png"
		Expect(len(media.SanitizeFileName(name))).To(Equal(100))
		Expect(media.SanitizeFileName(name)).To(HaveSuffix(".png"))
	})

	It("should build kind-scoped object keys", func() {
		Expect(media.ObjectKey(media.KindReport, "id-1", "Q1 Report.pdf")).To(Equal("report/id-1-q1-report.pdf"))
	})

	DescribeTable("SniffContentType",
		func(data []byte, expected string) {
			Expect(media.SniffContentType(data)).To(Equal(expected))
		},
		Entry("png", pngHeader, "image/png"),
		Entry("pdf", pdfHeader, "application/pdf"),
		Entry("jpeg", []byte("\xff\xd8\xff\xe0\x00\x10JFIF"), "image/jpeg"),
		Entry("gif", []byte("GIF89a\x01\x00"), "image/gif"),
		Entry("text drops charset", []byte("hello"), "text/plain"),
	)

	DescribeTable("ClampLimit",
		func(in, out int) {
			Expect(media.ClampLimit(in)).To(Equal(out))
		},
		Entry("unset", 0, media.DefaultGalleryLimit),
		Entry("negative", -4, media.DefaultGalleryLimit),
		Entry("within", 20, 20),
		Entry("above max", 1000, media.MaxGalleryLimit),
	)

	It("should scope allowed types per kind", func() {
		spec, ok := media.LookupKind(media.KindMedia)
		Expect(ok).To(BeTrue())
		Expect(spec.Allows("video/mp4")).To(BeTrue())
		Expect(spec.Allows("application/pdf")).To(BeFalse())

		_, ok = media.LookupKind("audio")
		Expect(ok).To(BeFalse())
	})
})
