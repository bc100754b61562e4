package donation_test

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/sewa-portal/internal/donation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ReferenceGenerator", func() {
	It("should prefix the epoch milliseconds", func() {
		gen := donation.NewReferenceGenerator(fixedClock)

		ref, at := gen.Next()
		Expect(ref).To(Equal("DON-1700000000000"))
		Expect(at).To(Equal(fixedNow))
	})

	It("should be non-decreasing for a forward-moving clock", func() {
		tick := fixedNow
		gen := donation.NewReferenceGenerator(func() time.Time {
			tick = tick.Add(700 * time.Microsecond)
			return tick
		})

		pattern := regexp.MustCompile(`^DON-\d+$`)
		var last int64
		for i := 0; i < 20; i++ {
			ref, _ := gen.Next()
			Expect(ref).To(MatchRegexp(pattern.String()))
			n, err := strconv.ParseInt(strings.TrimPrefix(ref, donation.ReferencePrefix), 10, 64)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeNumerically(">=", last))
			last = n
		}
	})

	It("should repeat within the same millisecond", func() {
		gen := donation.NewReferenceGenerator(fixedClock)

		first, _ := gen.Next()
		second, _ := gen.Next()
		Expect(first).To(Equal(second))
	})

	It("should default to the wall clock", func() {
		before := time.Now().UnixMilli()
		ref, _ := donation.NewReferenceGenerator(nil).Next()
		n, err := strconv.ParseInt(strings.TrimPrefix(ref, "DON-"), 10, 64)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeNumerically(">=", before))
	})
})
