package donation

import (
	"strconv"
	"time"
)

const ReferencePrefix = "DON-"

// Clock returns the current time. Tests substitute a fixed or stepping clock.
type Clock func() time.Time

// ReferenceGenerator derives transaction references from the wall clock.
// Two calls within the same millisecond yield the same reference; nothing
// here detects or resolves that.
type ReferenceGenerator struct {
	now Clock
}

func NewReferenceGenerator(now Clock) *ReferenceGenerator {
	if now == nil {
		now = time.Now
	}
	return &ReferenceGenerator{now: now}
}

// Next returns a reference together with the instant it was derived from.
func (g *ReferenceGenerator) Next() (string, time.Time) {
	at := g.now()
	return ReferenceAt(at), at
}

func ReferenceAt(t time.Time) string {
	return ReferencePrefix + strconv.FormatInt(t.UnixMilli(), 10)
}
