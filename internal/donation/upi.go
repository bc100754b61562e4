package donation

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/frahmantamala/sewa-portal/internal"
	donationDatamodel "github.com/frahmantamala/sewa-portal/internal/core/datamodel/donation"
)

const (
	DefaultPayeeVPA  = "sewafoundation@sbi"
	DefaultPayeeName = "Sewa Foundation"

	upiPayPrefix = "upi://pay?"
)

// LinkBuilder formats upi://pay deep links for a fixed payee.
type LinkBuilder struct {
	payeeVPA  string
	payeeName string
}

func NewLinkBuilder(cfg internal.PayeeConfig) *LinkBuilder {
	b := &LinkBuilder{payeeVPA: cfg.VPA, payeeName: cfg.Name}
	if b.payeeVPA == "" {
		b.payeeVPA = DefaultPayeeVPA
	}
	if b.payeeName == "" {
		b.payeeName = DefaultPayeeName
	}
	return b
}

func (b *LinkBuilder) PayeeVPA() string  { return b.payeeVPA }
func (b *LinkBuilder) PayeeName() string { return b.payeeName }

// Build renders pa, pn, am, cu, tn and tr in that order. Wallets ignore the
// order but golden outputs depend on it.
func (b *LinkBuilder) Build(req *DonationRequest, reference string) string {
	params := [][2]string{
		{"pa", b.payeeVPA},
		{"pn", b.payeeName},
		{"am", FormatAmount(req.Amount)},
		{"cu", donationDatamodel.CurrencyINR},
		{"tn", TruncateNote(req.Note)},
		{"tr", reference},
	}

	var sb strings.Builder
	sb.WriteString(upiPayPrefix)
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p[0])
		sb.WriteByte('=')
		sb.WriteString(encodeComponent(p[1]))
	}
	return sb.String()
}

// IsUPILink reports whether link looks like something Build produced.
func IsUPILink(link string) bool {
	return strings.HasPrefix(link, upiPayPrefix) && len(link) > len(upiPayPrefix)
}

// FormatAmount renders amount with exactly two fraction digits.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// componentUnescaper restores the characters encodeURIComponent leaves
// alone but url.QueryEscape escapes, so links match browser-built ones.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes s the way encodeURIComponent does.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
