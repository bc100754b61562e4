package donation

import (
	"math"
	"time"

	errors "github.com/frahmantamala/sewa-portal/internal"
	"github.com/frahmantamala/sewa-portal/internal/core/common/validation"
	donationDatamodel "github.com/frahmantamala/sewa-portal/internal/core/datamodel/donation"
)

const (
	// DefaultNote is used as the UPI transaction note when none is submitted.
	DefaultNote = "Website Donation"

	// MaxNoteLength is the UPI tn field limit, counted in characters.
	MaxNoteLength = 40

	// MaxAmount is the largest value payment_intents.amount NUMERIC(12,2) holds.
	MaxAmount = 9999999999.99
)

// DonationRequest is a normalized donation submission. Amount is already
// rounded to paise; it is NaN when the submitted value was missing or not a number.
type DonationRequest struct {
	Amount     float64
	DonorName  *string
	DonorEmail *string
	Note       string
}

// ErrAmountTooLarge rejects amounts the intent store cannot represent.
var ErrAmountTooLarge = errors.NewValidationError("Amount must not exceed "+FormatAmount(MaxAmount), errors.ErrCodeInvalidAmount)

// Validate enforces the only server-side rule: a positive amount that fits
// the stored precision.
func (r *DonationRequest) Validate() error {
	validator := validation.NewValidator()

	validator.Field("amount", r.Amount).
		Positive(errors.ErrInvalidAmount.Message, errors.ErrCodeInvalidAmount).
		Max(MaxAmount, ErrAmountTooLarge.Message, errors.ErrCodeInvalidAmount)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// NewPaymentIntent assembles the record persisted for an accepted request.
func NewPaymentIntent(req *DonationRequest, reference string, createdAt time.Time) *donationDatamodel.PaymentIntent {
	return &donationDatamodel.PaymentIntent{
		Amount:     req.Amount,
		Currency:   donationDatamodel.CurrencyINR,
		Method:     donationDatamodel.MethodUPI,
		Status:     donationDatamodel.StatusInitiated,
		Reference:  reference,
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		Meta:       donationDatamodel.Meta{Note: req.Note},
		CreatedAt:  createdAt,
	}
}

func roundToMinorUnits(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// TruncateNote keeps the first MaxNoteLength characters of note.
func TruncateNote(note string) string {
	runes := []rune(note)
	if len(runes) <= MaxNoteLength {
		return note
	}
	return string(runes[:MaxNoteLength])
}
