package donation

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	errors "github.com/frahmantamala/sewa-portal/internal"
)

// LinkResult is returned to the caller for an accepted donation.
type LinkResult struct {
	Reference string `json:"reference"`
	UpiLink   string `json:"upiLink"`
	QRCode    string `json:"qrCode,omitempty"`
}

// ParseDonationRequest decodes a request body. It fails only when the body is
// not valid JSON; amount problems are left for Validate.
func ParseDonationRequest(body []byte) (*DonationRequest, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.ErrInvalidJSON
	}

	if !json.Valid(trimmed) {
		return nil, errors.ErrInvalidJSON
	}

	// arrays, scalars and null parse but carry no fields, so the amount is
	// missing and Validate rejects them
	var fields map[string]json.RawMessage
	_ = json.Unmarshal(trimmed, &fields)

	req := &DonationRequest{
		Amount:     math.NaN(),
		DonorName:  optionalString(fields["donor_name"]),
		DonorEmail: optionalString(fields["donor_email"]),
		Note:       DefaultNote,
	}

	if amount, ok := parseAmount(fields["amount"]); ok {
		req.Amount = roundToMinorUnits(amount)
	}

	if note := optionalString(fields["note"]); note != nil {
		req.Note = *note
	}

	return req, nil
}

// parseAmount accepts a JSON number or a numeric string.
func parseAmount(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}

	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// optionalString returns nil for absent, null, empty or non-string values.
func optionalString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return nil
	}
	return &s
}
