package donation

import "time"

const (
	CurrencyINR     = "INR"
	MethodUPI       = "upi"
	StatusInitiated = "initiated"
)

// PaymentIntent is the record written once per accepted donation request.
// Status is advanced out-of-band; nothing in this service mutates a stored intent.
type PaymentIntent struct {
	ID         int64     `json:"-" gorm:"primaryKey" bson:"-"`
	Amount     float64   `json:"amount" gorm:"column:amount;type:numeric(12,2);not null" bson:"amount"`
	Currency   string    `json:"currency" gorm:"column:currency;not null" bson:"currency"`
	Method     string    `json:"method" gorm:"column:method;not null" bson:"method"`
	Status     string    `json:"status" gorm:"column:status;not null" bson:"status"`
	Reference  string    `json:"reference" gorm:"column:reference;not null;index" bson:"reference"`
	DonorName  *string   `json:"donor_name" gorm:"column:donor_name" bson:"donorName"`
	DonorEmail *string   `json:"donor_email" gorm:"column:donor_email" bson:"donorEmail"`
	Meta       Meta      `json:"meta" gorm:"embedded;embeddedPrefix:meta_" bson:"meta"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;not null" bson:"createdAt"`
}

type Meta struct {
	Note string `json:"note" gorm:"column:note" bson:"note"`
}

func (PaymentIntent) TableName() string {
	return "payment_intents"
}
