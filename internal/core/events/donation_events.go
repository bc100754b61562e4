package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeDonationInitiated = "donation.initiated"
	EventTypeMediaUploaded     = "media.uploaded"
)

type DonationInitiatedEvent struct {
	BaseEvent
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Method    string  `json:"method"`
}

func NewDonationInitiatedEvent(reference string, amount float64, currency, method string) *DonationInitiatedEvent {
	return &DonationInitiatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDonationInitiated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"reference": reference,
				"amount":    amount,
				"currency":  currency,
				"method":    method,
			},
		},
		Reference: reference,
		Amount:    amount,
		Currency:  currency,
		Method:    method,
	}
}

type MediaUploadedEvent struct {
	BaseEvent
	AssetID   string `json:"asset_id"`
	Kind      string `json:"kind"`
	ObjectKey string `json:"object_key"`
	Size      int64  `json:"size"`
}

func NewMediaUploadedEvent(assetID, kind, objectKey string, size int64) *MediaUploadedEvent {
	return &MediaUploadedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeMediaUploaded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"asset_id":   assetID,
				"kind":       kind,
				"object_key": objectKey,
				"size":       size,
			},
		},
		AssetID:   assetID,
		Kind:      kind,
		ObjectKey: objectKey,
		Size:      size,
	}
}

// PartitionKey returns the key used to keep events for one entity ordered
// on a partitioned transport.
func PartitionKey(event Event) string {
	switch e := event.(type) {
	case *DonationInitiatedEvent:
		return e.Reference
	case *MediaUploadedEvent:
		return e.AssetID
	default:
		return event.EventID()
	}
}
