package donation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/sewa-portal/internal"
	donationDatamodel "github.com/frahmantamala/sewa-portal/internal/core/datamodel/donation"
	"github.com/frahmantamala/sewa-portal/internal/core/events"
	"github.com/frahmantamala/sewa-portal/pkg/logger"
)

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// RepositoryAPI is the append-only store of payment intents.
type RepositoryAPI interface {
	Insert(ctx context.Context, intent *donationDatamodel.PaymentIntent) error
}

// HealthChecker is implemented by stores that can report their connectivity.
type HealthChecker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

type MetricsRecorder interface {
	DonationIntent(outcome string)
}

type ServiceAPI interface {
	CreateIntent(ctx context.Context, req *DonationRequest) (*LinkResult, error)
	RenderQR(link string) ([]byte, error)
}

type ServiceDeps struct {
	Repository RepositoryAPI
	Links      *LinkBuilder
	References *ReferenceGenerator
	QR         QREncoder
	Publisher  events.Publisher
	Metrics    MetricsRecorder
	Logger     *slog.Logger
}

type Service struct {
	repo       RepositoryAPI
	links      *LinkBuilder
	references *ReferenceGenerator
	qr         QREncoder
	publisher  events.Publisher
	metrics    MetricsRecorder
	logger     *slog.Logger
}

func NewService(deps ServiceDeps) *Service {
	s := &Service{
		repo:       deps.Repository,
		links:      deps.Links,
		references: deps.References,
		qr:         deps.QR,
		publisher:  deps.Publisher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
	if s.links == nil {
		s.links = NewLinkBuilder(internal.PayeeConfig{})
	}
	if s.references == nil {
		s.references = NewReferenceGenerator(nil)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// CreateIntent validates req, records a payment intent and returns the UPI
// link for it. Nothing is written when validation fails, and no link is
// returned when the write fails.
func (s *Service) CreateIntent(ctx context.Context, req *DonationRequest) (*LinkResult, error) {
	if err := req.Validate(); err != nil {
		s.record(OutcomeRejected)
		s.log(ctx).Warn("donation request rejected", "error", err)
		return nil, err
	}

	reference, now := s.references.Next()
	link := s.links.Build(req, reference)
	intent := NewPaymentIntent(req, reference, now)

	if err := s.repo.Insert(ctx, intent); err != nil {
		s.record(OutcomeFailed)
		s.log(ctx).Error("failed to persist payment intent", "error", err, "reference", reference)
		return nil, internal.NewPersistenceError(err)
	}

	s.record(OutcomeAccepted)
	s.log(ctx).Info("payment intent created",
		"reference", reference,
		"amount", intent.Amount,
		"currency", intent.Currency)

	if s.publisher != nil {
		event := events.NewDonationInitiatedEvent(reference, intent.Amount, intent.Currency, intent.Method)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.log(ctx).Error("failed to publish donation event", "error", err, "reference", reference)
		}
	}

	result := &LinkResult{
		Reference: reference,
		UpiLink:   link,
	}

	// the QR is only rendered for links whose intent is stored
	if s.qr != nil {
		img, err := s.qr.Encode(link)
		if err != nil {
			s.log(ctx).Warn("qr encoding failed, returning plain link", "error", err, "reference", reference)
		} else {
			result.QRCode = DataURL(img)
		}
	}

	return result, nil
}

// RenderQR encodes an existing UPI link as a PNG.
func (s *Service) RenderQR(link string) ([]byte, error) {
	if !IsUPILink(link) {
		return nil, internal.ErrInvalidUPILink
	}
	if s.qr == nil {
		return nil, qrUnavailable(fmt.Errorf("no qr encoder configured"))
	}
	img, err := s.qr.Encode(link)
	if err != nil {
		s.logger.Warn("qr encoding failed", "error", err)
		return nil, qrUnavailable(err)
	}
	return img, nil
}

// log prefers the request logger, which carries the trace id.
func (s *Service) log(ctx context.Context) *slog.Logger {
	if l, ok := logger.FromContext(ctx); ok {
		return l
	}
	return s.logger
}

func (s *Service) record(outcome string) {
	if s.metrics != nil {
		s.metrics.DonationIntent(outcome)
	}
}

func qrUnavailable(cause error) error {
	return internal.NewValidationError("QR code could not be generated", internal.ErrCodeQREncodingFailed).WithCause(cause)
}
