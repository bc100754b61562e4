package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/sewa-portal/internal"
	"github.com/frahmantamala/sewa-portal/internal/core/common/validation"
	"github.com/frahmantamala/sewa-portal/internal/core/events"
	"github.com/frahmantamala/sewa-portal/pkg/logger"
	"github.com/google/uuid"
)

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type RepositoryAPI interface {
	Insert(ctx context.Context, asset *MediaAsset) error
	// List returns assets of kind, newest first.
	List(ctx context.Context, kind string, limit int) ([]*MediaAsset, error)
}

// ObjectStorage stores file bodies and returns their public URL.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

type MetricsRecorder interface {
	MediaUpload(kind, outcome string)
}

type ServiceAPI interface {
	Upload(ctx context.Context, input *UploadInput) (*MediaAsset, error)
	List(ctx context.Context, kind string, limit int) ([]*MediaAsset, error)
}

type ServiceDeps struct {
	Repository RepositoryAPI
	Storage    ObjectStorage
	Publisher  events.Publisher
	Metrics    MetricsRecorder
	Logger     *slog.Logger
	Now        func() time.Time
	NewID      func() string
}

type Service struct {
	repo      RepositoryAPI
	storage   ObjectStorage
	publisher events.Publisher
	metrics   MetricsRecorder
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

func NewService(deps ServiceDeps) *Service {
	s := &Service{
		repo:      deps.Repository,
		storage:   deps.Storage,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		now:       deps.Now,
		newID:     deps.NewID,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.New().String() }
	}
	return s
}

// Upload validates the file against its kind, stores the body and records
// the metadata. A metadata failure after a successful put leaves the object
// in place; its key is logged.
func (s *Service) Upload(ctx context.Context, input *UploadInput) (*MediaAsset, error) {
	if err := validateUpload(input); err != nil {
		return nil, err
	}
	spec, _ := LookupKind(input.Kind)

	if len(input.Data) == 0 {
		s.record(spec.Kind, OutcomeRejected)
		return nil, internal.ErrMissingFile
	}

	size := int64(len(input.Data))
	if size > spec.MaxBytes {
		s.record(spec.Kind, OutcomeRejected)
		return nil, internal.NewTooLargeError(fmt.Sprintf("file exceeds the %d MiB limit", spec.MaxBytes>>20))
	}

	contentType := SniffContentType(input.Data)
	if !spec.Allows(contentType) {
		s.record(spec.Kind, OutcomeRejected)
		return nil, internal.NewUnsupportedMediaError(fmt.Sprintf("file type %s is not allowed for %s uploads", contentType, spec.Kind))
	}

	id := s.newID()
	key := ObjectKey(spec.Kind, id, input.FileName)

	url, err := s.storage.Put(ctx, key, contentType, bytes.NewReader(input.Data), size)
	if err != nil {
		s.record(spec.Kind, OutcomeFailed)
		s.log(ctx).Error("object upload failed", "error", err, "key", key)
		return nil, internal.NewExternalError("upload failed", internal.ErrCodeUploadFailed, err)
	}

	asset := &MediaAsset{
		ID:          id,
		Kind:        spec.Kind,
		Title:       strings.TrimSpace(input.Title),
		FileName:    input.FileName,
		ContentType: contentType,
		Size:        size,
		ObjectKey:   key,
		URL:         url,
		UploadedAt:  s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, asset); err != nil {
		s.record(spec.Kind, OutcomeFailed)
		s.log(ctx).Error("media metadata write failed, object orphaned", "error", err, "orphaned_key", key)
		return nil, internal.NewPersistenceError(err)
	}

	s.record(spec.Kind, OutcomeAccepted)
	s.log(ctx).Info("media uploaded", "id", id, "kind", spec.Kind, "key", key, "size", size)

	if s.publisher != nil {
		event := events.NewMediaUploadedEvent(id, spec.Kind, key, size)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.log(ctx).Error("failed to publish media event", "error", err, "id", id)
		}
	}

	return asset, nil
}

func (s *Service) List(ctx context.Context, kind string, limit int) ([]*MediaAsset, error) {
	if kind == "" {
		kind = KindMedia
	}
	validator := validation.NewValidator()
	validator.Field("kind", kind).OneOf(Kinds(), internal.ErrCodeInvalidKind)
	if appErr := validator.Validate(); appErr != nil {
		return nil, appErr
	}

	assets, err := s.repo.List(ctx, kind, ClampLimit(limit))
	if err != nil {
		s.log(ctx).Error("failed to list media", "error", err, "kind", kind)
		return nil, internal.NewPersistenceError(err)
	}
	if assets == nil {
		assets = []*MediaAsset{}
	}
	return assets, nil
}

func validateUpload(input *UploadInput) error {
	validator := validation.NewValidator()

	validator.Field("kind", input.Kind).OneOf(Kinds(), internal.ErrCodeInvalidKind)
	validator.Field("title", strings.TrimSpace(input.Title)).MaxLength(MaxTitleLength)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// log prefers the request logger, which carries the trace id.
func (s *Service) log(ctx context.Context) *slog.Logger {
	if l, ok := logger.FromContext(ctx); ok {
		return l
	}
	return s.logger
}

func (s *Service) record(kind, outcome string) {
	if s.metrics != nil {
		s.metrics.MediaUpload(kind, outcome)
	}
}
