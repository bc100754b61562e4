package postgres

import (
	"context"
	"fmt"

	donationDatamodel "github.com/frahmantamala/sewa-portal/internal/core/datamodel/donation"
	"github.com/frahmantamala/sewa-portal/internal/donation"
	"gorm.io/gorm"
)

type PaymentIntentRepository struct {
	db *gorm.DB
}

func NewPaymentIntentRepository(db *gorm.DB) *PaymentIntentRepository {
	return &PaymentIntentRepository{db: db}
}

var _ donation.RepositoryAPI = (*PaymentIntentRepository)(nil)

func (r *PaymentIntentRepository) Insert(ctx context.Context, intent *donationDatamodel.PaymentIntent) error {
	return r.db.WithContext(ctx).Create(intent).Error
}

func (r *PaymentIntentRepository) Name() string {
	return "postgres"
}

func (r *PaymentIntentRepository) HealthCheck(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("postgres handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
