package postgres

import (
	"context"
	"fmt"

	mediaDatamodel "github.com/frahmantamala/sewa-portal/internal/core/datamodel/media"
	"github.com/frahmantamala/sewa-portal/internal/media"
	"gorm.io/gorm"
)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) media.RepositoryAPI {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Insert(ctx context.Context, asset *mediaDatamodel.MediaAsset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *MediaRepository) List(ctx context.Context, kind string, limit int) ([]*mediaDatamodel.MediaAsset, error) {
	var assets []*mediaDatamodel.MediaAsset
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("uploaded_at DESC").
		Limit(limit).
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("list media assets: %w", err)
	}
	return assets, nil
}
