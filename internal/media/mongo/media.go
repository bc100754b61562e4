package mongo

import (
	"context"
	"fmt"

	mediaDatamodel "github.com/frahmantamala/sewa-portal/internal/core/datamodel/media"
	"github.com/frahmantamala/sewa-portal/internal/media"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MediaAssetsCollection = "media_assets"

type MediaStore struct {
	coll *mongo.Collection
}

func NewMediaStore(db *mongo.Database) *MediaStore {
	return &MediaStore{coll: db.Collection(MediaAssetsCollection)}
}

var _ media.RepositoryAPI = (*MediaStore)(nil)

func (s *MediaStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "uploadedAt", Value: -1}}, Options: options.Index().SetName("kind_1_uploadedAt_-1")},
		{Keys: bson.D{{Key: "objectKey", Value: 1}}, Options: options.Index().SetName("objectKey_1").SetUnique(true)},
	})
	return err
}

func (s *MediaStore) Insert(ctx context.Context, asset *mediaDatamodel.MediaAsset) error {
	_, err := s.coll.InsertOne(ctx, asset)
	return err
}

func (s *MediaStore) List(ctx context.Context, kind string, limit int) ([]*mediaDatamodel.MediaAsset, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "uploadedAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, bson.D{{Key: "kind", Value: kind}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find media assets: %w", err)
	}
	defer cursor.Close(ctx)

	var assets []*mediaDatamodel.MediaAsset
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, fmt.Errorf("decode media assets: %w", err)
	}
	return assets, nil
}
