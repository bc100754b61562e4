package mongo

import (
	"context"

	donationDatamodel "github.com/frahmantamala/sewa-portal/internal/core/datamodel/donation"
	"github.com/frahmantamala/sewa-portal/internal/donation"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const PaymentIntentsCollection = "payment_intents"

// PaymentIntentStore appends payment intents to a single collection. It
// does not own the client; whoever connected it disconnects it.
type PaymentIntentStore struct {
	coll *mongo.Collection
}

func NewPaymentIntentStore(db *mongo.Database) *PaymentIntentStore {
	return &PaymentIntentStore{coll: db.Collection(PaymentIntentsCollection)}
}

var _ donation.RepositoryAPI = (*PaymentIntentStore)(nil)

func (s *PaymentIntentStore) Insert(ctx context.Context, intent *donationDatamodel.PaymentIntent) error {
	_, err := s.coll.InsertOne(ctx, intent)
	return err
}

// EnsureIndexes creates the lookup indexes. The reference index is not
// unique because references minted in the same millisecond collide.
func (s *PaymentIntentStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "reference", Value: 1}}, Options: options.Index().SetName("reference_1")},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("createdAt_-1")},
	})
	return err
}

func (s *PaymentIntentStore) Name() string {
	return "mongo"
}

func (s *PaymentIntentStore) HealthCheck(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}
