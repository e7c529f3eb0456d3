package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/bannersmith/pkg/banner"
	"github.com/matzehuels/bannersmith/pkg/errors"
)

const (
	mongoDatabase   = "bannersmith"
	mongoCollection = "compositions"
)

// MongoStore persists compositions in a MongoDB collection, one document
// per banner keyed by banner_id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "pinging mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(mongoDatabase).Collection(mongoCollection),
	}, nil
}

// Load fetches the banner's document.
func (s *MongoStore) Load(ctx context.Context, bannerID string) (comp *banner.Composition, err error) {
	defer func() { observeLoad(ctx, bannerID, err) }()

	var doc banner.Composition
	err = s.coll.FindOne(ctx, bson.M{"banner_id": bannerID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "reading banner %s", bannerID)
	}
	return &doc, nil
}

// Save upserts the banner's document.
func (s *MongoStore) Save(ctx context.Context, bannerID string, comp *banner.Composition) (err error) {
	defer func() { observeSave(ctx, bannerID, err) }()

	_, err = s.coll.ReplaceOne(ctx,
		bson.M{"banner_id": bannerID},
		comp,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "writing banner %s", bannerID)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
