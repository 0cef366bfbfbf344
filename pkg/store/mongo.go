package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/orrery/pkg/layout"
)

const collectionName = "layouts"

// MongoStore persists layouts in a MongoDB collection. Suited to the server,
// where stored layouts must survive restarts and be visible to replicas.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// storedDoc wraps a layout with its id and save time for persistence.
type storedDoc struct {
	ID      string        `bson:"_id"`
	SavedAt time.Time     `bson:"saved_at"`
	Layout  layout.Layout `bson:"layout"`
}

// NewMongoStore connects to the MongoDB at uri and stores layouts in the
// given database. The connection is verified with a ping so a misconfigured
// uri fails at startup rather than on first use.
func NewMongoStore(ctx context.Context, uri, db string) (Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(collectionName),
	}, nil
}

// Save stores the layout under a fresh uuid and returns it.
func (s *MongoStore) Save(ctx context.Context, l *layout.Layout) (string, error) {
	doc := storedDoc{ID: uuid.NewString(), SavedAt: time.Now().UTC(), Layout: *l}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID, nil
}

// Get retrieves a stored layout by id.
func (s *MongoStore) Get(ctx context.Context, id string) (*layout.Layout, error) {
	var doc storedDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc.Layout, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
