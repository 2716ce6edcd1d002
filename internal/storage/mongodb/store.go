package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manucr/tienda-be/internal/storage"
)

// Compile-time checks that Store satisfies the storage interfaces.
var (
	_ storage.UserStore    = (*Store)(nil)
	_ storage.ProductStore = (*Store)(nil)
	_ storage.SaleStore    = (*Store)(nil)
)

// Store provides MongoDB-backed persistence for users, products, and sales.
type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	products *mongo.Collection
	sales    *mongo.Collection
}

// NewStore connects to MongoDB, verifies the connection, and ensures the
// indexes the stores rely on.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:   client,
		users:    db.Collection("users"),
		products: db.Collection("products"),
		sales:    db.Collection("sales"),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// Close releases the underlying client connections.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ensureIndexes creates the unique username index. Registration relies on it
// to reject duplicates that race past the handler's pre-check.
func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}
