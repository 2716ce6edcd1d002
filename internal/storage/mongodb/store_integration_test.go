package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manucr/tienda-be/internal/models"
	"github.com/manucr/tienda-be/internal/storage"
)

// setupStore connects to the MongoDB instance named by TIENDA_TEST_MONGO_URI
// and returns a store over a unique throwaway database.
func setupStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("TIENDA_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("set TIENDA_TEST_MONGO_URI to run this integration test")
	}

	ctx := context.Background()
	dbName := fmt.Sprintf("tienda_test_%d", time.Now().UnixNano())
	store, err := NewStore(ctx, uri, dbName)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.client.Database(dbName).Drop(ctx)
		_ = store.Close(ctx)
	})
	return store
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "h1"})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	_, err = store.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "h2"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	found, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "h1", found.PasswordHash, "second registration overwrote the first")
}

func TestFindByUsernameNotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProductLifecycle(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.CreateProduct(ctx, models.Product{Name: "Widget", Price: 9.99, Quantity: 5})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())

	listed, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	newPrice := 12.50
	updated, err := store.UpdateProduct(ctx, created.ID, storage.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 12.50, updated.Price)
	assert.Equal(t, "Widget", updated.Name)

	require.NoError(t, store.DeleteProduct(ctx, created.ID))
	assert.ErrorIs(t, store.DeleteProduct(ctx, created.ID), storage.ErrNotFound)

	listed, err = store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestUpdateProductNotFound(t *testing.T) {
	store := setupStore(t)

	name := "Nothing"
	_, err := store.UpdateProduct(context.Background(), primitive.NewObjectID(), storage.ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSaleRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	product, err := store.CreateProduct(ctx, models.Product{Name: "Widget", Price: 9.99, Quantity: 5})
	require.NoError(t, err)

	sale, err := store.CreateSale(ctx, models.Sale{
		ProductID:  product.ID,
		Quantity:   2,
		TotalPrice: 19.98,
		Date:       time.Now().UTC().Truncate(time.Millisecond),
	})
	require.NoError(t, err)
	assert.False(t, sale.ID.IsZero())

	sales, err := store.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, product.ID, sales[0].ProductID)
	assert.Equal(t, 19.98, sales[0].TotalPrice)
}
