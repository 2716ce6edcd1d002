package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manucr/tienda-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures user persistence as needed by the auth handlers.
// CreateUser must return ErrAlreadyExists when the username is taken; the
// store's unique index, not the caller's pre-check, is the authoritative
// guard against concurrent registrations.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// ProductUpdate lists optional field changes for a partial product update.
// Nil fields are left untouched.
type ProductUpdate struct {
	Name        *string
	Price       *float64
	Quantity    *int
	Description *string
	Category    *string
	Image       *string
}

// ProductStore captures catalog persistence operations.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, update ProductUpdate) (models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	FindProductByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
}

// SaleStore captures the sale ledger operations.
type SaleStore interface {
	ListSales(ctx context.Context) ([]models.Sale, error)
	CreateSale(ctx context.Context, sale models.Sale) (models.Sale, error)
}
