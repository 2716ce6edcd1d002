package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manucr/tienda-be/internal/models"
	"github.com/manucr/tienda-be/internal/storage"
)

// ListProducts returns every product in the catalog.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	cur, err := s.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// CreateProduct inserts a new product document.
func (s *Store) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	res, err := s.products.InsertOne(ctx, product)
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return product, nil
}

// UpdateProduct applies the non-nil fields of update and returns the updated
// document. storage.ErrNotFound when no product has the given id.
func (s *Store) UpdateProduct(ctx context.Context, id primitive.ObjectID, update storage.ProductUpdate) (models.Product, error) {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}

	var product models.Product
	if len(set) == 0 {
		// Nothing to change; behave like a fetch.
		return s.FindProductByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.products.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, storage.ErrNotFound
		}
		return models.Product{}, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a product by id.
func (s *Store) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// FindProductByID fetches a single product by id.
func (s *Store) FindProductByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, storage.ErrNotFound
		}
		return models.Product{}, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}
