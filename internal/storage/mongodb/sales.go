package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manucr/tienda-be/internal/models"
)

// ListSales returns every recorded sale.
func (s *Store) ListSales(ctx context.Context) ([]models.Sale, error) {
	cur, err := s.sales.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	sales := []models.Sale{}
	if err := cur.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("decode sales: %w", err)
	}
	return sales, nil
}

// CreateSale inserts a sale document as given.
func (s *Store) CreateSale(ctx context.Context, sale models.Sale) (models.Sale, error) {
	res, err := s.sales.InsertOne(ctx, sale)
	if err != nil {
		return models.Sale{}, fmt.Errorf("insert sale: %w", err)
	}
	sale.ID = res.InsertedID.(primitive.ObjectID)
	return sale, nil
}
