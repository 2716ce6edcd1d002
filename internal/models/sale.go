package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale records a completed purchase of a product. TotalPrice is supplied by
// the caller and stock on the referenced product is not adjusted; a sale is a
// recorded fact, not an inventory transaction.
type Sale struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID  primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	Date       time.Time          `bson:"date" json:"date"`
}
