package dto

import (
	"time"

	"github.com/manucr/tienda-be/internal/models"
)

// SaleInput is the create-sale payload. Date is optional and defaults to the
// time of creation.
type SaleInput struct {
	ProductID  string     `json:"productId"`
	Quantity   int        `json:"quantity"`
	TotalPrice float64    `json:"totalPrice"`
	Date       *time.Time `json:"date"`
}

// SaleResponse is a sale with its product reference resolved. Product is null
// when the referenced product no longer exists.
type SaleResponse struct {
	ID         string          `json:"id"`
	Product    *models.Product `json:"productId"`
	Quantity   int             `json:"quantity"`
	TotalPrice float64         `json:"totalPrice"`
	Date       time.Time       `json:"date"`
}
