package dto

// ProductInput carries create and update payloads. Pointer fields distinguish
// "absent" from a zero value so PUT can apply partial updates.
type ProductInput struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
}
