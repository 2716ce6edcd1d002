// Package cart implements the client-local shopping cart state. A cart is an
// ordered sequence of line items with at most one line per product; all
// operations are pure and leave their input untouched.
package cart

import "github.com/manucr/tienda-be/internal/models"

// Item is one cart line.
type Item struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// Add merges a product into the cart: an existing line for the same product
// gains one unit, otherwise a new line with quantity 1 is appended. Relative
// order of existing lines is preserved.
func Add(items []Item, product models.Product) []Item {
	id := product.ID.Hex()
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ProductID == id {
			out[i].Quantity++
			return out
		}
	}
	return append(out, Item{
		ProductID: id,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
	})
}

// Remove drops the line for the given product. Removing an absent product is
// a no-op.
func Remove(items []Item, productID string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

// SetQuantity replaces a line's quantity. Quantities below one are rejected
// and the cart is returned unchanged, as is a product with no line.
func SetQuantity(items []Item, productID string, quantity int) []Item {
	if quantity < 1 {
		return items
	}
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Quantity = quantity
			break
		}
	}
	return out
}

// Clear returns the empty cart.
func Clear() []Item {
	return nil
}

// Total returns the price-times-quantity sum across all lines.
func Total(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Count returns the total number of units in the cart.
func Count(items []Item) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
