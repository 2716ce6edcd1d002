package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manucr/tienda-be/internal/http/respond"
	"github.com/manucr/tienda-be/internal/models"
	"github.com/manucr/tienda-be/internal/models/dto"
	"github.com/manucr/tienda-be/internal/storage"
)

// SaleHandler owns the sale ledger endpoints. It also consults the product
// store to resolve references.
type SaleHandler struct {
	sales    storage.SaleStore
	products storage.ProductStore
}

// NewSaleHandler constructs the handler.
func NewSaleHandler(sales storage.SaleStore, products storage.ProductStore) *SaleHandler {
	return &SaleHandler{sales: sales, products: products}
}

// Register attaches the sale routes to the mux.
func (h *SaleHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/sales", h.handleList)
	mux.HandleFunc("POST /api/sales", h.handleCreate)
}

func (h *SaleHandler) handleList(w http.ResponseWriter, r *http.Request) {
	sales, err := h.sales.ListSales(r.Context())
	if err != nil {
		log.Printf("sales: list failed: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list sales")
		return
	}

	// Expand each product reference with a dependent lookup. A sale whose
	// product has since been deleted lists with a null product.
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		resp := dto.SaleResponse{
			ID:         sale.ID.Hex(),
			Quantity:   sale.Quantity,
			TotalPrice: sale.TotalPrice,
			Date:       sale.Date,
		}
		product, err := h.products.FindProductByID(r.Context(), sale.ProductID)
		if err == nil {
			resp.Product = &product
		} else if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("sales: expand product %s failed: %v", sale.ProductID.Hex(), err)
			respond.Error(w, http.StatusInternalServerError, "failed to list sales")
			return
		}
		out = append(out, resp)
	}
	respond.JSON(w, http.StatusOK, out)
}

func (h *SaleHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input dto.SaleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if input.ProductID == "" {
		respond.Error(w, http.StatusBadRequest, "productId is required")
		return
	}
	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if input.Quantity < 1 {
		respond.Error(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}
	if input.TotalPrice < 0 {
		respond.Error(w, http.StatusBadRequest, "totalPrice must not be negative")
		return
	}

	// A sale must reference a product that exists at the time of sale.
	if _, err := h.products.FindProductByID(r.Context(), productID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusBadRequest, "product not found")
			return
		}
		log.Printf("sales: product lookup %s failed: %v", productID.Hex(), err)
		respond.Error(w, http.StatusInternalServerError, "failed to create sale")
		return
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = *input.Date
	}

	created, err := h.sales.CreateSale(r.Context(), models.Sale{
		ProductID:  productID,
		Quantity:   input.Quantity,
		TotalPrice: input.TotalPrice,
		Date:       date,
	})
	if err != nil {
		log.Printf("sales: create failed: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create sale")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}
