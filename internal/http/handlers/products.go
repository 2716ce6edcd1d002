package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manucr/tienda-be/internal/http/respond"
	"github.com/manucr/tienda-be/internal/models"
	"github.com/manucr/tienda-be/internal/models/dto"
	"github.com/manucr/tienda-be/internal/storage"
)

// ProductHandler owns the catalog CRUD endpoints.
type ProductHandler struct {
	store storage.ProductStore
}

// NewProductHandler constructs the handler.
func NewProductHandler(store storage.ProductStore) *ProductHandler {
	return &ProductHandler{store: store}
}

// Register attaches the product routes to the mux.
func (h *ProductHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.handleList)
	mux.HandleFunc("POST /api/products", h.handleCreate)
	mux.HandleFunc("PUT /api/products/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /api/products/{id}", h.handleDelete)
}

func (h *ProductHandler) handleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		log.Printf("products: list failed: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	respond.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input dto.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validateNewProduct(input); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	product := models.Product{
		Name:     strings.TrimSpace(*input.Name),
		Price:    *input.Price,
		Quantity: *input.Quantity,
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Image != nil {
		product.Image = *input.Image
	}

	created, err := h.store.CreateProduct(r.Context(), product)
	if err != nil {
		log.Printf("products: create failed: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var input dto.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validateProductUpdate(input); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.store.UpdateProduct(r.Context(), id, storage.ProductUpdate{
		Name:        input.Name,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Description: input.Description,
		Category:    input.Category,
		Image:       input.Image,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "product not found")
			return
		}
		log.Printf("products: update %s failed: %v", id.Hex(), err)
		respond.Error(w, http.StatusInternalServerError, "failed to update product")
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		// A malformed id cannot match any product.
		respond.Error(w, http.StatusNotFound, "product not found")
		return
	}
	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "product not found")
			return
		}
		log.Printf("products: delete %s failed: %v", id.Hex(), err)
		respond.Error(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	respond.NoContent(w)
}

func validateNewProduct(input dto.ProductInput) error {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return errors.New("name is required")
	}
	if input.Price == nil {
		return errors.New("price is required")
	}
	if input.Quantity == nil {
		return errors.New("quantity is required")
	}
	return validateProductUpdate(input)
}

func validateProductUpdate(input dto.ProductInput) error {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return errors.New("name must not be empty")
	}
	if input.Price != nil && *input.Price < 0 {
		return errors.New("price must not be negative")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	return nil
}
