package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manucr/tienda-be/internal/auth"
	"github.com/manucr/tienda-be/internal/models"
	"github.com/manucr/tienda-be/internal/storage"
)

// In-memory fakes standing in for the Mongo-backed store.

type fakeUserStore struct {
	mu    sync.Mutex
	users []models.User

	// createErr, when set, is returned by CreateUser regardless of state.
	// Lets tests simulate the unique-index backstop firing after a clean
	// pre-check.
	createErr error
	findErr   error
}

func (f *fakeUserStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.User{}, f.createErr
	}
	for _, u := range f.users {
		if u.Username == user.Username {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return models.User{}, f.findErr
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

type fakeProductStore struct {
	mu       sync.Mutex
	products []models.Product
	listErr  error
}

func (f *fakeProductStore) ListProducts(context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeProductStore) CreateProduct(_ context.Context, product models.Product) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product.ID = primitive.NewObjectID()
	f.products = append(f.products, product)
	return product, nil
}

func (f *fakeProductStore) UpdateProduct(_ context.Context, id primitive.ObjectID, update storage.ProductUpdate) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID != id {
			continue
		}
		p := &f.products[i]
		if update.Name != nil {
			p.Name = *update.Name
		}
		if update.Price != nil {
			p.Price = *update.Price
		}
		if update.Quantity != nil {
			p.Quantity = *update.Quantity
		}
		if update.Description != nil {
			p.Description = *update.Description
		}
		if update.Category != nil {
			p.Category = *update.Category
		}
		if update.Image != nil {
			p.Image = *update.Image
		}
		return *p, nil
	}
	return models.Product{}, storage.ErrNotFound
}

func (f *fakeProductStore) DeleteProduct(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeProductStore) FindProductByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, storage.ErrNotFound
}

type fakeSaleStore struct {
	mu      sync.Mutex
	sales   []models.Sale
	listErr error
}

func (f *fakeSaleStore) ListSales(context.Context) ([]models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Sale, len(f.sales))
	copy(out, f.sales)
	return out, nil
}

func (f *fakeSaleStore) CreateSale(_ context.Context, sale models.Sale) (models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sale.ID = primitive.NewObjectID()
	f.sales = append(f.sales, sale)
	return sale, nil
}

// newAPIServer wires the handlers under test into a throwaway HTTP server.
func newAPIServer(t *testing.T, users storage.UserStore, products storage.ProductStore, sales storage.SaleStore) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	tokens := auth.NewTokenManager("test-secret", "tienda-test", time.Hour)
	NewAuthHandler(users, tokens).Register(mux)
	NewProductHandler(products).Register(mux)
	NewSaleHandler(sales, products).Register(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

// doJSON performs a request with an optional JSON body and returns the status
// and raw response body.
func doJSON(t *testing.T, method, url string, payload any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, body
}

func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode response %q: %v", body, err)
	}
	return out
}
