// Package storefront provides a small JSON client for the shop API, used by
// the terminal storefront.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/manucr/tienda-be/internal/models"
	"github.com/manucr/tienda-be/internal/models/dto"
)

// Client talks to the shop API. After a successful Login it attaches the
// session token to subsequent requests.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Token returns the session token from the last successful login, if any.
func (c *Client) Token() string {
	return c.token
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	body := dto.RegisterRequest{Username: username, Password: password}
	return c.do(ctx, http.MethodPost, "/api/register", body, nil)
}

// Login authenticates and stores the issued session token on the client.
// It returns the user id reported by the server.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := dto.LoginRequest{Username: username, Password: password}
	var resp dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.UserID, nil
}

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateSale records one sale line on the server.
func (c *Client) CreateSale(ctx context.Context, productID string, quantity int, totalPrice float64) error {
	body := dto.SaleInput{ProductID: productID, Quantity: quantity, TotalPrice: totalPrice}
	return c.do(ctx, http.MethodPost, "/api/sales", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return apiError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// apiError turns an error response body {"message": ...} into an error.
func apiError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return fmt.Errorf("%s (status %d)", body.Message, resp.StatusCode)
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}
