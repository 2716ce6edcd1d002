package server

import (
	"context"
	"net/http"
	"time"

	"github.com/manucr/tienda-be/internal/auth"
	"github.com/manucr/tienda-be/internal/config"
	"github.com/manucr/tienda-be/internal/http/handlers"
	"github.com/manucr/tienda-be/internal/middleware"
	"github.com/manucr/tienda-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// Stores bundles the persistence interfaces the routes depend on.
type Stores struct {
	Users    storage.UserStore
	Products storage.ProductStore
	Sales    storage.SaleStore
}

// New wires up middleware and routes and returns a ready server.
func New(cfg config.Config, stores Stores) *Server {
	mux := http.NewServeMux()

	handlers.NewHealthHandler(time.Now()).Register(mux)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	handlers.NewAuthHandler(stores.Users, tokens).Register(mux)
	handlers.NewProductHandler(stores.Products).Register(mux)
	handlers.NewSaleHandler(stores.Sales, stores.Products).Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
