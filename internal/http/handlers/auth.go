package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/manucr/tienda-be/internal/auth"
	"github.com/manucr/tienda-be/internal/http/respond"
	"github.com/manucr/tienda-be/internal/models"
	"github.com/manucr/tienda-be/internal/models/dto"
	"github.com/manucr/tienda-be/internal/storage"
)

// AuthHandler owns the register and login endpoints.
type AuthHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

// Register attaches the auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/register", h.handleRegister)
	mux.HandleFunc("POST /api/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	// Pre-check for a friendlier failure; the store's unique index remains
	// the authoritative guard against concurrent registrations.
	if _, err := h.store.FindByUsername(r.Context(), username); err == nil {
		respond.Error(w, http.StatusBadRequest, "username already in use")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("register: lookup %q failed: %v", username, err)
		respond.Error(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	_, err = h.store.CreateUser(r.Context(), models.User{
		Username:     username,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusBadRequest, "username already in use")
			return
		}
		log.Printf("register: create user %q failed: %v", username, err)
		respond.Error(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]string{"message": "user registered"})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.store.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Same external response as a wrong password; the log keeps
			// the distinction.
			log.Printf("login: unknown username %q", username)
			respond.Error(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		log.Printf("login: lookup %q failed: %v", username, err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Printf("login: wrong password for %q", username)
		respond.Error(w, http.StatusBadRequest, "invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user.ID.Hex())
	if err != nil {
		log.Printf("login: token generation for %q failed: %v", username, err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{Token: token, UserID: user.ID.Hex()})
}
