package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dhruv-809/mini-project-manager/models"
	"github.com/dhruv-809/mini-project-manager/store"
)

// tokenTTL is how long an issued session token stays valid.
const tokenTTL = 24 * time.Hour

// Handlers holds the store and everything route handlers share.
type Handlers struct {
	store  store.Store
	logger *zap.Logger
	jwtKey []byte
}

// NewHandlers is a constructor for the Handlers struct.
func NewHandlers(s store.Store, logger *zap.Logger, jwtKey []byte) *Handlers {
	return &Handlers{store: s, logger: logger, jwtKey: jwtKey}
}

// authResponse is returned by both register and login so the client
// can start a session immediately.
type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (h *Handlers) issueToken(userID string) (string, error) {
	claims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtKey)
}

// Register handles a new user registration and issues a session token.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("password hashing failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Email, string(hashed))
	if errors.Is(err, store.ErrDuplicateEmail) {
		respondWithError(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		h.logger.Error("create user failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		h.logger.Error("token signing failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.logger.Info("user registered", zap.String("userId", user.ID))
	respondWithJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login verifies credentials and issues a session token. A missing
// account and a wrong password produce the same response.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := h.store.UserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		h.logger.Error("lookup user failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		h.logger.Error("token signing failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondWithJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
