package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/auth"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	registry   *auth.Registry
	jwtService *auth.JWTService
}

// NewAuthHandlers creates a new AuthHandlers instance
func NewAuthHandlers(registry *auth.Registry, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{
		registry:   registry,
		jwtService: jwtService,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	WhatsApp  string    `json:"whatsapp,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message,omitempty"`
}

func userResponse(u *auth.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		WhatsApp:  u.WhatsApp,
		CreatedAt: u.CreatedAt,
	}
}

// Register handles user registration
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.registry.Register(req.Name, req.Email, req.WhatsApp, req.Password)
	if err != nil {
		switch err {
		case auth.ErrEmailTaken:
			respondJSONError(w, "Email already registered", http.StatusConflict)
		case auth.ErrPasswordTooShort:
			respondJSONError(w, "Password must be at least 8 characters", http.StatusBadRequest)
		case auth.ErrInvalidEmail, auth.ErrInvalidName:
			respondJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			respondJSONError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	h.setAuthCookies(w, user)

	respondJSON(w, http.StatusCreated, AuthResponse{
		User:    userResponse(user),
		Message: "Registration successful",
	})
}

// Login handles user login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.registry.Login(req.Email, req.Password)
	if err != nil {
		respondJSONError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	h.setAuthCookies(w, user)

	respondJSON(w, http.StatusOK, AuthResponse{
		User:    userResponse(user),
		Message: "Login successful",
	})
}

// Refresh exchanges a refresh token for a new access token
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	tokenString := ""
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		tokenString = cookie.Value
	}
	if tokenString == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			tokenString = req.RefreshToken
		}
	}
	if tokenString == "" {
		respondJSONError(w, "Refresh token required", http.StatusBadRequest)
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(tokenString)
	if err != nil {
		respondJSONError(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}

	user, err := h.registry.Get(userID)
	if err != nil {
		respondJSONError(w, "User not found", http.StatusUnauthorized)
		return
	}

	h.setAuthCookies(w, user)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Token refreshed"})
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.registry.Get(claims.UserID)
	if err != nil {
		respondJSONError(w, "User not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, userResponse(user))
}

// Logout clears the auth cookies
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	clearCookie(w, "access_token")
	clearCookie(w, "refresh_token")
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// setAuthCookies generates token pair and sets them as HttpOnly cookies
func (h *AuthHandlers) setAuthCookies(w http.ResponseWriter, user *auth.User) {
	accessToken, accessExpiry, err := h.jwtService.GenerateAccessToken(user.ID, user.Email, user.Name, user.WhatsApp)
	if err != nil {
		return
	}
	refreshToken, refreshExpiry, err := h.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		Expires:  accessExpiry,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/auth",
		Expires:  refreshExpiry,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
