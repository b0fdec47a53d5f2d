package handlers

import (
	"errors"

	"creditdesk/internal/core/domain"
	"creditdesk/internal/core/services"
	"creditdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RefreshRequest carries the refresh token in the body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register registers a new user
// @Summary Register
// @Description Register a new user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCNP):
			return response.BadRequest(c, "CNP must be 13 digits")
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "Password must be at least 8 characters")
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "User already exists")
		default:
			return response.InternalServerError(c, "Failed to register")
		}
	}

	return response.Created(c, "Registered successfully", result)
}

// Login authenticates a user
// @Summary Login
// @Description Authenticate with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Email == "" || input.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid credentials")
		case errors.Is(err, services.ErrUserInactive):
			return response.Forbidden(c, "Account is inactive")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	return response.Success(c, "Logged in successfully", result)
}

// Refresh rotates the refresh token
// @Summary Refresh token
// @Description Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return response.BadRequest(c, "Refresh token is required")
	}

	result, err := h.authService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			return response.Unauthorized(c, "Refresh token expired")
		case errors.Is(err, services.ErrTokenRevoked):
			return response.Unauthorized(c, "Refresh token revoked")
		case errors.Is(err, services.ErrInvalidToken):
			return response.Unauthorized(c, "Invalid refresh token")
		default:
			return response.InternalServerError(c, "Failed to refresh token")
		}
	}

	return response.Success(c, "Token refreshed", result)
}

// Logout revokes the refresh token
// @Summary Logout
// @Description Revoke the current refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.authService.Logout(c.Context(), req.RefreshToken); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	return response.Success(c, "Logged out successfully", nil)
}
