package handlers

import (
	"errors"

	"creditdesk/internal/adapters/persistence/models"
	"creditdesk/internal/core/domain"
	"creditdesk/internal/core/services"
	"creditdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user profile endpoints
type UserHandler struct {
	authService *services.AuthService
	loanService *services.LoanService
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *services.AuthService, loanService *services.LoanService) *UserHandler {
	return &UserHandler{
		authService: authService,
		loanService: loanService,
	}
}

// Me returns the authenticated user's profile
// @Summary Current user
// @Description Returns the authenticated user's profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load profile")
	}

	return response.Success(c, "Profile retrieved", fiber.Map{
		"user": user.ToResponse(),
	})
}

// CreditHistory returns the authenticated user's credit score records
// @Summary Credit score history
// @Description Returns the authenticated user's credit score records, oldest first
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/me/credit-history [get]
func (h *UserHandler) CreditHistory(c *fiber.Ctx) error {
	cnp, _ := c.Locals("cnp").(string)

	history, err := h.loanService.GetCreditScoreHistory(c.Context(), cnp)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCNP) {
			return response.BadRequest(c, "CNP must be 13 digits")
		}
		return response.InternalServerError(c, "Failed to load credit history")
	}

	if history == nil {
		history = []*models.CreditScoreHistory{}
	}

	return response.Success(c, "Credit history retrieved", fiber.Map{
		"history": history,
	})
}
