package handlers

import (
	"errors"
	"strconv"

	"creditdesk/internal/adapters/persistence/models"
	"creditdesk/internal/core/domain"
	"creditdesk/internal/core/services"
	"creditdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanRequestHandler handles loan request review endpoints
type LoanRequestHandler struct {
	requestService *services.LoanRequestService
}

// NewLoanRequestHandler creates a new loan request handler
func NewLoanRequestHandler(requestService *services.LoanRequestService) *LoanRequestHandler {
	return &LoanRequestHandler{requestService: requestService}
}

// List lists all loan requests
// @Summary List loan requests
// @Description List all loan requests (Admin only)
// @Tags LoanRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loan-requests [get]
func (h *LoanRequestHandler) List(c *fiber.Ctx) error {
	requests, err := h.requestService.GetRequests(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list loan requests")
	}

	return response.Success(c, "Loan requests retrieved", fiber.Map{
		"requests": toRequestResponses(requests),
	})
}

// ListUnsolved lists requests awaiting review
// @Summary List unsolved loan requests
// @Description List requests still awaiting a reviewer decision (Admin only)
// @Tags LoanRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loan-requests/unsolved [get]
func (h *LoanRequestHandler) ListUnsolved(c *fiber.Ctx) error {
	requests, err := h.requestService.GetUnsolvedRequests(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list loan requests")
	}

	return response.Success(c, "Loan requests retrieved", fiber.Map{
		"requests": toRequestResponses(requests),
	})
}

// Suggestion returns the reviewer advisory for a request
// @Summary Loan request suggestion
// @Description Evaluates the request against the eligibility heuristics (Admin only)
// @Tags LoanRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loan-requests/{id}/suggestion [get]
func (h *LoanRequestHandler) Suggestion(c *fiber.Ctx) error {
	requestID, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	suggestion, err := h.requestService.GiveSuggestion(c.Context(), requestID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanRequestNotFound):
			return response.NotFound(c, "Loan request not found")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to evaluate loan request")
		}
	}

	return response.Success(c, "Suggestion computed", fiber.Map{
		"suggestion": suggestion,
		"qualifies":  suggestion == "",
	})
}

// Solve approves a pending request and activates its loan
// @Summary Solve loan request
// @Description Marks the request solved and activates the loan (Admin only)
// @Tags LoanRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loan-requests/{id}/solve [post]
func (h *LoanRequestHandler) Solve(c *fiber.Ctx) error {
	requestID, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	request, err := h.requestService.Solve(c.Context(), requestID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanRequestNotFound):
			return response.NotFound(c, "Loan request not found")
		case errors.Is(err, domain.ErrRequestAlreadySolved):
			return response.Conflict(c, "Loan request already reviewed")
		default:
			return response.InternalServerError(c, "Failed to solve loan request")
		}
	}

	return response.Success(c, "Loan request solved", fiber.Map{
		"request": request.ToResponse(),
	})
}

// Reject rejects a pending request
// @Summary Reject loan request
// @Description Marks the request rejected; the record stays for audit (Admin only)
// @Tags LoanRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loan-requests/{id}/reject [post]
func (h *LoanRequestHandler) Reject(c *fiber.Ctx) error {
	requestID, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	request, err := h.requestService.Reject(c.Context(), requestID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanRequestNotFound):
			return response.NotFound(c, "Loan request not found")
		case errors.Is(err, domain.ErrRequestAlreadySolved):
			return response.Conflict(c, "Loan request already reviewed")
		default:
			return response.InternalServerError(c, "Failed to reject loan request")
		}
	}

	return response.Success(c, "Loan request rejected", fiber.Map{
		"request": request.ToResponse(),
	})
}

// Delete removes a loan request
// @Summary Delete loan request
// @Description Remove a loan request record (Admin only)
// @Tags LoanRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loan-requests/{id} [delete]
func (h *LoanRequestHandler) Delete(c *fiber.Ctx) error {
	requestID, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	if err := h.requestService.Delete(c.Context(), requestID); err != nil {
		if errors.Is(err, domain.ErrLoanRequestNotFound) {
			return response.NotFound(c, "Loan request not found")
		}
		return response.InternalServerError(c, "Failed to delete loan request")
	}

	return response.Success(c, "Loan request deleted", nil)
}

func toRequestResponses(requests []*models.LoanRequest) []*models.LoanRequestResponse {
	items := make([]*models.LoanRequestResponse, 0, len(requests))
	for _, request := range requests {
		items = append(items, request.ToResponse())
	}
	return items
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
