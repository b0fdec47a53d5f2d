package handlers

import (
	"errors"
	"strconv"
	"time"

	"creditdesk/internal/adapters/persistence/models"
	"creditdesk/internal/core/domain"
	"creditdesk/internal/core/services"
	"creditdesk/internal/pkg/pagination"
	"creditdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// CreateLoanRequest represents a loan application body
type CreateLoanRequest struct {
	Amount        float64   `json:"amount"`
	RepaymentDate time.Time `json:"repayment_date"`
}

// PayInstallmentRequest carries the optional penalty collected on top
// of the installment
type PayInstallmentRequest struct {
	Penalty float64 `json:"penalty"`
}

// Create submits a loan application for the authenticated user
// @Summary Apply for a loan
// @Description Creates a loan and its pending review request
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateLoanRequest true "Loan application"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	cnp, _ := c.Locals("cnp").(string)

	input := &services.CreateLoanInput{
		UserCNP:       cnp,
		Amount:        req.Amount,
		RepaymentDate: req.RepaymentDate,
	}

	request, err := h.loanService.AddLoan(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCNP):
			return response.BadRequest(c, "CNP must be 13 digits")
		case errors.Is(err, domain.ErrInvalidLoanAmount):
			return response.BadRequest(c, "Amount must be greater than 0")
		case errors.Is(err, domain.ErrInvalidRepaymentDate):
			return response.BadRequest(c, "Repayment date must be after application date")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to create loan application")
		}
	}

	return response.Created(c, "Loan application created", fiber.Map{
		"request": request.ToResponse(),
	})
}

// List lists all loans (admin)
// @Summary List loans
// @Description List all loans with pagination (Admin only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	loans, total, err := h.loanService.GetLoans(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	items := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		items = append(items, loan.ToResponse())
	}

	return response.Success(c, "Loans retrieved", pagination.NewResponse(items, params, total))
}

// ListMine lists the authenticated user's loans
// @Summary List my loans
// @Description List all loans of the authenticated user
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans/me [get]
func (h *LoanHandler) ListMine(c *fiber.Ctx) error {
	cnp, _ := c.Locals("cnp").(string)

	loans, err := h.loanService.GetUserLoans(c.Context(), cnp)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCNP) {
			return response.BadRequest(c, "CNP must be 13 digits")
		}
		return response.InternalServerError(c, "Failed to list loans")
	}

	items := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		items = append(items, loan.ToResponse())
	}

	return response.Success(c, "Loans retrieved", fiber.Map{"loans": items})
}

// Pay records one monthly installment payment on a loan
// @Summary Pay installment
// @Description Records one monthly payment; completes the loan when it is the last one
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body PayInstallmentRequest false "Penalty collected with the installment"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/pay [post]
func (h *LoanHandler) Pay(c *fiber.Ctx) error {
	loanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req PayInstallmentRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Penalty < 0 {
		return response.BadRequest(c, "Penalty cannot be negative")
	}

	loan, err := h.loanService.IncrementMonthlyPaymentsCompleted(c.Context(), uint(loanID), req.Penalty)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrInvalidLoanStatus):
			return response.BadRequest(c, "Loan is not accepting payments")
		default:
			return response.InternalServerError(c, "Failed to record payment")
		}
	}

	return response.Success(c, "Payment recorded", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// Check triggers the loan lifecycle sweep (admin)
// @Summary Run loan sweep
// @Description Advances every loan through the status state machine (Admin only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans/check [post]
func (h *LoanHandler) Check(c *fiber.Ctx) error {
	result, err := h.loanService.CheckLoans(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Loan sweep failed")
	}

	return response.Success(c, "Loan sweep finished", result)
}

// Delete removes a loan (admin)
// @Summary Delete loan
// @Description Remove a loan record (Admin only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [delete]
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	loanID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	if err := h.loanService.DeleteLoan(c.Context(), uint(loanID)); err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to delete loan")
	}

	return response.Success(c, "Loan deleted", nil)
}
