package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"creditdesk/internal/adapters/persistence/models"
	"creditdesk/internal/adapters/persistence/repositories"
	"creditdesk/internal/core/domain"

	"gorm.io/gorm"
)

// Eligibility heuristics for the reviewer suggestion
const (
	maxAmountToIncomeRatio = 10
	minCreditScore         = 300
	maxRiskScore           = 70
)

// LoanRequestService handles review of pending loan applications:
// advisory suggestions plus the solve/reject/delete transitions.
type LoanRequestService struct {
	requestRepo repositories.LoanRequestRepository
	loanRepo    repositories.LoanRepository
	userRepo    repositories.UserRepository
}

// NewLoanRequestService creates a new loan request service
func NewLoanRequestService(
	requestRepo repositories.LoanRequestRepository,
	loanRepo repositories.LoanRepository,
	userRepo repositories.UserRepository,
) *LoanRequestService {
	return &LoanRequestService{
		requestRepo: requestRepo,
		loanRepo:    loanRepo,
		userRepo:    userRepo,
	}
}

// GetRequests lists all loan requests
func (s *LoanRequestService) GetRequests(ctx context.Context) ([]*models.LoanRequest, error) {
	return s.requestRepo.GetAll(ctx)
}

// GetUnsolvedRequests lists requests still awaiting review
func (s *LoanRequestService) GetUnsolvedRequests(ctx context.Context) ([]*models.LoanRequest, error) {
	return s.requestRepo.GetUnsolved(ctx)
}

// GiveSuggestion evaluates a pending request against the eligibility
// heuristics and returns a human-readable advisory for the reviewer.
// An empty string means no objections. The suggestion never blocks an
// approval; the reviewer makes the final call.
func (s *LoanRequestService) GiveSuggestion(ctx context.Context, requestID uint) (string, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByCNP(ctx, request.UserCNP)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	return Suggestion(user, &request.Loan), nil
}

// Suggestion builds the reviewer advisory for a (user, loan) pair.
func Suggestion(user *models.User, loan *models.Loan) string {
	var reasons []string

	if loan.Amount > user.Income*maxAmountToIncomeRatio {
		reasons = append(reasons, "Amount requested is too high for user income")
	}
	if user.CreditScore < minCreditScore {
		reasons = append(reasons, "Credit score is too low")
	}
	if user.RiskScore > maxRiskScore {
		reasons = append(reasons, "User risk score is too high")
	}

	if len(reasons) == 0 {
		return ""
	}
	return "User does not qualify for loan: " + strings.Join(reasons, ", ")
}

// Solve marks a pending request as reviewed and activates its loan.
func (s *LoanRequestService) Solve(ctx context.Context, requestID uint) (*models.LoanRequest, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestStatusPending {
		return nil, domain.ErrRequestAlreadySolved
	}

	request.Status = models.RequestStatusSolved
	request.Loan.Status = models.LoanStatusActive

	if err := s.loanRepo.Update(ctx, &request.Loan); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	log.Printf("✅ Loan request %d solved, loan %d is now active", request.ID, request.LoanID)
	return request, nil
}

// Reject marks a pending request as rejected. The request row stays
// around so rejections remain auditable; removal is a separate admin
// action (Delete).
func (s *LoanRequestService) Reject(ctx context.Context, requestID uint) (*models.LoanRequest, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestStatusPending {
		return nil, domain.ErrRequestAlreadySolved
	}

	request.Status = models.RequestStatusRejected
	request.Loan.Status = models.LoanStatusRejected

	if err := s.loanRepo.Update(ctx, &request.Loan); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	log.Printf("🗑️ Loan request %d rejected", request.ID)
	return request, nil
}

// Delete removes a loan request (admin action). A loan that never
// became active goes with it.
func (s *LoanRequestService) Delete(ctx context.Context, requestID uint) error {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if err := s.requestRepo.Delete(ctx, request.ID); err != nil {
		return err
	}

	if request.Loan.Status == models.LoanStatusPending || request.Loan.Status == models.LoanStatusRejected {
		if err := s.loanRepo.Delete(ctx, request.LoanID); err != nil {
			return err
		}
	}

	log.Printf("🗑️ Loan request %d deleted", request.ID)
	return nil
}

func (s *LoanRequestService) getRequest(ctx context.Context, requestID uint) (*models.LoanRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanRequestNotFound
		}
		return nil, err
	}
	return request, nil
}
