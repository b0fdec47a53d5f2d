package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"creditdesk/internal/adapters/persistence/models"
	"creditdesk/internal/adapters/persistence/repositories"
	"creditdesk/internal/core/domain"
	"creditdesk/internal/core/scoring"

	"gorm.io/gorm"
)

// LoanService handles the loan lifecycle: origination, the periodic
// status sweep and installment payments.
type LoanService struct {
	loanRepo    repositories.LoanRepository
	requestRepo repositories.LoanRequestRepository
	userRepo    repositories.UserRepository
	scorer      scoring.Scorer

	// now is swappable so the sweep can be tested at a fixed date
	now func() time.Time
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	requestRepo repositories.LoanRequestRepository,
	userRepo repositories.UserRepository,
	scorer scoring.Scorer,
) *LoanService {
	return &LoanService{
		loanRepo:    loanRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		scorer:      scorer,
		now:         time.Now,
	}
}

// CreateLoanInput represents a loan application
type CreateLoanInput struct {
	UserCNP         string    `json:"user_cnp" validate:"required,len=13"`
	Amount          float64   `json:"amount" validate:"required,gt=0"`
	ApplicationDate time.Time `json:"application_date"`
	RepaymentDate   time.Time `json:"repayment_date" validate:"required"`
}

// AddLoan validates a loan application, computes the loan terms from
// the applicant's credit profile and persists the loan together with
// its pending review request.
func (s *LoanService) AddLoan(ctx context.Context, input *CreateLoanInput) (*models.LoanRequest, error) {
	if !isValidCNP(input.UserCNP) {
		return nil, domain.ErrInvalidCNP
	}
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidLoanAmount
	}

	applicationDate := input.ApplicationDate
	if applicationDate.IsZero() {
		applicationDate = s.now()
	}
	if !input.RepaymentDate.After(applicationDate) {
		return nil, domain.ErrInvalidRepaymentDate
	}

	user, err := s.userRepo.GetByCNP(ctx, input.UserCNP)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	numberOfMonths := scoring.MonthsBetween(applicationDate, input.RepaymentDate)
	interestRate := scoring.InterestRate(user.CreditScore, user.RiskScore)
	monthlyPayment := scoring.MonthlyPayment(input.Amount, interestRate, numberOfMonths)

	loan := &models.Loan{
		UserCNP:              input.UserCNP,
		Amount:               input.Amount,
		ApplicationDate:      applicationDate,
		RepaymentDate:        input.RepaymentDate,
		InterestRate:         interestRate,
		NumberOfMonths:       numberOfMonths,
		MonthlyPaymentAmount: monthlyPayment,
		Status:               models.LoanStatusPending,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	request := &models.LoanRequest{
		UserCNP: input.UserCNP,
		LoanID:  loan.ID,
		Status:  models.RequestStatusPending,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	request.Loan = *loan
	log.Printf("✅ Loan application created: loan %d for CNP %s (%.2f over %d months at %.2f%%)",
		loan.ID, loan.UserCNP, loan.Amount, loan.NumberOfMonths, loan.InterestRate)

	return request, nil
}

// SweepResult summarizes one run of the loan status sweep
type SweepResult struct {
	Processed int `json:"processed"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	Skipped   int `json:"skipped"`
}

// CheckLoans runs the lifecycle sweep over every loan in the store.
// A loan that fails to process is logged and skipped so one bad row
// cannot abort the whole batch.
func (s *LoanService) CheckLoans(ctx context.Context) (*SweepResult, error) {
	loans, err := s.loanRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{}
	today := s.now()

	for _, loan := range loans {
		status, err := s.checkLoan(ctx, loan, today)
		if err != nil {
			result.Skipped++
			log.Printf("⚠️ Loan sweep: skipping loan %d: %v", loan.ID, err)
			continue
		}

		result.Processed++
		switch status {
		case models.LoanStatusCompleted:
			result.Completed++
		case models.LoanStatusOverdue:
			result.Overdue++
		}
	}

	log.Printf("✅ Loan sweep finished: %d processed, %d completed, %d overdue, %d skipped",
		result.Processed, result.Completed, result.Overdue, result.Skipped)

	return result, nil
}

// checkLoan advances a single loan through the state machine and
// persists the outcome. Returns the final status.
func (s *LoanService) checkLoan(ctx context.Context, loan *models.Loan, today time.Time) (string, error) {
	user, err := s.userRepo.GetByCNP(ctx, loan.UserCNP)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: cnp %s", domain.ErrUserNotFound, loan.UserCNP)
		}
		return "", err
	}

	// 1. Every scheduled payment done: the loan is finished.
	if loan.IsPaidUp() {
		if err := s.completeLoan(ctx, user, loan); err != nil {
			return "", err
		}
		return models.LoanStatusCompleted, nil
	}

	// 2. Penalty accrues while payments lag behind the schedule,
	// and resets once they catch up.
	monthsPassed := scoring.MonthsElapsed(loan.ApplicationDate, today)
	if monthsPassed > loan.MonthlyPaymentsCompleted {
		overdueDays := scoring.OverdueDays(loan.ApplicationDate, loan.MonthlyPaymentsCompleted, today)
		loan.Penalty = scoring.Penalty(overdueDays)
	} else {
		loan.Penalty = 0
	}

	// 3. Past the repayment date an active loan goes overdue and the
	// borrower's credit score takes the hit.
	if today.After(loan.RepaymentDate) && loan.Status == models.LoanStatusActive {
		loan.Status = models.LoanStatusOverdue

		newScore := s.scorer.Compute(user, loan, scoring.OutcomeOverdue)
		user.CreditScore = newScore
		if err := s.userRepo.Update(ctx, user); err != nil {
			return "", err
		}
		if err := s.loanRepo.AddCreditScoreHistory(ctx, user.CNP, newScore); err != nil {
			return "", err
		}

		log.Printf("⚠️ Loan %d went overdue (CNP %s, new score %d)", loan.ID, user.CNP, newScore)
	}

	// 4. Terminal write-back.
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return "", err
	}

	return loan.Status, nil
}

// completeLoan closes a fully repaid loan: the credit score is
// recomputed and persisted, a history row is appended and the loan
// row is removed from the store.
func (s *LoanService) completeLoan(ctx context.Context, user *models.User, loan *models.Loan) error {
	loan.Status = models.LoanStatusCompleted
	loan.Penalty = 0

	newScore := s.scorer.Compute(user, loan, scoring.OutcomeCompleted)
	user.CreditScore = newScore

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	if err := s.loanRepo.AddCreditScoreHistory(ctx, user.CNP, newScore); err != nil {
		return err
	}
	if err := s.loanRepo.Delete(ctx, loan.ID); err != nil {
		return err
	}

	log.Printf("✅ Loan %d completed (CNP %s, new score %d)", loan.ID, user.CNP, newScore)
	return nil
}

// IncrementMonthlyPaymentsCompleted records one installment payment
// on a loan. penalty is whatever overdue charge was collected on top
// of the installment. When the last installment lands, the loan is
// completed on the spot.
func (s *LoanService) IncrementMonthlyPaymentsCompleted(ctx context.Context, loanID uint, penalty float64) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	if loan.Status != models.LoanStatusActive && loan.Status != models.LoanStatusOverdue {
		return nil, domain.ErrInvalidLoanStatus
	}

	loan.MonthlyPaymentsCompleted++
	loan.RepaidAmount += loan.MonthlyPaymentAmount + penalty

	if loan.IsPaidUp() {
		user, err := s.userRepo.GetByCNP(ctx, loan.UserCNP)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, err
		}
		if err := s.completeLoan(ctx, user, loan); err != nil {
			return nil, err
		}
		return loan, nil
	}

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	return loan, nil
}

// GetLoans lists loans with pagination
func (s *LoanService) GetLoans(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	return s.loanRepo.List(ctx, offset, limit)
}

// GetUserLoans lists all loans of one user
func (s *LoanService) GetUserLoans(ctx context.Context, cnp string) ([]*models.Loan, error) {
	if !isValidCNP(cnp) {
		return nil, domain.ErrInvalidCNP
	}
	return s.loanRepo.GetByUserCNP(ctx, cnp)
}

// GetCreditScoreHistory returns a user's credit score records
func (s *LoanService) GetCreditScoreHistory(ctx context.Context, cnp string) ([]*models.CreditScoreHistory, error) {
	if !isValidCNP(cnp) {
		return nil, domain.ErrInvalidCNP
	}
	return s.loanRepo.GetCreditScoreHistory(ctx, cnp)
}

// DeleteLoan removes a loan (admin action)
func (s *LoanService) DeleteLoan(ctx context.Context, loanID uint) error {
	if _, err := s.loanRepo.GetByID(ctx, loanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrLoanNotFound
		}
		return err
	}
	return s.loanRepo.Delete(ctx, loanID)
}

// isValidCNP checks the 13-digit national identifier format
func isValidCNP(cnp string) bool {
	if len(cnp) != 13 {
		return false
	}
	for _, c := range cnp {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
