package services

import (
	"context"
	"testing"
	"time"

	"creditdesk/internal/adapters/persistence/models"
	"creditdesk/internal/core/domain"
	"creditdesk/internal/core/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCNP = "1234567890123"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newLoanService(loans *mockLoanRepo, requests *mockRequestRepo, users *mockUserRepo, today time.Time) *LoanService {
	s := NewLoanService(loans, requests, users, scoring.NewDefaultScorer())
	s.now = func() time.Time { return today }
	return s
}

func TestAddLoan_ComputesTerms(t *testing.T) {
	user := &models.User{CNP: testCNP, Income: 10000, CreditScore: 500, RiskScore: 50}

	var createdLoan *models.Loan
	var createdRequest *models.LoanRequest

	loans := &mockLoanRepo{
		CreateFn: func(ctx context.Context, loan *models.Loan) error {
			loan.ID = 7
			createdLoan = loan
			return nil
		},
	}
	requests := &mockRequestRepo{
		CreateFn: func(ctx context.Context, request *models.LoanRequest) error {
			request.ID = 3
			createdRequest = request
			return nil
		},
	}
	users := &mockUserRepo{
		GetByCNPFn: func(ctx context.Context, cnp string) (*models.User, error) {
			return user, nil
		},
	}

	s := newLoanService(loans, requests, users, date(2025, time.April, 1))

	request, err := s.AddLoan(context.Background(), &CreateLoanInput{
		UserCNP:         testCNP,
		Amount:          5000,
		ApplicationDate: date(2025, time.April, 1),
		RepaymentDate:   date(2025, time.October, 1),
	})
	require.NoError(t, err)

	require.NotNil(t, createdLoan)
	assert.Equal(t, 6, createdLoan.NumberOfMonths)
	assert.InDelta(t, 10.0, createdLoan.InterestRate, 1e-9)
	assert.InDelta(t, 916.6667, createdLoan.MonthlyPaymentAmount, 0.001)
	assert.Equal(t, models.LoanStatusPending, createdLoan.Status)

	require.NotNil(t, createdRequest)
	assert.Equal(t, uint(7), createdRequest.LoanID)
	assert.Equal(t, models.RequestStatusPending, createdRequest.Status)
	assert.Equal(t, request.LoanID, createdRequest.LoanID)
}

func TestAddLoan_Validation(t *testing.T) {
	s := newLoanService(&mockLoanRepo{}, &mockRequestRepo{}, &mockUserRepo{}, date(2025, time.April, 1))

	tests := []struct {
		name    string
		input   CreateLoanInput
		wantErr error
	}{
		{
			name:    "bad cnp",
			input:   CreateLoanInput{UserCNP: "123", Amount: 5000, RepaymentDate: date(2026, time.April, 1)},
			wantErr: domain.ErrInvalidCNP,
		},
		{
			name:    "zero amount",
			input:   CreateLoanInput{UserCNP: testCNP, Amount: 0, RepaymentDate: date(2026, time.April, 1)},
			wantErr: domain.ErrInvalidLoanAmount,
		},
		{
			name:    "repayment before application",
			input:   CreateLoanInput{UserCNP: testCNP, Amount: 5000, RepaymentDate: date(2024, time.April, 1)},
			wantErr: domain.ErrInvalidRepaymentDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddLoan(context.Background(), &tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAddLoan_UserMissing(t *testing.T) {
	users := &mockUserRepo{
		GetByCNPFn: func(ctx context.Context, cnp string) (*models.User, error) {
			return nil, notFound
		},
	}
	s := newLoanService(&mockLoanRepo{}, &mockRequestRepo{}, users, date(2025, time.April, 1))

	_, err := s.AddLoan(context.Background(), &CreateLoanInput{
		UserCNP:       testCNP,
		Amount:        5000,
		RepaymentDate: date(2026, time.April, 1),
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCheckLoans_PaidUpLoanCompletes(t *testing.T) {
	user := &models.User{CNP: testCNP, CreditScore: 500}
	loan := &models.Loan{
		ID:                       1,
		UserCNP:                  testCNP,
		Amount:                   5000,
		ApplicationDate:          date(2025, time.January, 1),
		RepaymentDate:            date(2025, time.July, 1),
		NumberOfMonths:           6,
		MonthlyPaymentsCompleted: 6,
		Status:                   models.LoanStatusActive,
	}

	var deletedID uint
	var historyScore int
	var updatedUser *models.User

	loans := &mockLoanRepo{
		GetAllFn: func(ctx context.Context) ([]*models.Loan, error) {
			return []*models.Loan{loan}, nil
		},
		DeleteFn: func(ctx context.Context, id uint) error {
			deletedID = id
			return nil
		},
		AddCreditScoreHistoryFn: func(ctx context.Context, cnp string, score int) error {
			historyScore = score
			return nil
		},
	}
	users := &mockUserRepo{
		GetByCNPFn: func(ctx context.Context, cnp string) (*models.User, error) {
			return user, nil
		},
		UpdateFn: func(ctx context.Context, u *models.User) error {
			updatedUser = u
			return nil
		},
	}

	s := newLoanService(loans, &mockRequestRepo{}, users, date(2025, time.August, 1))

	result, err := s.CheckLoans(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, uint(1), deletedID)
	require.NotNil(t, updatedUser)
	// 500 + completion bonus 20 + amount bonus 5
	assert.Equal(t, 525, updatedUser.CreditScore)
	assert.Equal(t, 525, historyScore)
	assert.Equal(t, models.LoanStatusCompleted, loan.Status)
}

func TestCheckLoans_ActivePastRepaymentGoesOverdue(t *testing.T) {
	user := &models.User{CNP: testCNP, CreditScore: 500}
	loan := &models.Loan{
		ID:                       2,
		UserCNP:                  testCNP,
		ApplicationDate:          date(2025, time.January, 1),
		RepaymentDate:            date(2025, time.July, 1),
		NumberOfMonths:           6,
		MonthlyPaymentsCompleted: 3,
		Status:                   models.LoanStatusActive,
	}

	var updatedLoan *models.Loan
	historyAppended := false

	loans := &mockLoanRepo{
		GetAllFn: func(ctx context.Context) ([]*models.Loan, error) {
			return []*models.Loan{loan}, nil
		},
		UpdateFn: func(ctx context.Context, l *models.Loan) error {
			updatedLoan = l
			return nil
		},
		AddCreditScoreHistoryFn: func(ctx context.Context, cnp string, score int) error {
			historyAppended = true
			return nil
		},
	}
	users := &mockUserRepo{
		GetByCNPFn: func(ctx context.Context, cnp string) (*models.User, error) {
			return user, nil
		},
		UpdateFn: func(ctx context.Context, u *models.User) error { return nil },
	}

	today := date(2025, time.August, 1)
	s := newLoanService(loans, &mockRequestRepo{}, users, today)

	result, err := s.CheckLoans(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Overdue)
	require.NotNil(t, updatedLoan)
	assert.Equal(t, models.LoanStatusOverdue, updatedLoan.Status)

	// 3 payments done, next installment was due 2025-04-01: 122 days late.
	wantDays := int(today.Sub(date(2025, time.April, 1)).Hours() / 24)
	assert.InDelta(t, 0.1*float64(wantDays), updatedLoan.Penalty, 1e-9)
	assert.True(t, historyAppended)
	assert.True(t, user.CreditScore < 500, "overdue must cut the credit score")
}

func TestCheckLoans_OnSchedulePenaltyResets(t *testing.T) {
	user := &models.User{CNP: testCNP, CreditScore: 500}
	loan := &models.Loan{
		ID:                       3,
		UserCNP:                  testCNP,
		ApplicationDate:          date(2025, time.June, 1),
		RepaymentDate:            date(2025, time.December, 1),
		NumberOfMonths:           6,
		MonthlyPaymentsCompleted: 2,
		Penalty:                  4.2,
		Status:                   models.LoanStatusActive,
	}

	var updatedLoan *models.Loan
	loans := &mockLoanRepo{
		GetAllFn: func(ctx context.Context) ([]*models.Loan, error) {
			return []*models.Loan{loan}, nil
		},
		UpdateFn: func(ctx context.Context, l *models.Loan) error {
			updatedLoan = l
			return nil
		},
	}
	users := &mockUserRepo{
		GetByCNPFn: func(ctx context.Context, cnp string) (*models.User, error) {
			return user, nil
		},
	}

	// Two months in, two payments done: caught up.
	s := newLoanService(loans, &mockRequestRepo{}, users, date(2025, time.August, 1))

	result, err := s.CheckLoans(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	require.NotNil(t, updatedLoan)
	assert.Equal(t, 0.0, updatedLoan.Penalty)
	assert.Equal(t, models.LoanStatusActive, updatedLoan.Status)
}

func TestCheckLoans_SkipsLoanWithMissingUser(t *testing.T) {
	good := &models.Loan{
		ID:                       5,
		UserCNP:                  testCNP,
		ApplicationDate:          date(2025, time.June, 1),
		RepaymentDate:            date(2025, time.December, 1),
		NumberOfMonths:           6,
		MonthlyPaymentsCompleted: 2,
		Status:                   models.LoanStatusActive,
	}
	orphan := &models.Loan{ID: 4, UserCNP: "9999999999999", Status: models.LoanStatusActive}

	loans := &mockLoanRepo{
		GetAllFn: func(ctx context.Context) ([]*models.Loan, error) {
			return []*models.Loan{orphan, good}, nil
		},
		UpdateFn: func(ctx context.Context, l *models.Loan) error { return nil },
	}
	users := &mockUserRepo{
		GetByCNPFn: func(ctx context.Context, cnp string) (*models.User, error) {
			if cnp == testCNP {
				return &models.User{CNP: testCNP, CreditScore: 500}, nil
			}
			return nil, notFound
		},
	}

	s := newLoanService(loans, &mockRequestRepo{}, users, date(2025, time.August, 1))

	result, err := s.CheckLoans(context.Background())
	require.NoError(t, err)

	// One bad row must not abort the batch.
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Processed)
}

func TestIncrementMonthlyPayments_MidLoan(t *testing.T) {
	loan := &models.Loan{
		ID:                       8,
		UserCNP:                  testCNP,
		NumberOfMonths:           6,
		MonthlyPaymentsCompleted: 2,
		MonthlyPaymentAmount:     916.67,
		RepaidAmount:             1833.34,
		Status:                   models.LoanStatusActive,
	}

	var updatedLoan *models.Loan
	loans := &mockLoanRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Loan, error) {
			return loan, nil
		},
		UpdateFn: func(ctx context.Context, l *models.Loan) error {
			updatedLoan = l
			return nil
		},
	}

	s := newLoanService(loans, &mockRequestRepo{}, &mockUserRepo{}, date(2025, time.August, 1))

	got, err := s.IncrementMonthlyPaymentsCompleted(context.Background(), 8, 2.5)
	require.NoError(t, err)

	require.NotNil(t, updatedLoan)
	assert.Equal(t, 3, got.MonthlyPaymentsCompleted)
	assert.InDelta(t, 1833.34+916.67+2.5, got.RepaidAmount, 1e-9)
	assert.Equal(t, models.LoanStatusActive, got.Status)
}

func TestIncrementMonthlyPayments_LastPaymentCompletes(t *testing.T) {
	user := &models.User{CNP: testCNP, CreditScore: 400}
	loan := &models.Loan{
		ID:                       9,
		UserCNP:                  testCNP,
		Amount:                   5000,
		NumberOfMonths:           6,
		MonthlyPaymentsCompleted: 5,
		MonthlyPaymentAmount:     916.67,
		Status:                   models.LoanStatusActive,
	}

	var deletedID uint
	loans := &mockLoanRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Loan, error) {
			return loan, nil
		},
		DeleteFn: func(ctx context.Context, id uint) error {
			deletedID = id
			return nil
		},
		AddCreditScoreHistoryFn: func(ctx context.Context, cnp string, score int) error {
			return nil
		},
	}
	users := &mockUserRepo{
		GetByCNPFn: func(ctx context.Context, cnp string) (*models.User, error) {
			return user, nil
		},
		UpdateFn: func(ctx context.Context, u *models.User) error { return nil },
	}

	s := newLoanService(loans, &mockRequestRepo{}, users, date(2025, time.August, 1))

	got, err := s.IncrementMonthlyPaymentsCompleted(context.Background(), 9, 0)
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusCompleted, got.Status)
	assert.Equal(t, uint(9), deletedID)
	assert.True(t, user.CreditScore > 400, "completion must raise the credit score")
}

func TestIncrementMonthlyPayments_Errors(t *testing.T) {
	loans := &mockLoanRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Loan, error) {
			if id == 99 {
				return nil, notFound
			}
			return &models.Loan{ID: id, Status: models.LoanStatusPending}, nil
		},
	}
	s := newLoanService(loans, &mockRequestRepo{}, &mockUserRepo{}, date(2025, time.August, 1))

	_, err := s.IncrementMonthlyPaymentsCompleted(context.Background(), 99, 0)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)

	_, err = s.IncrementMonthlyPaymentsCompleted(context.Background(), 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidLoanStatus)
}
