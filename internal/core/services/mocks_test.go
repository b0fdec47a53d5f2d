package services

import (
	"context"
	"errors"

	"creditdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ----- test doubles -----

// mockUserRepo implements repositories.UserRepository; only the
// methods a test assigns are live, the rest fail loudly.
type mockUserRepo struct {
	CreateFn        func(ctx context.Context, user *models.User) error
	GetByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	GetByCNPFn      func(ctx context.Context, cnp string) (*models.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	UpdateFn        func(ctx context.Context, user *models.User) error
	ExistsByCNPFn   func(ctx context.Context, cnp string) (bool, error)
	ExistsByEmailFn func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) GetByCNP(ctx context.Context, cnp string) (*models.User, error) {
	if m.GetByCNPFn != nil {
		return m.GetByCNPFn(ctx, cnp)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return errors.New("not implemented")
}

func (m *mockUserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func (m *mockUserRepo) ExistsByCNP(ctx context.Context, cnp string) (bool, error) {
	if m.ExistsByCNPFn != nil {
		return m.ExistsByCNPFn(ctx, cnp)
	}
	return false, errors.New("not implemented")
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFn != nil {
		return m.ExistsByEmailFn(ctx, email)
	}
	return false, errors.New("not implemented")
}

// mockLoanRepo implements repositories.LoanRepository
type mockLoanRepo struct {
	CreateFn                func(ctx context.Context, loan *models.Loan) error
	GetByIDFn               func(ctx context.Context, id uint) (*models.Loan, error)
	GetAllFn                func(ctx context.Context) ([]*models.Loan, error)
	GetByUserCNPFn          func(ctx context.Context, cnp string) ([]*models.Loan, error)
	ListFn                  func(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error)
	UpdateFn                func(ctx context.Context, loan *models.Loan) error
	DeleteFn                func(ctx context.Context, id uint) error
	AddCreditScoreHistoryFn func(ctx context.Context, cnp string, score int) error
	GetCreditScoreHistoryFn func(ctx context.Context, cnp string) ([]*models.CreditScoreHistory, error)
}

func (m *mockLoanRepo) Create(ctx context.Context, loan *models.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, loan)
	}
	return errors.New("not implemented")
}

func (m *mockLoanRepo) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockLoanRepo) GetAll(ctx context.Context) ([]*models.Loan, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockLoanRepo) GetByUserCNP(ctx context.Context, cnp string) ([]*models.Loan, error) {
	if m.GetByUserCNPFn != nil {
		return m.GetByUserCNPFn(ctx, cnp)
	}
	return nil, errors.New("not implemented")
}

func (m *mockLoanRepo) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockLoanRepo) Update(ctx context.Context, loan *models.Loan) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, loan)
	}
	return errors.New("not implemented")
}

func (m *mockLoanRepo) Delete(ctx context.Context, id uint) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockLoanRepo) AddCreditScoreHistory(ctx context.Context, cnp string, score int) error {
	if m.AddCreditScoreHistoryFn != nil {
		return m.AddCreditScoreHistoryFn(ctx, cnp, score)
	}
	return errors.New("not implemented")
}

func (m *mockLoanRepo) GetCreditScoreHistory(ctx context.Context, cnp string) ([]*models.CreditScoreHistory, error) {
	if m.GetCreditScoreHistoryFn != nil {
		return m.GetCreditScoreHistoryFn(ctx, cnp)
	}
	return nil, errors.New("not implemented")
}

func (m *mockLoanRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return nil, errors.New("not implemented")
}

// mockRequestRepo implements repositories.LoanRequestRepository
type mockRequestRepo struct {
	CreateFn      func(ctx context.Context, request *models.LoanRequest) error
	GetByIDFn     func(ctx context.Context, id uint) (*models.LoanRequest, error)
	GetAllFn      func(ctx context.Context) ([]*models.LoanRequest, error)
	GetUnsolvedFn func(ctx context.Context) ([]*models.LoanRequest, error)
	UpdateFn      func(ctx context.Context, request *models.LoanRequest) error
	DeleteFn      func(ctx context.Context, id uint) error
}

func (m *mockRequestRepo) Create(ctx context.Context, request *models.LoanRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, request)
	}
	return errors.New("not implemented")
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id uint) (*models.LoanRequest, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRequestRepo) GetAll(ctx context.Context) ([]*models.LoanRequest, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRequestRepo) GetUnsolved(ctx context.Context) ([]*models.LoanRequest, error) {
	if m.GetUnsolvedFn != nil {
		return m.GetUnsolvedFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRequestRepo) Update(ctx context.Context, request *models.LoanRequest) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, request)
	}
	return errors.New("not implemented")
}

func (m *mockRequestRepo) Delete(ctx context.Context, id uint) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return errors.New("not implemented")
}

// notFound is shorthand for the gorm sentinel used by the repos
var notFound = gorm.ErrRecordNotFound
