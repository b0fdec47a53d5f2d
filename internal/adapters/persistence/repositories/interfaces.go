package repositories

import (
	"context"

	"creditdesk/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByCNP(ctx context.Context, cnp string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByCNP(ctx context.Context, cnp string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	GetAll(ctx context.Context) ([]*models.Loan, error)
	GetByUserCNP(ctx context.Context, cnp string) ([]*models.Loan, error)
	List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error)
	Update(ctx context.Context, loan *models.Loan) error
	Delete(ctx context.Context, id uint) error
	AddCreditScoreHistory(ctx context.Context, cnp string, score int) error
	GetCreditScoreHistory(ctx context.Context, cnp string) ([]*models.CreditScoreHistory, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// LoanRequestRepository defines loan request repository interface
type LoanRequestRepository interface {
	Create(ctx context.Context, request *models.LoanRequest) error
	GetByID(ctx context.Context, id uint) (*models.LoanRequest, error)
	GetAll(ctx context.Context) ([]*models.LoanRequest, error)
	GetUnsolved(ctx context.Context) ([]*models.LoanRequest, error)
	Update(ctx context.Context, request *models.LoanRequest) error
	Delete(ctx context.Context, id uint) error
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
