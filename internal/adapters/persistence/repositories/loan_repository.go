package repositories

import (
	"context"
	"time"

	"creditdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a new loan
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// GetAll gets every loan, oldest first. The lifecycle sweep scans
// this full result set on each run.
func (r *loanRepository) GetAll(ctx context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).Order("id asc").Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// GetByUserCNP gets all loans of a user
func (r *loanRepository) GetByUserCNP(ctx context.Context, cnp string) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).Where("user_cnp = ?", cnp).Order("id asc").Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// List lists loans with pagination
func (r *loanRepository) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Loan{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("id asc").Find(&loans).Error; err != nil {
		return nil, 0, err
	}

	return loans, total, nil
}

// Update updates a loan
func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// Delete removes a loan
func (r *loanRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Loan{}, id).Error
}

// AddCreditScoreHistory appends a credit score record for a user
func (r *loanRepository) AddCreditScoreHistory(ctx context.Context, cnp string, score int) error {
	history := &models.CreditScoreHistory{
		UserCNP: cnp,
		Date:    time.Now(),
		Score:   score,
	}
	return r.db.WithContext(ctx).Create(history).Error
}

// GetCreditScoreHistory gets a user's credit score records, oldest first
func (r *loanRepository) GetCreditScoreHistory(ctx context.Context, cnp string) ([]*models.CreditScoreHistory, error) {
	var history []*models.CreditScoreHistory
	err := r.db.WithContext(ctx).Where("user_cnp = ?", cnp).Order("date asc").Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// CountByStatus counts loans grouped by status
func (r *loanRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
