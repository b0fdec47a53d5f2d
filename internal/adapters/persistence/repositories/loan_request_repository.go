package repositories

import (
	"context"

	"creditdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loanRequestRepository implements LoanRequestRepository interface
type loanRequestRepository struct {
	db *gorm.DB
}

// NewLoanRequestRepository creates a new loan request repository
func NewLoanRequestRepository(db *gorm.DB) LoanRequestRepository {
	return &loanRequestRepository{db: db}
}

// Create creates a new loan request
func (r *loanRequestRepository) Create(ctx context.Context, request *models.LoanRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// GetByID gets a loan request with its loan preloaded
func (r *loanRequestRepository) GetByID(ctx context.Context, id uint) (*models.LoanRequest, error) {
	var request models.LoanRequest
	err := r.db.WithContext(ctx).Preload("Loan").Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetAll gets all loan requests with their loans preloaded
func (r *loanRequestRepository) GetAll(ctx context.Context) ([]*models.LoanRequest, error) {
	var requests []*models.LoanRequest
	err := r.db.WithContext(ctx).Preload("Loan").Order("id asc").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// GetUnsolved gets requests still awaiting a reviewer decision
func (r *loanRequestRepository) GetUnsolved(ctx context.Context) ([]*models.LoanRequest, error) {
	var requests []*models.LoanRequest
	err := r.db.WithContext(ctx).
		Preload("Loan").
		Where("status = ?", models.RequestStatusPending).
		Order("id asc").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Update updates a loan request
func (r *loanRequestRepository) Update(ctx context.Context, request *models.LoanRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// Delete removes a loan request
func (r *loanRequestRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.LoanRequest{}, id).Error
}
