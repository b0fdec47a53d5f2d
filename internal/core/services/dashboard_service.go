package services

import (
	"context"

	"creditdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DashboardService handles admin dashboard statistics
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardData represents admin dashboard data
type DashboardData struct {
	// User statistics
	TotalUsers int64 `json:"total_users"`

	// Loan statistics
	TotalLoans       int64   `json:"total_loans"`
	ActiveLoans      int64   `json:"active_loans"`
	OverdueLoans     int64   `json:"overdue_loans"`
	PendingLoans     int64   `json:"pending_loans"`
	TotalPrincipal   float64 `json:"total_principal"`
	TotalRepaid      float64 `json:"total_repaid"`
	TotalPenalties   float64 `json:"total_penalties"`
	PendingRequests  int64   `json:"pending_requests"`
	RejectedRequests int64   `json:"rejected_requests"`
}

// GetDashboard aggregates the admin dashboard numbers
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&data.TotalUsers).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Loan{}).Count(&data.TotalLoans).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Loan{}).Where("status = ?", models.LoanStatusActive).Count(&data.ActiveLoans).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Loan{}).Where("status = ?", models.LoanStatusOverdue).Count(&data.OverdueLoans).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Loan{}).Where("status = ?", models.LoanStatusPending).Count(&data.PendingLoans).Error; err != nil {
		return nil, err
	}

	type sums struct {
		Principal float64
		Repaid    float64
		Penalties float64
	}
	var totals sums
	err := db.Model(&models.Loan{}).
		Select("COALESCE(SUM(amount),0) as principal, COALESCE(SUM(repaid_amount),0) as repaid, COALESCE(SUM(penalty),0) as penalties").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	data.TotalPrincipal = totals.Principal
	data.TotalRepaid = totals.Repaid
	data.TotalPenalties = totals.Penalties

	if err := db.Model(&models.LoanRequest{}).Where("status = ?", models.RequestStatusPending).Count(&data.PendingRequests).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.LoanRequest{}).Where("status = ?", models.RequestStatusRejected).Count(&data.RejectedRequests).Error; err != nil {
		return nil, err
	}

	return data, nil
}
