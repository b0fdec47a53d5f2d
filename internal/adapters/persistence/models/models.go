package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table. CNP is the 13-digit national
// identifier used to correlate a user across the whole system.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CNP         string         `gorm:"uniqueIndex;size:13;not null" json:"cnp"`
	FirstName   string         `gorm:"size:50;not null" json:"first_name"`
	LastName    string         `gorm:"size:50;not null" json:"last_name"`
	Email       string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PhoneNumber string         `gorm:"size:20" json:"phone_number"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	Role        string         `gorm:"size:20;default:'USER'" json:"role"`
	Income      float64        `gorm:"type:decimal(15,2);default:0" json:"income"`
	CreditScore int            `gorm:"default:300" json:"credit_score"`
	RiskScore   int            `gorm:"default:0" json:"risk_score"`
	GemBalance  int            `gorm:"default:0" json:"gem_balance"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID          uint      `json:"id"`
	CNP         string    `json:"cnp"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Role        string    `json:"role"`
	Income      float64   `json:"income"`
	CreditScore int       `json:"credit_score"`
	RiskScore   int       `json:"risk_score"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		CNP:         u.CNP,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Income:      u.Income,
		CreditScore: u.CreditScore,
		RiskScore:   u.RiskScore,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Loan Tables
// ============================================================

// Loan statuses
const (
	LoanStatusPending   = "pending"
	LoanStatusActive    = "active"
	LoanStatusOverdue   = "overdue"
	LoanStatusCompleted = "completed"
	LoanStatusApproved  = "approved"
	LoanStatusRejected  = "rejected"
)

// LoanRequest statuses
const (
	RequestStatusPending  = "Pending"
	RequestStatusSolved   = "Solved"
	RequestStatusRejected = "Rejected"
)

// Loan represents loans table. Flat-interest model: the interest
// is applied once on the principal and split evenly across months.
type Loan struct {
	ID                       uint      `gorm:"primaryKey" json:"id"`
	UserCNP                  string    `gorm:"index;size:13;not null" json:"user_cnp"`
	Amount                   float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	ApplicationDate          time.Time `gorm:"not null" json:"application_date"`
	RepaymentDate            time.Time `gorm:"not null" json:"repayment_date"`
	InterestRate             float64   `gorm:"type:decimal(7,2);not null" json:"interest_rate"`
	NumberOfMonths           int       `gorm:"not null" json:"number_of_months"`
	MonthlyPaymentAmount     float64   `gorm:"type:decimal(15,2);not null" json:"monthly_payment_amount"`
	MonthlyPaymentsCompleted int       `gorm:"default:0" json:"monthly_payments_completed"`
	RepaidAmount             float64   `gorm:"type:decimal(15,2);default:0" json:"repaid_amount"`
	Penalty                  float64   `gorm:"type:decimal(15,2);default:0" json:"penalty"`
	Status                   string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt                time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string {
	return "loans"
}

// IsPaidUp reports whether every scheduled monthly payment is done.
func (l *Loan) IsPaidUp() bool {
	return l.MonthlyPaymentsCompleted >= l.NumberOfMonths
}

// LoanResponse DTO
type LoanResponse struct {
	ID                       uint      `json:"id"`
	UserCNP                  string    `json:"user_cnp"`
	Amount                   float64   `json:"amount"`
	ApplicationDate          time.Time `json:"application_date"`
	RepaymentDate            time.Time `json:"repayment_date"`
	InterestRate             float64   `json:"interest_rate"`
	NumberOfMonths           int       `json:"number_of_months"`
	MonthlyPaymentAmount     float64   `json:"monthly_payment_amount"`
	MonthlyPaymentsCompleted int       `json:"monthly_payments_completed"`
	RepaidAmount             float64   `json:"repaid_amount"`
	Penalty                  float64   `json:"penalty"`
	Status                   string    `json:"status"`
}

func (l *Loan) ToResponse() *LoanResponse {
	return &LoanResponse{
		ID:                       l.ID,
		UserCNP:                  l.UserCNP,
		Amount:                   l.Amount,
		ApplicationDate:          l.ApplicationDate,
		RepaymentDate:            l.RepaymentDate,
		InterestRate:             l.InterestRate,
		NumberOfMonths:           l.NumberOfMonths,
		MonthlyPaymentAmount:     l.MonthlyPaymentAmount,
		MonthlyPaymentsCompleted: l.MonthlyPaymentsCompleted,
		RepaidAmount:             l.RepaidAmount,
		Penalty:                  l.Penalty,
		Status:                   l.Status,
	}
}

// LoanRequest represents loan_requests table.
// The request references its loan by foreign key; there is no
// bidirectional request<->loan object graph.
type LoanRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserCNP   string    `gorm:"index;size:13;not null" json:"user_cnp"`
	LoanID    uint      `gorm:"uniqueIndex;not null" json:"loan_id"`
	Status    string    `gorm:"size:20;default:'Pending'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Loan      Loan      `gorm:"foreignKey:LoanID" json:"-"`
}

func (LoanRequest) TableName() string {
	return "loan_requests"
}

// LoanRequestResponse DTO
type LoanRequestResponse struct {
	ID        uint          `json:"id"`
	UserCNP   string        `json:"user_cnp"`
	LoanID    uint          `json:"loan_id"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	Loan      *LoanResponse `json:"loan,omitempty"`
}

func (r *LoanRequest) ToResponse() *LoanRequestResponse {
	resp := &LoanRequestResponse{
		ID:        r.ID,
		UserCNP:   r.UserCNP,
		LoanID:    r.LoanID,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
	if r.Loan.ID != 0 {
		resp.Loan = r.Loan.ToResponse()
	}
	return resp
}

// CreditScoreHistory represents credit_score_histories table.
// One row per recomputation, newest last.
type CreditScoreHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserCNP   string    `gorm:"index;size:13;not null" json:"user_cnp"`
	Date      time.Time `gorm:"not null" json:"date"`
	Score     int       `gorm:"not null" json:"score"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (CreditScoreHistory) TableName() string {
	return "credit_score_histories"
}

// AutoMigrate creates/updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Loan{},
		&LoanRequest{},
		&CreditScoreHistory{},
	)
}
