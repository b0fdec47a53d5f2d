package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrInvalidCNP        = errors.New("cnp must be 13 digits")
)

// Loan errors
var (
	ErrLoanNotFound         = errors.New("loan not found")
	ErrLoanRequestNotFound  = errors.New("loan request not found")
	ErrInvalidLoanStatus    = errors.New("invalid loan status")
	ErrInvalidLoanAmount    = errors.New("loan amount must be greater than 0")
	ErrInvalidRepaymentDate = errors.New("repayment date must be after application date")
	ErrRequestAlreadySolved = errors.New("loan request already solved")
)
