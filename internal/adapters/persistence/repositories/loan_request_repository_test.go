package repositories

import (
	"context"
	"testing"

	"creditdesk/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createRequestWithLoan(t *testing.T, db *gorm.DB, status string) *models.LoanRequest {
	t.Helper()
	ctx := context.Background()

	loan := newTestLoan(testCNP, models.LoanStatusPending)
	require.NoError(t, NewLoanRepository(db).Create(ctx, loan))

	request := &models.LoanRequest{
		UserCNP: testCNP,
		LoanID:  loan.ID,
		Status:  status,
	}
	require.NoError(t, NewLoanRequestRepository(db).Create(ctx, request))
	return request
}

func TestLoanRequestRepository_GetByIDPreloadsLoan(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	request := createRequestWithLoan(t, db, models.RequestStatusPending)

	got, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, request.LoanID, got.Loan.ID)
	assert.InDelta(t, 5000, got.Loan.Amount, 1e-9)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLoanRequestRepository_GetUnsolved(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	pending := createRequestWithLoan(t, db, models.RequestStatusPending)
	createRequestWithLoan(t, db, models.RequestStatusSolved)
	createRequestWithLoan(t, db, models.RequestStatusRejected)

	unsolved, err := repo.GetUnsolved(ctx)
	require.NoError(t, err)
	require.Len(t, unsolved, 1)
	assert.Equal(t, pending.ID, unsolved[0].ID)
	assert.NotZero(t, unsolved[0].Loan.ID)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLoanRequestRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	request := createRequestWithLoan(t, db, models.RequestStatusPending)

	request.Status = models.RequestStatusSolved
	require.NoError(t, repo.Update(ctx, request))

	got, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusSolved, got.Status)

	require.NoError(t, repo.Delete(ctx, request.ID))
	_, err = repo.GetByID(ctx, request.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
