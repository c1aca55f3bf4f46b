package api

import (
	"testing"

	"finance_tracker/internal/apperrors"
	"finance_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func accountBalance(t *testing.T, db *gorm.DB, name string) float64 {
	t.Helper()
	var account domain.Account
	require.NoError(t, db.Where("name = ?", name).First(&account).Error)
	return account.Balance
}

func transferCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&domain.Transfer{}).Count(&count).Error)
	return count
}

func TestPerformTransferMovesBalances(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Account{Name: "A", Balance: 100}).Error)
	require.NoError(t, db.Create(&domain.Account{Name: "B", Balance: 20}).Error)

	transfer, err := performTransfer(db, "A", "B", 50, "")
	require.NoError(t, err)

	assert.Equal(t, 50.0, accountBalance(t, db, "A"))
	assert.Equal(t, 70.0, accountBalance(t, db, "B"))

	assert.NotZero(t, transfer.ID)
	assert.Equal(t, "A", transfer.FromAccount)
	assert.Equal(t, "B", transfer.ToAccount)
	assert.Equal(t, 50.0, transfer.Amount)
	assert.Equal(t, "Transfer from A to B", transfer.Description)
	assert.False(t, transfer.Date.IsZero())
	assert.EqualValues(t, 1, transferCount(t, db))
}

func TestPerformTransferKeepsCustomDescription(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Account{Name: "A", Balance: 100}).Error)
	require.NoError(t, db.Create(&domain.Account{Name: "B"}).Error)

	transfer, err := performTransfer(db, "A", "B", 10, "rent share")
	require.NoError(t, err)
	assert.Equal(t, "rent share", transfer.Description)
}

func TestPerformTransferConservesTotal(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Account{Name: "A", Balance: 100}).Error)
	require.NoError(t, db.Create(&domain.Account{Name: "B", Balance: 20}).Error)

	for _, amount := range []float64{30, 15, 5} {
		_, err := performTransfer(db, "A", "B", amount, "")
		require.NoError(t, err)
	}
	_, err := performTransfer(db, "B", "A", 25, "")
	require.NoError(t, err)

	// Money is conserved across the pair regardless of direction.
	assert.Equal(t, 120.0, accountBalance(t, db, "A")+accountBalance(t, db, "B"))
}

func TestPerformTransferInsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Account{Name: "A", Balance: 100}).Error)
	require.NoError(t, db.Create(&domain.Account{Name: "B", Balance: 20}).Error)

	_, err := performTransfer(db, "A", "B", 500, "")
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	// Rejected transfers leave no trace.
	assert.Equal(t, 100.0, accountBalance(t, db, "A"))
	assert.Equal(t, 20.0, accountBalance(t, db, "B"))
	assert.EqualValues(t, 0, transferCount(t, db))
}

func TestPerformTransferRejectsSelf(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Account{Name: "A", Balance: 100}).Error)

	_, err := performTransfer(db, "A", "A", 10, "")
	assert.ErrorIs(t, err, apperrors.ErrSelfTransfer)
	assert.Equal(t, 100.0, accountBalance(t, db, "A"))
	assert.EqualValues(t, 0, transferCount(t, db))
}

func TestPerformTransferMissingAccount(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Account{Name: "A", Balance: 100}).Error)

	_, err := performTransfer(db, "A", "ghost", 10, "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = performTransfer(db, "ghost", "A", 10, "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.Equal(t, 100.0, accountBalance(t, db, "A"))
	assert.EqualValues(t, 0, transferCount(t, db))
}

func TestPerformTransferInvalidInput(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Account{Name: "A", Balance: 100}).Error)
	require.NoError(t, db.Create(&domain.Account{Name: "B", Balance: 20}).Error)

	for _, amount := range []float64{0, -10} {
		_, err := performTransfer(db, "A", "B", amount, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	}
	_, err := performTransfer(db, "", "B", 10, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	_, err = performTransfer(db, "A", "", 10, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)

	assert.EqualValues(t, 0, transferCount(t, db))
}
