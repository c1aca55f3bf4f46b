package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"time"     // Timestamps

	"finance_tracker/internal/apperrors" // Error taxonomy
	"finance_tracker/internal/cache"     // Redis cache wrapper
	"finance_tracker/internal/domain"    // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// TransferRequest represents a transfer between two accounts
type TransferRequest struct {
	FromAccount string  `json:"fromAccount" binding:"required"` // Source account name
	ToAccount   string  `json:"toAccount" binding:"required"`   // Destination account name
	Amount      float64 `json:"amount" binding:"required,gt=0"` // Transfer amount
	Description string  `json:"description"`                    // Optional, defaulted when omitted
}

// performTransfer moves amount between the named accounts and records the
// transfer. The debit, the credit and the transfer row commit as a single
// database transaction, and the debit is conditional on the balance still
// covering the amount, so two concurrent transfers against the same source
// cannot both pass a stale balance check and overdraw it.
//
// Preconditions are checked in order, each with its own error: presence and
// positivity, self-transfer, account existence, sufficient balance.
func performTransfer(db *gorm.DB, fromName, toName string, amount float64, description string) (*domain.Transfer, error) {
	if fromName == "" || toName == "" || amount <= 0 {
		return nil, apperrors.ErrInvalidRequest
	}
	if fromName == toName {
		return nil, apperrors.ErrSelfTransfer
	}
	var transfer *domain.Transfer
	err := db.Transaction(func(tx *gorm.DB) error {
		var from, to domain.Account
		if err := tx.Where("name = ?", fromName).First(&from).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		if err := tx.Where("name = ?", toName).First(&to).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		if from.Balance < amount {
			return apperrors.ErrInsufficientFunds
		}
		// Conditional debit: the balance guard runs inside the database, so a
		// transfer racing this one rolls back instead of overdrawing.
		res := tx.Model(&domain.Account{}).
			Where("id = ? AND balance >= ?", from.ID, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrInsufficientFunds
		}
		// Credit the destination
		if err := tx.Model(&domain.Account{}).
			Where("id = ?", to.ID).
			Update("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
			return err
		}
		if description == "" {
			description = "Transfer from " + fromName + " to " + toName
		}
		transfer = &domain.Transfer{
			FromAccount: fromName,
			ToAccount:   toName,
			Amount:      amount,
			Description: description,
			Date:        time.Now(),
		}
		return tx.Create(transfer).Error // Record the transfer
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// TransferHandler moves funds between two named accounts
func TransferHandler(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TransferRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transfer data"})
			return
		}
		transfer, err := performTransfer(db, req.FromAccount, req.ToAccount, req.Amount, req.Description)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrSelfTransfer):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot transfer to the same account"})
			case errors.Is(err, apperrors.ErrInvalidRequest):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transfer data"})
			case errors.Is(err, apperrors.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			case errors.Is(err, apperrors.ErrInsufficientFunds):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
			default:
				// Log the error with context
				logrus.WithFields(logrus.Fields{
					"fromAccount": req.FromAccount,
					"toAccount":   req.ToAccount,
					"amount":      req.Amount,
					"error":       err.Error(),
				}).Error("Transfer failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Transfer failed"})
			}
			return
		}
		// Log successful transfer
		logrus.WithFields(logrus.Fields{
			"fromAccount": transfer.FromAccount,
			"toAccount":   transfer.ToAccount,
			"amount":      transfer.Amount,
			"timestamp":   transfer.Date.Format(time.RFC3339),
		}).Info("Transfer completed")
		// Invalidate cached account balances and the transfer listing
		ctx := context.Background()
		_ = cc.Delete(ctx, accountsCacheKey, transfersCacheKey)
		c.JSON(http.StatusCreated, transfer)
	}
}
