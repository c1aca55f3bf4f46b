package api

import (
	"context"  // Context for Redis operations
	"fmt"      // Formatting elapsed hours for the 403 payload
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Timestamps

	"finance_tracker/internal/cache"  // Redis cache wrapper
	"finance_tracker/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CreateTransactionRequest represents a transaction creation request
type CreateTransactionRequest struct {
	Type        string     `json:"type" binding:"required,oneof=income expense"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	Description string     `json:"description" binding:"required"`
	Category    string     `json:"category" binding:"required"`
	Division    string     `json:"division" binding:"required,oneof=Office Personal"`
	Date        *time.Time `json:"date"`    // Business date, defaults to now
	Account     string     `json:"account"` // Account label, defaults to "Main Account"
}

// UpdateTransactionRequest carries a partial update: only fields present in
// the request overwrite the stored record.
type UpdateTransactionRequest struct {
	Type        *string    `json:"type" binding:"omitempty,oneof=income expense"`
	Amount      *float64   `json:"amount" binding:"omitempty,gt=0"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Division    *string    `json:"division" binding:"omitempty,oneof=Office Personal"`
	Date        *time.Time `json:"date"`
	Account     *string    `json:"account"`
}

// parseDate accepts plain dates and full RFC3339 timestamps, matching what
// the frontend sends for range filters.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// invalidateTransactionCaches drops every cached aggregation after a
// transaction mutation.
func invalidateTransactionCaches(cc *cache.Cache) {
	ctx := context.Background()
	_ = cc.DeletePrefix(ctx, summaryCachePrefix)
	_ = cc.DeletePrefix(ctx, dashboardCachePrefix)
}

// ListTransactionsHandler returns transactions with optional filtering by
// type, division, category, account and an inclusive date range, newest
// business date first, capped at 1000 rows.
func ListTransactionsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&domain.Transaction{}) // Start building the query
		if txType := c.Query("type"); txType != "" {
			query = query.Where("type = ?", txType)
		}
		if division := c.Query("division"); division != "" {
			query = query.Where("division = ?", division)
		}
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if account := c.Query("account"); account != "" {
			query = query.Where("account = ?", account)
		}
		if startDate := c.Query("startDate"); startDate != "" {
			if t, ok := parseDate(startDate); ok {
				query = query.Where("date >= ?", t)
			}
		}
		if endDate := c.Query("endDate"); endDate != "" {
			if t, ok := parseDate(endDate); ok {
				query = query.Where("date <= ?", t)
			}
		}
		var transactions []domain.Transaction
		if err := query.Order("date desc").Limit(1000).Find(&transactions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		c.JSON(http.StatusOK, transactions)
	}
}

// GetTransactionHandler returns a single transaction by ID
func GetTransactionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		var transaction domain.Transaction
		if err := db.First(&transaction, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(http.StatusOK, transaction)
	}
}

// CreateTransactionHandler records a new income or expense transaction
func CreateTransactionHandler(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction data"})
			return
		}
		transaction := domain.Transaction{
			Type:        req.Type,
			Amount:      req.Amount,
			Description: req.Description,
			Category:    req.Category,
			Division:    req.Division,
			Date:        time.Now(),
			Account:     "Main Account",
		}
		if req.Date != nil {
			transaction.Date = *req.Date // Business date may be back-dated
		}
		if req.Account != "" {
			transaction.Account = req.Account
		}
		if err := db.Create(&transaction).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"id":       transaction.ID,
			"type":     transaction.Type,
			"amount":   transaction.Amount,
			"division": transaction.Division,
		}).Info("Transaction created")
		invalidateTransactionCaches(cc)
		c.JSON(http.StatusCreated, transaction)
	}
}

// UpdateTransactionHandler applies a partial update to a transaction, allowed
// only within the edit window after entry
func UpdateTransactionHandler(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		var transaction domain.Transaction
		if err := db.First(&transaction, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		now := time.Now()
		if !transaction.MutableAt(now) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":       "Cannot edit transaction after 12 hours",
				"hoursPassed": fmt.Sprintf("%.2f", transaction.HoursSinceEntry(now)),
			})
			return
		}
		var req UpdateTransactionRequest // Bind the partial update
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction data"})
			return
		}
		// Required text fields may be rewritten but not blanked out
		if (req.Description != nil && *req.Description == "") ||
			(req.Category != nil && *req.Category == "") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction data"})
			return
		}
		// Merge: only fields present in the request overwrite stored values
		if req.Type != nil {
			transaction.Type = *req.Type
		}
		if req.Amount != nil {
			transaction.Amount = *req.Amount
		}
		if req.Description != nil {
			transaction.Description = *req.Description
		}
		if req.Category != nil {
			transaction.Category = *req.Category
		}
		if req.Division != nil {
			transaction.Division = *req.Division
		}
		if req.Date != nil {
			transaction.Date = *req.Date
		}
		if req.Account != nil {
			transaction.Account = *req.Account
		}
		if err := db.Save(&transaction).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
			return
		}
		invalidateTransactionCaches(cc)
		c.JSON(http.StatusOK, transaction)
	}
}

// DeleteTransactionHandler removes a transaction, allowed only within the
// edit window after entry. The delete is hard: no tombstone is kept.
func DeleteTransactionHandler(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		var transaction domain.Transaction
		if err := db.First(&transaction, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		now := time.Now()
		if !transaction.MutableAt(now) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":       "Cannot delete transaction after 12 hours",
				"hoursPassed": fmt.Sprintf("%.2f", transaction.HoursSinceEntry(now)),
			})
			return
		}
		if err := db.Delete(&transaction).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"id":     transaction.ID,
			"type":   transaction.Type,
			"amount": transaction.Amount,
		}).Info("Transaction deleted")
		invalidateTransactionCaches(cc)
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
	}
}
