package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Time durations

	"finance_tracker/internal/cache"  // Redis cache wrapper
	"finance_tracker/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Cache keys and TTL for read-heavy endpoints
const (
	accountsCacheKey     = "accounts:all"
	transfersCacheKey    = "transfers:all"
	summaryCachePrefix   = "summary:categories:"
	dashboardCachePrefix = "dashboard:stats:"
	cacheTTL             = 60 * time.Second
)

// CreateAccountRequest represents an account creation request
type CreateAccountRequest struct {
	Name    string  `json:"name" binding:"required"`           // Account name, unique
	Balance float64 `json:"balance" binding:"omitempty,gte=0"` // Opening balance, defaults to 0
}

// ListAccountsHandler returns all accounts sorted by name
func ListAccountsHandler(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var accounts []domain.Account
		// Serve from cache when the listing is fresh
		if found, err := cc.Get(ctx, accountsCacheKey, &accounts); err == nil && found {
			c.JSON(http.StatusOK, accounts)
			return
		}
		if err := db.Order("name asc").Find(&accounts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"})
			return
		}
		_ = cc.Set(ctx, accountsCacheKey, accounts, cacheTTL)
		c.JSON(http.StatusOK, accounts)
	}
}

// CreateAccountHandler creates a new account
func CreateAccountHandler(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAccountRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account data"})
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account data"})
			return
		}
		account := domain.Account{Name: name, Balance: req.Balance}
		// Attempt to create the account; the unique index rejects duplicates
		if err := db.Create(&account).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Account already exists"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"account": account.Name,
			"balance": account.Balance,
		}).Info("Account created")
		_ = cc.Delete(context.Background(), accountsCacheKey) // Invalidate account listing
		c.JSON(http.StatusCreated, account)
	}
}

// AccountTransactionsHandler returns the transactions labeled with the named
// account, newest business date first. The account label is a soft reference,
// so an unknown name simply yields an empty list.
func AccountTransactionsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var transactions []domain.Transaction
		if err := db.Where("account = ?", c.Param("name")).
			Order("date desc").
			Find(&transactions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		c.JSON(http.StatusOK, transactions)
	}
}

// ListTransfersHandler returns all transfers, newest first
func ListTransfersHandler(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var transfers []domain.Transfer
		if found, err := cc.Get(ctx, transfersCacheKey, &transfers); err == nil && found {
			c.JSON(http.StatusOK, transfers)
			return
		}
		if err := db.Order("date desc").Find(&transfers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transfers"})
			return
		}
		_ = cc.Set(ctx, transfersCacheKey, transfers, cacheTTL)
		c.JSON(http.StatusOK, transfers)
	}
}
