package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strings"  // Cache key assembly
	"time"     // Period arithmetic

	"finance_tracker/internal/cache"  // Redis cache wrapper
	"finance_tracker/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// CategorySummary is one row of the per-category aggregation
type CategorySummary struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"` // Sum of amounts in the category
	Count       int64   `json:"count"`       // Number of transactions
	Type        string  `json:"type"`        // Representative type within the group
	Division    string  `json:"division"`    // Representative division within the group
}

// DashboardStats holds the income/expense totals for a reporting period
type DashboardStats struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"` // income - expense
	Period  string  `json:"period"`
}

// summaryCacheKey builds a cache key embedding the filter set, so each
// distinct filter combination is cached independently.
func summaryCacheKey(prefix string, c *gin.Context, params ...string) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p+"="+c.DefaultQuery(p, ""))
	}
	return prefix + strings.Join(parts, ":")
}

// periodRange returns the inclusive bounds of a named reporting period.
// Weeks run Sunday to Saturday; month and year are calendar periods.
func periodRange(period string, now time.Time) (time.Time, time.Time, bool) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "week":
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond), true
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond), true
	case "year":
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond), true
	}
	return time.Time{}, time.Time{}, false
}

// CategorySummaryHandler groups transactions by category, summing amounts,
// within optional type/division/date filters, largest total first
func CategorySummaryHandler(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		cacheKey := summaryCacheKey(summaryCachePrefix, c, "type", "division", "startDate", "endDate")
		var summary []CategorySummary
		if found, err := cc.Get(ctx, cacheKey, &summary); err == nil && found {
			c.JSON(http.StatusOK, summary)
			return
		}
		query := db.Model(&domain.Transaction{}) // Start building the query
		if txType := c.Query("type"); txType != "" {
			query = query.Where("type = ?", txType)
		}
		if division := c.Query("division"); division != "" {
			query = query.Where("division = ?", division)
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
		// MIN stands in for "any value in the group" and keeps the query
		// valid under ONLY_FULL_GROUP_BY
		err := query.
			Select("category, SUM(amount) AS total_amount, COUNT(*) AS count, MIN(type) AS type, MIN(division) AS division").
			Group("category").
			Order("total_amount DESC").
			Scan(&summary).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
			return
		}
		_ = cc.Set(ctx, cacheKey, summary, cacheTTL)
		c.JSON(http.StatusOK, summary)
	}
}

// DashboardStatsHandler returns income/expense/balance totals for a named
// period (week, month, year) or an explicit date range. An explicit range
// overrides the named period entirely.
func DashboardStatsHandler(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		cacheKey := summaryCacheKey(dashboardCachePrefix, c, "period", "startDate", "endDate")
		var stats DashboardStats
		if found, err := cc.Get(ctx, cacheKey, &stats); err == nil && found {
			c.JSON(http.StatusOK, stats)
			return
		}
		period := c.Query("period")
		var start, end *time.Time
		if s, e, ok := periodRange(period, time.Now()); ok {
			start, end = &s, &e
		}
		// Explicit bounds replace the named period
		if c.Query("startDate") != "" || c.Query("endDate") != "" {
			start, end = nil, nil
			if t, ok := parseDate(c.Query("startDate")); ok {
				start = &t
			}
			if t, ok := parseDate(c.Query("endDate")); ok {
				end = &t
			}
		}
		query := db.Model(&domain.Transaction{})
		if start != nil {
			query = query.Where("date >= ?", *start)
		}
		if end != nil {
			query = query.Where("date <= ?", *end)
		}
		var totals []struct {
			Type  string
			Total float64
		}
		if err := query.Select("type, SUM(amount) AS total").Group("type").Scan(&totals).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build stats"})
			return
		}
		for _, t := range totals {
			switch t.Type {
			case domain.TypeIncome:
				stats.Income = t.Total
			case domain.TypeExpense:
				stats.Expense = t.Total
			}
		}
		stats.Balance = stats.Income - stats.Expense
		stats.Period = period
		if stats.Period == "" {
			stats.Period = "custom"
		}
		_ = cc.Set(ctx, cacheKey, stats, cacheTTL)
		c.JSON(http.StatusOK, stats)
	}
}
