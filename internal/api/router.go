package api

import (
	"net/http" // HTTP status codes

	"finance_tracker/internal/cache" // Redis cache wrapper

	"github.com/gin-contrib/cors" // CORS middleware for the frontend
	"github.com/gin-gonic/gin"    // Gin web framework
	"gorm.io/gorm"                // GORM ORM library
)

// HealthHandler is the liveness probe
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	}
}

// NewRouter wires the HTTP surface. The transfer listing and transfer action
// are registered before the :name route so gin matches them as static paths
// instead of capturing "transfers" or "transfer" as an account name.
func NewRouter(db *gorm.DB, cc *cache.Cache, origins []string) *gin.Engine {
	r := gin.Default() // Gin router instance with logging and recovery

	// The frontend is deployed separately, so cross-origin calls must pass
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(origins) > 0 {
		corsCfg.AllowOrigins = origins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	apiGroup := r.Group("/api")
	apiGroup.GET("/health", HealthHandler())

	accounts := apiGroup.Group("/accounts")
	accounts.GET("", ListAccountsHandler(db, cc))
	accounts.POST("", CreateAccountHandler(db, cc))
	accounts.GET("/transfers/all", ListTransfersHandler(db, cc)) // Before :name
	accounts.POST("/transfer", TransferHandler(db, cc))
	accounts.GET("/:name/transactions", AccountTransactionsHandler(db))

	transactions := apiGroup.Group("/transactions")
	transactions.GET("", ListTransactionsHandler(db))
	transactions.POST("", CreateTransactionHandler(db, cc))
	transactions.GET("/summary/categories", CategorySummaryHandler(db, cc))
	transactions.GET("/dashboard/stats", DashboardStatsHandler(db, cc))
	transactions.GET("/:id", GetTransactionHandler(db))
	transactions.PUT("/:id", UpdateTransactionHandler(db, cc))
	transactions.DELETE("/:id", DeleteTransactionHandler(db, cc))

	return r
}
