package api

import (
	"net/http"
	"strconv"
	"time"

	"dpstore-backend/config"
	"dpstore-backend/internal/auth"
	"dpstore-backend/internal/service"
	"dpstore-backend/internal/session"
	"dpstore-backend/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog   *service.CatalogService
	orders    *service.OrderService
	accounts  *service.AccountService
	admin     *service.AdminService
	validator *service.GameValidator
	sessions  *session.Store
	tokens    *auth.TokenManager
	google    *auth.GoogleClient
	cfg       *config.Config
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	orders *service.OrderService,
	accounts *service.AccountService,
	admin *service.AdminService,
	validator *service.GameValidator,
	sessions *session.Store,
	tokens *auth.TokenManager,
	google *auth.GoogleClient,
	cfg *config.Config,
) *Handler {
	return &Handler{
		catalog:   catalog,
		orders:    orders,
		accounts:  accounts,
		admin:     admin,
		validator: validator,
		sessions:  sessions,
		tokens:    tokens,
		google:    google,
		cfg:       cfg,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     h.cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", h.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Google sign-in lives outside /api, matching the frontend redirect URLs.
	router.GET("/auth/google", h.googleLogin)
	router.GET("/auth/google/callback", h.googleCallback)

	api := router.Group("/api")
	{
		api.GET("/games", h.listGames)
		api.GET("/games/search", h.searchGames)
		api.GET("/games/:slug", h.getGameDetail)
		api.GET("/promotions", h.listPromotions)
		api.GET("/reviews/:gameSlug", h.getGameReviews)
		api.GET("/testimonials", h.listTestimonials)
		api.GET("/payment-methods", h.paymentMethods)
		api.POST("/validate-user-id", h.validateUserID)

		api.GET("/transactions/check/:externalId", h.checkTransaction)
		api.POST("/transactions", h.optionalAuth(), h.createTransaction)
	}

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.GET("/session-token", h.sessionToken)
		authGroup.POST("/logout", h.logout)

		loggedIn := authGroup.Group("", h.optionalAuth(), h.requireLogin())
		{
			loggedIn.GET("/me", h.getProfile)
			loggedIn.PUT("/me", h.updateProfile)
			loggedIn.PUT("/change-password", h.changePassword)
			loggedIn.GET("/favorites/me", h.listFavorites)
			loggedIn.POST("/favorites", h.addFavorite)
			loggedIn.DELETE("/favorites/:gameId", h.removeFavorite)
			loggedIn.GET("/transactions/me", h.myTransactions)
		}

		authGroup.POST("/forgot-password", h.forgotPassword)
		authGroup.POST("/reset-password/:token", h.resetPassword)
	}

	adminGroup := router.Group("/api/admin")
	{
		adminGroup.POST("/login", h.adminLogin)

		protected := adminGroup.Group("", h.requireAdmin())
		{
			protected.GET("/dashboard-stats", h.dashboardStats)

			protected.GET("/transactions", h.adminListTransactions)
			protected.GET("/transactions/recent", h.adminRecentTransactions)
			protected.PUT("/transactions/:transactionId/status", h.adminUpdateTransactionStatus)

			protected.GET("/games", h.adminListGames)
			protected.GET("/games/:id", h.adminGetGame)
			protected.POST("/games", h.adminCreateGame)
			protected.PUT("/games/:id", h.adminUpdateGame)
			protected.DELETE("/games/:id", h.adminDeleteGame)
			protected.GET("/games/:id/products", h.adminListProducts)

			protected.POST("/products", h.adminCreateProduct)
			protected.PUT("/products/:productId", h.adminUpdateProduct)
			protected.DELETE("/products/:productId", h.adminDeleteProduct)

			protected.GET("/promotions", h.adminListPromotions)
			protected.POST("/promotions", h.adminCreatePromotion)
			protected.PUT("/promotions/:id", h.adminUpdatePromotion)
			protected.DELETE("/promotions/:id", h.adminDeletePromotion)

			protected.GET("/users", h.adminListUsers)
			protected.GET("/users/:id", h.adminGetUser)
			protected.PUT("/users/:id/rewards", h.adminSetRewards)
		}
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
