// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/suggest"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// Dependencies carries the shared services the route groups wire into handlers
type Dependencies struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Config      *config.Config
	Logger      *logrus.Logger
	CartStore   *cart.Store
	Catalog     *catalog.Client
	Suggestions *suggest.Service
	Orders      *order.Service
}

// SetupRoutes wires every route group onto the API router
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.DB, deps.Redis, deps.CartStore, deps.Suggestions, deps.Config, deps.Logger)
	revocations := authHandler.UserService()

	setupAuthRoutes(rg, deps, authHandler, revocations)
	setupCatalogRoutes(rg, deps, revocations)
	setupCartRoutes(rg, deps, revocations)
	setupProfileRoutes(rg, deps, revocations)
	setupOrderRoutes(rg, deps, revocations)
}

// setupAuthRoutes sets up authentication related routes
func setupAuthRoutes(rg *gin.RouterGroup, deps Dependencies, authHandler *handlers.AuthHandler, revocations middleware.TokenRevocationChecker) {
	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Config, revocations))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/me", authHandler.Me)
			protected.POST("/change-password", authHandler.ChangePassword)
		}
	}
}

// setupCatalogRoutes sets up product browsing routes
func setupCatalogRoutes(rg *gin.RouterGroup, deps Dependencies, revocations middleware.TokenRevocationChecker) {
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog, deps.Suggestions, deps.Config, deps.Logger)

	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(deps.Config, revocations))
	{
		products.GET("", catalogHandler.ListProducts)
		products.GET("/categories", catalogHandler.ListCategories)
		products.GET("/suggest", catalogHandler.Suggest)
		products.GET("/:id", catalogHandler.GetProduct)
	}
}

// setupCartRoutes sets up session cart routes
func setupCartRoutes(rg *gin.RouterGroup, deps Dependencies, revocations middleware.TokenRevocationChecker) {
	cartHandler := handlers.NewCartHandler(deps.CartStore, deps.Catalog, deps.Config)

	cartGroup := rg.Group("/cart")
	cartGroup.Use(middleware.OptionalAuthMiddleware(deps.Config, revocations))
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}
}

// setupProfileRoutes sets up profile and address routes
func setupProfileRoutes(rg *gin.RouterGroup, deps Dependencies, revocations middleware.TokenRevocationChecker) {
	profileHandler := handlers.NewProfileHandler(deps.DB, deps.Config)

	profileGroup := rg.Group("/profile")
	profileGroup.Use(middleware.AuthMiddleware(deps.Config, revocations))
	{
		profileGroup.GET("", profileHandler.GetProfile)
		profileGroup.PUT("", profileHandler.UpdateProfile)
		profileGroup.GET("/addresses", profileHandler.ListAddresses)
		profileGroup.POST("/addresses", profileHandler.CreateAddress)
		profileGroup.PUT("/addresses/:id", profileHandler.UpdateAddress)
		profileGroup.DELETE("/addresses/:id", profileHandler.DeleteAddress)
	}
}

// setupOrderRoutes sets up checkout and order history routes
func setupOrderRoutes(rg *gin.RouterGroup, deps Dependencies, revocations middleware.TokenRevocationChecker) {
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.CartStore, deps.Config, deps.Logger)

	rg.POST("/checkout", middleware.AuthMiddleware(deps.Config, revocations), orderHandler.Checkout)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(deps.Config, revocations))
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/cancel", orderHandler.CancelOrder)
		orders.GET("/:id/receipt", orderHandler.DownloadReceipt)
	}
}
