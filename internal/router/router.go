// internal/router/router.go
package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/petpalooza-backend/internal/config"
	"github.com/javajoker/petpalooza-backend/internal/handlers"
	"github.com/javajoker/petpalooza-backend/internal/middleware"
	"github.com/javajoker/petpalooza-backend/internal/services"
)

const version = "1.0.0"

// Initialize wires services and handlers onto a gin engine. Background work
// started here (rate limiter cleanup) stops when ctx is cancelled.
func Initialize(ctx context.Context, db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	notificationService := services.NewNotificationService(cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	authService := services.NewAuthService(db, cfg, notificationService)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, notificationService)
	catalogService := services.NewCatalogService(db, cfg.Shop)
	contentService := services.NewContentService(db)
	contactService := services.NewContactService(db)
	paymentService := services.NewPaymentService(db, cfg)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	cartHandler := handlers.NewCartHandler(cartService, storageService)
	orderHandler := handlers.NewOrderHandler(orderService, storageService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, storageService)
	contentHandler := handlers.NewContentHandler(contentService, storageService)
	contactHandler := handlers.NewContactHandler(contactService)
	adminHandler := handlers.NewAdminHandler(adminService, orderService, catalogService, storageService)

	limiters := middleware.NewRateLimiters(cfg.RateLimit)
	limiters.Run(ctx)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(limiters.General.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": version,
		})
	})

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth())
	{
		// Cart
		cart := api.Group("/cart")
		{
			cart.GET("/", cartHandler.GetCart)
			cart.POST("/add/", cartHandler.AddItem)
			cart.POST("/clear/", cartHandler.Clear)
			cart.GET("/:id/", cartHandler.GetItem)
			cart.PATCH("/:id/", cartHandler.UpdateItem)
			cart.DELETE("/:id/", cartHandler.RemoveItem)
		}

		// Orders
		orders := api.Group("/orders")
		{
			orders.POST("/create/", orderHandler.CreateOrder)
			orders.GET("/by-token/", orderHandler.GetByToken)
			orders.POST("/payment-intent/", paymentHandler.CreatePaymentIntent)
			orders.POST("/confirm-payment/", paymentHandler.ConfirmPayment)
		}

		// Pets catalog
		api.GET("/pet-categories/", catalogHandler.ListCategories)
		api.GET("/pet-categories/:id/", catalogHandler.GetCategory)
		api.GET("/pet-products/", catalogHandler.ListProducts)
		api.GET("/pet-products/:id/", catalogHandler.GetProduct)
		api.GET("/pet-banners/", catalogHandler.ListBanners)
		api.GET("/pet-banners/:id/", catalogHandler.GetBanner)
		api.GET("/pet-page/", catalogHandler.GetPetPage)
		api.GET("/pet-product/:id/", catalogHandler.GetProductDetail)
		api.POST("/pet-product/:id/reviews/", catalogHandler.CreateReview)

		// About
		api.GET("/about/", contentHandler.ListAboutPages())
		api.GET("/about/:id/", contentHandler.GetAboutPage())
		api.GET("/about-cards/", contentHandler.ListAboutCards())
		api.GET("/about-cards/:id/", contentHandler.GetAboutCard())
		api.GET("/about-highlights/", contentHandler.ListAboutHighlights())
		api.GET("/about-highlights/:id/", contentHandler.GetAboutHighlight())

		// Home
		api.GET("/home-categories/", contentHandler.ListHomeCategories())
		api.GET("/home-categories/:id/", contentHandler.GetHomeCategory())
		api.GET("/promo-banners/", contentHandler.ListPromoBanners())
		api.GET("/promo-banners/:id/", contentHandler.GetPromoBanner())
		api.GET("/offer-strips/", contentHandler.ListOfferStrips())
		api.GET("/offer-strips/:id/", contentHandler.GetOfferStrip())
		api.GET("/pet-services/", contentHandler.ListPetServices())
		api.GET("/pet-services/:id/", contentHandler.GetPetService())
		api.GET("/carousal-banner1/", contentHandler.ListCarouselBanner1())
		api.GET("/carousal-banner1/:id/", contentHandler.GetCarouselBanner1())
		api.GET("/carousal-banner2/", contentHandler.ListCarouselBanner2())
		api.GET("/carousal-banner2/active/", contentHandler.ListCarouselBanner2())
		api.GET("/carousal-banner2/:id/", contentHandler.GetCarouselBanner2())
		api.GET("/carousal-banner3/", contentHandler.ListCarouselBanner3())
		api.GET("/carousal-banner3/:id/", contentHandler.GetCarouselBanner3())

		// Core
		api.GET("/mega-menus/", contentHandler.ListMegaMenus)
		api.GET("/mega-menus/:key/", contentHandler.GetMegaMenu)
		api.GET("/site-settings/", contentHandler.GetSiteSettings)

		// Contact
		api.POST("/contact/messages/", contactHandler.CreateMessage)
		api.GET("/contact/messages/list/", middleware.AuthRequired(), middleware.AdminRequired(), contactHandler.ListMessages)

		// Pet services
		api.GET("/petservices/", contentHandler.LatestPetServiceLanding())
		api.GET("/petservices/:id/", contentHandler.GetPetServiceLanding())
		api.GET("/petservicescards/", contentHandler.LatestPetServicesPage())
		api.GET("/petservicescards/:id/", contentHandler.GetPetServicesPage())
		api.GET("/servicecards/", contentHandler.ListServiceCards)
		api.GET("/servicecards/:id/", contentHandler.GetServiceCard)
		api.GET("/consult-page/", contentHandler.LatestConsultPage())
		api.GET("/consult-page/:id/", contentHandler.GetConsultPage())
		api.GET("/vet-doctors/", contentHandler.ListVetDoctors())
		api.GET("/vet-doctors/:id/", contentHandler.GetVetDoctor())
		api.GET("/booking-service/", contentHandler.LatestBookingService())
		api.GET("/booking-service/:id/", contentHandler.GetBookingService())

		// Account
		account := api.Group("/account")
		{
			account.POST("/register/", limiters.Auth.Middleware(), authHandler.Register)
			account.GET("/me/", middleware.AuthRequired(), authHandler.Me)
			account.POST("/logout/", middleware.AuthRequired(), authHandler.Logout)
		}
		token := api.Group("/token")
		token.Use(limiters.Auth.Middleware())
		{
			token.POST("/", authHandler.Login)
			token.POST("/refresh/", authHandler.RefreshToken)
		}

		// Staff
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLogMiddleware(db))
		{
			admin.GET("/dashboard/stats", adminHandler.GetDashboardStats)

			admin.GET("/orders", adminHandler.GetOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)

			admin.POST("/products", adminHandler.CreateProduct)
			admin.PATCH("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.POST("/carousal-banner2", contentHandler.SaveCarouselBanner2)
			admin.PUT("/carousal-banner2/:id", contentHandler.SaveCarouselBanner2)
			admin.DELETE("/carousal-banner2/:id", contentHandler.DeleteCarouselBanner2)
			admin.POST("/carousal-banner3", contentHandler.SaveCarouselBanner3)
			admin.PUT("/carousal-banner3/:id", contentHandler.SaveCarouselBanner3)
			admin.DELETE("/carousal-banner3/:id", contentHandler.DeleteCarouselBanner3)

			admin.GET("/users", adminHandler.GetUsers)
			admin.PATCH("/users/:id", adminHandler.UpdateUser)
			admin.GET("/audit-logs", adminHandler.GetAuditLogs)
		}
	}

	return r, nil
}
