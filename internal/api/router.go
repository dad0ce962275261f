package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/storo/booking-api/docs"
	"github.com/storo/booking-api/internal/api/handler"
	"github.com/storo/booking-api/internal/api/middleware"
	"github.com/storo/booking-api/internal/core/domain"
	"github.com/storo/booking-api/internal/core/service"
	"github.com/storo/booking-api/internal/infrastructure/config"
	mongodb "github.com/storo/booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/storo/booking-api/internal/infrastructure/db/redis"
	"github.com/storo/booking-api/internal/infrastructure/email"
	"github.com/storo/booking-api/internal/infrastructure/payment"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("storo"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	partnerRepo := mongodb.NewPartnerRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	ticketRepo := mongodb.NewTicketRepository(db)

	// --- Infrastructure ---
	mailer := email.NewSMTPMailer(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	gateway := payment.NewGateway(payment.Config{
		BaseURL:   cfg.Payment.BaseURL,
		KeyID:     cfg.Payment.KeyID,
		KeySecret: cfg.Payment.KeySecret,
	})
	dedup := redisdb.NewPaymentDedup(rdb)
	tokens := service.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// --- Services ---
	authService := service.NewAuthService(userRepo, tokens, mailer, cfg.FrontendURL, log)
	partnerService := service.NewPartnerService(partnerRepo, userRepo, bookingRepo, tokens, log)
	bookingService := service.NewBookingService(bookingRepo, partnerRepo, log)
	paymentService := service.NewPaymentService(gateway, bookingService, bookingRepo, userRepo, partnerRepo, mailer, dedup, cfg.Payment.Currency, log)
	adminService := service.NewAdminService(partnerRepo, userRepo, log)
	supportService := service.NewSupportService(ticketRepo, userRepo, mailer, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	partnerHandler := handler.NewPartnerHandler(partnerService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	adminHandler := handler.NewAdminHandler(adminService)
	supportHandler := handler.NewSupportHandler(supportService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authRequired := middleware.Auth(cfg.Auth.JWTSecret)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.GET("/profile", authHandler.Profile, authRequired)
	auth.PUT("/profile", authHandler.UpdateProfile, authRequired)

	// --- Partner routes ---
	partners := e.Group("/api/partners")
	partners.POST("", partnerHandler.Register)
	partners.POST("/nearby", partnerHandler.Nearby)
	partners.GET("/profile", partnerHandler.Profile, authRequired, middleware.RBAC(domain.RolePartner))
	partners.GET("/stats", partnerHandler.Stats, authRequired, middleware.RBAC(domain.RolePartner))
	partners.GET("/bookings", partnerHandler.Bookings, authRequired, middleware.RBAC(domain.RolePartner))

	// --- Booking routes ---
	bookings := e.Group("/api/bookings", authRequired)
	bookings.GET("", bookingHandler.List)
	bookings.POST("", bookingHandler.Create)
	bookings.PUT("/:bookingId", bookingHandler.UpdateStatus)
	bookings.DELETE("/:bookingId", bookingHandler.Delete)

	// --- Payment routes ---
	payments := e.Group("/api/payments", authRequired)
	payments.POST("/create-order", paymentHandler.CreateOrder)
	payments.POST("/verify", paymentHandler.Verify)

	// --- Support routes ---
	e.POST("/api/support/ticket", supportHandler.CreateTicket, authRequired)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authRequired, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/partners/pending", adminHandler.ListPending)
	admin.GET("/partners/approved", adminHandler.ListApproved)
	admin.PUT("/partners/:partnerId/approve", adminHandler.Approve)
	admin.DELETE("/partners/:partnerId/reject", adminHandler.Reject)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	return e
}
