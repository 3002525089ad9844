package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/pawmemo/pawmemo-backend/internal/config"
	"github.com/pawmemo/pawmemo-backend/internal/handler"
	"github.com/pawmemo/pawmemo-backend/internal/middleware"
	"github.com/pawmemo/pawmemo-backend/internal/repository"
	"github.com/pawmemo/pawmemo-backend/internal/service"
	"github.com/pawmemo/pawmemo-backend/pkg/ai"
	"github.com/pawmemo/pawmemo-backend/pkg/database"
	"github.com/pawmemo/pawmemo-backend/pkg/email"
	"github.com/pawmemo/pawmemo-backend/pkg/payment"
	"github.com/pawmemo/pawmemo-backend/pkg/qrcode"
	"github.com/pawmemo/pawmemo-backend/pkg/storage"
	"github.com/pawmemo/pawmemo-backend/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.LoadConfig()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	// Database (runs migrations on startup)
	db := database.NewDatabase()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	tierRepo := repository.NewTierRepository(db)
	memorialRepo := repository.NewMemorialRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Tier catalog must exist before any entitlement check runs.
	if err := tierRepo.Seed(); err != nil {
		log.Fatal("Failed to seed tiers:", err)
	}

	// Storage
	r2Storage, err := storage.NewCloudflareStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize R2 storage:", err)
	}

	// External services
	emailService := email.NewEmailService()
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey)
	letterClient := ai.NewLetterClient(cfg)
	qrService := qrcode.NewQRService(cfg.MemorialURL)

	// Services
	sessionService := service.NewSessionService(sessionRepo, userRepo, zapLogger)
	authService := service.NewAuthService(userRepo, sessionService, emailService, zapLogger)
	entitlementService := service.NewEntitlementService(userRepo, tierRepo, memorialRepo, photoRepo)
	personalityService := service.NewPersonalityService()
	memorialService := service.NewMemorialService(
		memorialRepo,
		photoRepo,
		userRepo,
		entitlementService,
		personalityService,
		letterClient,
		qrService,
		emailService,
		cfg.MemorialURL,
		zapLogger,
	)
	photoService := service.NewPhotoService(photoRepo, memorialRepo, entitlementService, r2Storage, zapLogger)
	exportService := service.NewExportService(memorialRepo, photoRepo, entitlementService, r2Storage, zapLogger)
	paymentService := service.NewPaymentService(orderRepo, userRepo, service.NewStripeCheckout(stripeService), zapLogger)
	userService := service.NewUserService(userRepo, tierRepo, memorialRepo, photoRepo, zapLogger)
	tierService := service.NewTierService(tierRepo)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, validator)
	memorialHandler := handler.NewMemorialHandler(memorialService, personalityService, exportService, validator)
	photoHandler := handler.NewPhotoHandler(photoService)
	paymentHandler := handler.NewPaymentHandler(paymentService, stripeService, cfg.Stripe.WebhookSecret, validator, zapLogger)
	tierHandler := handler.NewTierHandler(tierService)

	app := fiber.New(fiber.Config{
		BodyLimit: 12 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify-email", authHandler.VerifyEmail)
	auth.Post("/resend-verification", authHandler.ResendVerification)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Public memorial pages
	api.Get("/m/:slug", memorialHandler.GetPublic)
	api.Get("/m/:slug/messages", memorialHandler.GetMessages)
	api.Post("/m/:slug/messages", memorialHandler.LeaveMessage)
	api.Get("/memorials/:id/photos", photoHandler.GetMemorialPhotos)
	api.Get("/quiz/questions", memorialHandler.GetQuizQuestions)

	// Tier catalog and plans (public, pricing pages)
	api.Get("/tiers", tierHandler.GetAll)
	api.Get("/tiers/:level", tierHandler.GetByLevel)
	api.Get("/payments/plans", paymentHandler.GetPlans)

	// Stripe webhook (public, signature-verified)
	api.Post("/payments/webhook", paymentHandler.StripeWebhook)

	// Export download (token is the auth)
	api.Get("/memorials/export/download", memorialHandler.DownloadExport)

	// Protected routes
	api.Use(middleware.AuthMiddleware(sessionService))
	{
		auth.Post("/logout", authHandler.Logout)

		user := api.Group("/user")
		user.Get("/profile", userHandler.GetProfile)
		user.Get("/dashboard", userHandler.GetDashboard)
		user.Post("/change-password", userHandler.ChangePassword)

		memorials := api.Group("/memorials")
		memorials.Post("/", memorialHandler.Create)
		memorials.Get("/", memorialHandler.GetMyMemorials)
		memorials.Get("/:id", memorialHandler.Get)
		memorials.Put("/:id", memorialHandler.Update)
		memorials.Delete("/:id", memorialHandler.Delete)
		memorials.Post("/:id/quiz", memorialHandler.SubmitQuiz)
		memorials.Post("/:id/letter", memorialHandler.GenerateLetter)
		memorials.Get("/:id/qrcode", memorialHandler.GetQRCode)
		memorials.Post("/:id/export", memorialHandler.RequestExport)
		memorials.Post("/:id/photos", photoHandler.Upload)

		photos := api.Group("/photos")
		photos.Delete("/:photoId", photoHandler.Delete)

		payments := api.Group("/payments")
		payments.Post("/orders", paymentHandler.CreateOrder)
		payments.Get("/orders", paymentHandler.GetMyOrders)
		payments.Get("/orders/:orderNo", paymentHandler.GetOrder)
		payments.Post("/orders/:orderNo/cancel", paymentHandler.CancelOrder)
		payments.Get("/history", paymentHandler.GetLedger)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Fatal(app.Listen(":" + port))
}
