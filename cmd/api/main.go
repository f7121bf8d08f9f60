package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-storefront-api/internal/handler"
	"go-storefront-api/internal/middleware"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/service"
	"go-storefront-api/internal/ws"
	"go-storefront-api/pkg/database"
	"go-storefront-api/pkg/logger"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	zlog, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer zlog.Sync()

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.SupplierOrder{},
		&model.SupplierOrderItem{},
	)

	// 3. Seed default admin user
	seedAdmin(db, zlog)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	supplierOrderRepo := repository.NewSupplierOrderRepo(db)

	authService := service.NewAuthService(userRepo, zlog)
	catalogService := service.NewCatalogService(productRepo, wsHub, zlog)
	orderService := service.NewOrderService(orderRepo, productRepo, wsHub, zlog)
	supplierOrderService := service.NewSupplierOrderService(supplierOrderRepo, productRepo, userRepo, db, wsHub, zlog)
	paymentService := service.NewPaymentService(os.Getenv("STRIPE_SECRET_KEY"), zlog)
	chatService := service.NewChatService(os.Getenv("OPENAI_BASE_URL"), os.Getenv("OPENAI_API_KEY"), zlog)

	// Google sign-in is optional in local development
	var oauthService service.OAuthService
	if clientID := os.Getenv("GOOGLE_CLIENT_ID"); clientID != "" {
		oauthService = service.NewGoogleOAuthService(service.GoogleOAuthConfig{
			ClientID:     clientID,
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		}, zlog)
	}

	authHandler := handler.NewAuthHandler(authService, oauthService)
	productHandler := handler.NewProductHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	supplierOrderHandler := handler.NewSupplierOrderHandler(supplierOrderService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	chatHandler := handler.NewChatHandler(chatService)

	// Asset storage is optional in local development
	var uploadHandler *handler.UploadHandler
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			zlog.Fatal("failed to load aws config", zap.Error(err))
		}
		uploadService := service.NewUploadService(
			s3.NewFromConfig(awsCfg), bucket, os.Getenv("ASSET_BASE_URL"), zlog)
		uploadHandler = handler.NewUploadHandler(uploadService)
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "Storefront API v1.0",
		BodyLimit: service.MaxUploadSize + 1024*1024,
	})

	// Middleware
	app.Use(fiberlogger.New()) // Request logging
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	if oauthService != nil {
		auth.Get("/google/callback", authHandler.GoogleCallback)
	}

	api.Get("/products", productHandler.GetProducts)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Post("/chatbot", chatHandler.Chat)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Catalog management (admin)
	protected.Post("/products", middleware.RequireRole(model.RoleAdmin), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequireRole(model.RoleAdmin), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireRole(model.RoleAdmin), productHandler.DeleteProduct)

	// Customer orders
	protected.Post("/orders", orderHandler.CreateOrder)
	protected.Get("/orders/my-orders", orderHandler.GetMyOrders)
	protected.Get("/orders/all", middleware.RequireRole(model.RoleAdmin), orderHandler.GetAllOrders)
	protected.Put("/orders/:id/status", middleware.RequireRole(model.RoleAdmin), orderHandler.UpdateStatus)

	// Supplier orders
	protected.Post("/supplier-orders", middleware.RequireRole(model.RoleAdmin), supplierOrderHandler.CreateSupplierOrder)
	protected.Get("/supplier-orders/admin/all", middleware.RequireRole(model.RoleAdmin), supplierOrderHandler.GetAllSupplierOrders)
	protected.Get("/supplier-orders/my-orders", middleware.RequireRole(model.RoleSupplier), supplierOrderHandler.GetMyOrders)
	protected.Get("/supplier-orders/suppliers/list", middleware.RequireRole(model.RoleAdmin), supplierOrderHandler.GetSuppliers)
	protected.Put("/supplier-orders/:id/status", middleware.RequireRole(model.RoleSupplier), supplierOrderHandler.UpdateStatus)
	protected.Put("/supplier-orders/:id/deliver", middleware.RequireRole(model.RoleAdmin), supplierOrderHandler.Deliver)

	// Payment
	protected.Post("/payment/create-payment-intent", paymentHandler.CreatePaymentIntent)

	// Asset upload (admin)
	if uploadHandler != nil {
		protected.Post("/upload", middleware.RequireRole(model.RoleAdmin), uploadHandler.Upload)
	}

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "5001"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}

// seedAdmin creates the default admin account if it doesn't exist
func seedAdmin(db *gorm.DB, zlog *zap.Logger) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Name:  "Store Administrator",
		Email: "admin@example.com",
		Role:  model.RoleAdmin,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	if err := admin.SetPassword(password); err != nil {
		zlog.Warn("failed to hash admin password", zap.Error(err))
		return
	}

	if err := userRepo.Create(admin); err != nil {
		zlog.Warn("failed to create admin user", zap.Error(err))
		return
	}
	zlog.Info("admin user created", zap.String("email", admin.Email))
}
