package main

import (
	"context"
	"log"
	"os"
	"time"

	"ezakat/internal/database"
	"ezakat/internal/handler"
	"ezakat/internal/middleware"
	"ezakat/internal/repository"
	"ezakat/internal/service"
	"ezakat/internal/websocket"
	"ezakat/internal/zakat"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           eZakat Collection API
// @version         1.0
// @description     Zakat calculation, payment and receipt management for Malaysian zakat collection.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "ezakat"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub for the live collection feed
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	nisabRepo := repository.NewNisabRuleRepository(db)
	calcRepo := repository.NewCalculationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	txManager := repository.NewTransactionManager(db)

	userService := service.NewUserService(userRepo, db)
	nisabService := service.NewNisabService(nisabRepo, db)
	notificationService := service.NewNotificationService(notificationRepo, os.Getenv("NOTIFY_CHANNEL"))
	receiptService := service.NewReceiptService(receiptRepo)
	engine := zakat.NewEngine(nisabService)
	calcService := service.NewCalculationService(engine, calcRepo, notificationService, db)
	paymentService := service.NewPaymentService(
		paymentRepo, calcRepo, userRepo, commissionRepo,
		receiptService, notificationService, txManager, wsHub, db,
	)
	commissionService := service.NewCommissionService(commissionRepo, db)
	branchService := service.NewBranchService(branchRepo, db)
	auditService := service.NewAuditService(db)
	statisticsService := service.NewStatisticsService(db)

	// Seed default nisab rules on first boot
	if err := nisabService.EnsureDefaults(context.Background()); err != nil {
		log.Println("WARNING: Failed to seed default nisab rules:", err)
	}

	// Background dispatcher for queued notifications
	go notificationService.RunDispatcher(context.Background(), time.Minute)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	nisabHandler := handler.NewNisabHandler(nisabService)
	calcHandler := handler.NewCalculationHandler(calcService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	receiptHandler := handler.NewReceiptHandler(receiptService)
	commissionHandler := handler.NewCommissionHandler(commissionService)
	branchHandler := handler.NewBranchHandler(branchService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	auditHandler := handler.NewAuditHandler(auditService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	nisabHandler.RegisterRoutes(router.Group(""))
	calcHandler.RegisterRoutes(router.Group(""))
	paymentHandler.RegisterRoutes(router.Group(""))
	receiptHandler.RegisterRoutes(router.Group(""))
	commissionHandler.RegisterRoutes(router.Group(""))
	branchHandler.RegisterRoutes(router.Group(""))
	notificationHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
