package main

import (
	"log"
	"time"

	_ "mfgtrack/api/swagger" // swagger docs
	"mfgtrack/internal/config"
	"mfgtrack/internal/database"
	"mfgtrack/internal/handler"
	"mfgtrack/internal/middleware"
	"mfgtrack/internal/repository"
	"mfgtrack/internal/service"
	"mfgtrack/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Manufacturing Order Tracking API
// @version         1.0
// @description     Order intake, routing, execution logging and shop-floor reporting.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := database.NewConnection(cfg.DSN)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	release := gin.Mode() == gin.ReleaseMode
	auth := middleware.NewAuth(cfg.JWTSecret)

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	routeRepo := repository.NewRouteRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	reportRepo := repository.NewReportRepository(db)
	txManager := repository.NewTransactionManager(db)

	userService := service.NewUserService(userRepo, cfg)
	catalogService := service.NewCatalogService(customerRepo, catalogRepo)
	orderService := service.NewOrderService(orderRepo, routeRepo, historyRepo, customerRepo, catalogRepo, txManager, wsHub, time.Now)
	reportService := service.NewReportService(reportRepo, cfg, time.Now)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService, auth, release)
	catalogHandler := handler.NewCatalogHandler(catalogService, auth)
	orderHandler := handler.NewOrderHandler(orderService, auth)
	reportHandler := handler.NewReportHandler(reportService, auth)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
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
		websocket.ServeWs(wsHub, c, auth.Secret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	catalogHandler.RegisterRoutes(router.Group(""))
	orderHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))

	log.Printf("Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
