package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loja-admin/internal/config"
	"loja-admin/internal/handler"
	"loja-admin/internal/identity"
	"loja-admin/internal/repository"
	"loja-admin/internal/service"
	"loja-admin/internal/ws"
	"loja-admin/pkg/database"
	"loja-admin/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB(cfg.DatabaseDSN)
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	rdb := database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	movementRepo := repository.NewStockMovementRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	ledger := service.NewStockLedger(productRepo, movementRepo)
	accounts := identity.NewCachedLookup(
		identity.NewClient(cfg.IdentityURL, cfg.IdentityServiceToken),
		rdb,
		cfg.IdentityCacheTTL,
	)
	signer := jwt.NewSigner(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	services := handler.Services{
		Catalog:   service.NewCatalogService(productRepo, movementRepo, ledger, db, wsHub),
		Sales:     service.NewSaleService(productRepo, saleRepo, ledger, db, wsHub, cfg.Location),
		Revenue:   service.NewRevenueService(saleRepo, productRepo, cfg.Location),
		Dashboard: service.NewDashboardService(movementRepo, cfg.LowStockThreshold, cfg.Location),
		Auth:      service.NewAuthService(accounts, signer),
		Redis:     rdb,
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Loja Admin v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			return c.Status(503).JSON(fiber.Map{"status": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok", "ws_clients": wsHub.ClientCount()})
	})

	handler.RegisterRoutes(app, services)

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

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	if rdb != nil {
		rdb.Close()
	}

	log.Println("Server exited")
}
