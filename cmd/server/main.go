package main

import (
	"time"

	"github.com/BhailaBigyan/pharmacy-app/internal/config"
	"github.com/BhailaBigyan/pharmacy-app/internal/middleware"
	"github.com/BhailaBigyan/pharmacy-app/internal/models"
	"github.com/BhailaBigyan/pharmacy-app/internal/routes"
	"github.com/BhailaBigyan/pharmacy-app/internal/scheduler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	logger := config.GetLogger()

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, relying on system env")
	}

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect database: ", err)
	}

	db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Medicine{},
		&models.Customer{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.SupplierInvoice{},
		&models.SupplierInvoiceItem{},
		&models.StockMovement{},
	)

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Metrics())

	reportingSvc := routes.RegisterRoutes(r, db, cfg)

	sched := scheduler.NewScheduler(cfg.Scheduler, reportingSvc, logger)
	sched.Start()
	defer sched.Stop()

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped: ", err)
	}
}
