package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BhailaBigyan/pharmacy-app/internal/config"
	handler "github.com/BhailaBigyan/pharmacy-app/internal/handlers"
	"github.com/BhailaBigyan/pharmacy-app/internal/middleware"
	"github.com/BhailaBigyan/pharmacy-app/internal/models"
	"github.com/BhailaBigyan/pharmacy-app/internal/repository"
	"github.com/BhailaBigyan/pharmacy-app/internal/services/auth"
	"github.com/BhailaBigyan/pharmacy-app/internal/services/billing"
	"github.com/BhailaBigyan/pharmacy-app/internal/services/intake"
	"github.com/BhailaBigyan/pharmacy-app/internal/services/reporting"
)

// RegisterRoutes wires repositories, services and handlers onto the engine.
// The reporting service is returned so the scheduler can reuse it.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) *reporting.Service {
	logger := config.GetLogger()

	medicineRepo := repository.NewMedicineRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	userRepo := repository.NewUserRepository(db)

	billingService := billing.NewService(medicineRepo, customerRepo, logger)
	intakeService := intake.NewService(supplierRepo, medicineRepo, logger)
	reportingService := reporting.NewService(invoiceRepo, medicineRepo, logger)
	authService := auth.NewService(userRepo, cfg.JWT)

	billingHandler := handler.NewBillingHandler(billingService, invoiceRepo)
	medicineHandler := handler.NewMedicineHandler(medicineRepo)
	supplierHandler := handler.NewSupplierHandler(supplierRepo, intakeService)
	customerHandler := handler.NewCustomerHandler(customerRepo, invoiceRepo)
	reportHandler := handler.NewReportHandler(reportingService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userRepo, authService)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public auth routes
	authGroup := api.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/register", authHandler.Register)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(authService))

	selling := middleware.RequireRoles(models.RoleAdmin, models.RolePharmacist, models.RoleStaff)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	// Billing routes
	bill := authed.Group("/billing", selling)
	bill.POST("/invoices", billingHandler.GenerateInvoice)
	bill.GET("/invoices", billingHandler.ListInvoices)
	bill.GET("/invoices/:id", billingHandler.GetInvoice)

	// Medicine routes
	meds := authed.Group("/medicines")
	meds.GET("", medicineHandler.List)
	meds.GET("/search", medicineHandler.Search)
	meds.GET("/low-stock", medicineHandler.LowStock)
	meds.GET("/out-of-stock", medicineHandler.OutOfStock)
	meds.GET("/expired", medicineHandler.Expired)
	meds.GET("/expiring-soon", medicineHandler.ExpiringSoon)
	meds.GET("/:id", medicineHandler.Get)
	meds.POST("", selling, medicineHandler.Create)
	meds.PUT("/:id", selling, medicineHandler.Update)
	meds.DELETE("/:id", adminOnly, medicineHandler.Delete)

	// Customer routes
	customers := authed.Group("/customers")
	customers.GET("", customerHandler.List)
	customers.GET("/:id", customerHandler.Detail)

	// Supplier routes, intake included
	suppliers := authed.Group("/suppliers")
	suppliers.GET("", supplierHandler.List)
	suppliers.GET("/:id", supplierHandler.Get)
	suppliers.POST("", adminOnly, supplierHandler.Create)
	suppliers.PUT("/:id", adminOnly, supplierHandler.Update)
	suppliers.DELETE("/:id", adminOnly, supplierHandler.Delete)
	suppliers.POST("/:id/invoices", selling, supplierHandler.CreateIntake)
	suppliers.GET("/:id/invoices", supplierHandler.ListIntakes)
	suppliers.GET("/:id/invoices/:invoiceID", supplierHandler.GetIntake)

	// Report routes
	reports := authed.Group("/reports")
	reports.GET("/sales", reportHandler.Sales)
	reports.GET("/sales/export", reportHandler.SalesExport)
	reports.GET("/dashboard", reportHandler.Dashboard)
	reports.GET("/stock", reportHandler.Stock)

	authed.GET("/notifications", reportHandler.Notifications)

	// Admin user management
	users := authed.Group("/users", adminOnly)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.POST("/:id/activate", userHandler.Activate)
	users.POST("/:id/deactivate", userHandler.Deactivate)

	return reportingService
}
