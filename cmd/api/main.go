package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-warehouse/internal/handler"
	"go-warehouse/internal/middleware"
	"go-warehouse/internal/model"
	"go-warehouse/internal/repository"
	"go-warehouse/internal/service"
	"go-warehouse/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.User{}, &model.Product{}, &model.Transaction{})

	// 3. Seed default accounts
	seedDefaultAccounts(db)

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	reportRepo := repository.NewReportRepo(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, reportRepo)
	invService := service.NewInventoryService(productRepo, txRepo, db)
	approvalService := service.NewApprovalService(productRepo)
	dashService := service.NewDashboardService(reportRepo, txRepo, userRepo)
	reportService := service.NewReportService(reportRepo)

	authHandler := handler.NewAuthHandler(authService, userService)
	productHandler := handler.NewProductHandler(invService)
	adminHandler := handler.NewAdminHandler(approvalService, userService)
	dashHandler := handler.NewDashboardHandler(dashService)
	reportHandler := handler.NewReportHandler(reportService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Warehouse Inventory v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes

	// ============ PUBLIC ROUTES ============
	app.Get("/", middleware.OptionalAuth(userRepo), authHandler.Home)
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", authHandler.Login)
	app.Get("/logout", authHandler.Logout)

	// Read-only JSON aggregates; pending-count degrades for anonymous callers
	app.Get("/api/stats", reportHandler.GetStats)
	app.Get("/api/pending-count", middleware.OptionalAuth(userRepo), reportHandler.GetPendingCount)

	// ============ PROTECTED ROUTES ============
	authed := app.Group("", middleware.RequireAuth(userRepo))

	authed.Get("/dashboard", dashHandler.GetDashboard)

	authed.Get("/products", productHandler.ListProducts)
	authed.Post("/products/add", productHandler.AddProduct)
	authed.Post("/products/:id/update", productHandler.UpdateStock)
	authed.Post("/products/:id/edit", productHandler.EditProduct)
	authed.Get("/products/:id/delete", productHandler.DeleteProduct)
	authed.Get("/products/:id/detail", productHandler.ProductDetail)

	authed.Get("/profile", authHandler.Profile)
	authed.Post("/profile", authHandler.UpdateProfile)

	authed.Get("/reports", reportHandler.GetReports)

	// ============ ADMIN ROUTES ============
	admin := authed.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	admin.Get("/approve-products", adminHandler.PendingProducts)
	admin.Post("/products/:id/approve", adminHandler.ApproveProduct)
	admin.Post("/products/:id/reject", adminHandler.RejectProduct)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users/add", adminHandler.AddUser)
	admin.Get("/users/:id/toggle-status", adminHandler.ToggleUserStatus)
	admin.Get("/users/:id/delete", adminHandler.DeleteUser)

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
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

	log.Println("Server exited")
}

// seedDefaultAccounts creates the default admin and staff users on an empty
// database so the system is usable right after first boot.
func seedDefaultAccounts(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	count, err := userRepo.Count()
	if err != nil {
		log.Printf("Warning: failed to check users table: %v", err)
		return
	}
	if count > 0 {
		return
	}

	defaults := []struct {
		email    string
		password string
		name     string
		role     model.Role
	}{
		{"admin@warehouse.com", "admin123", "Warehouse Administrator", model.RoleAdmin},
		{"staff@warehouse.com", "staff123", "Warehouse Staff", model.RoleStaff},
	}

	for _, d := range defaults {
		user := &model.User{
			Email:    d.email,
			FullName: d.name,
			Role:     d.role,
			IsActive: true,
		}
		if err := user.SetPassword(d.password); err != nil {
			log.Printf("Warning: failed to hash password for %s: %v", d.email, err)
			continue
		}
		if err := userRepo.Create(user); err != nil {
			log.Printf("Warning: failed to seed user %s: %v", d.email, err)
			continue
		}
		log.Printf("✅ Seeded %s account: %s", d.role, d.email)
	}
}
