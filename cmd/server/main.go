package main

import (
	"log"
	"strings"

	"depo-backend/internal/admin"
	"depo-backend/internal/apperr"
	"depo-backend/internal/audit"
	"depo-backend/internal/auth"
	"depo-backend/internal/catalog"
	"depo-backend/internal/config"
	"depo-backend/internal/dashboard"
	"depo-backend/internal/database"
	"depo-backend/internal/debt"
	"depo-backend/internal/models"
	"depo-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.FiberErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin: kullanıcı yönetimi
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/users", admin.CreateUserHandler())
	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Put("/users/:id", admin.UpdateUserHandler())
	adminRoutes.Put("/users/:id/permissions", admin.UpdateUserPermissionsHandler())
	adminRoutes.Delete("/users/:id", admin.DeleteUserHandler())

	// Kategoriler
	protected.Get("/categories", auth.RequirePage(models.PageCategories), catalog.ListCategoriesHandler())
	protected.Post("/categories", auth.RequirePage(models.PageCategories, models.ActionCreate), catalog.CreateCategoryHandler())
	protected.Put("/categories/:id", auth.RequirePage(models.PageCategories, models.ActionUpdate), catalog.UpdateCategoryHandler())
	protected.Delete("/categories/:id", auth.RequirePage(models.PageCategories, models.ActionDelete), catalog.DeleteCategoryHandler())

	// Ürünler
	protected.Get("/products", auth.RequirePage(models.PageProducts), catalog.ListProductsHandler())
	protected.Get("/products/:id", auth.RequirePage(models.PageProducts), catalog.GetProductHandler())
	protected.Post("/products", auth.RequirePage(models.PageProducts, models.ActionCreate), catalog.CreateProductHandler())
	protected.Post("/products/import", auth.RequirePage(models.PageProducts, models.ActionImport), catalog.ImportProductsHandler())
	protected.Put("/products/:id", auth.RequirePage(models.PageProducts, models.ActionUpdate), catalog.UpdateProductHandler())
	protected.Delete("/products/:id", auth.RequirePage(models.PageProducts, models.ActionDelete), catalog.DeleteProductHandler())

	// Depolar
	protected.Get("/warehouses", auth.RequirePage(models.PageWarehouses), catalog.ListWarehousesHandler())
	protected.Post("/warehouses", auth.RequirePage(models.PageWarehouses, models.ActionCreate), catalog.CreateWarehouseHandler())
	protected.Put("/warehouses/:id", auth.RequirePage(models.PageWarehouses, models.ActionUpdate), catalog.UpdateWarehouseHandler())
	protected.Delete("/warehouses/:id", auth.RequirePage(models.PageWarehouses, models.ActionDelete), catalog.DeleteWarehouseHandler())

	// Giriş belgeleri
	protected.Get("/receipts", auth.RequirePage(models.PageReceipts), stock.ListReceiptsHandler())
	protected.Get("/receipts/:id", auth.RequirePage(models.PageReceipts), stock.GetReceiptHandler())
	protected.Post("/receipts", auth.RequirePage(models.PageReceipts, models.ActionCreate), stock.CreateReceiptHandler())
	protected.Put("/receipts/:id/status", auth.RequirePage(models.PageReceipts, models.ActionComplete), stock.UpdateReceiptStatusHandler())
	protected.Delete("/receipts/:id", auth.RequirePage(models.PageReceipts, models.ActionDelete), stock.DeleteReceiptHandler())

	// Çıkış belgeleri
	protected.Get("/issues", auth.RequirePage(models.PageIssues), stock.ListIssuesHandler())
	protected.Get("/issues/:id", auth.RequirePage(models.PageIssues), stock.GetIssueHandler())
	protected.Post("/issues", auth.RequirePage(models.PageIssues, models.ActionCreate), stock.CreateIssueHandler())
	protected.Put("/issues/:id/status", auth.RequirePage(models.PageIssues, models.ActionComplete), stock.UpdateIssueStatusHandler())
	protected.Delete("/issues/:id", auth.RequirePage(models.PageIssues, models.ActionDelete), stock.DeleteIssueHandler())

	// Transfer belgeleri
	protected.Get("/transfers", auth.RequirePage(models.PageTransfers), stock.ListTransfersHandler())
	protected.Get("/transfers/:id", auth.RequirePage(models.PageTransfers), stock.GetTransferHandler())
	protected.Post("/transfers", auth.RequirePage(models.PageTransfers, models.ActionCreate), stock.CreateTransferHandler())
	protected.Put("/transfers/:id/status", auth.RequirePage(models.PageTransfers, models.ActionComplete), stock.UpdateTransferStatusHandler())
	protected.Delete("/transfers/:id", auth.RequirePage(models.PageTransfers, models.ActionDelete), stock.DeleteTransferHandler())

	// Stok durumu
	protected.Get("/stock", auth.RequirePage(models.PageStock), stock.ListStockHandler())
	protected.Get("/stock/export", auth.RequirePage(models.PageStock, models.ActionExport), stock.ExportStockHandler())
	protected.Get("/stock/products/:id", auth.RequirePage(models.PageStock), stock.GetProductStockHandler())

	// Borçlar
	protected.Get("/debts", auth.RequirePage(models.PageDebts), debt.ListDebtsHandler())
	protected.Get("/debts/:id", auth.RequirePage(models.PageDebts), debt.GetDebtHandler())
	protected.Post("/debts", auth.RequirePage(models.PageDebts, models.ActionCreate), debt.CreateDebtHandler())
	protected.Put("/debts/:id", auth.RequirePage(models.PageDebts, models.ActionUpdate), debt.UpdateDebtHandler())
	protected.Delete("/debts/:id", auth.RequirePage(models.PageDebts, models.ActionDelete), debt.DeleteDebtHandler())
	protected.Post("/debt-payments", auth.RequirePage(models.PageDebts, models.ActionCollect), debt.CreatePaymentHandler())
	protected.Get("/debt-payments", auth.RequirePage(models.PageDebts), debt.ListPaymentsHandler())

	// İşlem kayıtları
	protected.Get("/activity-logs", auth.RequirePage(models.PageActivityLogs), audit.ListActivityLogsHandler())

	// Dashboard
	protected.Get("/dashboard/overview", auth.RequirePage(models.PageDashboard), dashboard.OverviewHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
