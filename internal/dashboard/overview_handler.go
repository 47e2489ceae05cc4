package dashboard

import (
	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard/overview
// Genel bakış ekranı için özet sayılar.
func OverviewHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := database.DB

		var productCount, warehouseCount int64
		db.Model(&models.Product{}).Count(&productCount)
		db.Model(&models.Warehouse{}).Count(&warehouseCount)

		var totalQuantity int64
		db.Model(&models.StockItem{}).
			Select("COALESCE(SUM(quantity), 0)").
			Scan(&totalQuantity)

		// Stok değeri: miktar * alış fiyatı
		var totalValue float64
		db.Model(&models.StockItem{}).
			Joins("JOIN products ON products.id = stock_items.product_id").
			Select("COALESCE(SUM(stock_items.quantity * products.purchase_price), 0)").
			Scan(&totalValue)

		// Hiç stok satırı olmayan veya toplamı 0 olan ürünler
		var outOfStock int64
		db.Raw(`
			SELECT COUNT(*) FROM products p
			WHERE p.unlimited_stock = ?
			AND COALESCE((SELECT SUM(s.quantity) FROM stock_items s WHERE s.product_id = p.id), 0) = 0
		`, false).Scan(&outOfStock)

		var draftReceipts, draftIssues, draftTransfers int64
		db.Model(&models.StockReceipt{}).Where("status = ?", models.StatusDraft).Count(&draftReceipts)
		db.Model(&models.StockIssue{}).Where("status = ?", models.StatusDraft).Count(&draftIssues)
		db.Model(&models.StockTransfer{}).Where("status = ?", models.StatusDraft).Count(&draftTransfers)

		var openDebtTotal float64
		db.Model(&models.Debt{}).
			Select("COALESCE(SUM(remaining_amount), 0)").
			Scan(&openDebtTotal)

		return c.JSON(fiber.Map{
			"product_count":   productCount,
			"warehouse_count": warehouseCount,
			"total_quantity":  totalQuantity,
			"total_value":     totalValue,
			"out_of_stock":    outOfStock,
			"draft_documents": fiber.Map{
				"receipts":  draftReceipts,
				"issues":    draftIssues,
				"transfers": draftTransfers,
			},
			"open_debt_total": openDebtTotal,
		})
	}
}
