package stock

import (
	"fmt"
	"time"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/stock/export
// Güncel stok durumunu .xlsx olarak indirir. Filtre: ?warehouse_id=
func ExportStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.StockItem{}).
			Preload("Product").
			Preload("Warehouse")
		if warehouseID := c.Query("warehouse_id"); warehouseID != "" {
			query = query.Where("warehouse_id = ?", warehouseID)
		}

		var items []models.StockItem
		if err := query.Order("warehouse_id, product_id").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok satırları yüklenemedi")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Stok Durumu"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Stok Kodu", "Ürün", "Birim", "Depo", "Miktar", "Alış Fiyatı", "Stok Değeri"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, item := range items {
			values := []any{
				item.Product.Code,
				item.Product.Name,
				item.Product.Unit,
				item.Warehouse.Name,
				item.Quantity,
				item.Product.PurchasePrice,
				float64(item.Quantity) * item.Product.PurchasePrice,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		filename := fmt.Sprintf("stok-durumu-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
