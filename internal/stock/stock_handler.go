package stock

import (
	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockItemResponse struct {
	ID            uint   `json:"id"`
	ProductID     uint   `json:"product_id"`
	ProductCode   string `json:"product_code"`
	ProductName   string `json:"product_name"`
	Unit          string `json:"unit"`
	WarehouseID   uint   `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Quantity      int    `json:"quantity"`
}

// GET /api/stock
// Depo bazında güncel stok satırları. Filtre: ?product_id=&warehouse_id=&product=
func ListStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, offset := parsePagination(c)

		query := database.DB.Model(&models.StockItem{})
		if productID := c.Query("product_id"); productID != "" {
			query = query.Where("product_id = ?", productID)
		}
		if warehouseID := c.Query("warehouse_id"); warehouseID != "" {
			query = query.Where("warehouse_id = ?", warehouseID)
		}
		if name := c.Query("product"); name != "" {
			query = query.Joins("JOIN products ON products.id = stock_items.product_id").
				Where("products.name LIKE ?", "%"+name+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok satırları sayılamadı")
		}

		var items []models.StockItem
		if err := query.
			Preload("Product").
			Preload("Warehouse").
			Order("stock_items.id").
			Offset(offset).
			Limit(limit).
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok satırları listelenemedi")
		}

		resp := make([]StockItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, StockItemResponse{
				ID:            item.ID,
				ProductID:     item.ProductID,
				ProductCode:   item.Product.Code,
				ProductName:   item.Product.Name,
				Unit:          item.Product.Unit,
				WarehouseID:   item.WarehouseID,
				WarehouseName: item.Warehouse.Name,
				Quantity:      item.Quantity,
			})
		}

		return c.JSON(fiber.Map{
			"items": resp,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}

// GET /api/stock/products/:id
// Ürünün tüm depolardaki toplamı; depo kırılımı ile birlikte.
func GetProductStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		total, err := TotalForProduct(database.DB, id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok toplamı hesaplanamadı")
		}

		var items []models.StockItem
		if err := database.DB.
			Preload("Warehouse").
			Where("product_id = ?", id).
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo kırılımı yüklenemedi")
		}

		breakdown := make([]fiber.Map, 0, len(items))
		for _, item := range items {
			breakdown = append(breakdown, fiber.Map{
				"warehouse_id":   item.WarehouseID,
				"warehouse_name": item.Warehouse.Name,
				"quantity":       item.Quantity,
			})
		}

		return c.JSON(fiber.Map{
			"product_id":     product.ID,
			"product_code":   product.Code,
			"product_name":   product.Name,
			"unit":           product.Unit,
			"total_quantity": total,
			"warehouses":     breakdown,
		})
	}
}
