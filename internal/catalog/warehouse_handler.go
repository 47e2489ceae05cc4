package catalog

import (
	"fmt"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type WarehouseRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// POST /api/warehouses
func CreateWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body WarehouseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Depo adı zorunlu")
		}

		var count int64
		database.DB.Model(&models.Warehouse{}).Where("name = ?", body.Name).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu isimde bir depo zaten var")
		}

		warehouse := models.Warehouse{Name: body.Name, Address: body.Address}
		if err := database.DB.Create(&warehouse).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo oluşturulamadı")
		}

		writeCatalogLog(c, "warehouse", warehouse.ID, models.ActivityCreate,
			fmt.Sprintf("Depo eklendi: %s", warehouse.Name), warehouse)

		return c.Status(fiber.StatusCreated).JSON(warehouse)
	}
}

// GET /api/warehouses
func ListWarehousesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var warehouses []models.Warehouse
		if err := database.DB.Order("name").Find(&warehouses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depolar listelenemedi")
		}
		return c.JSON(warehouses)
	}
}

// PUT /api/warehouses/:id
func UpdateWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var warehouse models.Warehouse
		if err := database.DB.First(&warehouse, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}

		var body WarehouseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Depo adı zorunlu")
		}

		var count int64
		database.DB.Model(&models.Warehouse{}).
			Where("name = ? AND id <> ?", body.Name, warehouse.ID).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu isimde bir depo zaten var")
		}

		warehouse.Name = body.Name
		warehouse.Address = body.Address
		if err := database.DB.Save(&warehouse).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo güncellenemedi")
		}

		writeCatalogLog(c, "warehouse", warehouse.ID, models.ActivityUpdate,
			fmt.Sprintf("Depo güncellendi: %s", warehouse.Name), warehouse)

		return c.JSON(warehouse)
	}
}

// DELETE /api/warehouses/:id
// Depoda stok satırı varsa silinemez.
func DeleteWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var warehouse models.Warehouse
		if err := database.DB.First(&warehouse, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}

		var stockCount int64
		database.DB.Model(&models.StockItem{}).Where("warehouse_id = ?", warehouse.ID).Count(&stockCount)
		if stockCount > 0 {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("Depoda %d stok kaydı var, silinemez", stockCount))
		}

		if err := database.DB.Delete(&warehouse).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo silinemedi")
		}

		writeCatalogLog(c, "warehouse", warehouse.ID, models.ActivityDelete,
			fmt.Sprintf("Depo silindi: %s", warehouse.Name), nil)

		return c.JSON(fiber.Map{"message": "Depo silindi", "id": warehouse.ID})
	}
}
