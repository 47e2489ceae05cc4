package catalog

import (
	"fmt"
	"strconv"

	"depo-backend/internal/audit"
	"depo-backend/internal/auth"
	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func writeCatalogLog(c *fiber.Ctx, category string, entityID uint, action models.ActivityAction, description string, metadata any) {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return
	}
	audit.Write(database.DB, audit.LogOptions{
		UserID:      user.ID,
		UserName:    user.Name,
		Category:    category,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Metadata:    metadata,
	})
}

func parsePagination(c *fiber.Ctx) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}

type CategoryRequest struct {
	Name string `json:"name"`
}

// POST /api/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori adı zorunlu")
		}

		var count int64
		database.DB.Model(&models.Category{}).Where("name = ?", body.Name).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu isimde bir kategori zaten var")
		}

		category := models.Category{Name: body.Name}
		if err := database.DB.Create(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori oluşturulamadı")
		}

		writeCatalogLog(c, "category", category.ID, models.ActivityCreate,
			fmt.Sprintf("Kategori eklendi: %s", category.Name), category)

		return c.Status(fiber.StatusCreated).JSON(category)
	}
}

// GET /api/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("name").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}
		return c.JSON(categories)
	}
}

// PUT /api/categories/:id
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var category models.Category
		if err := database.DB.First(&category, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori adı zorunlu")
		}

		var count int64
		database.DB.Model(&models.Category{}).
			Where("name = ? AND id <> ?", body.Name, category.ID).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu isimde bir kategori zaten var")
		}

		category.Name = body.Name
		if err := database.DB.Save(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori güncellenemedi")
		}

		writeCatalogLog(c, "category", category.ID, models.ActivityUpdate,
			fmt.Sprintf("Kategori güncellendi: %s", category.Name), category)

		return c.JSON(category)
	}
}

// DELETE /api/categories/:id
// Ürün referans ediyorsa silinemez.
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var category models.Category
		if err := database.DB.First(&category, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		var productCount int64
		database.DB.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount)
		if productCount > 0 {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("Kategoriye bağlı %d ürün var, önce onları taşıyın", productCount))
		}

		if err := database.DB.Delete(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori silinemedi")
		}

		writeCatalogLog(c, "category", category.ID, models.ActivityDelete,
			fmt.Sprintf("Kategori silindi: %s", category.Name), nil)

		return c.JSON(fiber.Map{"message": "Kategori silindi", "id": category.ID})
	}
}
