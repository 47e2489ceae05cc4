package catalog

import (
	"fmt"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	CategoryID     uint    `json:"category_id"`
	Unit           string  `json:"unit"`
	PurchasePrice  float64 `json:"purchase_price"`
	SalePrice      float64 `json:"sale_price"`
	UnlimitedStock bool    `json:"unlimited_stock"`
}

func validateProductRequest(body *ProductRequest) error {
	if body.Code == "" || body.Name == "" || body.Unit == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Kod, isim ve birim zorunlu")
	}
	if body.CategoryID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Kategori zorunlu")
	}
	if body.PurchasePrice < 0 || body.SalePrice < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Fiyatlar negatif olamaz")
	}
	return nil
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validateProductRequest(&body); err != nil {
			return err
		}

		var category models.Category
		if err := database.DB.First(&category, "id = ?", body.CategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		var count int64
		database.DB.Model(&models.Product{}).Where("code = ?", body.Code).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu stok kodu zaten kullanılıyor: "+body.Code)
		}

		product := models.Product{
			Code:           body.Code,
			Name:           body.Name,
			CategoryID:     body.CategoryID,
			Unit:           body.Unit,
			PurchasePrice:  body.PurchasePrice,
			SalePrice:      body.SalePrice,
			UnlimitedStock: body.UnlimitedStock,
		}
		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		writeCatalogLog(c, "product", product.ID, models.ActivityCreate,
			fmt.Sprintf("Ürün eklendi: %s (%s)", product.Name, product.Code), product)

		return c.Status(fiber.StatusCreated).JSON(product)
	}
}

// GET /api/products
// Filtre: ?code=TM&name=çikolata&category_id=3
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, offset := parsePagination(c)

		query := database.DB.Model(&models.Product{})
		if code := c.Query("code"); code != "" {
			query = query.Where("code LIKE ?", "%"+code+"%")
		}
		if name := c.Query("name"); name != "" {
			query = query.Where("name LIKE ?", "%"+name+"%")
		}
		if categoryID := c.Query("category_id"); categoryID != "" {
			query = query.Where("category_id = ?", categoryID)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler sayılamadı")
		}

		var products []models.Product
		if err := query.
			Preload("Category").
			Order("name").
			Offset(offset).
			Limit(limit).
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		return c.JSON(fiber.Map{
			"items": products,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		return c.JSON(product)
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validateProductRequest(&body); err != nil {
			return err
		}

		var category models.Category
		if err := database.DB.First(&category, "id = ?", body.CategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		var count int64
		database.DB.Model(&models.Product{}).
			Where("code = ? AND id <> ?", body.Code, product.ID).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu stok kodu zaten kullanılıyor: "+body.Code)
		}

		product.Code = body.Code
		product.Name = body.Name
		product.CategoryID = body.CategoryID
		product.Unit = body.Unit
		product.PurchasePrice = body.PurchasePrice
		product.SalePrice = body.SalePrice
		product.UnlimitedStock = body.UnlimitedStock

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		writeCatalogLog(c, "product", product.ID, models.ActivityUpdate,
			fmt.Sprintf("Ürün güncellendi: %s (%s)", product.Name, product.Code), product)

		return c.JSON(product)
	}
}

// DELETE /api/products/:id
// Stok satırı veya belge satırı referans ediyorsa silinemez.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var refs int64
		database.DB.Model(&models.StockItem{}).Where("product_id = ?", product.ID).Count(&refs)
		if refs > 0 {
			return fiber.NewError(fiber.StatusConflict, "Ürünün stok kaydı var, silinemez")
		}

		var lineRefs int64
		database.DB.Model(&models.StockReceiptItem{}).Where("product_id = ?", product.ID).Count(&lineRefs)
		if lineRefs == 0 {
			database.DB.Model(&models.StockIssueItem{}).Where("product_id = ?", product.ID).Count(&lineRefs)
		}
		if lineRefs == 0 {
			database.DB.Model(&models.StockTransferItem{}).Where("product_id = ?", product.ID).Count(&lineRefs)
		}
		if lineRefs > 0 {
			return fiber.NewError(fiber.StatusConflict, "Ürün belgelerde kullanılmış, silinemez")
		}

		if err := database.DB.Delete(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		writeCatalogLog(c, "product", product.ID, models.ActivityDelete,
			fmt.Sprintf("Ürün silindi: %s (%s)", product.Name, product.Code), nil)

		return c.JSON(fiber.Map{"message": "Ürün silindi", "id": product.ID})
	}
}
