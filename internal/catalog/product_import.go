package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// POST /api/products/import
// XLSX dosyasından toplu ürün yükler. Beklenen kolonlar:
// Kod | İsim | Kategori | Birim | Alış Fiyatı | Satış Fiyatı
// İlk satır başlık kabul edilir. Var olan stok kodları atlanır.
func ImportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
		}
		defer excelFile.Close()

		sheets := excelFile.GetSheetList()
		if len(sheets) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyasında sayfa yok")
		}

		rows, err := excelFile.GetRows(sheets[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Satırlar okunamadı: "+err.Error())
		}
		if len(rows) < 2 {
			return fiber.NewError(fiber.StatusBadRequest, "Dosyada veri satırı yok")
		}

		created := 0
		skipped := 0
		var errorRows []string

		for i, row := range rows[1:] { // başlık satırını atla
			rowNum := i + 2

			if len(row) < 4 {
				errorRows = append(errorRows, fmt.Sprintf("Satır %d: eksik kolon", rowNum))
				continue
			}

			code := strings.TrimSpace(row[0])
			name := strings.TrimSpace(row[1])
			categoryName := strings.TrimSpace(row[2])
			unit := strings.TrimSpace(row[3])

			if code == "" || name == "" || categoryName == "" || unit == "" {
				errorRows = append(errorRows, fmt.Sprintf("Satır %d: kod, isim, kategori ve birim zorunlu", rowNum))
				continue
			}

			var purchasePrice, salePrice float64
			if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
				purchasePrice, err = strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row[4]), ",", "."), 64)
				if err != nil {
					errorRows = append(errorRows, fmt.Sprintf("Satır %d: alış fiyatı sayı olmalı", rowNum))
					continue
				}
			}
			if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
				salePrice, err = strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row[5]), ",", "."), 64)
				if err != nil {
					errorRows = append(errorRows, fmt.Sprintf("Satır %d: satış fiyatı sayı olmalı", rowNum))
					continue
				}
			}

			// Aynı stok kodu varsa atla
			var count int64
			database.DB.Model(&models.Product{}).Where("code = ?", code).Count(&count)
			if count > 0 {
				skipped++
				continue
			}

			// Kategoriyi isimle bul, yoksa oluştur
			var category models.Category
			if err := database.DB.Where("name = ?", categoryName).First(&category).Error; err != nil {
				category = models.Category{Name: categoryName}
				if err := database.DB.Create(&category).Error; err != nil {
					errorRows = append(errorRows, fmt.Sprintf("Satır %d: kategori oluşturulamadı", rowNum))
					continue
				}
			}

			product := models.Product{
				Code:          code,
				Name:          name,
				CategoryID:    category.ID,
				Unit:          unit,
				PurchasePrice: purchasePrice,
				SalePrice:     salePrice,
			}
			if err := database.DB.Create(&product).Error; err != nil {
				errorRows = append(errorRows, fmt.Sprintf("Satır %d: ürün oluşturulamadı", rowNum))
				continue
			}
			created++
		}

		writeCatalogLog(c, "product", 0, models.ActivityCreate,
			fmt.Sprintf("Toplu ürün yükleme: %d eklendi, %d atlandı", created, skipped),
			fiber.Map{"created": created, "skipped": skipped, "errors": errorRows})

		return c.JSON(fiber.Map{
			"created": created,
			"skipped": skipped,
			"errors":  errorRows,
		})
	}
}
