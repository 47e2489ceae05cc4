package catalog

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"depo-backend/internal/apperr"
	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB alınamadı: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migration başarısız: %v", err)
	}
	return db
}

func useTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t)
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func buildImportFile(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []any{"Kod", "İsim", "Kategori", "Birim", "Alış Fiyatı", "Satış Fiyatı"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("başlık yazılamadı: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("satır yazılamadı: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("dosya üretilemedi: %v", err)
	}
	return buf.Bytes()
}

func postImport(t *testing.T, app *fiber.App, filename string, content []byte) (*multipartResult, int) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form oluşturulamadı: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("dosya yazılamadı: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/api/products/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}

	raw, _ := io.ReadAll(resp.Body)
	var result multipartResult
	if resp.StatusCode == fiber.StatusOK {
		if err := json.Unmarshal(raw, &result); err != nil {
			t.Fatalf("cevap çözülemedi: %v (%s)", err, raw)
		}
	}
	return &result, resp.StatusCode
}

type multipartResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

func TestImportProducts(t *testing.T) {
	db := useTestDB(t)

	app := fiber.New(fiber.Config{ErrorHandler: apperr.FiberErrorHandler})
	app.Post("/api/products/import", ImportProductsHandler())

	// Mevcut bir ürün: aynı kod atlanmalı
	existingCat := models.Category{Name: "İçecek"}
	if err := db.Create(&existingCat).Error; err != nil {
		t.Fatalf("kategori oluşturulamadı: %v", err)
	}
	existing := models.Product{Code: "IC0001", Name: "Su", CategoryID: existingCat.ID, Unit: "adet"}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("ürün oluşturulamadı: %v", err)
	}

	content := buildImportFile(t, [][]any{
		{"IC0001", "Su", "İçecek", "adet", "2,50", "5"},       // mevcut kod, atlanır
		{"IC0002", "Ayran", "İçecek", "adet", "4,75", "8"},    // virgüllü ondalık
		{"GD0001", "Makarna", "Gıda", "paket", "12.5", "20"},  // yeni kategori
		{"", "Kodsuz", "Gıda", "adet", "1", "2"},              // hatalı satır
	})

	result, status := postImport(t, app, "urunler.xlsx", content)
	if status != fiber.StatusOK {
		t.Fatalf("200 bekleniyordu, %d alındı", status)
	}
	if result.Created != 2 {
		t.Errorf("2 ürün eklenmeliydi, %d eklendi", result.Created)
	}
	if result.Skipped != 1 {
		t.Errorf("1 ürün atlanmalıydı, %d atlandı", result.Skipped)
	}
	if len(result.Errors) != 1 {
		t.Errorf("1 hatalı satır bekleniyordu, %d bulundu", len(result.Errors))
	}

	// Virgüllü ondalık doğru çözülmeli
	var ayran models.Product
	if err := db.First(&ayran, "code = ?", "IC0002").Error; err != nil {
		t.Fatalf("içe aktarılan ürün bulunamadı: %v", err)
	}
	if ayran.PurchasePrice != 4.75 {
		t.Errorf("alış fiyatı 4.75 olmalı, %.2f bulundu", ayran.PurchasePrice)
	}

	// Yeni kategori isimle oluşturulmalı
	var gida models.Category
	if err := db.First(&gida, "name = ?", "Gıda").Error; err != nil {
		t.Errorf("yeni kategori oluşturulmalıydı: %v", err)
	}
}

func TestImportRejectsNonXlsx(t *testing.T) {
	useTestDB(t)

	app := fiber.New(fiber.Config{ErrorHandler: apperr.FiberErrorHandler})
	app.Post("/api/products/import", ImportProductsHandler())

	_, status := postImport(t, app, "urunler.csv", []byte("Kod;İsim"))
	if status != fiber.StatusBadRequest {
		t.Errorf("400 bekleniyordu, %d alındı", status)
	}
}
