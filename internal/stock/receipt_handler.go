package stock

import (
	"fmt"
	"strconv"
	"time"

	"depo-backend/internal/audit"
	"depo-backend/internal/auth"
	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Ortak yardımcılar
// -------------------------

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
	}
	return d, nil
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

func parseStatus(s string) (models.DocumentStatus, error) {
	if s == "" {
		return models.StatusDraft, nil
	}
	status := models.DocumentStatus(s)
	if !status.Valid() {
		return "", fiber.NewError(fiber.StatusBadRequest, "Durum 'draft' veya 'completed' olmalı")
	}
	return status, nil
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
	}
	return uint(id), nil
}

func writeDocumentLog(c *fiber.Ctx, category string, entityID uint, action models.ActivityAction, description string, metadata any) {
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

// -------------------------
// Request/Response tipleri
// -------------------------

type CreateReceiptRequest struct {
	Code     string              `json:"code"`
	Date     string              `json:"date"` // "2025-12-09"
	Supplier string              `json:"supplier"`
	Status   string              `json:"status"` // boşsa draft
	Lines    []DocumentLineInput `json:"lines"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type DocumentLineResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	WarehouseID uint    `json:"warehouse_id"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

type ReceiptResponse struct {
	ID          uint                   `json:"id"`
	Code        string                 `json:"code"`
	Date        string                 `json:"date"`
	Supplier    string                 `json:"supplier"`
	Status      models.DocumentStatus  `json:"status"`
	TotalAmount float64                `json:"total_amount"`
	Lines       []DocumentLineResponse `json:"lines"`
	CreatedAt   string                 `json:"created_at"`
}

func toReceiptResponse(r *models.StockReceipt) ReceiptResponse {
	lines := make([]DocumentLineResponse, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, DocumentLineResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			WarehouseID: item.WarehouseID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return ReceiptResponse{
		ID:          r.ID,
		Code:        r.Code,
		Date:        r.Date.Format("2006-01-02"),
		Supplier:    r.Supplier,
		Status:      r.Status,
		TotalAmount: r.TotalAmount,
		Lines:       lines,
		CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// -------------------------
// Handler'lar
// -------------------------

// POST /api/receipts
func CreateReceiptHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateReceiptRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		d, err := parseDate(body.Date)
		if err != nil {
			return err
		}
		status, err := parseStatus(body.Status)
		if err != nil {
			return err
		}

		receipt, err := CreateReceipt(database.DB, CreateReceiptInput{
			Code:     body.Code,
			Date:     d,
			Supplier: body.Supplier,
			Status:   status,
			Lines:    body.Lines,
		})
		if err != nil {
			return err
		}

		// Ürün adları için satırları tekrar yükle
		if err := database.DB.Preload("Product").Where("receipt_id = ?", receipt.ID).Find(&receipt.Items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Belge satırları yüklenemedi")
		}

		writeDocumentLog(c, "receipt", receipt.ID, models.ActivityCreate,
			fmt.Sprintf("Giriş belgesi eklendi: %s, %d satır, Toplam: %.2f", receipt.Code, len(receipt.Items), receipt.TotalAmount),
			receipt)

		return c.Status(fiber.StatusCreated).JSON(toReceiptResponse(receipt))
	}
}

// GET /api/receipts
// Sayfalama: ?page=1&limit=20; filtre: ?code=GR&supplier=aras&status=draft
func ListReceiptsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, offset := parsePagination(c)

		query := database.DB.Model(&models.StockReceipt{})
		if code := c.Query("code"); code != "" {
			query = query.Where("code LIKE ?", "%"+code+"%")
		}
		if supplier := c.Query("supplier"); supplier != "" {
			query = query.Where("supplier LIKE ?", "%"+supplier+"%")
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Belgeler sayılamadı")
		}

		var receipts []models.StockReceipt
		if err := query.
			Preload("Items.Product").
			Order("date DESC, created_at DESC").
			Offset(offset).
			Limit(limit).
			Find(&receipts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Belgeler listelenemedi")
		}

		items := make([]ReceiptResponse, 0, len(receipts))
		for i := range receipts {
			items = append(items, toReceiptResponse(&receipts[i]))
		}

		return c.JSON(fiber.Map{
			"items": items,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}

// GET /api/receipts/:id
func GetReceiptHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var receipt models.StockReceipt
		if err := database.DB.Preload("Items.Product").First(&receipt, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Giriş belgesi bulunamadı")
		}

		return c.JSON(toReceiptResponse(&receipt))
	}
}

// PUT /api/receipts/:id/status
// Sadece draft -> completed geçişine izin verilir.
func UpdateReceiptStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if models.DocumentStatus(body.Status) != models.StatusCompleted {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece 'completed' durumuna geçiş yapılabilir")
		}

		receipt, err := CompleteReceipt(database.DB, id)
		if err != nil {
			return err
		}

		writeDocumentLog(c, "receipt", receipt.ID, models.ActivityComplete,
			fmt.Sprintf("Giriş belgesi tamamlandı: %s", receipt.Code), receipt)

		return c.JSON(fiber.Map{
			"message": "Belge tamamlandı, stok güncellendi",
			"id":      receipt.ID,
			"status":  receipt.Status,
		})
	}
}

// DELETE /api/receipts/:id
func DeleteReceiptHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		if err := DeleteReceipt(database.DB, id); err != nil {
			return err
		}

		writeDocumentLog(c, "receipt", id, models.ActivityDelete, "Giriş belgesi silindi", nil)

		return c.JSON(fiber.Map{
			"message": "Belge silindi",
			"id":      id,
		})
	}
}
