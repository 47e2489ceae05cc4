package stock

import (
	"fmt"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateTransferRequest struct {
	Code            string              `json:"code"`
	Date            string              `json:"date"`
	FromWarehouseID uint                `json:"from_warehouse_id"`
	ToWarehouseID   uint                `json:"to_warehouse_id"`
	Status          string              `json:"status"`
	Lines           []TransferLineInput `json:"lines"`
}

type TransferLineResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

type TransferResponse struct {
	ID                uint                   `json:"id"`
	Code              string                 `json:"code"`
	Date              string                 `json:"date"`
	FromWarehouseID   uint                   `json:"from_warehouse_id"`
	FromWarehouseName string                 `json:"from_warehouse_name"`
	ToWarehouseID     uint                   `json:"to_warehouse_id"`
	ToWarehouseName   string                 `json:"to_warehouse_name"`
	Status            models.DocumentStatus  `json:"status"`
	TotalAmount       float64                `json:"total_amount"`
	Lines             []TransferLineResponse `json:"lines"`
	CreatedAt         string                 `json:"created_at"`
}

func toTransferResponse(t *models.StockTransfer) TransferResponse {
	lines := make([]TransferLineResponse, 0, len(t.Items))
	for _, item := range t.Items {
		lines = append(lines, TransferLineResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return TransferResponse{
		ID:                t.ID,
		Code:              t.Code,
		Date:              t.Date.Format("2006-01-02"),
		FromWarehouseID:   t.FromWarehouseID,
		FromWarehouseName: t.FromWarehouse.Name,
		ToWarehouseID:     t.ToWarehouseID,
		ToWarehouseName:   t.ToWarehouse.Name,
		Status:            t.Status,
		TotalAmount:       t.TotalAmount,
		Lines:             lines,
		CreatedAt:         t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/transfers
func CreateTransferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransferRequest
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

		transfer, err := CreateTransfer(database.DB, CreateTransferInput{
			Code:            body.Code,
			Date:            d,
			FromWarehouseID: body.FromWarehouseID,
			ToWarehouseID:   body.ToWarehouseID,
			Status:          status,
			Lines:           body.Lines,
		})
		if err != nil {
			return err
		}

		if err := database.DB.
			Preload("Items.Product").
			Preload("FromWarehouse").
			Preload("ToWarehouse").
			First(transfer, "id = ?", transfer.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Belge yüklenemedi")
		}

		writeDocumentLog(c, "transfer", transfer.ID, models.ActivityCreate,
			fmt.Sprintf("Transfer belgesi eklendi: %s, %d satır", transfer.Code, len(transfer.Items)),
			transfer)

		return c.Status(fiber.StatusCreated).JSON(toTransferResponse(transfer))
	}
}

// GET /api/transfers
func ListTransfersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, offset := parsePagination(c)

		query := database.DB.Model(&models.StockTransfer{})
		if code := c.Query("code"); code != "" {
			query = query.Where("code LIKE ?", "%"+code+"%")
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if warehouseID := c.Query("warehouse_id"); warehouseID != "" {
			query = query.Where("from_warehouse_id = ? OR to_warehouse_id = ?", warehouseID, warehouseID)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Belgeler sayılamadı")
		}

		var transfers []models.StockTransfer
		if err := query.
			Preload("Items.Product").
			Preload("FromWarehouse").
			Preload("ToWarehouse").
			Order("date DESC, created_at DESC").
			Offset(offset).
			Limit(limit).
			Find(&transfers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Belgeler listelenemedi")
		}

		items := make([]TransferResponse, 0, len(transfers))
		for i := range transfers {
			items = append(items, toTransferResponse(&transfers[i]))
		}

		return c.JSON(fiber.Map{
			"items": items,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}

// GET /api/transfers/:id
func GetTransferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var transfer models.StockTransfer
		if err := database.DB.
			Preload("Items.Product").
			Preload("FromWarehouse").
			Preload("ToWarehouse").
			First(&transfer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transfer belgesi bulunamadı")
		}

		return c.JSON(toTransferResponse(&transfer))
	}
}

// PUT /api/transfers/:id/status
func UpdateTransferStatusHandler() fiber.Handler {
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

		transfer, err := CompleteTransfer(database.DB, id)
		if err != nil {
			return err
		}

		writeDocumentLog(c, "transfer", transfer.ID, models.ActivityComplete,
			fmt.Sprintf("Transfer belgesi tamamlandı: %s", transfer.Code), transfer)

		return c.JSON(fiber.Map{
			"message": "Belge tamamlandı, stok güncellendi",
			"id":      transfer.ID,
			"status":  transfer.Status,
		})
	}
}

// DELETE /api/transfers/:id
func DeleteTransferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		if err := DeleteTransfer(database.DB, id); err != nil {
			return err
		}

		writeDocumentLog(c, "transfer", id, models.ActivityDelete, "Transfer belgesi silindi", nil)

		return c.JSON(fiber.Map{
			"message": "Belge silindi",
			"id":      id,
		})
	}
}
