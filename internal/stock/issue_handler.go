package stock

import (
	"fmt"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateIssueRequest struct {
	Code     string              `json:"code"`
	Date     string              `json:"date"`
	Receiver string              `json:"receiver"`
	Status   string              `json:"status"`
	Lines    []DocumentLineInput `json:"lines"`
}

type IssueResponse struct {
	ID          uint                   `json:"id"`
	Code        string                 `json:"code"`
	Date        string                 `json:"date"`
	Receiver    string                 `json:"receiver"`
	Status      models.DocumentStatus  `json:"status"`
	TotalAmount float64                `json:"total_amount"`
	Lines       []DocumentLineResponse `json:"lines"`
	CreatedAt   string                 `json:"created_at"`
}

func toIssueResponse(i *models.StockIssue) IssueResponse {
	lines := make([]DocumentLineResponse, 0, len(i.Items))
	for _, item := range i.Items {
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
	return IssueResponse{
		ID:          i.ID,
		Code:        i.Code,
		Date:        i.Date.Format("2006-01-02"),
		Receiver:    i.Receiver,
		Status:      i.Status,
		TotalAmount: i.TotalAmount,
		Lines:       lines,
		CreatedAt:   i.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/issues
func CreateIssueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateIssueRequest
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

		issue, err := CreateIssue(database.DB, CreateIssueInput{
			Code:     body.Code,
			Date:     d,
			Receiver: body.Receiver,
			Status:   status,
			Lines:    body.Lines,
		})
		if err != nil {
			return err
		}

		if err := database.DB.Preload("Product").Where("issue_id = ?", issue.ID).Find(&issue.Items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Belge satırları yüklenemedi")
		}

		writeDocumentLog(c, "issue", issue.ID, models.ActivityCreate,
			fmt.Sprintf("Çıkış belgesi eklendi: %s, %d satır, Toplam: %.2f", issue.Code, len(issue.Items), issue.TotalAmount),
			issue)

		return c.Status(fiber.StatusCreated).JSON(toIssueResponse(issue))
	}
}

// GET /api/issues
func ListIssuesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, offset := parsePagination(c)

		query := database.DB.Model(&models.StockIssue{})
		if code := c.Query("code"); code != "" {
			query = query.Where("code LIKE ?", "%"+code+"%")
		}
		if receiver := c.Query("receiver"); receiver != "" {
			query = query.Where("receiver LIKE ?", "%"+receiver+"%")
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Belgeler sayılamadı")
		}

		var issues []models.StockIssue
		if err := query.
			Preload("Items.Product").
			Order("date DESC, created_at DESC").
			Offset(offset).
			Limit(limit).
			Find(&issues).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Belgeler listelenemedi")
		}

		items := make([]IssueResponse, 0, len(issues))
		for i := range issues {
			items = append(items, toIssueResponse(&issues[i]))
		}

		return c.JSON(fiber.Map{
			"items": items,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}

// GET /api/issues/:id
func GetIssueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var issue models.StockIssue
		if err := database.DB.Preload("Items.Product").First(&issue, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çıkış belgesi bulunamadı")
		}

		return c.JSON(toIssueResponse(&issue))
	}
}

// PUT /api/issues/:id/status
func UpdateIssueStatusHandler() fiber.Handler {
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

		issue, err := CompleteIssue(database.DB, id)
		if err != nil {
			return err
		}

		writeDocumentLog(c, "issue", issue.ID, models.ActivityComplete,
			fmt.Sprintf("Çıkış belgesi tamamlandı: %s", issue.Code), issue)

		return c.JSON(fiber.Map{
			"message": "Belge tamamlandı, stok güncellendi",
			"id":      issue.ID,
			"status":  issue.Status,
		})
	}
}

// DELETE /api/issues/:id
func DeleteIssueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		if err := DeleteIssue(database.DB, id); err != nil {
			return err
		}

		writeDocumentLog(c, "issue", id, models.ActivityDelete, "Çıkış belgesi silindi", nil)

		return c.JSON(fiber.Map{
			"message": "Belge silindi",
			"id":      id,
		})
	}
}
