package audit

import (
	"strconv"

	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/activity-logs
// Sayfalama: ?page=1&limit=50; filtre: ?category=receipt&user_id=3
func ListActivityLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 200 {
			limit = 50
		}

		query := database.DB.Model(&models.ActivityLog{})

		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if userID := c.Query("user_id"); userID != "" {
			query = query.Where("user_id = ?", userID)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşlem kayıtları sayılamadı")
		}

		var logs []models.ActivityLog
		if err := query.
			Order("created_at DESC, id DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşlem kayıtları listelenemedi")
		}

		return c.JSON(fiber.Map{
			"items": logs,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}
