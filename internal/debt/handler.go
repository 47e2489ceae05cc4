package debt

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

type CreateDebtRequest struct {
	CompanyName string  `json:"company_name"`
	TotalAmount float64 `json:"total_amount"`
	Description string  `json:"description"`
}

type UpdateDebtRequest struct {
	CompanyName *string  `json:"company_name"`
	TotalAmount *float64 `json:"total_amount"`
	Description *string  `json:"description"`
}

type CreatePaymentRequest struct {
	DebtID      uint    `json:"debt_id"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"` // "2025-12-09"
	Description string  `json:"description"`
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
	}
	return uint(id), nil
}

func writeDebtLog(c *fiber.Ctx, entityID uint, action models.ActivityAction, description string, metadata any) {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return
	}
	audit.Write(database.DB, audit.LogOptions{
		UserID:      user.ID,
		UserName:    user.Name,
		Category:    "debt",
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Metadata:    metadata,
	})
}

// POST /api/debts
func CreateDebtHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDebtRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		d, err := CreateDebt(database.DB, CreateDebtInput{
			CompanyName: body.CompanyName,
			TotalAmount: body.TotalAmount,
			Description: body.Description,
		})
		if err != nil {
			return err
		}

		writeDebtLog(c, d.ID, models.ActivityCreate,
			fmt.Sprintf("Borç eklendi: %s, %.2f", d.CompanyName, d.TotalAmount), d)

		return c.Status(fiber.StatusCreated).JSON(d)
	}
}

// GET /api/debts
// Filtre: ?company=aras; sayfalama: ?page=&limit=
func ListDebtsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 200 {
			limit = 20
		}

		query := database.DB.Model(&models.Debt{})
		if company := c.Query("company"); company != "" {
			query = query.Where("company_name LIKE ?", "%"+company+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Borçlar sayılamadı")
		}

		var debts []models.Debt
		if err := query.
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&debts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Borçlar listelenemedi")
		}

		return c.JSON(fiber.Map{
			"items": debts,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}

// GET /api/debts/:id
func GetDebtHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var d models.Debt
		if err := database.DB.Preload("Payments").First(&d, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Borç kaydı bulunamadı")
		}

		return c.JSON(d)
	}
}

// PUT /api/debts/:id
func UpdateDebtHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var body UpdateDebtRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		d, err := UpdateDebt(database.DB, id, UpdateDebtInput{
			CompanyName: body.CompanyName,
			TotalAmount: body.TotalAmount,
			Description: body.Description,
		})
		if err != nil {
			return err
		}

		writeDebtLog(c, d.ID, models.ActivityUpdate,
			fmt.Sprintf("Borç güncellendi: %s", d.CompanyName), d)

		return c.JSON(d)
	}
}

// DELETE /api/debts/:id
func DeleteDebtHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		if err := DeleteDebt(database.DB, id); err != nil {
			return err
		}

		writeDebtLog(c, id, models.ActivityDelete, "Borç kaydı silindi", nil)

		return c.JSON(fiber.Map{"message": "Borç kaydı silindi", "id": id})
	}
}

// POST /api/debt-payments
func CreatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		d, err := time.Parse("2006-01-02", body.PaymentDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		payment, err := AddPayment(database.DB, body.DebtID, body.Amount, d, body.Description)
		if err != nil {
			return err
		}

		writeDebtLog(c, body.DebtID, models.ActivityUpdate,
			fmt.Sprintf("Tahsilat eklendi: %.2f", payment.Amount), payment)

		return c.Status(fiber.StatusCreated).JSON(payment)
	}
}

// GET /api/debt-payments?debt_id=3
func ListPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.DebtPayment{})
		if debtID := c.Query("debt_id"); debtID != "" {
			query = query.Where("debt_id = ?", debtID)
		}

		var payments []models.DebtPayment
		if err := query.Order("payment_date DESC, id DESC").Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tahsilatlar listelenemedi")
		}

		return c.JSON(payments)
	}
}
