package debt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"depo-backend/internal/apperr"
	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	app := fiber.New(fiber.Config{ErrorHandler: apperr.FiberErrorHandler})
	app.Post("/api/debts", CreateDebtHandler())
	app.Get("/api/debts/:id", GetDebtHandler())
	app.Put("/api/debts/:id", UpdateDebtHandler())
	app.Delete("/api/debts/:id", DeleteDebtHandler())
	app.Post("/api/debt-payments", CreatePaymentHandler())
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reader).Encode(body); err != nil {
			t.Fatalf("gövde kodlanamadı: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("cevap çözülemedi: %v", err)
	}
	return resp.StatusCode, payload
}

func TestDebtEndpoints(t *testing.T) {
	app, db := newTestApp(t)

	status, payload := doJSON(t, app, "POST", "/api/debts", fiber.Map{
		"company_name": "Tedarikçi A",
		"total_amount": 1000,
		"description":  "Mart siparişi",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("201 bekleniyordu, %d alındı (%v)", status, payload)
	}
	id := uint(payload["ID"].(float64))

	// Tahsilat kalan tutarı düşürür
	status, _ = doJSON(t, app, "POST", "/api/debt-payments", fiber.Map{
		"debt_id":      id,
		"amount":       400,
		"payment_date": "2026-04-01",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("201 bekleniyordu, %d alındı", status)
	}

	status, payload = doJSON(t, app, "GET", fmt.Sprintf("/api/debts/%d", id), nil)
	if status != fiber.StatusOK {
		t.Fatalf("200 bekleniyordu, %d alındı", status)
	}
	if payload["RemainingAmount"] != float64(600) {
		t.Errorf("kalan 600 olmalı, %v bulundu", payload["RemainingAmount"])
	}

	// Borç tutarını aşan tahsilat 400
	status, _ = doJSON(t, app, "POST", "/api/debt-payments", fiber.Map{
		"debt_id":      id,
		"amount":       700,
		"payment_date": "2026-04-02",
	})
	if status != fiber.StatusBadRequest {
		t.Errorf("400 bekleniyordu, %d alındı", status)
	}

	// Silme tahsilatlarla birlikte kaldırır
	status, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/api/debts/%d", id), nil)
	if status != fiber.StatusOK {
		t.Fatalf("200 bekleniyordu, %d alındı", status)
	}
	var count int64
	db.Model(&models.DebtPayment{}).Count(&count)
	if count != 0 {
		t.Errorf("tahsilat kayıtları da silinmeliydi")
	}
}

func TestDebtHandlersRejectBadID(t *testing.T) {
	app, _ := newTestApp(t)

	paths := []struct {
		method string
		path   string
		body   any
	}{
		{"GET", "/api/debts/abc", nil},
		{"PUT", "/api/debts/abc", fiber.Map{"company_name": "X"}},
		{"DELETE", "/api/debts/abc", nil},
	}

	for _, tc := range paths {
		status, _ := doJSON(t, app, tc.method, tc.path, tc.body)
		if status != fiber.StatusBadRequest {
			t.Errorf("%s %s için 400 bekleniyordu, %d alındı", tc.method, tc.path, status)
		}
	}
}
