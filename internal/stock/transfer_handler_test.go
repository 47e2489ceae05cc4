package stock

import (
	"fmt"
	"strings"
	"testing"

	"depo-backend/internal/apperr"
	"depo-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newTransferTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	app := fiber.New(fiber.Config{ErrorHandler: apperr.FiberErrorHandler})
	app.Post("/api/receipts", CreateReceiptHandler())
	app.Post("/api/transfers", CreateTransferHandler())
	app.Get("/api/transfers/:id", GetTransferHandler())
	app.Put("/api/transfers/:id/status", UpdateTransferStatusHandler())
	app.Delete("/api/transfers/:id", DeleteTransferHandler())
	return app, db
}

func TestTransferEndpoints(t *testing.T) {
	app, db := newTransferTestApp(t)
	cat := seedCategory(t, db)
	p := seedProduct(t, db, cat.ID, "HT0020", "Zeytin", false)
	w1 := seedWarehouse(t, db, "Depo 1")
	w2 := seedWarehouse(t, db, "Depo 2")

	status, _ := doJSON(t, app, "POST", "/api/receipts", fiber.Map{
		"code":     "GR-TR-1",
		"date":     "2026-03-15",
		"supplier": "Tedarikçi A",
		"status":   "completed",
		"lines": []fiber.Map{
			{"product_id": p.ID, "warehouse_id": w1.ID, "quantity": 10, "unit_price": 6},
		},
	})
	if status != fiber.StatusCreated {
		t.Fatalf("201 bekleniyordu, %d alındı", status)
	}

	// Taslak transfer
	status, payload := doJSON(t, app, "POST", "/api/transfers", fiber.Map{
		"code":              "TR-HTTP-1",
		"date":              "2026-03-16",
		"from_warehouse_id": w1.ID,
		"to_warehouse_id":   w2.ID,
		"status":            "draft",
		"lines": []fiber.Map{
			{"product_id": p.ID, "quantity": 4, "unit_price": 6},
		},
	})
	if status != fiber.StatusCreated {
		t.Fatalf("201 bekleniyordu, %d alındı (%v)", status, payload)
	}
	id := uint(payload["id"].(float64))

	if got := mustStock(t, db, p.ID, w1.ID); got != 10 {
		t.Errorf("taslak transfer stoku değiştirmemeli, %d bulundu", got)
	}

	// Tamamla: miktar depolar arasında taşınır, toplam korunur
	status, _ = doJSON(t, app, "PUT", fmt.Sprintf("/api/transfers/%d/status", id), fiber.Map{"status": "completed"})
	if status != fiber.StatusOK {
		t.Fatalf("200 bekleniyordu, %d alındı", status)
	}
	if got := mustStock(t, db, p.ID, w1.ID); got != 6 {
		t.Errorf("kaynak depo 6 olmalı, %d bulundu", got)
	}
	if got := mustStock(t, db, p.ID, w2.ID); got != 4 {
		t.Errorf("hedef depo 4 olmalı, %d bulundu", got)
	}

	// Çifte tamamlama 409
	status, _ = doJSON(t, app, "PUT", fmt.Sprintf("/api/transfers/%d/status", id), fiber.Map{"status": "completed"})
	if status != fiber.StatusConflict {
		t.Errorf("409 bekleniyordu, %d alındı", status)
	}

	// Detayda depo adları dönmeli
	status, payload = doJSON(t, app, "GET", fmt.Sprintf("/api/transfers/%d", id), nil)
	if status != fiber.StatusOK {
		t.Fatalf("200 bekleniyordu, %d alındı", status)
	}
	if payload["from_warehouse_name"] != "Depo 1" || payload["to_warehouse_name"] != "Depo 2" {
		t.Errorf("cevapta depo adları dönmeli: %v / %v",
			payload["from_warehouse_name"], payload["to_warehouse_name"])
	}

	// Kaynakta olandan fazlasını taşımak 400 döner ve ürün adını söyler
	status, payload = doJSON(t, app, "POST", "/api/transfers", fiber.Map{
		"code":              "TR-HTTP-2",
		"date":              "2026-03-16",
		"from_warehouse_id": w1.ID,
		"to_warehouse_id":   w2.ID,
		"status":            "completed",
		"lines": []fiber.Map{
			{"product_id": p.ID, "quantity": 9, "unit_price": 6},
		},
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("400 bekleniyordu, %d alındı", status)
	}
	if msg, _ := payload["error"].(string); !strings.Contains(msg, "Zeytin") {
		t.Errorf("hata mesajı ürün adını içermeli: %q", msg)
	}

	// Aynı depoya transfer 400
	status, _ = doJSON(t, app, "POST", "/api/transfers", fiber.Map{
		"code":              "TR-HTTP-3",
		"date":              "2026-03-16",
		"from_warehouse_id": w1.ID,
		"to_warehouse_id":   w1.ID,
		"status":            "draft",
		"lines": []fiber.Map{
			{"product_id": p.ID, "quantity": 1, "unit_price": 6},
		},
	})
	if status != fiber.StatusBadRequest {
		t.Errorf("400 bekleniyordu, %d alındı", status)
	}

	// Tamamlanmış transferi silmek taşımayı geri alır
	status, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/api/transfers/%d", id), nil)
	if status != fiber.StatusOK {
		t.Fatalf("200 bekleniyordu, %d alındı", status)
	}
	if got := mustStock(t, db, p.ID, w1.ID); got != 10 {
		t.Errorf("silme sonrası kaynak 10 olmalı, %d bulundu", got)
	}
	if got := mustStock(t, db, p.ID, w2.ID); got != 0 {
		t.Errorf("silme sonrası hedef 0 olmalı, %d bulundu", got)
	}
}
