package apperr

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("eksik alan"), fiber.StatusBadRequest},
		{"not found", NotFound("kayıt yok"), fiber.StatusNotFound},
		{"conflict", Conflict("kod çakışması"), fiber.StatusConflict},
		{"insufficient stock", &InsufficientStockError{ProductName: "Un", Requested: 5, Available: 2}, fiber.StatusBadRequest},
		{"unauthorized", Unauthorized("token yok"), fiber.StatusUnauthorized},
		{"forbidden", Forbidden("yetki yok"), fiber.StatusForbidden},
		{"wrapped", fmt.Errorf("sarmalandı: %w", Conflict("çakışma")), fiber.StatusConflict},
		{"unknown", fmt.Errorf("disk dolu"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Errorf("HTTPStatus(%v) = %d, %d bekleniyordu", tc.err, got, tc.want)
			}
		})
	}
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{ProductName: "Çikolata", Requested: 5, Available: 3}
	msg := err.Error()
	if !strings.Contains(msg, "Çikolata") {
		t.Errorf("hata mesajı ürün adını içermeli: %q", msg)
	}
	if !strings.Contains(msg, "5") || !strings.Contains(msg, "3") {
		t.Errorf("hata mesajı istenen/mevcut miktarları içermeli: %q", msg)
	}
}

func TestFiberErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: FiberErrorHandler})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return Conflict("Belge kodu zaten kullanılıyor")
	})
	app.Get("/panic-free", func(c *fiber.Ctx) error {
		return fmt.Errorf("beklenmedik iç hata")
	})
	app.Get("/fiber-err", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "demlik")
	})

	t.Run("tipli hata kendi koduyla döner", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/conflict", nil))
		if err != nil {
			t.Fatalf("istek başarısız: %v", err)
		}
		if resp.StatusCode != fiber.StatusConflict {
			t.Errorf("409 bekleniyordu, %d alındı", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		var payload map[string]string
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("gövde JSON olmalı: %v", err)
		}
		if payload["error"] != "Belge kodu zaten kullanılıyor" {
			t.Errorf("hata mesajı korunmalı: %q", payload["error"])
		}
	})

	t.Run("bilinmeyen hata detayı gizler", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/panic-free", nil))
		if err != nil {
			t.Fatalf("istek başarısız: %v", err)
		}
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Errorf("500 bekleniyordu, %d alındı", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		if strings.Contains(string(body), "beklenmedik iç hata") {
			t.Error("iç hata detayı istemciye sızmamalı")
		}
	})

	t.Run("fiber.Error olduğu gibi geçer", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/fiber-err", nil))
		if err != nil {
			t.Fatalf("istek başarısız: %v", err)
		}
		if resp.StatusCode != fiber.StatusTeapot {
			t.Errorf("418 bekleniyordu, %d alındı", resp.StatusCode)
		}
	})
}
