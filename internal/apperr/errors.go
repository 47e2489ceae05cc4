package apperr

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Servis katmanının hata sınıfları. Handler'lar bu hataları olduğu gibi
// döndürür; HTTP koduna çevirme işi merkezi ErrorHandler'dadır.

// ValidationError: eksik/hatalı girdi (400)
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError: referans verilen kayıt yok (404)
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NotFound(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError: benzersiz kod/isim çakışması veya durum çatışması (409)
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError: çıkış/transfer stoku eksiye düşürürdü (400).
// Hata mesajı sorunlu ürünü isimle belirtir.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Yetersiz stok: %s (istenen %d, mevcut %d)", e.ProductName, e.Requested, e.Available)
}

// AuthError: kimlik doğrulama/yetki hatası (401 veya 403)
type AuthError struct {
	Message   string
	Forbidden bool
}

func (e *AuthError) Error() string { return e.Message }

func Unauthorized(message string) error {
	return &AuthError{Message: message}
}

func Forbidden(message string) error {
	return &AuthError{Message: message, Forbidden: true}
}

// HTTPStatus: hata sınıfını HTTP koduna çevirir
func HTTPStatus(err error) int {
	var (
		ve *ValidationError
		nf *NotFoundError
		ce *ConflictError
		is *InsufficientStockError
		ae *AuthError
	)
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.As(err, &nf):
		return fiber.StatusNotFound
	case errors.As(err, &ce):
		return fiber.StatusConflict
	case errors.As(err, &is):
		return fiber.StatusBadRequest
	case errors.As(err, &ae):
		if ae.Forbidden {
			return fiber.StatusForbidden
		}
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// FiberErrorHandler: merkezi hata yakalayıcı. fiber.Error'lar olduğu gibi,
// tipli servis hataları kendi koduyla, geri kalan her şey 500 döner.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}

	status := HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Println("Beklenmeyen hata:", err)
		return c.Status(status).JSON(fiber.Map{
			"error": "Beklenmeyen sunucu hatası",
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
