package stock

import (
	"errors"
	"testing"

	"depo-backend/internal/apperr"
	"depo-backend/internal/models"
)

func TestGetReturnsZeroWithoutRow(t *testing.T) {
	db := openTestDB(t)

	qty, err := Get(db, 1, 1)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if qty != 0 {
		t.Errorf("kayıt yokken 0 bekleniyordu, %d bulundu", qty)
	}
}

func TestAdjustCreatesRowOnFirstUse(t *testing.T) {
	db := openTestDB(t)
	cat := seedCategory(t, db)
	p := seedProduct(t, db, cat.ID, "LD0001", "Tuz", false)
	w := seedWarehouse(t, db, "Ana Depo")

	qty, err := Adjust(db, &p, w.ID, 5)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if qty != 5 {
		t.Errorf("ilk ayarlama sonrası 5 bekleniyordu, %d bulundu", qty)
	}

	var count int64
	db.Model(&models.StockItem{}).Where("product_id = ?", p.ID).Count(&count)
	if count != 1 {
		t.Errorf("tek stok satırı oluşmalıydı, %d bulundu", count)
	}
}

func TestAdjustRejectsNegativeResult(t *testing.T) {
	db := openTestDB(t)
	cat := seedCategory(t, db)
	p := seedProduct(t, db, cat.ID, "LD0002", "Şeker", false)
	w := seedWarehouse(t, db, "Ana Depo")

	if _, err := Adjust(db, &p, w.ID, 3); err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}

	_, err := Adjust(db, &p, w.ID, -4)
	var insufficient *apperr.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("InsufficientStockError bekleniyordu, %v alındı", err)
	}
	if insufficient.Requested != 4 || insufficient.Available != 3 {
		t.Errorf("istenen/mevcut 4/3 olmalı, %d/%d bulundu", insufficient.Requested, insufficient.Available)
	}

	// Reddedilen ayarlama miktarı değiştirmemeli
	if got := mustStock(t, db, p.ID, w.ID); got != 3 {
		t.Errorf("miktar 3 kalmalı, %d bulundu", got)
	}
}

func TestAdjustAllowsNegativeForUnlimited(t *testing.T) {
	db := openTestDB(t)
	cat := seedCategory(t, db)
	p := seedProduct(t, db, cat.ID, "LD0003", "Un", true)
	w := seedWarehouse(t, db, "Ana Depo")

	qty, err := Adjust(db, &p, w.ID, -2)
	if err != nil {
		t.Fatalf("sınırsız stokta eksi reddedilmemeli: %v", err)
	}
	if qty != -2 {
		t.Errorf("-2 bekleniyordu, %d bulundu", qty)
	}
}

func TestTotalForProductSumsWarehouses(t *testing.T) {
	db := openTestDB(t)
	cat := seedCategory(t, db)
	p := seedProduct(t, db, cat.ID, "LD0004", "Yağ", false)
	w1 := seedWarehouse(t, db, "Depo 1")
	w2 := seedWarehouse(t, db, "Depo 2")

	if _, err := Adjust(db, &p, w1.ID, 7); err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if _, err := Adjust(db, &p, w2.ID, 3); err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}

	total, err := TotalForProduct(db, p.ID)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if total != 10 {
		t.Errorf("toplam 10 olmalı, %d bulundu", total)
	}
}
