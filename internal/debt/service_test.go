package debt

import (
	"errors"
	"testing"
	"time"

	"depo-backend/internal/apperr"
	"depo-backend/internal/database"
	"depo-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB alınamadı: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migration başarısız: %v", err)
	}
	return db
}

func paymentDate() time.Time {
	return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
}

func TestCreateDebt(t *testing.T) {
	db := openTestDB(t)

	d, err := CreateDebt(db, CreateDebtInput{CompanyName: "Tedarikçi A", TotalAmount: 1000})
	if err != nil {
		t.Fatalf("borç oluşturulamadı: %v", err)
	}
	if d.RemainingAmount != 1000 || d.CollectedAmount != 0 {
		t.Errorf("yeni borçta kalan=1000 tahsil=0 olmalı, %.2f/%.2f bulundu",
			d.RemainingAmount, d.CollectedAmount)
	}

	if _, err := CreateDebt(db, CreateDebtInput{CompanyName: "", TotalAmount: 100}); err == nil {
		t.Error("boş firma adı reddedilmeli")
	}
	if _, err := CreateDebt(db, CreateDebtInput{CompanyName: "B", TotalAmount: 0}); err == nil {
		t.Error("sıfır tutar reddedilmeli")
	}
}

func TestAddPaymentRecalculatesRemaining(t *testing.T) {
	db := openTestDB(t)

	d, err := CreateDebt(db, CreateDebtInput{CompanyName: "Tedarikçi A", TotalAmount: 1000})
	if err != nil {
		t.Fatalf("borç oluşturulamadı: %v", err)
	}

	if _, err := AddPayment(db, d.ID, 300, paymentDate(), "ilk taksit"); err != nil {
		t.Fatalf("tahsilat eklenemedi: %v", err)
	}
	if _, err := AddPayment(db, d.ID, 200, paymentDate(), "ikinci taksit"); err != nil {
		t.Fatalf("tahsilat eklenemedi: %v", err)
	}

	var fresh models.Debt
	if err := db.First(&fresh, "id = ?", d.ID).Error; err != nil {
		t.Fatalf("borç okunamadı: %v", err)
	}
	if fresh.CollectedAmount != 500 {
		t.Errorf("tahsil edilen 500 olmalı, %.2f bulundu", fresh.CollectedAmount)
	}
	if fresh.RemainingAmount != fresh.TotalAmount-fresh.CollectedAmount {
		t.Errorf("kalan = toplam - tahsil kuralı bozuldu: %.2f", fresh.RemainingAmount)
	}
}

func TestAddPaymentRejectsOverCollection(t *testing.T) {
	db := openTestDB(t)

	d, err := CreateDebt(db, CreateDebtInput{CompanyName: "Tedarikçi A", TotalAmount: 1000})
	if err != nil {
		t.Fatalf("borç oluşturulamadı: %v", err)
	}
	if _, err := AddPayment(db, d.ID, 900, paymentDate(), ""); err != nil {
		t.Fatalf("tahsilat eklenemedi: %v", err)
	}

	_, err = AddPayment(db, d.ID, 200, paymentDate(), "")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ValidationError bekleniyordu, %v alındı", err)
	}

	// Reddedilen tahsilat kayıt bırakmamalı, tutarlar değişmemeli
	var count int64
	db.Model(&models.DebtPayment{}).Where("debt_id = ?", d.ID).Count(&count)
	if count != 1 {
		t.Errorf("tek tahsilat kaydı kalmalı, %d bulundu", count)
	}
	var fresh models.Debt
	db.First(&fresh, "id = ?", d.ID)
	if fresh.CollectedAmount != 900 || fresh.RemainingAmount != 100 {
		t.Errorf("tutarlar 900/100 kalmalı, %.2f/%.2f bulundu",
			fresh.CollectedAmount, fresh.RemainingAmount)
	}
}

func TestUpdateDebtGuardsTotal(t *testing.T) {
	db := openTestDB(t)

	d, err := CreateDebt(db, CreateDebtInput{CompanyName: "Tedarikçi A", TotalAmount: 1000})
	if err != nil {
		t.Fatalf("borç oluşturulamadı: %v", err)
	}
	if _, err := AddPayment(db, d.ID, 400, paymentDate(), ""); err != nil {
		t.Fatalf("tahsilat eklenemedi: %v", err)
	}

	// Toplam tahsil edilenin altına düşürülemez
	low := 300.0
	if _, err := UpdateDebt(db, d.ID, UpdateDebtInput{TotalAmount: &low}); err == nil {
		t.Error("tahsil edilenin altındaki toplam reddedilmeli")
	}

	// Geçerli güncelleme kalanı yeniden hesaplar
	raised := 2000.0
	updated, err := UpdateDebt(db, d.ID, UpdateDebtInput{TotalAmount: &raised})
	if err != nil {
		t.Fatalf("borç güncellenemedi: %v", err)
	}
	if updated.RemainingAmount != 1600 {
		t.Errorf("kalan 1600 olmalı, %.2f bulundu", updated.RemainingAmount)
	}
}

func TestDeleteDebtRemovesPayments(t *testing.T) {
	db := openTestDB(t)

	d, err := CreateDebt(db, CreateDebtInput{CompanyName: "Tedarikçi A", TotalAmount: 500})
	if err != nil {
		t.Fatalf("borç oluşturulamadı: %v", err)
	}
	if _, err := AddPayment(db, d.ID, 100, paymentDate(), ""); err != nil {
		t.Fatalf("tahsilat eklenemedi: %v", err)
	}

	if err := DeleteDebt(db, d.ID); err != nil {
		t.Fatalf("borç silinemedi: %v", err)
	}

	var count int64
	db.Model(&models.DebtPayment{}).Where("debt_id = ?", d.ID).Count(&count)
	if count != 0 {
		t.Errorf("tahsilat kayıtları da silinmeliydi")
	}

	if err := DeleteDebt(db, d.ID); err == nil {
		t.Error("silinmiş borcu tekrar silmek NotFound dönmeli")
	}
}
