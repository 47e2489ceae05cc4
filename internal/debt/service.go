package debt

import (
	"errors"
	"time"

	"depo-backend/internal/apperr"
	"depo-backend/internal/models"

	"gorm.io/gorm"
)

// Borç servisi. Değişmez kural: RemainingAmount = TotalAmount -
// CollectedAmount, her güncellemede yeniden hesaplanır; tahsilat
// toplamı borç tutarını aşamaz.

type CreateDebtInput struct {
	CompanyName string
	TotalAmount float64
	Description string
}

type UpdateDebtInput struct {
	CompanyName *string
	TotalAmount *float64
	Description *string
}

func CreateDebt(db *gorm.DB, in CreateDebtInput) (*models.Debt, error) {
	if in.CompanyName == "" {
		return nil, apperr.Validation("Firma adı zorunlu")
	}
	if in.TotalAmount <= 0 {
		return nil, apperr.Validation("Borç tutarı 0'dan büyük olmalı")
	}

	d := models.Debt{
		CompanyName:     in.CompanyName,
		TotalAmount:     in.TotalAmount,
		CollectedAmount: 0,
		RemainingAmount: in.TotalAmount,
		Description:     in.Description,
	}
	if err := db.Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func UpdateDebt(db *gorm.DB, id uint, in UpdateDebtInput) (*models.Debt, error) {
	var d models.Debt
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&d, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Borç kaydı bulunamadı: %d", id)
			}
			return err
		}

		if in.CompanyName != nil {
			if *in.CompanyName == "" {
				return apperr.Validation("Firma adı boş olamaz")
			}
			d.CompanyName = *in.CompanyName
		}
		if in.TotalAmount != nil {
			if *in.TotalAmount <= 0 {
				return apperr.Validation("Borç tutarı 0'dan büyük olmalı")
			}
			if *in.TotalAmount < d.CollectedAmount {
				return apperr.Validation("Borç tutarı tahsil edilen tutarın altına düşürülemez")
			}
			d.TotalAmount = *in.TotalAmount
		}
		if in.Description != nil {
			d.Description = *in.Description
		}

		// Kalan tutar her güncellemede yeniden hesaplanır
		d.RemainingAmount = d.TotalAmount - d.CollectedAmount

		return tx.Save(&d).Error
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// AddPayment: borca tahsilat ekler; tahsilat toplamı borç tutarını
// aşacaksa reddedilir ve hiçbir kayıt yazılmaz.
func AddPayment(db *gorm.DB, debtID uint, amount float64, paymentDate time.Time, description string) (*models.DebtPayment, error) {
	if amount <= 0 {
		return nil, apperr.Validation("Tahsilat tutarı 0'dan büyük olmalı")
	}

	var payment models.DebtPayment
	err := db.Transaction(func(tx *gorm.DB) error {
		var d models.Debt
		if err := tx.First(&d, "id = ?", debtID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Borç kaydı bulunamadı: %d", debtID)
			}
			return err
		}

		if d.CollectedAmount+amount > d.TotalAmount {
			return apperr.Validation("Tahsilat toplamı borç tutarını aşamaz (kalan: %.2f)", d.RemainingAmount)
		}

		payment = models.DebtPayment{
			DebtID:      debtID,
			Amount:      amount,
			PaymentDate: paymentDate,
			Description: description,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		d.CollectedAmount += amount
		d.RemainingAmount = d.TotalAmount - d.CollectedAmount
		return tx.Save(&d).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func DeleteDebt(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var d models.Debt
		if err := tx.First(&d, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Borç kaydı bulunamadı: %d", id)
			}
			return err
		}

		if err := tx.Where("debt_id = ?", id).Delete(&models.DebtPayment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&d).Error
	})
}
