package stock

import (
	"errors"
	"time"

	"depo-backend/internal/apperr"
	"depo-backend/internal/models"

	"gorm.io/gorm"
)

// Belge motoru: giriş/çıkış/transfer belgelerini oluşturur, tamamlar ve
// siler. Stok miktarlarını değiştiren tek yer burasıdır. Her işlem tek
// transaction içinde çalışır; herhangi bir satırda hata olursa belge de
// stok da yazılmaz.

// -------------------------
// Girdi tipleri
// -------------------------

type DocumentLineInput struct {
	ProductID   uint    `json:"product_id"`
	WarehouseID uint    `json:"warehouse_id"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type CreateReceiptInput struct {
	Code     string
	Date     time.Time
	Supplier string
	Status   models.DocumentStatus
	Lines    []DocumentLineInput
}

type CreateIssueInput struct {
	Code     string
	Date     time.Time
	Receiver string
	Status   models.DocumentStatus
	Lines    []DocumentLineInput
}

type TransferLineInput struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type CreateTransferInput struct {
	Code            string
	Date            time.Time
	FromWarehouseID uint
	ToWarehouseID   uint
	Status          models.DocumentStatus
	Lines           []TransferLineInput
}

// -------------------------
// Ortak doğrulama ve yükleme
// -------------------------

func validateHeader(code string, status models.DocumentStatus, lineCount int) error {
	if code == "" {
		return apperr.Validation("Belge kodu zorunlu")
	}
	if !status.Valid() {
		return apperr.Validation("Geçersiz belge durumu: %s", status)
	}
	if lineCount == 0 {
		return apperr.Validation("En az bir satır eklenmelidir")
	}
	return nil
}

func validateLine(quantity int, unitPrice float64) error {
	if quantity <= 0 {
		return apperr.Validation("Satır miktarı 0'dan büyük olmalı")
	}
	if unitPrice < 0 {
		return apperr.Validation("Birim fiyat negatif olamaz")
	}
	return nil
}

func loadProduct(tx *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := tx.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Ürün bulunamadı: %d", id)
		}
		return nil, err
	}
	return &product, nil
}

func checkWarehouse(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Warehouse{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound("Depo bulunamadı: %d", id)
	}
	return nil
}

func checkCodeFree(tx *gorm.DB, model any, code string) error {
	var count int64
	if err := tx.Model(model).Where("code = ?", code).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Belge kodu zaten kullanılıyor: %s", code)
	}
	return nil
}

func bumpInvoiceCount(tx *gorm.DB, productID uint, delta int) error {
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("invoice_count", gorm.Expr("invoice_count + ?", delta)).Error
}

// -------------------------
// Stok deltaları
// -------------------------

func applyReceipt(tx *gorm.DB, receipt *models.StockReceipt) error {
	for _, item := range receipt.Items {
		product, err := loadProduct(tx, item.ProductID)
		if err != nil {
			return err
		}
		if _, err := Adjust(tx, product, item.WarehouseID, item.Quantity); err != nil {
			return err
		}
		if err := bumpInvoiceCount(tx, item.ProductID, 1); err != nil {
			return err
		}
	}
	return nil
}

func reverseReceipt(tx *gorm.DB, receipt *models.StockReceipt) error {
	for _, item := range receipt.Items {
		product, err := loadProduct(tx, item.ProductID)
		if err != nil {
			return err
		}
		if _, err := Adjust(tx, product, item.WarehouseID, -item.Quantity); err != nil {
			return err
		}
		if err := bumpInvoiceCount(tx, item.ProductID, -1); err != nil {
			return err
		}
	}
	return nil
}

func applyIssue(tx *gorm.DB, issue *models.StockIssue) error {
	for _, item := range issue.Items {
		product, err := loadProduct(tx, item.ProductID)
		if err != nil {
			return err
		}
		if _, err := Adjust(tx, product, item.WarehouseID, -item.Quantity); err != nil {
			return err
		}
		if err := bumpInvoiceCount(tx, item.ProductID, 1); err != nil {
			return err
		}
	}
	return nil
}

func reverseIssue(tx *gorm.DB, issue *models.StockIssue) error {
	for _, item := range issue.Items {
		product, err := loadProduct(tx, item.ProductID)
		if err != nil {
			return err
		}
		if _, err := Adjust(tx, product, item.WarehouseID, item.Quantity); err != nil {
			return err
		}
		if err := bumpInvoiceCount(tx, item.ProductID, -1); err != nil {
			return err
		}
	}
	return nil
}

func applyTransfer(tx *gorm.DB, transfer *models.StockTransfer) error {
	for _, item := range transfer.Items {
		product, err := loadProduct(tx, item.ProductID)
		if err != nil {
			return err
		}
		// Önce kaynaktan düş: yetersizse hedefe hiç dokunulmaz
		if _, err := Adjust(tx, product, transfer.FromWarehouseID, -item.Quantity); err != nil {
			return err
		}
		if _, err := Adjust(tx, product, transfer.ToWarehouseID, item.Quantity); err != nil {
			return err
		}
		if err := bumpInvoiceCount(tx, item.ProductID, 1); err != nil {
			return err
		}
	}
	return nil
}

func reverseTransfer(tx *gorm.DB, transfer *models.StockTransfer) error {
	for _, item := range transfer.Items {
		product, err := loadProduct(tx, item.ProductID)
		if err != nil {
			return err
		}
		if _, err := Adjust(tx, product, transfer.ToWarehouseID, -item.Quantity); err != nil {
			return err
		}
		if _, err := Adjust(tx, product, transfer.FromWarehouseID, item.Quantity); err != nil {
			return err
		}
		if err := bumpInvoiceCount(tx, item.ProductID, -1); err != nil {
			return err
		}
	}
	return nil
}

// -------------------------
// Giriş belgesi
// -------------------------

func CreateReceipt(db *gorm.DB, in CreateReceiptInput) (*models.StockReceipt, error) {
	if err := validateHeader(in.Code, in.Status, len(in.Lines)); err != nil {
		return nil, err
	}
	if in.Supplier == "" {
		return nil, apperr.Validation("Tedarikçi zorunlu")
	}
	for _, line := range in.Lines {
		if err := validateLine(line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}

	var receipt models.StockReceipt
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := checkCodeFree(tx, &models.StockReceipt{}, in.Code); err != nil {
			return err
		}

		receipt = models.StockReceipt{
			Code:     in.Code,
			Date:     in.Date,
			Supplier: in.Supplier,
			Status:   in.Status,
		}

		var total float64
		for _, line := range in.Lines {
			if _, err := loadProduct(tx, line.ProductID); err != nil {
				return err
			}
			if err := checkWarehouse(tx, line.WarehouseID); err != nil {
				return err
			}

			lineTotal := float64(line.Quantity) * line.UnitPrice
			total += lineTotal
			receipt.Items = append(receipt.Items, models.StockReceiptItem{
				ProductID:   line.ProductID,
				WarehouseID: line.WarehouseID,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				TotalPrice:  lineTotal,
			})
		}
		receipt.TotalAmount = total

		if err := tx.Create(&receipt).Error; err != nil {
			return err
		}

		if receipt.Status == models.StatusCompleted {
			return applyReceipt(tx, &receipt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func CompleteReceipt(db *gorm.DB, id uint) (*models.StockReceipt, error) {
	var receipt models.StockReceipt
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&receipt, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Giriş belgesi bulunamadı: %d", id)
			}
			return err
		}

		// Koşullu güncelleme: aynı belge iki kez tamamlanamaz, stok
		// deltaları en fazla bir kez uygulanır
		res := tx.Model(&models.StockReceipt{}).
			Where("id = ? AND status = ?", id, models.StatusDraft).
			Update("status", models.StatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("Belge taslak durumda değil, tamamlanamaz")
		}

		receipt.Status = models.StatusCompleted
		return applyReceipt(tx, &receipt)
	})
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// DeleteReceipt: belgeyi ve satırlarını siler. Tamamlanmış belgede stok
// deltaları aynı transaction içinde geri alınır; geri alma bir satırı
// eksiye düşürecekse silme tümüyle reddedilir.
func DeleteReceipt(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var receipt models.StockReceipt
		if err := tx.Preload("Items").First(&receipt, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Giriş belgesi bulunamadı: %d", id)
			}
			return err
		}

		if receipt.Status == models.StatusCompleted {
			if err := reverseReceipt(tx, &receipt); err != nil {
				return err
			}
		}

		if err := tx.Where("receipt_id = ?", id).Delete(&models.StockReceiptItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.StockReceipt{}, "id = ?", id).Error
	})
}

// -------------------------
// Çıkış belgesi
// -------------------------

func CreateIssue(db *gorm.DB, in CreateIssueInput) (*models.StockIssue, error) {
	if err := validateHeader(in.Code, in.Status, len(in.Lines)); err != nil {
		return nil, err
	}
	if in.Receiver == "" {
		return nil, apperr.Validation("Teslim alan zorunlu")
	}
	for _, line := range in.Lines {
		if err := validateLine(line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}

	var issue models.StockIssue
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := checkCodeFree(tx, &models.StockIssue{}, in.Code); err != nil {
			return err
		}

		issue = models.StockIssue{
			Code:     in.Code,
			Date:     in.Date,
			Receiver: in.Receiver,
			Status:   in.Status,
		}

		var total float64
		for _, line := range in.Lines {
			if _, err := loadProduct(tx, line.ProductID); err != nil {
				return err
			}
			if err := checkWarehouse(tx, line.WarehouseID); err != nil {
				return err
			}

			lineTotal := float64(line.Quantity) * line.UnitPrice
			total += lineTotal
			issue.Items = append(issue.Items, models.StockIssueItem{
				ProductID:   line.ProductID,
				WarehouseID: line.WarehouseID,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				TotalPrice:  lineTotal,
			})
		}
		issue.TotalAmount = total

		if err := tx.Create(&issue).Error; err != nil {
			return err
		}

		if issue.Status == models.StatusCompleted {
			return applyIssue(tx, &issue)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func CompleteIssue(db *gorm.DB, id uint) (*models.StockIssue, error) {
	var issue models.StockIssue
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&issue, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Çıkış belgesi bulunamadı: %d", id)
			}
			return err
		}

		res := tx.Model(&models.StockIssue{}).
			Where("id = ? AND status = ?", id, models.StatusDraft).
			Update("status", models.StatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("Belge taslak durumda değil, tamamlanamaz")
		}

		issue.Status = models.StatusCompleted
		return applyIssue(tx, &issue)
	})
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func DeleteIssue(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var issue models.StockIssue
		if err := tx.Preload("Items").First(&issue, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Çıkış belgesi bulunamadı: %d", id)
			}
			return err
		}

		if issue.Status == models.StatusCompleted {
			if err := reverseIssue(tx, &issue); err != nil {
				return err
			}
		}

		if err := tx.Where("issue_id = ?", id).Delete(&models.StockIssueItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.StockIssue{}, "id = ?", id).Error
	})
}

// -------------------------
// Transfer belgesi
// -------------------------

func CreateTransfer(db *gorm.DB, in CreateTransferInput) (*models.StockTransfer, error) {
	if err := validateHeader(in.Code, in.Status, len(in.Lines)); err != nil {
		return nil, err
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, apperr.Validation("Kaynak ve hedef depo aynı olamaz")
	}
	for _, line := range in.Lines {
		if err := validateLine(line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}

	var transfer models.StockTransfer
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := checkCodeFree(tx, &models.StockTransfer{}, in.Code); err != nil {
			return err
		}
		if err := checkWarehouse(tx, in.FromWarehouseID); err != nil {
			return err
		}
		if err := checkWarehouse(tx, in.ToWarehouseID); err != nil {
			return err
		}

		transfer = models.StockTransfer{
			Code:            in.Code,
			Date:            in.Date,
			FromWarehouseID: in.FromWarehouseID,
			ToWarehouseID:   in.ToWarehouseID,
			Status:          in.Status,
		}

		var total float64
		for _, line := range in.Lines {
			if _, err := loadProduct(tx, line.ProductID); err != nil {
				return err
			}

			lineTotal := float64(line.Quantity) * line.UnitPrice
			total += lineTotal
			transfer.Items = append(transfer.Items, models.StockTransferItem{
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: lineTotal,
			})
		}
		transfer.TotalAmount = total

		if err := tx.Create(&transfer).Error; err != nil {
			return err
		}

		if transfer.Status == models.StatusCompleted {
			return applyTransfer(tx, &transfer)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

func CompleteTransfer(db *gorm.DB, id uint) (*models.StockTransfer, error) {
	var transfer models.StockTransfer
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&transfer, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Transfer belgesi bulunamadı: %d", id)
			}
			return err
		}

		res := tx.Model(&models.StockTransfer{}).
			Where("id = ? AND status = ?", id, models.StatusDraft).
			Update("status", models.StatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("Belge taslak durumda değil, tamamlanamaz")
		}

		transfer.Status = models.StatusCompleted
		return applyTransfer(tx, &transfer)
	})
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

func DeleteTransfer(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var transfer models.StockTransfer
		if err := tx.Preload("Items").First(&transfer, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Transfer belgesi bulunamadı: %d", id)
			}
			return err
		}

		if transfer.Status == models.StatusCompleted {
			if err := reverseTransfer(tx, &transfer); err != nil {
				return err
			}
		}

		if err := tx.Where("transfer_id = ?", id).Delete(&models.StockTransferItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.StockTransfer{}, "id = ?", id).Error
	})
}
