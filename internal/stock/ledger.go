package stock

import (
	"errors"

	"depo-backend/internal/apperr"
	"depo-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Get: (ürün, depo) için güncel miktar. Satır yoksa 0.
func Get(db *gorm.DB, productID, warehouseID uint) (int, error) {
	var item models.StockItem
	err := db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return item.Quantity, nil
}

// TotalForProduct: ürünün tüm depolardaki toplam miktarı.
// Okuma anında hesaplanır, ayrıca bir yerde tutulmaz.
func TotalForProduct(db *gorm.DB, productID uint) (int, error) {
	var total int64
	err := db.Model(&models.StockItem{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// lockForUpdate: Postgres'te satır kilidi alır. SQLite (testler)
// FOR UPDATE desteklemez, yazmaları zaten serileştirir.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Adjust: (ürün, depo) satırını kilitleyip delta uygular; satır yoksa 0
// miktarla oluşturur. Sonuç negatif olacaksa ve ürün sınırsız stoklu
// değilse InsufficientStockError döner, satır değişmez.
func Adjust(tx *gorm.DB, product *models.Product, warehouseID uint, delta int) (int, error) {
	var item models.StockItem
	err := lockForUpdate(tx).
		Where("product_id = ? AND warehouse_id = ?", product.ID, warehouseID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.StockItem{ProductID: product.ID, WarehouseID: warehouseID, Quantity: 0}
		if err := tx.Create(&item).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	newQty := item.Quantity + delta
	if newQty < 0 && !product.UnlimitedStock {
		return item.Quantity, &apperr.InsufficientStockError{
			ProductName: product.Name,
			Requested:   -delta,
			Available:   item.Quantity,
		}
	}

	if err := tx.Model(&models.StockItem{}).Where("id = ?", item.ID).Update("quantity", newQty).Error; err != nil {
		return 0, err
	}
	return newQty, nil
}
