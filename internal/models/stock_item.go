package models

import "time"

// StockItem: (ürün, depo) başına güncel stok miktarı.
// Miktar sadece belge tamamlama/silme sırasında değişir; her zaman
// tamamlanmış giriş/çıkış/transfer toplamına eşittir.
type StockItem struct {
	ID          uint `gorm:"primaryKey"`
	ProductID   uint `gorm:"not null;uniqueIndex:idx_stock_product_warehouse"`
	Product     Product
	WarehouseID uint `gorm:"not null;uniqueIndex:idx_stock_product_warehouse"`
	Warehouse   Warehouse
	Quantity    int `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
