package models

import "time"

// StockTransfer: Depolar arası transfer belgesi. Tamamlandığında kaynak
// depodan düşer, hedef depoya eklenir; toplam miktar korunur.
type StockTransfer struct {
	ID              uint   `gorm:"primaryKey"`
	Code            string `gorm:"size:50;uniqueIndex;not null"`
	Date            time.Time `gorm:"index;not null"`
	FromWarehouseID uint      `gorm:"index;not null"`
	FromWarehouse   Warehouse `gorm:"foreignKey:FromWarehouseID"`
	ToWarehouseID   uint      `gorm:"index;not null"`
	ToWarehouse     Warehouse `gorm:"foreignKey:ToWarehouseID"`
	Status          DocumentStatus `gorm:"size:20;not null;default:draft"`
	TotalAmount     float64        `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []StockTransferItem `gorm:"foreignKey:TransferID;constraint:OnDelete:CASCADE"`
}

type StockTransferItem struct {
	ID         uint `gorm:"primaryKey"`
	TransferID uint `gorm:"index;not null"`
	ProductID  uint `gorm:"index;not null"`
	Product    Product
	Quantity   int     `gorm:"not null"`
	UnitPrice  float64 `gorm:"not null"`
	TotalPrice float64 `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
