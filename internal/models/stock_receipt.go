package models

import "time"

// StockReceipt: Mal giriş belgesi (tedarikçiden depoya)
type StockReceipt struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"size:50;uniqueIndex;not null"`
	Date        time.Time `gorm:"index;not null"`
	Supplier    string    `gorm:"size:150;not null"` // tedarikçi adı
	Status      DocumentStatus `gorm:"size:20;not null;default:draft"`
	TotalAmount float64        `gorm:"not null"` // satır toplamlarının toplamı
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []StockReceiptItem `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
}

type StockReceiptItem struct {
	ID          uint `gorm:"primaryKey"`
	ReceiptID   uint `gorm:"index;not null"`
	ProductID   uint `gorm:"index;not null"`
	Product     Product
	WarehouseID uint `gorm:"index;not null"`
	Warehouse   Warehouse
	Quantity    int     `gorm:"not null"` // > 0
	UnitPrice   float64 `gorm:"not null"`
	TotalPrice  float64 `gorm:"not null"` // Quantity * UnitPrice
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
