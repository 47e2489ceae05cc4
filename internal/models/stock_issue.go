package models

import "time"

// StockIssue: Mal çıkış belgesi (depodan alıcıya)
type StockIssue struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"size:50;uniqueIndex;not null"`
	Date        time.Time `gorm:"index;not null"`
	Receiver    string    `gorm:"size:150;not null"` // teslim alan
	Status      DocumentStatus `gorm:"size:20;not null;default:draft"`
	TotalAmount float64        `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []StockIssueItem `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE"`
}

type StockIssueItem struct {
	ID          uint `gorm:"primaryKey"`
	IssueID     uint `gorm:"index;not null"`
	ProductID   uint `gorm:"index;not null"`
	Product     Product
	WarehouseID uint `gorm:"index;not null"`
	Warehouse   Warehouse
	Quantity    int     `gorm:"not null"`
	UnitPrice   float64 `gorm:"not null"`
	TotalPrice  float64 `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
