package models

import "time"

type Product struct {
	ID         uint   `gorm:"primaryKey"`
	Code       string `gorm:"size:50;uniqueIndex;not null"` // Stok kodu (örn: TM0012)
	Name       string `gorm:"size:150;not null"`
	CategoryID uint   `gorm:"index;not null"`
	Category   Category
	Unit       string  `gorm:"size:20;not null"` // kg, adet, koli vs.
	PurchasePrice float64 `gorm:"not null"`
	SalePrice     float64 `gorm:"not null"`
	// Sınırsız stoklu ürünlerde negatif stok kontrolü yapılmaz
	UnlimitedStock bool `gorm:"not null;default:false"`
	// Ürünün kaç tamamlanmış belgede geçtiği (fatura sayacı)
	InvoiceCount int `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
