package models

import "time"

// Debt: Müşteri/firma borcu. RemainingAmount her zaman
// TotalAmount - CollectedAmount'a eşit tutulur ve her tahsilatta
// yeniden hesaplanır.
type Debt struct {
	ID              uint   `gorm:"primaryKey"`
	CompanyName     string `gorm:"size:150;not null"`
	TotalAmount     float64 `gorm:"not null"`
	CollectedAmount float64 `gorm:"not null;default:0"`
	RemainingAmount float64 `gorm:"not null;default:0"`
	Description     string  `gorm:"size:500"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Payments []DebtPayment `gorm:"foreignKey:DebtID;constraint:OnDelete:CASCADE"`
}

// DebtPayment: Borca yapılan tahsilat kaydı
type DebtPayment struct {
	ID          uint `gorm:"primaryKey"`
	DebtID      uint `gorm:"index;not null"`
	Debt        Debt
	Amount      float64   `gorm:"not null"`
	PaymentDate time.Time `gorm:"index;not null"`
	Description string    `gorm:"size:500"` // taksit bilgisi vs.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
