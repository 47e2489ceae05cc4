package models

import "time"

type ActivityAction string

const (
	ActivityCreate   ActivityAction = "create"
	ActivityUpdate   ActivityAction = "update"
	ActivityDelete   ActivityAction = "delete"
	ActivityComplete ActivityAction = "complete"
	ActivityLogin    ActivityAction = "login"
)

// ActivityLog: sadece eklenen, asla güncellenmeyen işlem kaydı
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID   uint   `json:"user_id"`
	UserName string `gorm:"size:100" json:"user_name"` // kullanıcı adı (denormalize)

	// Hangi alan? (ör: "receipt", "issue", "transfer", "product", "debt")
	Category string `gorm:"size:50;index" json:"category"`
	EntityID uint   `gorm:"index" json:"entity_id"`

	Action      ActivityAction `gorm:"size:20" json:"action"`
	Description string         `gorm:"size:255" json:"description"`

	// İşleme ait ek veri (JSON)
	Metadata string `gorm:"type:jsonb" json:"metadata"`
}
