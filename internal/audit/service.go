package audit

import (
	"encoding/json"
	"log"

	"depo-backend/internal/models"

	"gorm.io/gorm"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	Category    string
	EntityID    uint
	Action      models.ActivityAction
	Description string
	Metadata    any
}

// Write: işlem kaydı ekler. Kayıt hatası iş akışını asla bozmaz;
// hata sadece loglanır ve yutulur.
func Write(db *gorm.DB, opts LogOptions) {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	metaStr := "null"
	if opts.Metadata != nil {
		if b, err := json.Marshal(opts.Metadata); err == nil {
			metaStr = string(b)
		}
	}

	entry := models.ActivityLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		Category:    opts.Category,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		Metadata:    metaStr,
	}

	if err := db.Create(&entry).Error; err != nil {
		log.Printf("[WARN] işlem kaydı yazılamadı: %v", err)
	}
}
