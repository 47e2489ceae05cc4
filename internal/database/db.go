package database

import (
	"log"

	"depo-backend/internal/config"
	"depo-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate: tüm tabloları oluşturur/günceller. Testler aynı listeyi
// SQLite üzerinde kullanır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Warehouse{},
		&models.StockItem{},
		&models.StockReceipt{},
		&models.StockReceiptItem{},
		&models.StockIssue{},
		&models.StockIssueItem{},
		&models.StockTransfer{},
		&models.StockTransferItem{},
		&models.Debt{},
		&models.DebtPayment{},
		&models.User{},
		&models.ActivityLog{},
	)
}
