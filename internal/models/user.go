package models

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	// Sayfa bazlı yetkiler; admin rolü bu haritayı tamamen atlar
	Permissions PermissionMap `gorm:"type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
