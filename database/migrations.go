package database

import (
	"log"
	"time"

	"github.com/royal450/DaillyEarners2/models"

	"gorm.io/gorm"
)

// RevokedToken records blacklisted JWT IDs when Redis is not configured.
type RevokedToken struct {
	ID        string    `gorm:"primaryKey;type:char(96)" json:"id"`
	RevokedAt time.Time `json:"revoked_at"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}

// AutoMigrate creates or updates the schema for every model the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Task{},
		&models.TaskCompletion{},
		&models.TaskLike{},
		&models.Submission{},
		&models.Withdrawal{},
		&models.Transaction{},
		&models.Setting{},
		&models.RefreshToken{},
		&RevokedToken{},
	)
}

// SeedSettings inserts the singleton settings row when none exists.
func SeedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Setting{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	s := models.Setting{
		MinWithdraw:    50,
		MaxWithdraw:    10000,
		SignupBonus:    5,
		FirstTaskBonus: 10,
	}
	if err := db.Create(&s).Error; err != nil {
		return err
	}
	log.Printf("[database] seeded default settings (min withdraw %.0f)", s.MinWithdraw)
	return nil
}
