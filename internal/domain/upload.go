package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Upload struct - Completed upload history entity
type Upload struct {
	ID             *uuid.UUID `gorm:"type:uuid;primary_key;"`
	ChatID         string     `gorm:"type:varchar(64);not null;index"`
	AlbumID        string     `gorm:"type:varchar(64);not null;index"`
	Title          string     `gorm:"type:varchar(255);not null;"`
	Resolution     string     `gorm:"type:varchar(32);not null;"`
	RemoteRecordID string     `gorm:"type:varchar(64)"`
	CreatedAt      *time.Time `gorm:"type:timestamp"`
}

// TableName func
func (u *Upload) TableName() string {
	return "uploads"
}

// BeforeCreate hook - generates UUID before creating
func (u *Upload) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID != nil {
		return nil
	}
	id, err := uuid.NewRandom() // v4
	if err != nil {
		return err
	}
	u.ID = &id
	return nil
}

// MigrateDatabase func - Auto-migrate database schema
func MigrateDatabase(db *gorm.DB) error {
	if db == nil {
		return ErrConfiguration
	}
	logrus.Info("Migrate database ...")
	return db.AutoMigrate(&Upload{})
}
