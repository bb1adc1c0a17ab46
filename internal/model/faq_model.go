package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FaqEntry struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Type      string         `gorm:"type:varchar(16);not null"`
	Question  string         `gorm:"type:text;not null"`
	Answer    string         `gorm:"type:text;not null"`
	Scenario  datatypes.JSON `gorm:"type:jsonb"` // null for simple entries
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt *time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (FaqEntry) TableName() string {
	return "faq_entries"
}
