package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AIResult struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId       uuid.UUID      `gorm:"type:uuid;not null;index"` // functionally unique, enforced by upsert-by-lookup
	Places          datatypes.JSON `gorm:"type:jsonb;not null"`
	UserPreferences datatypes.JSON `gorm:"type:jsonb;not null"`
	Justification   string         `gorm:"type:text;not null"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}

func (AIResult) TableName() string {
	return "ai_results"
}
