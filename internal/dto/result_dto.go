package dto

import (
	"time"

	"github.com/google/uuid"

	"pinpoint-be/internal/entity"
)

type AiResultResponse struct {
	Id              uuid.UUID               `json:"id"`
	SessionId       uuid.UUID               `json:"session_id"`
	Places          []entity.Place          `json:"places"`
	UserPreferences []entity.UserPreference `json:"user_preferences"`
	Justification   string                  `json:"justification"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       *time.Time              `json:"updated_at"`
}
