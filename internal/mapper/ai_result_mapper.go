package mapper

import (
	"encoding/json"
	"time"

	"pinpoint-be/internal/entity"
	"pinpoint-be/internal/model"

	"gorm.io/datatypes"
)

type AIResultMapper struct{}

func NewAIResultMapper() *AIResultMapper {
	return &AIResultMapper{}
}

func (m *AIResultMapper) AIResultToEntity(r *model.AIResult) (*entity.AIResult, error) {
	if r == nil {
		return nil, nil
	}

	places := []entity.Place{}
	if len(r.Places) > 0 {
		if err := json.Unmarshal(r.Places, &places); err != nil {
			return nil, err
		}
	}

	preferences := []entity.UserPreference{}
	if len(r.UserPreferences) > 0 {
		if err := json.Unmarshal(r.UserPreferences, &preferences); err != nil {
			return nil, err
		}
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.AIResult{
		Id:              r.Id,
		SessionId:       r.SessionId,
		Places:          places,
		UserPreferences: preferences,
		Justification:   r.Justification,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       updatedAt,
	}, nil
}

func (m *AIResultMapper) AIResultToModel(r *entity.AIResult) (*model.AIResult, error) {
	if r == nil {
		return nil, nil
	}

	places := r.Places
	if places == nil {
		places = []entity.Place{}
	}
	placesJSON, err := json.Marshal(places)
	if err != nil {
		return nil, err
	}

	preferences := r.UserPreferences
	if preferences == nil {
		preferences = []entity.UserPreference{}
	}
	preferencesJSON, err := json.Marshal(preferences)
	if err != nil {
		return nil, err
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.AIResult{
		Id:              r.Id,
		SessionId:       r.SessionId,
		Places:          datatypes.JSON(placesJSON),
		UserPreferences: datatypes.JSON(preferencesJSON),
		Justification:   r.Justification,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       updatedAt,
	}, nil
}
