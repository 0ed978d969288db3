package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pinpoint-be/internal/apperror"
	"pinpoint-be/internal/dto"
	"pinpoint-be/internal/entity"
	"pinpoint-be/internal/pkg/logger"
	"pinpoint-be/internal/repository/specification"
	"pinpoint-be/internal/repository/unitofwork"
	"pinpoint-be/pkg/events"
	pkgNats "pinpoint-be/pkg/nats"
)

// ResultPatch carries the fields a single merge step wants to update.
// The Has flags distinguish "replace with empty" from "leave untouched".
type ResultPatch struct {
	Places          []entity.Place
	HasPlaces       bool
	UserPreferences []entity.UserPreference
	HasPreferences  bool
	Justification   *string
}

func (p *ResultPatch) IsEmpty() bool {
	return !p.HasPlaces && !p.HasPreferences && p.Justification == nil
}

type IResultService interface {
	Show(ctx context.Context, sessionID uuid.UUID) (*dto.AiResultResponse, error)
	Upsert(ctx context.Context, sessionID uuid.UUID, patch *ResultPatch) error
}

type resultService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pkgNats.Publisher
	logger         logger.ILogger
}

func NewResultService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IResultService {
	return &resultService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *resultService) Show(ctx context.Context, sessionID uuid.UUID) (*dto.AiResultResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionID})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session")
	}

	result, err := uow.AIResultRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil // No plan produced yet
	}

	return &dto.AiResultResponse{
		Id:              result.Id,
		SessionId:       result.SessionId,
		Places:          result.Places,
		UserPreferences: result.UserPreferences,
		Justification:   result.Justification,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// Upsert writes a patch into the single result row of a session. Each
// field is last-write-wins on its own: fields absent from the patch
// keep whatever the previous write left there.
func (s *resultService) Upsert(ctx context.Context, sessionID uuid.UUID, patch *ResultPatch) error {
	if patch == nil || patch.IsEmpty() {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := uow.AIResultRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionID})
	if err != nil {
		return err
	}

	if result == nil {
		result = &entity.AIResult{
			Id:              uuid.New(),
			SessionId:       sessionID,
			Places:          []entity.Place{},
			UserPreferences: []entity.UserPreference{},
			CreatedAt:       time.Now(),
		}
		applyPatch(result, patch)
		if err := uow.AIResultRepository().Create(ctx, result); err != nil {
			return err
		}
	} else {
		now := time.Now()
		applyPatch(result, patch)
		result.UpdatedAt = &now
		if err := uow.AIResultRepository().Update(ctx, result); err != nil {
			return err
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewChange(events.ChangeAiResultUpdated, sessionID)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ResultService", "failed to publish change event", map[string]interface{}{
				"kind":  events.ChangeAiResultUpdated,
				"error": err.Error(),
			})
		}
	}

	return nil
}

func applyPatch(result *entity.AIResult, patch *ResultPatch) {
	if patch.HasPlaces {
		result.Places = patch.Places
	}
	if patch.HasPreferences {
		result.UserPreferences = patch.UserPreferences
	}
	if patch.Justification != nil {
		result.Justification = *patch.Justification
	}
}
