package service

import (
	"context"
	"encoding/json"
	"strings"
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

type IMessageService interface {
	Append(ctx context.Context, req *dto.AppendMessageRequest) (*dto.AppendMessageResponse, error)
	List(ctx context.Context, sessionID uuid.UUID) ([]*dto.MessageResponse, error)
}

type messageService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	logger           logger.ILogger
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (s *messageService) Append(ctx context.Context, req *dto.AppendMessageRequest) (*dto.AppendMessageResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperror.Validationf("content is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session")
	}

	msg := entity.Message{
		Id:        uuid.New(),
		SessionId: session.Id,
		Author:    strings.TrimSpace(req.Author),
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if err := uow.MessageRepository().Create(ctx, &msg); err != nil {
		return nil, err
	}

	// Every accepted message schedules a fresh planning run over the
	// whole transcript. The worker reads the transcript itself, so the
	// payload only carries the session id.
	payload := dto.PublishAiJobMessage{
		SessionId: session.Id,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payloadJson); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewChange(events.ChangeMessageAppended, session.Id)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("MessageService", "failed to publish change event", map[string]interface{}{
				"kind":  events.ChangeMessageAppended,
				"error": err.Error(),
			})
		}
	}

	return &dto.AppendMessageResponse{
		Id: msg.Id,
	}, nil
}

func (s *messageService) List(ctx context.Context, sessionID uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionID})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session")
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, &dto.MessageResponse{
			Id:        m.Id,
			SessionId: m.SessionId,
			Author:    m.Author,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	return response, nil
}
