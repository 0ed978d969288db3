package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"pinpoint-be/internal/dto"
	"pinpoint-be/internal/pkg/logger"
	"pinpoint-be/internal/repository/specification"
	"pinpoint-be/internal/repository/unitofwork"
	"pinpoint-be/internal/websocket"
	"pinpoint-be/pkg/events"
	pkgNats "pinpoint-be/pkg/nats"
)

// SnapshotDelivery defines how to push real-time snapshots.
// Typically implemented by the WebSocket Hub.
type SnapshotDelivery interface {
	SendToSession(sessionID uuid.UUID, frame websocket.Frame)
	SendToClient(client *websocket.Client, frame websocket.Frame)
}

// SubscriptionService listens for change events and pushes fresh snapshots
// to every viewer of the affected session. It always re-reads state from
// the store rather than trusting the event payload, so a delivered frame
// reflects at least the change that triggered it.
type SubscriptionService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pkgNats.Subscriber
	delivery   SnapshotDelivery
	logger     logger.ILogger
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pkgNats.Subscriber,
	delivery SnapshotDelivery,
	log logger.ILogger,
) *SubscriptionService {
	return &SubscriptionService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *SubscriptionService) Start() {
	err := s.subscriber.Subscribe("changes.>", "pinpoint-subscription-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("SubscriptionService", "Failed to start subscription worker", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("SubscriptionService", "Subscription worker started, listening to changes.>", nil)
}

func (s *SubscriptionService) handleEvent(ctx context.Context, event events.Event) error {
	sessionID, ok := events.SessionIDOf(event)
	if !ok {
		s.logger.Warn("SubscriptionService", fmt.Sprintf("Event %s carries no session_id", event.EventType()), nil)
		return nil
	}

	var frame *websocket.Frame
	var err error

	switch event.EventType() {
	case events.ChangeSessionUpdated:
		frame, err = s.sessionFrame(ctx, sessionID)
	case events.ChangeMessageAppended:
		frame, err = s.messagesFrame(ctx, sessionID)
	case events.ChangeAiResultUpdated:
		frame, err = s.resultFrame(ctx, sessionID)
	default:
		s.logger.Warn("SubscriptionService", fmt.Sprintf("Unknown change kind: %s", event.EventType()), nil)
		return nil
	}

	if err != nil {
		s.logger.Error("SubscriptionService", fmt.Sprintf("Error building snapshot for %s", event.EventType()), map[string]interface{}{"error": err})
		return err // NATS will retry
	}
	if frame == nil {
		return nil
	}

	if s.delivery != nil {
		s.delivery.SendToSession(sessionID, *frame)
	}
	return nil
}

// PushInitialSnapshot sends the current state of all three resources to a
// freshly connected client.
func (s *SubscriptionService) PushInitialSnapshot(ctx context.Context, client *websocket.Client) {
	if s.delivery == nil {
		return
	}
	for _, build := range []func(context.Context, uuid.UUID) (*websocket.Frame, error){
		s.sessionFrame,
		s.messagesFrame,
		s.resultFrame,
	} {
		frame, err := build(ctx, client.SessionID)
		if err != nil {
			s.logger.Warn("SubscriptionService", "Failed to build initial snapshot frame", map[string]interface{}{
				"session_id": client.SessionID,
				"error":      err.Error(),
			})
			continue
		}
		if frame != nil {
			s.delivery.SendToClient(client, *frame)
		}
	}
}

func (s *SubscriptionService) sessionFrame(ctx context.Context, sessionID uuid.UUID) (*websocket.Frame, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionID})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	members, err := uow.SessionMemberRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	users := make([]string, 0, len(members))
	for _, m := range members {
		users = append(users, m.Username)
	}

	return &websocket.Frame{
		Type: "session",
		Data: dto.ShowSessionResponse{
			Id:        session.Id,
			Code:      session.Code,
			Owner:     session.Owner,
			Users:     users,
			CreatedAt: session.CreatedAt,
		},
	}, nil
}

func (s *SubscriptionService) messagesFrame(ctx context.Context, sessionID uuid.UUID) (*websocket.Frame, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	data := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		data = append(data, dto.MessageResponse{
			Id:        m.Id,
			SessionId: m.SessionId,
			Author:    m.Author,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	return &websocket.Frame{Type: "messages", Data: data}, nil
}

func (s *SubscriptionService) resultFrame(ctx context.Context, sessionID uuid.UUID) (*websocket.Frame, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := uow.AIResultRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	if result == nil {
		// Nothing planned yet; an empty frame would only erase client state.
		return nil, nil
	}

	return &websocket.Frame{
		Type: "ai_result",
		Data: dto.AiResultResponse{
			Id:              result.Id,
			SessionId:       result.SessionId,
			Places:          result.Places,
			UserPreferences: result.UserPreferences,
			Justification:   result.Justification,
			CreatedAt:       result.CreatedAt,
			UpdatedAt:       result.UpdatedAt,
		},
	}, nil
}
