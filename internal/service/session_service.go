package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pinpoint-be/internal/apperror"
	"pinpoint-be/internal/dto"
	"pinpoint-be/internal/entity"
	"pinpoint-be/internal/pkg/logger"
	"pinpoint-be/internal/repository/memory"
	"pinpoint-be/internal/repository/specification"
	"pinpoint-be/internal/repository/unitofwork"
	"pinpoint-be/pkg/events"
	pkgNats "pinpoint-be/pkg/nats"
	"pinpoint-be/pkg/sessioncode"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	Join(ctx context.Context, req *dto.JoinSessionRequest) (*dto.JoinSessionResponse, error)
	Show(ctx context.Context, code string) (*dto.ShowSessionResponse, error)
}

type sessionService struct {
	uowFactory     unitofwork.RepositoryFactory
	codeGenerator  *sessioncode.Generator
	eventPublisher *pkgNats.Publisher
	sessionCache   *memory.SessionCache
	logger         logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	codeGenerator *sessioncode.Generator,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:     uowFactory,
		codeGenerator:  codeGenerator,
		eventPublisher: eventPublisher,
		sessionCache:   memory.NewSessionCache(),
		logger:         log,
	}
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperror.Validationf("username is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := entity.Session{
		Id:        uuid.New(),
		Code:      s.codeGenerator.Generate(),
		Owner:     username,
		CreatedAt: time.Now(),
	}
	member := entity.SessionMember{
		Id:        uuid.New(),
		SessionId: session.Id,
		Username:  username,
		CreatedAt: session.CreatedAt,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}
	if err := uow.SessionMemberRepository().Create(ctx, &member); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.sessionCache.Save(&session)
	s.publishChange(ctx, events.ChangeSessionUpdated, session.Id)

	return &dto.CreateSessionResponse{
		Id:    session.Id,
		Code:  session.Code,
		Owner: session.Owner,
	}, nil
}

func (s *sessionService) Join(ctx context.Context, req *dto.JoinSessionRequest) (*dto.JoinSessionResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperror.Validationf("username is required")
	}
	// Codes are matched exactly as submitted, no case folding.
	code := req.Code
	if len(code) != sessioncode.Length {
		return nil, apperror.Validationf("code must be exactly %d characters", sessioncode.Length)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findSessionByCode(ctx, uow, code)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session")
	}

	// Joins are not idempotent: rejoining with the same username adds
	// another member row.
	member := entity.SessionMember{
		Id:        uuid.New(),
		SessionId: session.Id,
		Username:  username,
		CreatedAt: time.Now(),
	}
	if err := uow.SessionMemberRepository().Create(ctx, &member); err != nil {
		return nil, err
	}

	s.publishChange(ctx, events.ChangeSessionUpdated, session.Id)

	return &dto.JoinSessionResponse{
		Id:   session.Id,
		Code: session.Code,
	}, nil
}

func (s *sessionService) Show(ctx context.Context, code string) (*dto.ShowSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findSessionByCode(ctx, uow, code)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session")
	}

	members, err := uow.SessionMemberRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	users := make([]string, 0, len(members))
	for _, m := range members {
		users = append(users, m.Username)
	}

	return &dto.ShowSessionResponse{
		Id:        session.Id,
		Code:      session.Code,
		Owner:     session.Owner,
		Users:     users,
		CreatedAt: session.CreatedAt,
	}, nil
}

// findSessionByCode consults the in-memory cache before hitting the
// database. Session rows never change after creation, so a cache hit
// is always safe to serve.
func (s *sessionService) findSessionByCode(ctx context.Context, uow unitofwork.UnitOfWork, code string) (*entity.Session, error) {
	if cached, found := s.sessionCache.Get(code); found {
		return cached, nil
	}

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByCode{Code: code})
	if err != nil {
		return nil, err
	}
	if session != nil {
		s.sessionCache.Save(session)
	}
	return session, nil
}

func (s *sessionService) publishChange(ctx context.Context, kind string, sessionID uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.NewChange(kind, sessionID)); err != nil {
		s.logger.Warn("SessionService", "failed to publish change event", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
	}
}
