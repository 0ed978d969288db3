package mapper

import (
	"pinpoint-be/internal/entity"
	"pinpoint-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) SessionToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	return &entity.Session{
		Id:        s.Id,
		Code:      s.Code,
		Owner:     s.Owner,
		CreatedAt: s.CreatedAt,
	}
}

func (m *SessionMapper) SessionToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	return &model.Session{
		Id:        s.Id,
		Code:      s.Code,
		Owner:     s.Owner,
		CreatedAt: s.CreatedAt,
	}
}

func (m *SessionMapper) SessionUserToEntity(u *model.SessionUser) *entity.SessionMember {
	if u == nil {
		return nil
	}

	return &entity.SessionMember{
		Id:        u.Id,
		SessionId: u.SessionId,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

func (m *SessionMapper) SessionUserToModel(u *entity.SessionMember) *model.SessionUser {
	if u == nil {
		return nil
	}

	return &model.SessionUser{
		Id:        u.Id,
		SessionId: u.SessionId,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
