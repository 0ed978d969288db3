package unitofwork

import (
	"context"

	"pinpoint-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	SessionMemberRepository() contract.SessionMemberRepository
	MessageRepository() contract.MessageRepository
	AIResultRepository() contract.AIResultRepository
}
