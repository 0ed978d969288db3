package contract

import (
	"context"

	"pinpoint-be/internal/entity"
	"pinpoint-be/internal/repository/specification"
)

type SessionMemberRepository interface {
	// Create inserts unconditionally; rejoining adds another row.
	Create(ctx context.Context, member *entity.SessionMember) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionMember, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
