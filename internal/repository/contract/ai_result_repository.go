package contract

import (
	"context"

	"pinpoint-be/internal/entity"
	"pinpoint-be/internal/repository/specification"
)

type AIResultRepository interface {
	Create(ctx context.Context, result *entity.AIResult) error
	Update(ctx context.Context, result *entity.AIResult) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AIResult, error)
}
