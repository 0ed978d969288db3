package implementation

import (
	"context"
	"errors"

	"pinpoint-be/internal/entity"
	"pinpoint-be/internal/mapper"
	"pinpoint-be/internal/model"
	"pinpoint-be/internal/repository/contract"
	"pinpoint-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AIResultRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AIResultMapper
}

func NewAIResultRepository(db *gorm.DB) contract.AIResultRepository {
	return &AIResultRepositoryImpl{
		db:     db,
		mapper: mapper.NewAIResultMapper(),
	}
}

func (r *AIResultRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AIResultRepositoryImpl) Create(ctx context.Context, result *entity.AIResult) error {
	m, err := r.mapper.AIResultToModel(result)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	updated, err := r.mapper.AIResultToEntity(m)
	if err != nil {
		return err
	}
	*result = *updated
	return nil
}

func (r *AIResultRepositoryImpl) Update(ctx context.Context, result *entity.AIResult) error {
	m, err := r.mapper.AIResultToModel(result)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	updated, err := r.mapper.AIResultToEntity(m)
	if err != nil {
		return err
	}
	*result = *updated
	return nil
}

func (r *AIResultRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AIResult, error) {
	var m model.AIResult
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AIResultToEntity(&m)
}
