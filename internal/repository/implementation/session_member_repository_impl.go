package implementation

import (
	"context"

	"pinpoint-be/internal/entity"
	"pinpoint-be/internal/mapper"
	"pinpoint-be/internal/model"
	"pinpoint-be/internal/repository/contract"
	"pinpoint-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SessionMemberRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionMemberRepository(db *gorm.DB) contract.SessionMemberRepository {
	return &SessionMemberRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionMemberRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionMemberRepositoryImpl) Create(ctx context.Context, member *entity.SessionMember) error {
	m := r.mapper.SessionUserToModel(member)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*member = *r.mapper.SessionUserToEntity(m)
	return nil
}

func (r *SessionMemberRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionMember, error) {
	var models []*model.SessionUser
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.SessionMember, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SessionUserToEntity(m)
	}
	return entities, nil
}

func (r *SessionMemberRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SessionUser{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
