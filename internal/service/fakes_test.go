package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"pinpoint-be/internal/entity"
	"pinpoint-be/internal/repository/contract"
	"pinpoint-be/internal/repository/specification"
	"pinpoint-be/internal/repository/unitofwork"
)

var errFakeWrite = errors.New("write failed")

// fakeStore is the shared in-memory backing for all fake repositories.
type fakeStore struct {
	sessions []*entity.Session
	members  []*entity.SessionMember
	messages []*entity.Message
	results  []*entity.AIResult

	failCreateResult bool
	failUpdateResult bool
}

type fakeUnitOfWork struct {
	store *fakeStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) SessionRepository() contract.SessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUnitOfWork) SessionMemberRepository() contract.SessionMemberRepository {
	return &fakeSessionMemberRepo{store: u.store}
}

func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository {
	return &fakeMessageRepo{store: u.store}
}

func (u *fakeUnitOfWork) AIResultRepository() contract.AIResultRepository {
	return &fakeAIResultRepo{store: u.store}
}

type fakeFactory struct {
	store *fakeStore
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: &fakeStore{}}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

// specMatch interprets the specification structs the services actually use.
type specMatch struct {
	id        *uuid.UUID
	code      *string
	sessionID *uuid.UUID
	orderAsc  bool
}

func compileSpecs(specs []specification.Specification) specMatch {
	var m specMatch
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			id := v.ID
			m.id = &id
		case specification.ByCode:
			code := v.Code
			m.code = &code
		case specification.BySessionID:
			sid := v.SessionID
			m.sessionID = &sid
		case specification.OrderBy:
			m.orderAsc = !v.Desc
		}
	}
	return m
}

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	copied := *session
	r.store.sessions = append(r.store.sessions, &copied)
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	m := compileSpecs(specs)
	for _, s := range r.store.sessions {
		if m.id != nil && s.Id != *m.id {
			continue
		}
		if m.code != nil && s.Code != *m.code {
			continue
		}
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	var out []*entity.Session
	for _, s := range r.store.sessions {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.sessions)), nil
}

type fakeSessionMemberRepo struct {
	store *fakeStore
}

func (r *fakeSessionMemberRepo) Create(ctx context.Context, member *entity.SessionMember) error {
	copied := *member
	r.store.members = append(r.store.members, &copied)
	return nil
}

func (r *fakeSessionMemberRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionMember, error) {
	m := compileSpecs(specs)
	var out []*entity.SessionMember
	for _, member := range r.store.members {
		if m.sessionID != nil && member.SessionId != *m.sessionID {
			continue
		}
		copied := *member
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeSessionMemberRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	members, _ := r.FindAll(ctx, specs...)
	return int64(len(members)), nil
}

type fakeMessageRepo struct {
	store *fakeStore
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	copied := *message
	r.store.messages = append(r.store.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	m := compileSpecs(specs)
	var out []*entity.Message
	for _, msg := range r.store.messages {
		if m.sessionID != nil && msg.SessionId != *m.sessionID {
			continue
		}
		copied := *msg
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	messages, _ := r.FindAll(ctx, specs...)
	return int64(len(messages)), nil
}

type fakeAIResultRepo struct {
	store *fakeStore
}

func (r *fakeAIResultRepo) Create(ctx context.Context, result *entity.AIResult) error {
	if r.store.failCreateResult {
		return errFakeWrite
	}
	copied := *result
	r.store.results = append(r.store.results, &copied)
	return nil
}

func (r *fakeAIResultRepo) Update(ctx context.Context, result *entity.AIResult) error {
	if r.store.failUpdateResult {
		return errFakeWrite
	}
	for i, existing := range r.store.results {
		if existing.Id == result.Id {
			copied := *result
			r.store.results[i] = &copied
			return nil
		}
	}
	return nil
}

func (r *fakeAIResultRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AIResult, error) {
	m := compileSpecs(specs)
	for _, res := range r.store.results {
		if m.sessionID != nil && res.SessionId != *m.sessionID {
			continue
		}
		copied := *res
		return &copied, nil
	}
	return nil, nil
}

// fakeJobPublisher records job payloads published to the AI topic.
type fakeJobPublisher struct {
	payloads [][]byte
}

func (p *fakeJobPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
