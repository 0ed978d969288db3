package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pinpoint-be/internal/apperror"
	"pinpoint-be/internal/entity"
)

func TestUpsertCreatesThenPatches(t *testing.T) {
	factory := newFakeFactory()
	svc := NewResultService(factory, nil, nopLogger{})
	sessionID := uuid.New()

	just1 := "first pass"
	err := svc.Upsert(context.Background(), sessionID, &ResultPatch{
		Places:        []entity.Place{{DisplayName: "Cafe One"}},
		HasPlaces:     true,
		Justification: &just1,
	})
	assert.NoError(t, err)
	assert.Len(t, factory.store.results, 1)

	// Second patch only touches preferences; places and justification stay.
	err = svc.Upsert(context.Background(), sessionID, &ResultPatch{
		UserPreferences: []entity.UserPreference{{PlaceId: "p1", Score: 0.9}},
		HasPreferences:  true,
	})
	assert.NoError(t, err)
	assert.Len(t, factory.store.results, 1)

	stored := factory.store.results[0]
	assert.Equal(t, "Cafe One", stored.Places[0].DisplayName)
	assert.Equal(t, "p1", stored.UserPreferences[0].PlaceId)
	assert.Equal(t, just1, stored.Justification)
	assert.NotNil(t, stored.UpdatedAt)
}

func TestUpsertLatestWinsPerField(t *testing.T) {
	factory := newFakeFactory()
	svc := NewResultService(factory, nil, nopLogger{})
	sessionID := uuid.New()

	err := svc.Upsert(context.Background(), sessionID, &ResultPatch{
		Places:    []entity.Place{{DisplayName: "Old"}},
		HasPlaces: true,
	})
	assert.NoError(t, err)

	err = svc.Upsert(context.Background(), sessionID, &ResultPatch{
		Places:    []entity.Place{{DisplayName: "New"}},
		HasPlaces: true,
	})
	assert.NoError(t, err)

	stored := factory.store.results[0]
	assert.Len(t, stored.Places, 1)
	assert.Equal(t, "New", stored.Places[0].DisplayName)
}

func TestUpsertEmptyPatchIsNoOp(t *testing.T) {
	factory := newFakeFactory()
	svc := NewResultService(factory, nil, nopLogger{})

	assert.NoError(t, svc.Upsert(context.Background(), uuid.New(), nil))
	assert.NoError(t, svc.Upsert(context.Background(), uuid.New(), &ResultPatch{}))
	assert.Empty(t, factory.store.results)
}

func TestShowResult(t *testing.T) {
	factory := newFakeFactory()
	svc := NewResultService(factory, nil, nopLogger{})

	session := seedSession(factory, "alice")

	// No plan yet: session exists so no error, just no data.
	res, err := svc.Show(context.Background(), session.Id)
	assert.NoError(t, err)
	assert.Nil(t, res)

	err = svc.Upsert(context.Background(), session.Id, &ResultPatch{
		Places:    []entity.Place{{DisplayName: "Cafe"}},
		HasPlaces: true,
	})
	assert.NoError(t, err)

	res, err = svc.Show(context.Background(), session.Id)
	assert.NoError(t, err)
	assert.Equal(t, session.Id, res.SessionId)
	assert.Equal(t, "Cafe", res.Places[0].DisplayName)
}

func TestShowResultUnknownSession(t *testing.T) {
	factory := newFakeFactory()
	svc := NewResultService(factory, nil, nopLogger{})

	_, err := svc.Show(context.Background(), uuid.New())

	var nfErr *apperror.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}
