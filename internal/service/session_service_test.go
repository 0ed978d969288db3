package service

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pinpoint-be/internal/apperror"
	"pinpoint-be/internal/dto"
	"pinpoint-be/pkg/sessioncode"
)

func newSessionServiceForTest(factory *fakeFactory) ISessionService {
	return NewSessionService(factory, sessioncode.NewDefaultGenerator(), nil, nopLogger{})
}

func TestCreateSession(t *testing.T) {
	factory := newFakeFactory()
	svc := newSessionServiceForTest(factory)

	res, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Username: "alice"})

	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), res.Code)
	assert.Equal(t, "alice", res.Owner)

	// Creator is the first and only member.
	show, err := svc.Show(context.Background(), res.Code)
	assert.NoError(t, err)
	assert.Equal(t, []string{"alice"}, show.Users)
	assert.Equal(t, "alice", show.Owner)
}

func TestCreateSessionRejectsBlankUsername(t *testing.T) {
	factory := newFakeFactory()
	svc := newSessionServiceForTest(factory)

	_, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Username: "   "})

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Empty(t, factory.store.sessions)
}

func TestJoinSession(t *testing.T) {
	factory := newFakeFactory()
	svc := newSessionServiceForTest(factory)

	created, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Username: "alice"})
	assert.NoError(t, err)

	joined, err := svc.Join(context.Background(), &dto.JoinSessionRequest{Code: created.Code, Username: "bob"})
	assert.NoError(t, err)
	assert.Equal(t, created.Id, joined.Id)

	show, err := svc.Show(context.Background(), created.Code)
	assert.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, show.Users)
}

func TestJoinSessionIsNotIdempotent(t *testing.T) {
	factory := newFakeFactory()
	svc := newSessionServiceForTest(factory)

	created, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Username: "alice"})
	assert.NoError(t, err)

	// Rejoining with the same username adds another member row.
	for i := 0; i < 2; i++ {
		_, err = svc.Join(context.Background(), &dto.JoinSessionRequest{Code: created.Code, Username: "bob"})
		assert.NoError(t, err)
	}

	show, err := svc.Show(context.Background(), created.Code)
	assert.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "bob"}, show.Users)
}

func TestJoinSessionValidation(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		username string
	}{
		{name: "blank username", code: "ABC123", username: " "},
		{name: "short code", code: "ABC", username: "bob"},
		{name: "long code", code: "ABC1234", username: "bob"},
		{name: "empty code", code: "", username: "bob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newFakeFactory()
			svc := newSessionServiceForTest(factory)

			_, err := svc.Join(context.Background(), &dto.JoinSessionRequest{Code: tt.code, Username: tt.username})

			var vErr *apperror.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Empty(t, factory.store.members)
		})
	}
}

func TestJoinUnknownCode(t *testing.T) {
	factory := newFakeFactory()
	svc := newSessionServiceForTest(factory)

	_, err := svc.Join(context.Background(), &dto.JoinSessionRequest{Code: "ZZZZZZ", Username: "bob"})

	var nfErr *apperror.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestShowMatchesCodeExactly(t *testing.T) {
	factory := newFakeFactory()
	svc := newSessionServiceForTest(factory)

	session := seedSession(factory, "alice")

	// Codes are case sensitive; a lowercase variant is a different code.
	_, err := svc.Show(context.Background(), strings.ToLower(session.Code))
	var nfErr *apperror.NotFoundError
	assert.ErrorAs(t, err, &nfErr)

	show, err := svc.Show(context.Background(), session.Code)
	assert.NoError(t, err)
	assert.Equal(t, session.Code, show.Code)
}

func TestShowUnknownCode(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "unknown code", code: "AAAAAA"},
		{name: "wrong length", code: "ABC"},
		{name: "empty code", code: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newFakeFactory()
			svc := newSessionServiceForTest(factory)

			_, err := svc.Show(context.Background(), tt.code)

			var nfErr *apperror.NotFoundError
			assert.ErrorAs(t, err, &nfErr)
		})
	}
}
