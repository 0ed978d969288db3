package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pinpoint-be/internal/apperror"
	"pinpoint-be/internal/dto"
	"pinpoint-be/internal/entity"
)

func seedSession(factory *fakeFactory, owner string) *entity.Session {
	session := &entity.Session{
		Id:        uuid.New(),
		Code:      "ABC123",
		Owner:     owner,
		CreatedAt: time.Now(),
	}
	factory.store.sessions = append(factory.store.sessions, session)
	return session
}

func TestAppendMessagePublishesJob(t *testing.T) {
	factory := newFakeFactory()
	publisher := &fakeJobPublisher{}
	svc := NewMessageService(factory, publisher, nil, nopLogger{})

	session := seedSession(factory, "alice")

	res, err := svc.Append(context.Background(), &dto.AppendMessageRequest{
		SessionId: session.Id,
		Author:    "alice",
		Content:   "somewhere with pasta",
	})

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.Id)

	// A job carrying only the session id goes out per accepted message.
	assert.Len(t, publisher.payloads, 1)
	var job dto.PublishAiJobMessage
	assert.NoError(t, json.Unmarshal(publisher.payloads[0], &job))
	assert.Equal(t, session.Id, job.SessionId)
}

func TestAppendMessageUnknownSession(t *testing.T) {
	factory := newFakeFactory()
	publisher := &fakeJobPublisher{}
	svc := NewMessageService(factory, publisher, nil, nopLogger{})

	_, err := svc.Append(context.Background(), &dto.AppendMessageRequest{
		SessionId: uuid.New(),
		Author:    "ghost",
		Content:   "anyone here?",
	})

	var nfErr *apperror.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
	assert.Empty(t, factory.store.messages)
	assert.Empty(t, publisher.payloads)
}

func TestAppendMessageRejectsBlankContent(t *testing.T) {
	factory := newFakeFactory()
	publisher := &fakeJobPublisher{}
	svc := NewMessageService(factory, publisher, nil, nopLogger{})

	session := seedSession(factory, "alice")

	_, err := svc.Append(context.Background(), &dto.AppendMessageRequest{
		SessionId: session.Id,
		Author:    "alice",
		Content:   "  ",
	})

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Empty(t, publisher.payloads)
}

func TestListMessagesInAppendOrder(t *testing.T) {
	factory := newFakeFactory()
	publisher := &fakeJobPublisher{}
	svc := NewMessageService(factory, publisher, nil, nopLogger{})

	session := seedSession(factory, "alice")

	contents := []string{"first", "second", "third"}
	for _, c := range contents {
		_, err := svc.Append(context.Background(), &dto.AppendMessageRequest{
			SessionId: session.Id,
			Author:    "alice",
			Content:   c,
		})
		assert.NoError(t, err)
	}

	listed, err := svc.List(context.Background(), session.Id)
	assert.NoError(t, err)
	assert.Len(t, listed, 3)
	for i, msg := range listed {
		assert.Equal(t, contents[i], msg.Content)
	}
}

func TestListMessagesUnknownSession(t *testing.T) {
	factory := newFakeFactory()
	svc := NewMessageService(factory, &fakeJobPublisher{}, nil, nopLogger{})

	_, err := svc.List(context.Background(), uuid.New())

	var nfErr *apperror.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}
