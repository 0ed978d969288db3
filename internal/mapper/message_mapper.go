package mapper

import (
	"pinpoint-be/internal/entity"
	"pinpoint-be/internal/model"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	return &entity.Message{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Author:    msg.Author,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *MessageMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	return &model.Message{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Author:    msg.Author,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *MessageMapper) MessagesToEntities(models []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(models))
	for i, msg := range models {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
