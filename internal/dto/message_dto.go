package dto

import (
	"time"

	"github.com/google/uuid"
)

type AppendMessageRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Author    string    `json:"author" validate:"required"`
	Content   string    `json:"content" validate:"required"`
}

type AppendMessageResponse struct {
	Id uuid.UUID `json:"id"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	SessionId uuid.UUID `json:"session_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PublishAiJobMessage is the payload carried on the AI job topic.
type PublishAiJobMessage struct {
	SessionId uuid.UUID `json:"session_id"`
}
