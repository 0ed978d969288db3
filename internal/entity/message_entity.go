package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is one chat utterance. Append-only: never edited or removed.
type Message struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Author    string
	Content   string
	CreatedAt time.Time
}
