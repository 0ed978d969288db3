package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a shareable collaborative room. Code and Owner are set at
// creation and never change; sessions are never deleted.
type Session struct {
	Id        uuid.UUID
	Code      string
	Owner     string
	CreatedAt time.Time
}

// SessionMember associates a username with a session. No uniqueness: the
// same username may join a session more than once.
type SessionMember struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Username  string
	CreatedAt time.Time
}
