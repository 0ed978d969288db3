package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Username string `json:"username" validate:"required"`
}

type CreateSessionResponse struct {
	Id    uuid.UUID `json:"id"`
	Code  string    `json:"code"`
	Owner string    `json:"owner"`
}

type JoinSessionRequest struct {
	Code     string `json:"code" validate:"required,len=6"`
	Username string `json:"username" validate:"required"`
}

type JoinSessionResponse struct {
	Id   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

type ShowSessionResponse struct {
	Id        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Owner     string    `json:"owner"`
	Users     []string  `json:"users"` // join order, duplicates preserved
	CreatedAt time.Time `json:"created_at"`
}
