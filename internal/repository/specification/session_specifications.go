package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByCode filters sessions by their shareable code (exact match).
type ByCode struct {
	Code string
}

func (s ByCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}

// BySessionID filters child rows by their owning session.
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}
