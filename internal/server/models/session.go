package models

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	SessionToken string
	UserID       uuid.UUID
	Expires      time.Time
}

// SessionPatch changes the owner and/or expiry of the session identified by
// SessionToken. Nil fields are left untouched.
type SessionPatch struct {
	SessionToken string
	UserID       *uuid.UUID
	Expires      *time.Time
}
