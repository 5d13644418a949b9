package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a row of the users table.
type User struct {
	ID            uuid.UUID
	Name          *string
	Email         *string
	EmailVerified *time.Time
	Image         *string
	// AvatarBlobRef is set only when avatar mirroring is enabled and the
	// image was stored successfully.
	AvatarBlobRef *string
	// Roles is nil unless role assignment is enabled.
	Roles      []string
	DateJoined time.Time
}

// UserPatch lists the user fields an update may touch. Fields left unset
// keep their stored value.
type UserPatch struct {
	Name          Nullable[string]
	Email         Nullable[string]
	EmailVerified Nullable[time.Time]
	Image         Nullable[string]
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return !p.Name.Set && !p.Email.Set && !p.EmailVerified.Set && !p.Image.Set
}
