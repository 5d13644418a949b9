package models

import "time"

// VerificationToken is a single-use token keyed by (Identifier, Token).
type VerificationToken struct {
	Identifier string
	Token      string
	Expires    time.Time
}
