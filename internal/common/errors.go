// Package common defines shared constants and sentinel errors used across
// the adapter, its stores and the gRPC shell. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// ErrorInvalidID is returned when a string id cannot be translated into
	// a native store key.
	ErrorInvalidID = errors.New("invalid id")

	// ErrorLostUpdate is returned when a record disappeared while it was being
	// patched, so no definitive post-update state exists.
	ErrorLostUpdate = errors.New("record vanished during update")

	// Avatar ingestion errors.
	ErrFetchFailure = errors.New("avatar fetch failed")
	ErrWriteFailure = errors.New("avatar write failed")

	// Service token errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
)
