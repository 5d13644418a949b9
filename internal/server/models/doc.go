// Package models defines the persisted entities and their patch types.
// Ids here are native store keys (uuid.UUID); string ids only exist at the
// adapter boundary.
package models
