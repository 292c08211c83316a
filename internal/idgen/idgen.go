// Package idgen provides the concrete id-generation collaborator the
// scheduler core depends on only as an interface.
package idgen

import "github.com/google/uuid"

// UUIDGenerator produces opaque ids backed by random UUIDs, satisfying
// scheduler.IDGenerator.
type UUIDGenerator struct{}

// NewID returns a freshly generated UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
