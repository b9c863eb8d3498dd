package model

import "github.com/google/uuid"

// UserPermissions is materialized lazily with permissive defaults.
// A real deployment swaps the defaulting for a policy lookup.
type UserPermissions struct {
	UserID      uuid.UUID
	CanOrganize bool
	CanVote     bool
}
