package usecase_permission

import (
	"context"

	"github.com/google/uuid"
	"github.com/kappucitti/syncvote/internal/model"
)

type PermissionRegistry interface {
	EnsurePermissions(userID uuid.UUID) model.UserPermissions
}

type Usecase struct {
	registry PermissionRegistry
}

func New(registry PermissionRegistry) *Usecase {
	return &Usecase{
		registry: registry,
	}
}

// ForUser returns the cached permission record for userID, creating a
// permissive default on first sight. Always succeeds. A real deployment
// replaces the registry default with a policy lookup.
func (u *Usecase) ForUser(ctx context.Context, userID uuid.UUID) model.UserPermissions {
	return u.registry.EnsurePermissions(userID)
}
