package usecase_permission

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	storage_registry "github.com/kappucitti/syncvote/internal/storage/registry"
)

func TestForUserDefaultsPermissive(t *testing.T) {
	t.Parallel()

	usecase := New(storage_registry.New())
	userID := uuid.New()

	perms := usecase.ForUser(context.Background(), userID)
	assert.Equal(t, userID, perms.UserID)
	assert.True(t, perms.CanOrganize)
	assert.True(t, perms.CanVote)
}

func TestForUserIsStableAcrossCalls(t *testing.T) {
	t.Parallel()

	usecase := New(storage_registry.New())
	userID := uuid.New()

	first := usecase.ForUser(context.Background(), userID)
	second := usecase.ForUser(context.Background(), userID)
	assert.Equal(t, first, second)
}
