package usecase_vote

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappucitti/syncvote/internal/model"
	storage_registry "github.com/kappucitti/syncvote/internal/storage/registry"
	usecase_room "github.com/kappucitti/syncvote/internal/usecase/room"
)

// TestMovieNightSession walks one full session through the engine:
// lobby, joins, voting, tally, handoff.
func TestMovieNightSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	registry := storage_registry.New()
	rooms := usecase_room.New(registry)
	directory := &stubDirectory{items: make(map[uuid.UUID]model.ItemMeta)}
	notifier := &recordingNotifier{}
	votes := New(registry, directory, notifier)

	organizerID := uuid.New()
	aliceID := uuid.New()
	bobID := uuid.New()

	// Organizer opens a lobby; an out-of-range time limit gets clamped.
	room, err := rooms.Create(ctx, organizerID, usecase_room.CreateRoomSpec{
		Name:             "friday movie night",
		TimeLimitMinutes: 200,
		SortBy:           "communityrating",
	})
	require.NoError(t, err)
	assert.Equal(t, model.MaxTimeLimitMinutes, room.TimeLimitMinutes)
	assert.Equal(t, model.SortByCommunityRating, room.SortBy)
	assert.Equal(t, []uuid.UUID{organizerID}, room.Members)

	// Guests join; a second join by the same guest bounces.
	require.NoError(t, rooms.Join(ctx, room.ID, aliceID))
	require.NoError(t, rooms.Join(ctx, room.ID, bobID))
	assert.ErrorIs(t, rooms.Join(ctx, room.ID, aliceID), usecase_room.ErrPrecondition)

	// Nobody can vote, and no guest can start, while the lobby is open.
	assert.ErrorIs(t, votes.Cast(ctx, room.ID, aliceID, uuid.New(), true), ErrPrecondition)
	assert.ErrorIs(t, rooms.StartVoting(ctx, room.ID, aliceID), usecase_room.ErrPrecondition)

	require.NoError(t, rooms.StartVoting(ctx, room.ID, organizerID))

	heat := uuid.New()
	alien := uuid.New()
	directory.add(heat, "Heat", 1995)
	directory.add(alien, "Alien", 1979)

	require.NoError(t, votes.Cast(ctx, room.ID, organizerID, heat, true))
	require.NoError(t, votes.Cast(ctx, room.ID, aliceID, heat, true))
	require.NoError(t, votes.Cast(ctx, room.ID, bobID, alien, true))
	// Bob changes his mind.
	require.NoError(t, votes.Cast(ctx, room.ID, bobID, alien, false))

	results := votes.Results(ctx, room.ID)
	require.Len(t, results.LikedItems, 1)
	assert.Equal(t, heat, results.LikedItems[0].ItemID)
	assert.Equal(t, 2, results.LikedItems[0].VoteCount)
	assert.Equal(t, "Heat", results.LikedItems[0].Name)
	require.NotNil(t, results.Winner)

	winner, err := votes.HandoffWinner(ctx, room.ID, organizerID)
	require.NoError(t, err)
	assert.Equal(t, heat, winner.ItemID)
	require.Len(t, notifier.items, 1)
	assert.Equal(t, room.ID, notifier.rooms[0])
}
