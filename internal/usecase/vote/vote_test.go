package usecase_vote

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappucitti/syncvote/internal/model"
	storage_registry "github.com/kappucitti/syncvote/internal/storage/registry"
	usecase_room "github.com/kappucitti/syncvote/internal/usecase/room"
)

type stubDirectory struct {
	mu    sync.Mutex
	items map[uuid.UUID]model.ItemMeta
	fail  bool
}

func (d *stubDirectory) Resolve(_ context.Context, itemID uuid.UUID) (model.ItemMeta, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fail {
		return model.ItemMeta{}, errors.New("directory unavailable")
	}
	meta, ok := d.items[itemID]
	if !ok {
		return model.ItemMeta{}, errors.New("no such item")
	}
	return meta, nil
}

func (d *stubDirectory) add(itemID uuid.UUID, name string, year int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items[itemID] = model.ItemMeta{ID: itemID, Name: name, Year: &year, Type: "Movie"}
}

type recordingNotifier struct {
	mu    sync.Mutex
	rooms []uuid.UUID
	items []model.VotedItem
}

func (n *recordingNotifier) NotifyWinner(roomID uuid.UUID, item model.VotedItem) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rooms = append(n.rooms, roomID)
	n.items = append(n.items, item)
}

type UsecaseVoteUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase   *Usecase
	rooms     *usecase_room.Usecase
	directory *stubDirectory
	notifier  *recordingNotifier
	ctx       context.Context
}

func initResources() *resources {
	registry := storage_registry.New()
	directory := &stubDirectory{items: make(map[uuid.UUID]model.ItemMeta)}
	notifier := &recordingNotifier{}

	return &resources{
		usecase:   New(registry, directory, notifier),
		rooms:     usecase_room.New(registry),
		directory: directory,
		notifier:  notifier,
		ctx:       context.Background(),
	}
}

// votingRoom cooks a room already in its voting phase with the given members.
func votingRoom(t provider.T, r *resources, organizerID uuid.UUID, members ...uuid.UUID) model.Room {
	room, err := r.rooms.Create(r.ctx, organizerID, usecase_room.CreateRoomSpec{
		Name:             "movie night",
		TimeLimitMinutes: 5,
	})
	require.NoError(t, err)
	for _, m := range members {
		require.NoError(t, r.rooms.Join(r.ctx, room.ID, m))
	}
	require.NoError(t, r.rooms.StartVoting(r.ctx, room.ID, organizerID))
	return room
}

func (s *UsecaseVoteUnitSuite) TestCastPreconditions(t provider.T) {
	t.Parallel()

	t.Run("Should reject a vote in a missing room", func(t provider.T) {
		r := initResources()

		err := r.usecase.Cast(r.ctx, uuid.New(), uuid.New(), uuid.New(), true)
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})

	t.Run("Should reject a vote before voting starts", func(t provider.T) {
		r := initResources()
		organizerID := uuid.New()
		room, err := r.rooms.Create(r.ctx, organizerID, usecase_room.CreateRoomSpec{Name: "lobby"})
		require.NoError(t, err)

		err = r.usecase.Cast(r.ctx, room.ID, organizerID, uuid.New(), true)
		assert.ErrorIs(t, err, ErrPrecondition)
	})

	t.Run("Should reject a vote from a non-member", func(t provider.T) {
		r := initResources()
		room := votingRoom(t, r, uuid.New())

		err := r.usecase.Cast(r.ctx, room.ID, uuid.New(), uuid.New(), true)
		assert.ErrorIs(t, err, ErrPrecondition)
	})

	t.Run("Should accept a member's vote once voting is active", func(t provider.T) {
		r := initResources()
		organizerID := uuid.New()
		room := votingRoom(t, r, organizerID)

		assert.NoError(t, r.usecase.Cast(r.ctx, room.ID, organizerID, uuid.New(), true))
	})
}

func (s *UsecaseVoteUnitSuite) TestCastIsAnUpsert(t provider.T) {
	t.Parallel()

	r := initResources()
	organizerID := uuid.New()
	room := votingRoom(t, r, organizerID)
	itemID := uuid.New()

	require.NoError(t, r.usecase.Cast(r.ctx, room.ID, organizerID, itemID, true))
	require.NoError(t, r.usecase.Cast(r.ctx, room.ID, organizerID, itemID, false))

	// Like then dislike leaves one vote, and it is the dislike: the
	// tally must come back empty.
	results := r.usecase.Results(r.ctx, room.ID)
	assert.Empty(t, results.LikedItems)
	assert.Nil(t, results.Winner)
}

func (s *UsecaseVoteUnitSuite) TestResults(t provider.T) {
	t.Parallel()

	t.Run("Should count only likes", func(t provider.T) {
		r := initResources()
		organizerID := uuid.New()
		voterID := uuid.New()
		room := votingRoom(t, r, organizerID, voterID)

		itemA, itemB := uuid.New(), uuid.New()
		r.directory.add(itemA, "Item A", 2001)
		r.directory.add(itemB, "Item B", 2002)

		require.NoError(t, r.usecase.Cast(r.ctx, room.ID, organizerID, itemA, true))
		require.NoError(t, r.usecase.Cast(r.ctx, room.ID, voterID, itemB, false))

		results := r.usecase.Results(r.ctx, room.ID)
		require.Len(t, results.LikedItems, 1)
		assert.Equal(t, itemA, results.LikedItems[0].ItemID)
		assert.Equal(t, 1, results.LikedItems[0].VoteCount)
		assert.Equal(t, "Item A", results.LikedItems[0].Name)
		require.NotNil(t, results.Winner)
		assert.Equal(t, itemA, results.Winner.ItemID)
	})

	t.Run("Should order by vote count and break ties by first like", func(t provider.T) {
		r := initResources()
		organizerID := uuid.New()
		voters := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
		room := votingRoom(t, r, organizerID, voters...)

		itemX, itemY, itemZ := uuid.New(), uuid.New(), uuid.New()
		r.directory.add(itemX, "X", 2000)
		r.directory.add(itemY, "Y", 2001)
		r.directory.add(itemZ, "Z", 2002)

		// Y is liked first, then Z; both end with 3 likes, X with 2.
		require.NoError(t, r.usecase.Cast(r.ctx, room.ID, organizerID, itemY, true))
		require.NoError(t, r.usecase.Cast(r.ctx, room.ID, organizerID, itemZ, true))
		require.NoError(t, r.usecase.Cast(r.ctx, room.ID, voters[0], itemY, true))
		require.NoError(t, r.usecase.Cast(r.ctx, room.ID, voters[0], itemZ, true))
		require.NoError(t, r.usecase.Cast(r.ctx, room.ID, voters[1], itemY, true))
		require.NoError(t, r.usecase.Cast(r.ctx, room.ID, voters[1], itemZ, true))
		require.NoError(t, r.usecase.Cast(r.ctx, room.ID, voters[2], itemX, true))
		require.NoError(t, r.usecase.Cast(r.ctx, room.ID, voters[3], itemX, true))

		results := r.usecase.Results(r.ctx, room.ID)
		require.Len(t, results.LikedItems, 3)
		assert.Equal(t, itemY, results.LikedItems[0].ItemID)
		assert.Equal(t, itemZ, results.LikedItems[1].ItemID)
		assert.Equal(t, itemX, results.LikedItems[2].ItemID)

		// Stable across repeated calls.
		again := r.usecase.Results(r.ctx, room.ID)
		assert.Equal(t, results.LikedItems, again.LikedItems)
	})

	t.Run("Should degrade to Unknown when resolution fails", func(t provider.T) {
		r := initResources()
		organizerID := uuid.New()
		room := votingRoom(t, r, organizerID)

		require.NoError(t, r.usecase.Cast(r.ctx, room.ID, organizerID, uuid.New(), true))
		r.directory.fail = true

		results := r.usecase.Results(r.ctx, room.ID)
		require.Len(t, results.LikedItems, 1)
		assert.Equal(t, model.UnknownItemName, results.LikedItems[0].Name)
		assert.Equal(t, model.UnknownItemName, results.LikedItems[0].Type)
		assert.Nil(t, results.LikedItems[0].Year)
		assert.Equal(t, 1, results.LikedItems[0].VoteCount)
	})

	t.Run("Should return an empty tally for a missing room", func(t provider.T) {
		r := initResources()

		results := r.usecase.Results(r.ctx, uuid.New())
		assert.Empty(t, results.LikedItems)
		assert.Nil(t, results.Winner)
	})
}

func (s *UsecaseVoteUnitSuite) TestHandoffWinner(t provider.T) {
	t.Parallel()

	t.Run("Should notify the playback group with the winner", func(t provider.T) {
		r := initResources()
		organizerID := uuid.New()
		room := votingRoom(t, r, organizerID)

		itemID := uuid.New()
		r.directory.add(itemID, "The Winner", 1999)
		require.NoError(t, r.usecase.Cast(r.ctx, room.ID, organizerID, itemID, true))

		winner, err := r.usecase.HandoffWinner(r.ctx, room.ID, organizerID)
		require.NoError(t, err)
		assert.Equal(t, itemID, winner.ItemID)

		require.Len(t, r.notifier.items, 1)
		assert.Equal(t, room.ID, r.notifier.rooms[0])
		assert.Equal(t, itemID, r.notifier.items[0].ItemID)
	})

	t.Run("Should reject a non-organizer", func(t provider.T) {
		r := initResources()
		outsider := uuid.New()
		room := votingRoom(t, r, uuid.New(), outsider)

		_, err := r.usecase.HandoffWinner(r.ctx, room.ID, outsider)
		assert.ErrorIs(t, err, ErrPrecondition)
		assert.Empty(t, r.notifier.items)
	})

	t.Run("Should reject a room without likes", func(t provider.T) {
		r := initResources()
		organizerID := uuid.New()
		room := votingRoom(t, r, organizerID)

		_, err := r.usecase.HandoffWinner(r.ctx, room.ID, organizerID)
		assert.ErrorIs(t, err, ErrPrecondition)
	})
}

func TestUsecaseVoteUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseVoteUnitSuite))
}
