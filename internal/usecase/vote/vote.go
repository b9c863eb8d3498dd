package usecase_vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/kappucitti/syncvote/internal/model"
	storage_registry "github.com/kappucitti/syncvote/internal/storage/registry"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrPrecondition = errors.New("precondition failed")
)

// VoteRegistry is the storage surface for casting and tallying.
// AddVote is the atomic delete-then-insert upsert; VotesForRoom preserves
// insertion order, which the tally relies on for its tie-break.
type VoteRegistry interface {
	FindRoom(id uuid.UUID) (model.Room, error)
	AddVote(v model.Vote)
	VotesForRoom(roomID uuid.UUID, likesOnly bool) []model.Vote
}

// ItemDirectory resolves display metadata for voted items. It lives behind
// the registry boundary and may be slow; it is only ever called after the
// registry lock has been released.
type ItemDirectory interface {
	Resolve(ctx context.Context, itemID uuid.UUID) (model.ItemMeta, error)
}

// WinnerNotifier hands the winning item off to the playback group.
// Fire-and-forget from the engine's point of view.
type WinnerNotifier interface {
	NotifyWinner(roomID uuid.UUID, item model.VotedItem)
}

type Usecase struct {
	registry  VoteRegistry
	directory ItemDirectory
	notifier  WinnerNotifier
	logger    *slog.Logger
}

func New(registry VoteRegistry, directory ItemDirectory, notifier WinnerNotifier) *Usecase {
	return &Usecase{
		registry:  registry,
		directory: directory,
		notifier:  notifier,
		logger:    slog.Default(),
	}
}

// Cast upserts a vote for (room, user, item). Casting again for the same
// tuple replaces the previous vote, so a user can change their mind.
//
// The precondition checks read a snapshot; that is race-free because room
// state only moves one way (membership grows, voting never un-starts).
func (u *Usecase) Cast(ctx context.Context, roomID, userID, itemID uuid.UUID, isLike bool) error {
	room, err := u.registry.FindRoom(roomID)
	if err != nil {
		if errors.Is(err, storage_registry.ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	if !room.IsActive {
		return fmt.Errorf("%w: room is not active", ErrPrecondition)
	}
	if !room.IsVotingActive {
		return fmt.Errorf("%w: voting has not started", ErrPrecondition)
	}
	if !room.HasMember(userID) {
		return fmt.Errorf("%w: not a room member", ErrPrecondition)
	}

	u.registry.AddVote(model.Vote{
		ID:      uuid.New(),
		RoomID:  roomID,
		UserID:  userID,
		ItemID:  itemID,
		IsLike:  isLike,
		VotedAt: time.Now().UTC(),
	})
	return nil
}

// Results tallies like votes per item, most liked first. Equal counts keep
// the order in which the items first received a like, so the ordering is
// stable across calls with unchanged votes. A room with no likes, or no
// room at all, yields an empty tally rather than an error.
//
// Item resolution failures degrade a single entry to placeholder metadata
// and never abort the tally.
func (u *Usecase) Results(ctx context.Context, roomID uuid.UUID) model.VotingResults {
	likes := u.registry.VotesForRoom(roomID, true)

	counts := make(map[uuid.UUID]int, len(likes))
	order := make([]uuid.UUID, 0, len(likes))
	for _, v := range likes {
		if _, seen := counts[v.ItemID]; !seen {
			order = append(order, v.ItemID)
		}
		counts[v.ItemID]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	likedItems := make([]model.VotedItem, 0, len(order))
	for _, itemID := range order {
		item := model.VotedItem{
			ItemID:    itemID,
			VoteCount: counts[itemID],
		}
		meta, err := u.directory.Resolve(ctx, itemID)
		if err != nil {
			u.logger.Warn("item resolution degraded",
				slog.String("item_id", itemID.String()),
				slog.String("error", err.Error()))
			item.Name = model.UnknownItemName
			item.Type = model.UnknownItemName
		} else {
			item.Name = meta.Name
			item.Year = meta.Year
			item.Type = meta.Type
		}
		likedItems = append(likedItems, item)
	}

	results := model.VotingResults{
		RoomID:     roomID,
		LikedItems: likedItems,
	}
	if len(likedItems) > 0 {
		results.Winner = &likedItems[0]
	}
	return results
}

// HandoffWinner tallies the room and pushes the winning item to the
// playback group. Organizer only; a room without likes has nothing to
// hand off.
func (u *Usecase) HandoffWinner(ctx context.Context, roomID, requesterID uuid.UUID) (model.VotedItem, error) {
	room, err := u.registry.FindRoom(roomID)
	if err != nil {
		if errors.Is(err, storage_registry.ErrRoomNotFound) {
			return model.VotedItem{}, ErrRoomNotFound
		}
		return model.VotedItem{}, err
	}
	if room.OrganizerID != requesterID {
		return model.VotedItem{}, fmt.Errorf("%w: only the organizer can hand off", ErrPrecondition)
	}

	results := u.Results(ctx, roomID)
	if results.Winner == nil {
		return model.VotedItem{}, fmt.Errorf("%w: no liked items to hand off", ErrPrecondition)
	}

	u.notifier.NotifyWinner(roomID, *results.Winner)
	return *results.Winner, nil
}
