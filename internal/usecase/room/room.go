package usecase_room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kappucitti/syncvote/internal/model"
	storage_registry "github.com/kappucitti/syncvote/internal/storage/registry"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrPrecondition = errors.New("precondition failed")
	ErrInternal     = errors.New("internal error")
)

// RoomRegistry is the storage surface this usecase needs. UpdateRoom runs
// its closure under the registry's exclusive lock, which is what keeps
// check-then-mutate sequences atomic.
type RoomRegistry interface {
	AddRoom(room *model.Room) error
	FindRoom(id uuid.UUID) (model.Room, error)
	UpdateRoom(id uuid.UUID, fn func(*model.Room) error) error
	ListActiveRooms() []model.Room
}

type CreateRoomSpec struct {
	Name                string
	SyncPlayGroupID     string
	TimeLimitMinutes    int
	SortBy              string
	SelectedCollections []uuid.UUID
	SelectedGenres      []string
	MaxParentalRating   *int
	ItemTypes           []string
}

type Usecase struct {
	registry RoomRegistry
}

func New(registry RoomRegistry) *Usecase {
	return &Usecase{
		registry: registry,
	}
}

// Create builds a room from spec and stores it. The organizer becomes the
// first member; the permission check belongs to the caller. Always succeeds
// for a structurally valid spec.
func (u *Usecase) Create(ctx context.Context, organizerID uuid.UUID, spec CreateRoomSpec) (model.Room, error) {
	room := &model.Room{
		ID:              uuid.New(),
		Name:            spec.Name,
		SyncPlayGroupID: spec.SyncPlayGroupID,
		OrganizerID:     organizerID,
		IsActive:        true,
		IsVotingActive:  false,
		SortBy:          model.ParseSortBy(spec.SortBy),
		CreatedAt:       time.Now().UTC(),
	}
	room.SetTimeLimit(spec.TimeLimitMinutes)
	room.AddMember(organizerID)
	room.SelectedCollections = append(room.SelectedCollections, spec.SelectedCollections...)
	room.SetSelectedGenres(spec.SelectedGenres)
	room.SetItemTypes(spec.ItemTypes)
	if spec.MaxParentalRating != nil {
		rating := *spec.MaxParentalRating
		room.MaxParentalRating = &rating
	}

	if err := u.registry.AddRoom(room); err != nil {
		// Fresh uuid per room, a collision here is a programmer error.
		return model.Room{}, errors.Join(ErrInternal, err)
	}

	snapshot, err := u.registry.FindRoom(room.ID)
	if err != nil {
		return model.Room{}, errors.Join(ErrInternal, err)
	}
	return snapshot, nil
}

func (u *Usecase) ActiveRooms(ctx context.Context) []model.Room {
	return u.registry.ListActiveRooms()
}

func (u *Usecase) Room(ctx context.Context, id uuid.UUID) (model.Room, error) {
	room, err := u.registry.FindRoom(id)
	if err != nil {
		if errors.Is(err, storage_registry.ErrRoomNotFound) {
			return model.Room{}, ErrRoomNotFound
		}
		return model.Room{}, errors.Join(ErrInternal, err)
	}
	return room, nil
}

// Join admits userID to an active room. The membership check and the
// insert run inside one registry critical section, so two concurrent
// joins by the same user cannot both pass.
func (u *Usecase) Join(ctx context.Context, roomID, userID uuid.UUID) error {
	err := u.registry.UpdateRoom(roomID, func(room *model.Room) error {
		if !room.IsActive {
			return fmt.Errorf("%w: room is not active", ErrPrecondition)
		}
		if !room.AddMember(userID) {
			return fmt.Errorf("%w: already a member", ErrPrecondition)
		}
		return nil
	})
	if errors.Is(err, storage_registry.ErrRoomNotFound) {
		return ErrRoomNotFound
	}
	return err
}

// StartVoting flips the room into its voting phase. Only the organizer may
// start it, and only once; VotingStartedAt is set exactly on that first
// transition. There is no closed state: the room stays in voting and the
// time limit is advisory for clients.
func (u *Usecase) StartVoting(ctx context.Context, roomID, requesterID uuid.UUID) error {
	err := u.registry.UpdateRoom(roomID, func(room *model.Room) error {
		if !room.IsActive {
			return fmt.Errorf("%w: room is not active", ErrPrecondition)
		}
		if room.OrganizerID != requesterID {
			return fmt.Errorf("%w: only the organizer can start voting", ErrPrecondition)
		}
		if room.IsVotingActive {
			return fmt.Errorf("%w: voting already started", ErrPrecondition)
		}
		room.IsVotingActive = true
		startedAt := time.Now().UTC()
		room.VotingStartedAt = &startedAt
		return nil
	})
	if errors.Is(err, storage_registry.ErrRoomNotFound) {
		return ErrRoomNotFound
	}
	return err
}

// SyncPlayInfo derives the caller's playback-group view from the first
// active room they are a member of. A caller outside any grouped room gets
// an empty record, not an error.
func (u *Usecase) SyncPlayInfo(ctx context.Context, userID uuid.UUID) model.SyncPlayInfo {
	for _, room := range u.registry.ListActiveRooms() {
		if room.SyncPlayGroupID == "" || !room.HasMember(userID) {
			continue
		}
		return model.SyncPlayInfo{
			GroupID:     room.SyncPlayGroupID,
			IsLeader:    room.OrganizerID == userID,
			MemberCount: len(room.Members),
			MemberIDs:   room.Members,
		}
	}
	return model.SyncPlayInfo{MemberIDs: []uuid.UUID{}}
}
