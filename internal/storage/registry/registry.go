package storage_registry

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/kappucitti/syncvote/internal/model"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrDuplicateRoom = errors.New("room already exists")
)

// Registry is the process-wide store of rooms, votes and the permission
// cache. One lock guards everything: room mutations, the vote upsert and
// the lazy permission fill each run as a single critical section.
//
// Nothing here blocks on I/O. Item-directory lookups happen in the
// usecases, after the lock is released.
type Registry struct {
	mu sync.RWMutex

	rooms     []*model.Room
	roomsByID map[uuid.UUID]*model.Room

	votes []model.Vote

	permissions map[uuid.UUID]model.UserPermissions
}

func New() *Registry {
	return &Registry{
		roomsByID:   make(map[uuid.UUID]*model.Room),
		permissions: make(map[uuid.UUID]model.UserPermissions),
	}
}

func (r *Registry) AddRoom(room *model.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roomsByID[room.ID]; ok {
		return ErrDuplicateRoom
	}
	r.rooms = append(r.rooms, room)
	r.roomsByID[room.ID] = room
	return nil
}

// FindRoom returns a detached copy safe to read without the lock.
func (r *Registry) FindRoom(id uuid.UUID) (model.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.roomsByID[id]
	if !ok {
		return model.Room{}, ErrRoomNotFound
	}
	return snapshotRoom(room), nil
}

// UpdateRoom runs fn on the live room under the exclusive lock, so a
// precondition check and the mutation it guards form one atomic unit.
// An error from fn is returned as-is and leaves no partial effect behind
// only if fn itself mutates nothing before failing.
func (r *Registry) UpdateRoom(id uuid.UUID, fn func(*model.Room) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.roomsByID[id]
	if !ok {
		return ErrRoomNotFound
	}
	return fn(room)
}

// ListActiveRooms returns detached copies in insertion order.
func (r *Registry) ListActiveRooms() []model.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]model.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		if room.IsActive {
			active = append(active, snapshotRoom(room))
		}
	}
	return active
}

// AddVote removes any previous vote for the same (room, user, item) tuple
// and inserts the new one, as one critical section. A vote change is an
// overwrite, never an accumulation.
func (r *Registry) AddVote(v model.Vote) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.votes[:0]
	for _, existing := range r.votes {
		if existing.RoomID == v.RoomID && existing.UserID == v.UserID && existing.ItemID == v.ItemID {
			continue
		}
		kept = append(kept, existing)
	}
	r.votes = append(kept, v)
}

// VotesForRoom returns votes in insertion order, optionally likes only.
func (r *Registry) VotesForRoom(roomID uuid.UUID, likesOnly bool) []model.Vote {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var votes []model.Vote
	for _, v := range r.votes {
		if v.RoomID != roomID {
			continue
		}
		if likesOnly && !v.IsLike {
			continue
		}
		votes = append(votes, v)
	}
	return votes
}

// EnsurePermissions returns the cached record for userID, creating a
// fully permissive one on first sight.
func (r *Registry) EnsurePermissions(userID uuid.UUID) model.UserPermissions {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.permissions[userID]; ok {
		return p
	}
	p := model.UserPermissions{
		UserID:      userID,
		CanOrganize: true,
		CanVote:     true,
	}
	r.permissions[userID] = p
	return p
}

func snapshotRoom(room *model.Room) model.Room {
	copied := *room
	copied.Members = append([]uuid.UUID(nil), room.Members...)
	copied.SelectedCollections = append([]uuid.UUID(nil), room.SelectedCollections...)
	copied.SelectedGenres = append([]string(nil), room.SelectedGenres...)
	copied.ItemTypes = append([]string(nil), room.ItemTypes...)
	if room.MaxParentalRating != nil {
		rating := *room.MaxParentalRating
		copied.MaxParentalRating = &rating
	}
	if room.VotingStartedAt != nil {
		startedAt := *room.VotingStartedAt
		copied.VotingStartedAt = &startedAt
	}
	return copied
}
