package usecase_library

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kappucitti/syncvote/internal/model"
	storage_registry "github.com/kappucitti/syncvote/internal/storage/registry"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrDirectory    = errors.New("item directory query failed")
)

const (
	DefaultCandidateLimit = 20
	MaxCandidateLimit     = 100
)

// ItemDirectory is the read-only media catalog boundary. Queries are
// scoped to the requesting user so library access control stays on the
// directory's side.
type ItemDirectory interface {
	QueryCandidates(ctx context.Context, filter model.CandidateFilter, sortBy model.SortBy, skip, limit int, userID uuid.UUID) (model.CandidatePage, error)
	Collections(ctx context.Context, userID uuid.UUID) ([]model.CollectionInfo, error)
	Genres(ctx context.Context, userID uuid.UUID) ([]string, error)
	IsVisible(ctx context.Context, itemID, userID uuid.UUID) (bool, error)
}

type RoomRegistry interface {
	FindRoom(id uuid.UUID) (model.Room, error)
	ListActiveRooms() []model.Room
}

type Usecase struct {
	registry  RoomRegistry
	directory ItemDirectory
}

func New(registry RoomRegistry, directory ItemDirectory) *Usecase {
	return &Usecase{
		registry:  registry,
		directory: directory,
	}
}

// Candidates pages through catalog items matching the room's filter set,
// ordered by the room's sort preference.
func (u *Usecase) Candidates(ctx context.Context, roomID, userID uuid.UUID, skip, limit int) (model.CandidatePage, error) {
	room, err := u.registry.FindRoom(roomID)
	if err != nil {
		if errors.Is(err, storage_registry.ErrRoomNotFound) {
			return model.CandidatePage{}, ErrRoomNotFound
		}
		return model.CandidatePage{}, err
	}

	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}
	if limit > MaxCandidateLimit {
		limit = MaxCandidateLimit
	}

	filter := model.CandidateFilter{
		Collections:       room.SelectedCollections,
		Genres:            room.SelectedGenres,
		ItemTypes:         room.ItemTypes,
		MaxParentalRating: room.MaxParentalRating,
	}

	page, err := u.directory.QueryCandidates(ctx, filter, room.SortBy, skip, limit, userID)
	if err != nil {
		return model.CandidatePage{}, fmt.Errorf("%w: %w", ErrDirectory, err)
	}
	return page, nil
}

func (u *Usecase) Collections(ctx context.Context, userID uuid.UUID) ([]model.CollectionInfo, error) {
	collections, err := u.directory.Collections(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDirectory, err)
	}
	return collections, nil
}

func (u *Usecase) Genres(ctx context.Context, userID uuid.UUID) ([]string, error) {
	genres, err := u.directory.Genres(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDirectory, err)
	}
	return genres, nil
}

// ParentalRatings returns the fixed rating ladder clients filter against.
func (u *Usecase) ParentalRatings() []model.ParentalRating {
	return []model.ParentalRating{
		{Value: 0, Name: "Unrated"},
		{Value: 1, Name: "G / All Ages"},
		{Value: 6, Name: "PG / 6+"},
		{Value: 12, Name: "PG-13 / 12+"},
		{Value: 16, Name: "R / 16+"},
		{Value: 18, Name: "NC-17 / 18+"},
	}
}

// CheckAccess reports whether any member of the caller's room (other than
// the caller) lacks visibility on one of the given collections. The result
// says that there is an issue, never who or where.
func (u *Usecase) CheckAccess(ctx context.Context, organizerID uuid.UUID, collectionIDs []uuid.UUID) (model.AccessCheck, error) {
	var members []uuid.UUID
	for _, room := range u.registry.ListActiveRooms() {
		if room.OrganizerID != organizerID {
			continue
		}
		for _, m := range room.Members {
			if m != organizerID {
				members = append(members, m)
			}
		}
		break
	}

	if len(members) == 0 {
		return model.AccessCheck{
			HasAccessIssues: false,
			Message:         "No other members in group",
		}, nil
	}

	for _, collectionID := range collectionIDs {
		for _, memberID := range members {
			visible, err := u.directory.IsVisible(ctx, collectionID, memberID)
			if err != nil {
				return model.AccessCheck{}, fmt.Errorf("%w: %w", ErrDirectory, err)
			}
			if !visible {
				return model.AccessCheck{
					HasAccessIssues: true,
					Message:         "Some group members may not have access to all selected content",
				}, nil
			}
		}
	}

	return model.AccessCheck{
		HasAccessIssues: false,
		Message:         "All members have access",
	}, nil
}
