package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type SortBy string

const (
	SortByRandom          SortBy = "Random"
	SortByTitle           SortBy = "Title"
	SortByCommunityRating SortBy = "CommunityRating"
	SortByPremiereDate    SortBy = "PremiereDate"
)

// ParseSortBy is case-insensitive. Anything unparsable becomes SortByRandom.
func ParseSortBy(s string) SortBy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return SortByTitle
	case "communityrating":
		return SortByCommunityRating
	case "premieredate":
		return SortByPremiereDate
	default:
		return SortByRandom
	}
}

const (
	MinTimeLimitMinutes = 1
	MaxTimeLimitMinutes = 120
)

const DefaultItemType = "Movie"

type Room struct {
	ID              uuid.UUID
	Name            string
	SyncPlayGroupID string
	OrganizerID     uuid.UUID

	// Insertion-ordered, no duplicates. Mutate through AddMember only.
	Members []uuid.UUID

	IsActive       bool
	IsVotingActive bool

	TimeLimitMinutes int
	SortBy           SortBy

	SelectedCollections []uuid.UUID
	SelectedGenres      []string
	MaxParentalRating   *int
	ItemTypes           []string

	CreatedAt       time.Time
	VotingStartedAt *time.Time
}

func (r *Room) HasMember(id uuid.UUID) bool {
	for _, m := range r.Members {
		if m == id {
			return true
		}
	}
	return false
}

// AddMember reports false on a duplicate join and leaves Members untouched.
func (r *Room) AddMember(id uuid.UUID) bool {
	if r.HasMember(id) {
		return false
	}
	r.Members = append(r.Members, id)
	return true
}

// SetTimeLimit clamps into [MinTimeLimitMinutes, MaxTimeLimitMinutes].
func (r *Room) SetTimeLimit(minutes int) {
	if minutes < MinTimeLimitMinutes {
		minutes = MinTimeLimitMinutes
	}
	if minutes > MaxTimeLimitMinutes {
		minutes = MaxTimeLimitMinutes
	}
	r.TimeLimitMinutes = minutes
}

// SetSelectedGenres drops blank entries.
func (r *Room) SetSelectedGenres(genres []string) {
	r.SelectedGenres = r.SelectedGenres[:0]
	for _, g := range genres {
		if strings.TrimSpace(g) != "" {
			r.SelectedGenres = append(r.SelectedGenres, g)
		}
	}
}

// SetItemTypes drops blank entries and falls back to {DefaultItemType}
// so the filter set is never empty.
func (r *Room) SetItemTypes(types []string) {
	r.ItemTypes = r.ItemTypes[:0]
	for _, t := range types {
		if strings.TrimSpace(t) != "" {
			r.ItemTypes = append(r.ItemTypes, t)
		}
	}
	if len(r.ItemTypes) == 0 {
		r.ItemTypes = append(r.ItemTypes, DefaultItemType)
	}
}
