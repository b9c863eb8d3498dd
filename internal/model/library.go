package model

import "github.com/google/uuid"

// ItemMeta is what the item directory resolves for a single library item.
type ItemMeta struct {
	ID   uuid.UUID
	Name string
	Year *int
	Type string
}

// CandidateItem is a library entry eligible for voting under a room's filters.
type CandidateItem struct {
	ID              uuid.UUID
	Name            string
	Year            *int
	Type            string
	Genres          []string
	CommunityRating *float64
	OfficialRating  string
	ParentalRating  *int
	Overview        string
	RuntimeMinutes  *int
}

type CandidatePage struct {
	Items      []CandidateItem
	TotalCount int
	StartIndex int
}

// CandidateFilter carries a room's filter set into the item directory.
type CandidateFilter struct {
	Collections       []uuid.UUID
	Genres            []string
	ItemTypes         []string
	MaxParentalRating *int
}

type CollectionInfo struct {
	ID        uuid.UUID
	Name      string
	Type      string
	ItemCount int
}

type ParentalRating struct {
	Value int
	Name  string
}

// SyncPlayInfo describes the caller's playback group as seen from their room.
type SyncPlayInfo struct {
	GroupID     string
	IsLeader    bool
	MemberCount int
	MemberIDs   []uuid.UUID
}

// AccessCheck reports whether some room members cannot see some of the
// requested collections. Deliberately does not say which.
type AccessCheck struct {
	HasAccessIssues bool
	Message         string
}
