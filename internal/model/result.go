package model

import "github.com/google/uuid"

const UnknownItemName = "Unknown"

// VotedItem is one tally entry: a liked item and its like count.
type VotedItem struct {
	ItemID    uuid.UUID
	VoteCount int
	Name      string
	Year      *int
	Type      string
}

type VotingResults struct {
	RoomID uuid.UUID

	// Ordered by VoteCount descending; ties keep first-voted-item order.
	LikedItems []VotedItem

	// First entry of LikedItems, nil when nobody liked anything.
	Winner *VotedItem
}
