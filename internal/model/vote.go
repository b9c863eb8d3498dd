package model

import (
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	ID      uuid.UUID
	RoomID  uuid.UUID
	UserID  uuid.UUID
	ItemID  uuid.UUID
	IsLike  bool
	VotedAt time.Time
}
