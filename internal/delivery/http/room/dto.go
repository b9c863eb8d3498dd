package http_room

import (
	"time"

	"github.com/kappucitti/syncvote/internal/model"
)

type CreateRoomRequestDTO struct {
	Name                string   `json:"name" binding:"required" example:"Friday movie night"`
	SyncPlayGroupID     string   `json:"sync_play_group_id" example:"b3f0b9a2-6c1f-4a68-8f6a-1d2c3e4f5a6b"`
	TimeLimitMinutes    int      `json:"time_limit_minutes" example:"5"`
	SortBy              string   `json:"sort_by" example:"Random" enums:"Random,Title,CommunityRating,PremiereDate"`
	SelectedCollections []string `json:"selected_collections" example:"550e8400-e29b-41d4-a716-446655440000"`
	SelectedGenres      []string `json:"selected_genres" example:"Drama,Sci-Fi"`
	MaxParentalRating   *int     `json:"max_parental_rating" example:"12"`
	ItemTypes           []string `json:"item_types" example:"Movie"`
}

type RoomResponseDTO struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	SyncPlayGroupID     string     `json:"sync_play_group_id,omitempty"`
	OrganizerID         string     `json:"organizer_id"`
	Members             []string   `json:"members"`
	IsActive            bool       `json:"is_active"`
	IsVotingActive      bool       `json:"is_voting_active"`
	TimeLimitMinutes    int        `json:"time_limit_minutes"`
	SortBy              string     `json:"sort_by"`
	SelectedCollections []string   `json:"selected_collections"`
	SelectedGenres      []string   `json:"selected_genres"`
	MaxParentalRating   *int       `json:"max_parental_rating,omitempty"`
	ItemTypes           []string   `json:"item_types"`
	CreatedAt           time.Time  `json:"created_at"`
	VotingStartedAt     *time.Time `json:"voting_started_at,omitempty"`
}

type RoomsListResponseDTO struct {
	Rooms []RoomResponseDTO `json:"rooms"`
	Total int               `json:"total"`
}

type SyncPlayInfoResponseDTO struct {
	GroupID     string   `json:"group_id,omitempty"`
	IsLeader    bool     `json:"is_leader"`
	MemberCount int      `json:"member_count"`
	MemberIDs   []string `json:"member_ids"`
}

func ConvertFromRoom(room model.Room) RoomResponseDTO {
	dto := RoomResponseDTO{
		ID:                  room.ID.String(),
		Name:                room.Name,
		SyncPlayGroupID:     room.SyncPlayGroupID,
		OrganizerID:         room.OrganizerID.String(),
		Members:             make([]string, 0, len(room.Members)),
		IsActive:            room.IsActive,
		IsVotingActive:      room.IsVotingActive,
		TimeLimitMinutes:    room.TimeLimitMinutes,
		SortBy:              string(room.SortBy),
		SelectedCollections: make([]string, 0, len(room.SelectedCollections)),
		SelectedGenres:      room.SelectedGenres,
		MaxParentalRating:   room.MaxParentalRating,
		ItemTypes:           room.ItemTypes,
		CreatedAt:           room.CreatedAt,
		VotingStartedAt:     room.VotingStartedAt,
	}
	for _, m := range room.Members {
		dto.Members = append(dto.Members, m.String())
	}
	for _, c := range room.SelectedCollections {
		dto.SelectedCollections = append(dto.SelectedCollections, c.String())
	}
	return dto
}

func ConvertFromRoomList(rooms []model.Room) RoomsListResponseDTO {
	list := RoomsListResponseDTO{
		Rooms: make([]RoomResponseDTO, 0, len(rooms)),
		Total: len(rooms),
	}
	for _, room := range rooms {
		list.Rooms = append(list.Rooms, ConvertFromRoom(room))
	}
	return list
}

func ConvertFromSyncPlayInfo(info model.SyncPlayInfo) SyncPlayInfoResponseDTO {
	dto := SyncPlayInfoResponseDTO{
		GroupID:     info.GroupID,
		IsLeader:    info.IsLeader,
		MemberCount: info.MemberCount,
		MemberIDs:   make([]string, 0, len(info.MemberIDs)),
	}
	for _, id := range info.MemberIDs {
		dto.MemberIDs = append(dto.MemberIDs, id.String())
	}
	return dto
}
