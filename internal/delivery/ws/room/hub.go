package ws_room

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kappucitti/syncvote/internal/model"
	usecase_room "github.com/kappucitti/syncvote/internal/usecase/room"
)

const (
	EventUserJoined     = "USER_JOINED"
	EventLobbyUpdate    = "LOBBY_UPDATE"
	EventVotingStarted  = "VOTING_STARTED"
	EventWinnerSelected = "WINNER_SELECTED"
)

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type roomEvent struct {
	roomID uuid.UUID
	event  Event
}

// Hub fans room events out to connected clients. The voting deadline is
// client-side; lobby and phase events ride on this stream so clients can
// run their timers and refresh membership without polling.
type Hub struct {
	rooms  *usecase_room.Usecase
	logger *slog.Logger

	clients     map[*Client]bool
	roomClients map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan roomEvent

	mu sync.RWMutex
}

func NewHub(rooms *usecase_room.Usecase) *Hub {
	return &Hub{
		rooms:       rooms,
		logger:      slog.Default(),
		clients:     make(map[*Client]bool),
		roomClients: make(map[uuid.UUID]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan roomEvent),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case re := <-h.broadcast:
			h.broadcastToRoom(re.roomID, re.event)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if _, exists := h.roomClients[client.roomID]; !exists {
		h.roomClients[client.roomID] = make(map[*Client]bool)
	}
	h.roomClients[client.roomID][client] = true

	h.logger.Info("client registered",
		"user_id", client.userID,
		"room_id", client.roomID)

	go h.broadcastLobbyUpdate(client.roomID)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		if clients, exists := h.roomClients[client.roomID]; exists {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.roomClients, client.roomID)
			}
		}
	}

	h.logger.Info("client unregistered",
		"user_id", client.userID,
		"room_id", client.roomID)
}

func (h *Hub) broadcastLobbyUpdate(roomID uuid.UUID) {
	room, err := h.rooms.Room(context.Background(), roomID)
	if err != nil {
		h.logger.Error("failed to load room for lobby update", "error", err, "room_id", roomID)
		return
	}

	h.broadcastToRoom(roomID, Event{
		Type: EventLobbyUpdate,
		Payload: map[string]any{
			"member_count":     len(room.Members),
			"is_voting_active": room.IsVotingActive,
		},
	})
}

func (h *Hub) broadcastToRoom(roomID uuid.UUID, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, exists := h.roomClients[roomID]; exists {
		for client := range clients {
			select {
			case client.send <- event:
			default:
				// Slow client, drop the event. The write deadline in its
				// pump will reap it soon enough.
				h.logger.Warn("dropping event for slow client",
					"user_id", client.userID,
					"room_id", roomID)
			}
		}
	}
}

func (h *Hub) NotifyUserJoined(roomID, userID uuid.UUID) {
	h.broadcast <- roomEvent{
		roomID: roomID,
		event: Event{
			Type: EventUserJoined,
			Payload: map[string]any{
				"room_id": roomID.String(),
				"user_id": userID.String(),
			},
		},
	}
	go h.broadcastLobbyUpdate(roomID)
}

// NotifyVotingStarted tells clients to kick off their local countdown.
func (h *Hub) NotifyVotingStarted(roomID uuid.UUID, timeLimitMinutes int) {
	h.broadcast <- roomEvent{
		roomID: roomID,
		event: Event{
			Type: EventVotingStarted,
			Payload: map[string]any{
				"room_id":            roomID.String(),
				"time_limit_minutes": timeLimitMinutes,
				"started_at":         time.Now().UTC().Unix(),
			},
		},
	}
}

// NotifyWinner is the playback handoff: the winning item is pushed to the
// room's group and the engine moves on.
func (h *Hub) NotifyWinner(roomID uuid.UUID, item model.VotedItem) {
	h.broadcast <- roomEvent{
		roomID: roomID,
		event: Event{
			Type: EventWinnerSelected,
			Payload: map[string]any{
				"room_id":    roomID.String(),
				"item_id":    item.ItemID.String(),
				"name":       item.Name,
				"vote_count": item.VoteCount,
			},
		},
	}

	h.logger.Info("winner handed off",
		"room_id", roomID,
		"item_id", item.ItemID,
		"vote_count", item.VoteCount)
}
