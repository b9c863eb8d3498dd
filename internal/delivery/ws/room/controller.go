package ws_room

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	http_common "github.com/kappucitti/syncvote/internal/delivery/http/common"
	http_auth_middleware "github.com/kappucitti/syncvote/internal/delivery/http/middleware/auth"
	usecase_room "github.com/kappucitti/syncvote/internal/usecase/room"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin clients are expected; token auth gates the route.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	hub        *Hub
	rooms      *usecase_room.Usecase
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger
}

func NewController(hub *Hub, rooms *usecase_room.Usecase, middleware *http_auth_middleware.Middleware) *Controller {
	return &Controller{
		hub:        hub,
		rooms:      rooms,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/rooms/:room_id/events", c.middleware.AuthRequired(), c.events)
}

// events upgrades the connection and subscribes the caller to the room's
// event stream. Members only.
func (c *Controller) events(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid room id"})
		return
	}
	userID := http_auth_middleware.UserID(ctx)

	room, err := c.rooms.Room(ctx, roomID)
	if err != nil {
		if errors.Is(err, usecase_room.ErrRoomNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}
	if !room.HasMember(userID) {
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{Message: "not a room member"})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := &Client{
		hub:    c.hub,
		conn:   conn,
		send:   make(chan Event, 16),
		userID: userID,
		roomID: roomID,
	}
	c.hub.register <- client

	go client.writePump()
	go client.readPump()
}
