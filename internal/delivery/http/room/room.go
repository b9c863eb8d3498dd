package http_room

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/kappucitti/syncvote/internal/delivery/http/common"
	http_auth_middleware "github.com/kappucitti/syncvote/internal/delivery/http/middleware/auth"
	ws_room "github.com/kappucitti/syncvote/internal/delivery/ws/room"
	usecase_permission "github.com/kappucitti/syncvote/internal/usecase/permission"
	usecase_room "github.com/kappucitti/syncvote/internal/usecase/room"
)

type Controller struct {
	rooms       *usecase_room.Usecase
	permissions *usecase_permission.Usecase
	hub         *ws_room.Hub
	middleware  *http_auth_middleware.Middleware
	logger      *slog.Logger
}

func New(
	rooms *usecase_room.Usecase,
	permissions *usecase_permission.Usecase,
	hub *ws_room.Hub,
	middleware *http_auth_middleware.Middleware,
) *Controller {
	return &Controller{
		rooms:       rooms,
		permissions: permissions,
		hub:         hub,
		middleware:  middleware,
		logger:      slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms", c.middleware.AuthRequired())
	{
		rooms.POST("", c.create)
		rooms.GET("", c.list)
		rooms.GET("/:room_id", c.get)
		rooms.POST("/:room_id/join", c.join)
	}
	router.GET("/sync-play", c.middleware.AuthRequired(), c.syncPlayInfo)
}

// Create opens a new voting room
// @Summary Create a voting room
// @Description Creates a room with the caller as organizer and first member
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body CreateRoomRequestDTO true "Room settings and candidate filters"
// @Success 201 {object} RoomResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Malformed request"
// @Failure 403 {object} http_common.ErrorResponse "Caller may not organize rooms"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security UserToken
// @Router /rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	userID := http_auth_middleware.UserID(ctx)

	perms := c.permissions.ForUser(ctx, userID)
	if !perms.CanOrganize {
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
			Message: "no permission to organize voting rooms",
		})
		return
	}

	var req CreateRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "malformed request"})
		return
	}

	collections := make([]uuid.UUID, 0, len(req.SelectedCollections))
	for _, raw := range req.SelectedCollections {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid collection id"})
			return
		}
		collections = append(collections, id)
	}

	room, err := c.rooms.Create(ctx, userID, usecase_room.CreateRoomSpec{
		Name:                req.Name,
		SyncPlayGroupID:     req.SyncPlayGroupID,
		TimeLimitMinutes:    req.TimeLimitMinutes,
		SortBy:              req.SortBy,
		SelectedCollections: collections,
		SelectedGenres:      req.SelectedGenres,
		MaxParentalRating:   req.MaxParentalRating,
		ItemTypes:           req.ItemTypes,
	})
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	c.logger.Info("room created",
		slog.String("room_id", room.ID.String()),
		slog.String("organizer_id", userID.String()))
	ctx.JSON(http.StatusCreated, ConvertFromRoom(room))
}

// List returns all active rooms
// @Summary List active rooms
// @Tags Rooms
// @Produce json
// @Success 200 {object} RoomsListResponseDTO
// @Security UserToken
// @Router /rooms [get]
func (c *Controller) list(ctx *gin.Context) {
	rooms := c.rooms.ActiveRooms(ctx)
	ctx.JSON(http.StatusOK, ConvertFromRoomList(rooms))
}

// Get returns one room
// @Summary Get a room
// @Tags Rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} RoomResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Invalid room id"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Security UserToken
// @Router /rooms/{room_id} [get]
func (c *Controller) get(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid room id"})
		return
	}

	room, err := c.rooms.Room(ctx, roomID)
	if err != nil {
		if errors.Is(err, usecase_room.ErrRoomNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
			return
		}
		c.logger.Error("failed to get room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromRoom(room))
}

// Join admits the caller to a room
// @Summary Join a room
// @Tags Rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 "Joined"
// @Failure 400 {object} http_common.ErrorResponse "Room inactive or already a member"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Security UserToken
// @Router /rooms/{room_id}/join [post]
func (c *Controller) join(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid room id"})
		return
	}
	userID := http_auth_middleware.UserID(ctx)

	if err := c.rooms.Join(ctx, roomID, userID); err != nil {
		switch {
		case errors.Is(err, usecase_room.ErrRoomNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
		case errors.Is(err, usecase_room.ErrPrecondition):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "unable to join room"})
		default:
			c.logger.Error("failed to join room", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		}
		return
	}

	c.logger.Info("user joined room",
		slog.String("room_id", roomID.String()),
		slog.String("user_id", userID.String()))
	c.hub.NotifyUserJoined(roomID, userID)
	ctx.Status(http.StatusOK)
}

// SyncPlayInfo describes the caller's playback group
// @Summary Get playback group info
// @Description Derives group id, leadership and membership from the caller's active room
// @Tags Rooms
// @Produce json
// @Success 200 {object} SyncPlayInfoResponseDTO
// @Security UserToken
// @Router /sync-play [get]
func (c *Controller) syncPlayInfo(ctx *gin.Context) {
	userID := http_auth_middleware.UserID(ctx)
	info := c.rooms.SyncPlayInfo(ctx, userID)
	ctx.JSON(http.StatusOK, ConvertFromSyncPlayInfo(info))
}
