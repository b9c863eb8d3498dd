package http_voting

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/kappucitti/syncvote/internal/delivery/http/common"
	http_auth_middleware "github.com/kappucitti/syncvote/internal/delivery/http/middleware/auth"
	ws_room "github.com/kappucitti/syncvote/internal/delivery/ws/room"
	"github.com/kappucitti/syncvote/internal/model"
	usecase_permission "github.com/kappucitti/syncvote/internal/usecase/permission"
	usecase_room "github.com/kappucitti/syncvote/internal/usecase/room"
	usecase_vote "github.com/kappucitti/syncvote/internal/usecase/vote"
)

type Controller struct {
	rooms       *usecase_room.Usecase
	votes       *usecase_vote.Usecase
	permissions *usecase_permission.Usecase
	hub         *ws_room.Hub
	middleware  *http_auth_middleware.Middleware
	logger      *slog.Logger
}

func New(
	rooms *usecase_room.Usecase,
	votes *usecase_vote.Usecase,
	permissions *usecase_permission.Usecase,
	hub *ws_room.Hub,
	middleware *http_auth_middleware.Middleware,
) *Controller {
	return &Controller{
		rooms:       rooms,
		votes:       votes,
		permissions: permissions,
		hub:         hub,
		middleware:  middleware,
		logger:      slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	voting := router.Group("/rooms/:room_id/voting", c.middleware.AuthRequired())
	{
		voting.POST("/start", c.start)
		voting.GET("/results", c.results)
		voting.POST("/handoff", c.handoff)
	}
	router.POST("/votes", c.middleware.AuthRequired(), c.castVote)
}

type CastVoteRequestDTO struct {
	RoomID string `json:"room_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	ItemID string `json:"item_id" binding:"required" example:"6f1c2b3a-4d5e-6f70-8192-a3b4c5d6e7f8"`
	IsLike bool   `json:"is_like" example:"true"`
}

type VotedItemDTO struct {
	ItemID    string `json:"item_id"`
	VoteCount int    `json:"vote_count"`
	Name      string `json:"name"`
	Year      *int   `json:"year,omitempty"`
	Type      string `json:"type"`
}

type VotingResultsResponseDTO struct {
	RoomID     string         `json:"room_id"`
	LikedItems []VotedItemDTO `json:"liked_items"`
	Winner     *VotedItemDTO  `json:"winner,omitempty"`
}

func convertVotedItem(item model.VotedItem) VotedItemDTO {
	return VotedItemDTO{
		ItemID:    item.ItemID.String(),
		VoteCount: item.VoteCount,
		Name:      item.Name,
		Year:      item.Year,
		Type:      item.Type,
	}
}

// Start begins the voting phase
// @Summary Start voting
// @Description Organizer-only, one-shot transition into the voting phase
// @Tags Voting
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 "Voting started"
// @Failure 400 {object} http_common.ErrorResponse "Not the organizer, or voting already started"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Security UserToken
// @Router /rooms/{room_id}/voting/start [post]
func (c *Controller) start(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid room id"})
		return
	}
	userID := http_auth_middleware.UserID(ctx)

	if err := c.rooms.StartVoting(ctx, roomID, userID); err != nil {
		switch {
		case errors.Is(err, usecase_room.ErrRoomNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
		case errors.Is(err, usecase_room.ErrPrecondition):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "unable to start voting"})
		default:
			c.logger.Error("failed to start voting", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		}
		return
	}

	c.logger.Info("voting started",
		slog.String("room_id", roomID.String()),
		slog.String("user_id", userID.String()))

	if room, err := c.rooms.Room(ctx, roomID); err == nil {
		c.hub.NotifyVotingStarted(roomID, room.TimeLimitMinutes)
	}

	ctx.Status(http.StatusOK)
}

// CastVote records a like/dislike
// @Summary Cast a vote
// @Description Upserts the caller's vote for an item; voting again for the same item replaces the previous vote
// @Tags Voting
// @Accept json
// @Produce json
// @Param request body CastVoteRequestDTO true "Vote"
// @Success 200 "Vote recorded"
// @Failure 400 {object} http_common.ErrorResponse "Voting not active or caller not a member"
// @Failure 403 {object} http_common.ErrorResponse "Caller may not vote"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Security UserToken
// @Router /votes [post]
func (c *Controller) castVote(ctx *gin.Context) {
	userID := http_auth_middleware.UserID(ctx)

	perms := c.permissions.ForUser(ctx, userID)
	if !perms.CanVote {
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
			Message: "no permission to vote",
		})
		return
	}

	var req CastVoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "malformed request"})
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid room id"})
		return
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid item id"})
		return
	}

	if err := c.votes.Cast(ctx, roomID, userID, itemID, req.IsLike); err != nil {
		switch {
		case errors.Is(err, usecase_vote.ErrRoomNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
		case errors.Is(err, usecase_vote.ErrPrecondition):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "unable to cast vote"})
		default:
			c.logger.Error("failed to cast vote", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		}
		return
	}

	ctx.Status(http.StatusOK)
}

// Results returns the room tally
// @Summary Get voting results
// @Description Like counts per item, most liked first; winner is the first entry
// @Tags Voting
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} VotingResultsResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Invalid room id"
// @Security UserToken
// @Router /rooms/{room_id}/voting/results [get]
func (c *Controller) results(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid room id"})
		return
	}

	results := c.votes.Results(ctx, roomID)

	resp := VotingResultsResponseDTO{
		RoomID:     results.RoomID.String(),
		LikedItems: make([]VotedItemDTO, 0, len(results.LikedItems)),
	}
	for _, item := range results.LikedItems {
		resp.LikedItems = append(resp.LikedItems, convertVotedItem(item))
	}
	if results.Winner != nil {
		winner := convertVotedItem(*results.Winner)
		resp.Winner = &winner
	}

	ctx.JSON(http.StatusOK, resp)
}

// Handoff pushes the winner to the playback group
// @Summary Hand the winner off for playback
// @Description Organizer-only; broadcasts the winning item to the room's playback group
// @Tags Voting
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} VotedItemDTO
// @Failure 400 {object} http_common.ErrorResponse "Not the organizer, or nothing to hand off"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Security UserToken
// @Router /rooms/{room_id}/voting/handoff [post]
func (c *Controller) handoff(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid room id"})
		return
	}
	userID := http_auth_middleware.UserID(ctx)

	winner, err := c.votes.HandoffWinner(ctx, roomID, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase_vote.ErrRoomNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
		case errors.Is(err, usecase_vote.ErrPrecondition):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "unable to hand off winner"})
		default:
			c.logger.Error("failed to hand off winner", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, convertVotedItem(winner))
}
