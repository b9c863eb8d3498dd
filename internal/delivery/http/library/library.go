package http_library

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/kappucitti/syncvote/internal/delivery/http/common"
	http_auth_middleware "github.com/kappucitti/syncvote/internal/delivery/http/middleware/auth"
	"github.com/kappucitti/syncvote/internal/model"
	usecase_library "github.com/kappucitti/syncvote/internal/usecase/library"
)

type Controller struct {
	library    *usecase_library.Usecase
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger
}

func New(library *usecase_library.Usecase, middleware *http_auth_middleware.Middleware) *Controller {
	return &Controller{
		library:    library,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	lib := router.Group("/library", c.middleware.AuthRequired())
	{
		lib.GET("/collections", c.collections)
		lib.GET("/genres", c.genres)
		lib.GET("/parental-ratings", c.parentalRatings)
	}
	router.GET("/rooms/:room_id/candidates", c.middleware.AuthRequired(), c.candidates)
	router.POST("/rooms/check-access", c.middleware.AuthRequired(), c.checkAccess)
}

type CandidateItemDTO struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Year            *int     `json:"year,omitempty"`
	Type            string   `json:"type"`
	Genres          []string `json:"genres"`
	CommunityRating *float64 `json:"community_rating,omitempty"`
	OfficialRating  string   `json:"official_rating,omitempty"`
	Overview        string   `json:"overview,omitempty"`
	RuntimeMinutes  *int     `json:"runtime_minutes,omitempty"`
}

type CandidatePageResponseDTO struct {
	Items      []CandidateItemDTO `json:"items"`
	TotalCount int                `json:"total_count"`
	StartIndex int                `json:"start_index"`
}

type CollectionInfoDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	ItemCount int    `json:"item_count"`
}

type ParentalRatingDTO struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
}

type CheckAccessRequestDTO struct {
	CollectionIDs []string `json:"collection_ids"`
}

type CheckAccessResponseDTO struct {
	HasAccessIssues bool   `json:"has_access_issues"`
	Message         string `json:"message"`
}

func convertCandidate(item model.CandidateItem) CandidateItemDTO {
	return CandidateItemDTO{
		ID:              item.ID.String(),
		Name:            item.Name,
		Year:            item.Year,
		Type:            item.Type,
		Genres:          item.Genres,
		CommunityRating: item.CommunityRating,
		OfficialRating:  item.OfficialRating,
		Overview:        item.Overview,
		RuntimeMinutes:  item.RuntimeMinutes,
	}
}

// Candidates pages the room's filtered catalog slice
// @Summary Get candidate items for a room
// @Description Applies the room's collection/genre/type/rating filters and sort preference
// @Tags Library
// @Produce json
// @Param room_id path string true "Room id"
// @Param skip query int false "Items to skip" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} CandidatePageResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Invalid room id"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 500 {object} http_common.ErrorResponse "Item directory failure"
// @Security UserToken
// @Router /rooms/{room_id}/candidates [get]
func (c *Controller) candidates(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid room id"})
		return
	}
	userID := http_auth_middleware.UserID(ctx)

	skip, _ := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	page, err := c.library.Candidates(ctx, roomID, userID, skip, limit)
	if err != nil {
		if errors.Is(err, usecase_library.ErrRoomNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
			return
		}
		c.logger.Error("failed to query candidates", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	resp := CandidatePageResponseDTO{
		Items:      make([]CandidateItemDTO, 0, len(page.Items)),
		TotalCount: page.TotalCount,
		StartIndex: page.StartIndex,
	}
	for _, item := range page.Items {
		resp.Items = append(resp.Items, convertCandidate(item))
	}
	ctx.JSON(http.StatusOK, resp)
}

// Collections lists collections visible to the caller
// @Summary List library collections
// @Tags Library
// @Produce json
// @Success 200 {array} CollectionInfoDTO
// @Failure 500 {object} http_common.ErrorResponse "Item directory failure"
// @Security UserToken
// @Router /library/collections [get]
func (c *Controller) collections(ctx *gin.Context) {
	userID := http_auth_middleware.UserID(ctx)

	collections, err := c.library.Collections(ctx, userID)
	if err != nil {
		c.logger.Error("failed to query collections", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	resp := make([]CollectionInfoDTO, 0, len(collections))
	for _, col := range collections {
		resp = append(resp, CollectionInfoDTO{
			ID:        col.ID.String(),
			Name:      col.Name,
			Type:      col.Type,
			ItemCount: col.ItemCount,
		})
	}
	ctx.JSON(http.StatusOK, resp)
}

// Genres lists distinct genres in the caller-visible library
// @Summary List library genres
// @Tags Library
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} http_common.ErrorResponse "Item directory failure"
// @Security UserToken
// @Router /library/genres [get]
func (c *Controller) genres(ctx *gin.Context) {
	userID := http_auth_middleware.UserID(ctx)

	genres, err := c.library.Genres(ctx, userID)
	if err != nil {
		c.logger.Error("failed to query genres", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}
	ctx.JSON(http.StatusOK, genres)
}

// ParentalRatings returns the fixed rating ladder
// @Summary List parental rating levels
// @Tags Library
// @Produce json
// @Success 200 {array} ParentalRatingDTO
// @Security UserToken
// @Router /library/parental-ratings [get]
func (c *Controller) parentalRatings(ctx *gin.Context) {
	ratings := c.library.ParentalRatings()

	resp := make([]ParentalRatingDTO, 0, len(ratings))
	for _, r := range ratings {
		resp = append(resp, ParentalRatingDTO{Value: r.Value, Name: r.Name})
	}
	ctx.JSON(http.StatusOK, resp)
}

// CheckAccess reports whether room members can see the given collections
// @Summary Check collection access for the caller's room
// @Description Says whether some members lack access, without naming them
// @Tags Library
// @Accept json
// @Produce json
// @Param request body CheckAccessRequestDTO true "Collections to check"
// @Success 200 {object} CheckAccessResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Malformed request"
// @Failure 500 {object} http_common.ErrorResponse "Item directory failure"
// @Security UserToken
// @Router /rooms/check-access [post]
func (c *Controller) checkAccess(ctx *gin.Context) {
	userID := http_auth_middleware.UserID(ctx)

	var req CheckAccessRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "malformed request"})
		return
	}

	collectionIDs := make([]uuid.UUID, 0, len(req.CollectionIDs))
	for _, raw := range req.CollectionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid collection id"})
			return
		}
		collectionIDs = append(collectionIDs, id)
	}

	check, err := c.library.CheckAccess(ctx, userID, collectionIDs)
	if err != nil {
		c.logger.Error("failed to check access", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	ctx.JSON(http.StatusOK, CheckAccessResponseDTO{
		HasAccessIssues: check.HasAccessIssues,
		Message:         check.Message,
	})
}
