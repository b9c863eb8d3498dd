package http_auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/kappucitti/syncvote/internal/delivery/http/common"
	service_auth "github.com/kappucitti/syncvote/internal/service/auth"
)

type Controller struct {
	auth   *service_auth.Service
	logger *slog.Logger
}

func New(auth *service_auth.Service) *Controller {
	return &Controller{
		auth:   auth,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth/sessions", c.createSession)
}

type CreateSessionRequestDTO struct {
	UserID string `json:"user_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

type CreateSessionResponseDTO struct {
	Token string `json:"token"`
}

// CreateSession issues a session token for a user
// @Summary Issue a session token
// @Description Creates a session for the given user id and returns the opaque token clients pass in X-User-Token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body CreateSessionRequestDTO true "User to open a session for"
// @Success 201 {object} CreateSessionResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Malformed request"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/sessions [post]
func (c *Controller) createSession(ctx *gin.Context) {
	var req CreateSessionRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "malformed request"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid user id"})
		return
	}

	token, err := c.auth.IssueSession(userID)
	if err != nil {
		c.logger.Error("failed to issue session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	ctx.JSON(http.StatusCreated, CreateSessionResponseDTO{Token: token})
}
