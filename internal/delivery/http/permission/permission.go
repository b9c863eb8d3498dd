package http_permission

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/kappucitti/syncvote/internal/delivery/http/common"
	http_auth_middleware "github.com/kappucitti/syncvote/internal/delivery/http/middleware/auth"
	usecase_permission "github.com/kappucitti/syncvote/internal/usecase/permission"
)

type Controller struct {
	permissions *usecase_permission.Usecase
	middleware  *http_auth_middleware.Middleware
}

func New(permissions *usecase_permission.Usecase, middleware *http_auth_middleware.Middleware) *Controller {
	return &Controller{
		permissions: permissions,
		middleware:  middleware,
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/permissions", c.middleware.AuthRequired(), c.get)
}

type PermissionsResponseDTO struct {
	UserID      string `json:"user_id"`
	CanOrganize bool   `json:"can_organize"`
	CanVote     bool   `json:"can_vote"`
}

// Get returns a user's permission record
// @Summary Get user permissions
// @Description Defaults to the caller; pass user_id to look up someone else
// @Tags Permissions
// @Produce json
// @Param user_id query string false "User id"
// @Success 200 {object} PermissionsResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Invalid user id"
// @Security UserToken
// @Router /permissions [get]
func (c *Controller) get(ctx *gin.Context) {
	userID := http_auth_middleware.UserID(ctx)

	if raw := ctx.Query("user_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid user id"})
			return
		}
		userID = parsed
	}

	perms := c.permissions.ForUser(ctx, userID)
	ctx.JSON(http.StatusOK, PermissionsResponseDTO{
		UserID:      perms.UserID.String(),
		CanOrganize: perms.CanOrganize,
		CanVote:     perms.CanVote,
	})
}
