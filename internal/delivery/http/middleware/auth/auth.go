package http_auth_middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/kappucitti/syncvote/internal/delivery/http/common"
	service_auth "github.com/kappucitti/syncvote/internal/service/auth"
)

const (
	tokenHeader   = "X-User-Token"
	userIDContext = "auth_user_id"
)

type Middleware struct {
	auth   *service_auth.Service
	logger *slog.Logger
}

func New(auth *service_auth.Service) *Middleware {
	return &Middleware{
		auth:   auth,
		logger: slog.Default(),
	}
}

func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetHeader(tokenHeader)
		if token == "" {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: fmt.Sprintf("no %s header", tokenHeader),
			})
			ctx.Abort()
			return
		}

		userID, err := m.auth.ResolveUser(token)
		if err != nil {
			if errors.Is(err, service_auth.ErrInvalidToken) {
				ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
					Message: "invalid token",
				})
				ctx.Abort()
				return
			}
			m.logger.Error("token resolution failed", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			ctx.Abort()
			return
		}

		ctx.Set(userIDContext, userID)
		ctx.Next()
	}
}

// UserID returns the authenticated caller set by AuthRequired. Calling it
// on a route without the middleware is a programmer error.
func UserID(ctx *gin.Context) uuid.UUID {
	return ctx.MustGet(userIDContext).(uuid.UUID)
}
