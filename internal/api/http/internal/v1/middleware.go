package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gamestore-zarzis/backend/internal/service"
	"github.com/gamestore-zarzis/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	userCtx             = "userId"
)

var (
	errEmptyAuthHeader   = errors.New("empty auth header")
	errInvalidAuthHeader = errors.New("invalid auth header")
	errEmptyToken        = errors.New("token is empty")
)

func (h *Handler) ownerIdentityMiddleware(c *gin.Context) {
	id, err := h.parseAuthHeader(c)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			logger.Warn("parse auth header failed", zap.Error(err))
		}
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	if err := h.services.Admins.Authorize(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			logger.Warn("admin access denied", zap.String("user_id", id.String()))
			errorResponse(c, http.StatusForbidden, ForbiddenCode)
			return
		}
		logger.Error("admin authorization failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, StorageErrorCode)
		return
	}

	c.Set(userCtx, id)
	c.Next()
}

func (h *Handler) parseAuthHeader(c *gin.Context) (uuid.UUID, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return uuid.Nil, errEmptyAuthHeader
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return uuid.Nil, errInvalidAuthHeader
	}

	if len(headerParts[1]) == 0 {
		return uuid.Nil, errEmptyToken
	}

	return h.tokenManager.Parse(headerParts[1])
}

func getUserUUID(c *gin.Context) (uuid.UUID, error) {
	id, ok := c.Get(userCtx)
	if !ok {
		return uuid.Nil, errors.New("user id not found")
	}

	userID, ok := id.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user id has unexpected type")
	}

	return userID, nil
}
