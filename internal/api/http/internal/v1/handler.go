package v1

import (
	"time"

	"github.com/gamestore-zarzis/backend/internal/config"
	"github.com/gamestore-zarzis/backend/internal/service"
	"github.com/gamestore-zarzis/backend/pkg/auth"
	"github.com/gamestore-zarzis/backend/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// @title Game Store Zarzis API
// @version 1.0
// @description Verification codes and store settings

// @BasePath /api/v1

// @securityDefinitions.apikey AdminAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config

	sendLimiter    gin.HandlerFunc
	checkLimiter   gin.HandlerFunc
	cleanupLimiter gin.HandlerFunc
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	ttl := config.Limiter.TTL

	return &Handler{
		services:       services,
		tokenManager:   tokenManager,
		config:         config,
		sendLimiter:    limiter.LimitEvery(time.Minute/3, 3, ttl),
		checkLimiter:   limiter.LimitEvery(time.Minute/5, 5, ttl),
		cleanupLimiter: limiter.LimitEvery(time.Hour/5, 5, ttl),
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initVerificationRoutes(v1)
	h.initSettingsRoutes(v1)
	h.initAdminRoutes(v1)
}

// InitRoot mounts the verification routes outside /api/v1 for clients that call
// /verify/* directly.
func (h *Handler) InitRoot(router gin.IRouter) {
	h.initVerificationRoutes(router)
}
