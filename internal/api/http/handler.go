package apiHttp

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/gamestore-zarzis/backend/docs"
	"github.com/gamestore-zarzis/backend/pkg/auth"
	"github.com/gamestore-zarzis/backend/pkg/limiter"
	"github.com/gamestore-zarzis/backend/pkg/logger"
	"github.com/gamestore-zarzis/backend/pkg/validator"

	internalV1 "github.com/gamestore-zarzis/backend/internal/api/http/internal/v1"
	"github.com/gamestore-zarzis/backend/internal/config"
	"github.com/gamestore-zarzis/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandlers(
	services *service.Services,
	tokenManager auth.TokenManager,
	cfg *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       cfg,
	}
}

func (h *Handler) Init(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		limiter.Limit(cfg.Limiter.RPS, cfg.Limiter.Burst, cfg.Limiter.TTL),
		securityHeadersMiddleware,
		corsMiddleware(cfg.HttpServer.AllowedOrigins),
	)
	router.Use(ginzap.RecoveryWithZap(logger.Logger(), true))

	if cfg.HttpServer.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.NewHandler(), ginSwagger.InstanceName("internal")))
	}

	router.GET("/health", h.health)

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.tokenManager, h.config)
	internalHandlersV1.InitRoot(router)

	api := router.Group("/api")
	internalHandlersV1.Init(api)
}

type healthResponse struct {
	Status   string         `json:"status"`
	Services healthServices `json:"services"`
}

type healthServices struct {
	API   string `json:"api"`
	Email string `json:"email"`
	SMS   string `json:"sms"`
}

func (h *Handler) health(c *gin.Context) {
	status := h.services.Delivery.Status()

	resp := healthResponse{
		Status: "healthy",
		Services: healthServices{
			API:   "online",
			Email: "not_configured",
			SMS:   "stub",
		},
	}
	if len(status.EmailProviders) > 0 {
		resp.Services.Email = "configured"
	}
	if status.SMSEnabled {
		resp.Services.SMS = "enabled"
	}

	c.JSON(http.StatusOK, resp)
}
