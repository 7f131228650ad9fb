package v1

import (
	"net/http"

	"github.com/gamestore-zarzis/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initSettingsRoutes(api *gin.RouterGroup) {
	settings := api.Group("/settings")

	settings.GET("/sms", h.settingsGetSMS)
}

type smsSettingResponse struct {
	SMSEnabled bool `json:"sms_enabled"`
}

// @Summary SMS toggle
// @Tags Settings
// @Description Current value of the store wide sms toggle. Unreadable values report the default.
// @ModuleID settingsGetSMS
// @Produce  json
// @Success 200 {object} smsSettingResponse
// @Router /settings/sms [get]
func (h *Handler) settingsGetSMS(c *gin.Context) {
	enabled, err := h.services.Settings.SMSEnabled(c.Request.Context())
	if err != nil {
		logger.Warn("read sms toggle failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, smsSettingResponse{SMSEnabled: enabled})
}
