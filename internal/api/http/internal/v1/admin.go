package v1

import (
	"net/http"

	"github.com/gamestore-zarzis/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const cleanupMessage = "Cleanup completed"

func (h *Handler) initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin", h.ownerIdentityMiddleware)

	admin.PUT("/settings/sms", h.adminSetSMS)
	admin.POST("/cleanup", h.cleanupLimiter, h.adminCleanup)
}

type adminSetSMSInput struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// @Summary Set SMS toggle
// @Tags Admin
// @Description Turns sms delivery on or off for the whole store
// @ModuleID adminSetSMS
// @Accept  json
// @Produce  json
// @Param input body adminSetSMSInput true "new value"
// @Success 200 {object} smsSettingResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security AdminAuth
// @Router /admin/settings/sms [put]
func (h *Handler) adminSetSMS(c *gin.Context) {
	var inp adminSetSMSInput
	if err := c.ShouldBindJSON(&inp); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Settings.SetSMSEnabled(c.Request.Context(), *inp.Enabled); err != nil {
		logger.Error("update sms toggle failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, SettingsUpdateFailedCode)
		return
	}

	userID, _ := getUserUUID(c)
	logger.Info("sms toggle updated", zap.Bool("enabled", *inp.Enabled), zap.String("by", userID.String()))

	c.JSON(http.StatusOK, smsSettingResponse{SMSEnabled: *inp.Enabled})
}

type cleanupResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCodes int64  `json:"deleted_codes"`
}

// @Summary Clean up verification codes
// @Tags Admin
// @Description Deletes verification codes expired for longer than the retention period
// @ModuleID adminCleanup
// @Produce  json
// @Success 200 {object} cleanupResponse
// @Failure 401 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security AdminAuth
// @Router /admin/cleanup [post]
func (h *Handler) adminCleanup(c *gin.Context) {
	deleted, err := h.services.Maintenance.CleanupVerificationCodes(c.Request.Context())
	if err != nil {
		logger.Error("cleanup failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, CleanupFailedCode)
		return
	}

	c.JSON(http.StatusOK, cleanupResponse{Success: true, Message: cleanupMessage, DeletedCodes: deleted})
}
