package v1

import (
	"errors"
	"net/http"

	"github.com/gamestore-zarzis/backend/internal/domain"
	"github.com/gamestore-zarzis/backend/internal/service"
	"github.com/gamestore-zarzis/backend/pkg/logger"
	"github.com/gamestore-zarzis/backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	codeSentMessage     = "Verification code sent"
	codeVerifiedMessage = "Verification successful"
)

func (h *Handler) initVerificationRoutes(api gin.IRouter) {
	verify := api.Group("/verify")

	verify.POST("/send", h.sendLimiter, h.verificationSend)
	verify.POST("/check", h.checkLimiter, h.verificationCheck)
}

type verificationSendInput struct {
	Identifier string `json:"identifier" binding:"required,max=254,identifier"`
	Type       string `json:"type" binding:"required,oneof=email sms"`
}

// @Summary Send verification code
// @Tags Verification
// @Description Issues a one-time code and delivers it by email or sms. With sms disabled an
// @Description email-shaped identifier falls back to email.
// @ModuleID verificationSend
// @Accept  json
// @Produce  json
// @Param input body verificationSendInput true "identifier and channel"
// @Success 200 {object} successResponse
// @Failure 400 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /verify/send [post]
func (h *Handler) verificationSend(c *gin.Context) {
	var inp verificationSendInput
	if err := c.ShouldBindJSON(&inp); err != nil {
		validationErrorResponse(c, err)
		return
	}

	identifier := validator.NormalizeIdentifier(inp.Identifier)
	err := h.services.Verification.Send(c.Request.Context(), identifier, domain.Channel(inp.Type))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTooManyRequests):
			errorResponse(c, http.StatusTooManyRequests, TooManyRequestsCode)
		case errors.Is(err, service.ErrChannelUnavailable):
			errorResponse(c, http.StatusBadRequest, ChannelUnavailableCode)
		case errors.Is(err, service.ErrStorage):
			logger.Error("verification code issue failed", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, StorageErrorCode)
		default:
			logger.Error("verification code send failed", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, DeliveryFailedCode)
		}
		return
	}

	c.JSON(http.StatusOK, successResponse{Success: true, Message: codeSentMessage})
}

type verificationCheckInput struct {
	Identifier string `json:"identifier" binding:"required,max=254"`
	Code       string `json:"code" binding:"required,numeric,max=12"`
}

// @Summary Check verification code
// @Tags Verification
// @Description Consumes the code. Wrong, expired and already used codes are not told apart.
// @ModuleID verificationCheck
// @Accept  json
// @Produce  json
// @Param input body verificationCheckInput true "identifier and code"
// @Success 200 {object} successResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /verify/check [post]
func (h *Handler) verificationCheck(c *gin.Context) {
	var inp verificationCheckInput
	if err := c.ShouldBindJSON(&inp); err != nil {
		validationErrorResponse(c, err)
		return
	}

	identifier := validator.NormalizeIdentifier(inp.Identifier)
	err := h.services.Verification.Verify(c.Request.Context(), identifier, inp.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			errorResponse(c, http.StatusBadRequest, InvalidCodeCode)
			return
		}
		logger.Error("verification check failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, VerificationFailedCode)
		return
	}

	c.JSON(http.StatusOK, successResponse{Success: true, Message: codeVerifiedMessage})
}
