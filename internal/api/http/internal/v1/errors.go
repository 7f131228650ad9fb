package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	ChannelUnavailableCode      = 1001
	ChannelUnavailableMessage   = "Le service SMS est désactivé. Veuillez utiliser votre adresse email pour la vérification."
	InvalidCodeCode             = 1002
	InvalidCodeMessage          = "Invalid or expired code"
	TooManyRequestsCode         = 1003
	TooManyRequestsMessage      = "Too many verification requests, try again later"
	DeliveryFailedCode          = 1004
	DeliveryFailedMessage       = "Failed to send verification code"
	StorageErrorCode            = 1005
	StorageErrorMessage         = "Database error"
	VerificationFailedCode      = 1006
	VerificationFailedMessage   = "Verification failed"
	UnauthorizedCode            = 1007
	UnauthorizedMessage         = "Authentication required"
	ForbiddenCode               = 1008
	ForbiddenMessage            = "Owner role required"
	CleanupFailedCode           = 1009
	CleanupFailedMessage        = "Cleanup failed"
	SettingsUpdateFailedCode    = 1010
	SettingsUpdateFailedMessage = "Failed to update settings"

	ValidationErrorCode    = 6000
	ValidationErrorMessage = "Validation error"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode `json:"error_code"`
	Detail    ErrorMessage `json:"detail"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode int               `json:"error_code"`
	Detail    string            `json:"detail"`
	Errors    []ValidationError `json:"validation_errors"`
} // @name ValidationErrorStruct

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

var errorMessages = map[ErrorCode]ErrorMessage{
	ChannelUnavailableCode:   ChannelUnavailableMessage,
	InvalidCodeCode:          InvalidCodeMessage,
	TooManyRequestsCode:      TooManyRequestsMessage,
	DeliveryFailedCode:       DeliveryFailedMessage,
	StorageErrorCode:         StorageErrorMessage,
	VerificationFailedCode:   VerificationFailedMessage,
	UnauthorizedCode:         UnauthorizedMessage,
	ForbiddenCode:            ForbiddenMessage,
	CleanupFailedCode:        CleanupFailedMessage,
	SettingsUpdateFailedCode: SettingsUpdateFailedMessage,
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	message, ok := errorMessages[code]
	if !ok {
		return &ErrorStruct{ErrorCode: UnknownErrorCode, Detail: UnknownErrorMessage}
	}

	return &ErrorStruct{ErrorCode: code, Detail: message}
}
