package service

import "errors"

var (
	ErrStorage            = errors.New("storage unavailable")
	ErrChannelUnavailable = errors.New("no delivery channel available")
	ErrDeliveryFailure    = errors.New("verification code delivery failed")
	ErrInvalidCode        = errors.New("invalid or expired code")
	ErrTooManyRequests    = errors.New("too many verification requests")

	ErrInvalidSettingValue = errors.New("invalid store setting value")
	ErrForbidden           = errors.New("owner role required")
)
