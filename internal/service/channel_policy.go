package service

import (
	"context"
	"fmt"

	"github.com/gamestore-zarzis/backend/internal/domain"
	"github.com/gamestore-zarzis/backend/pkg/logger"

	"go.uber.org/zap"
)

type SMSToggle interface {
	SMSEnabled(ctx context.Context) (bool, error)
}

// ChannelPolicy picks the channel a code is actually delivered on.
type ChannelPolicy struct {
	toggle SMSToggle
}

func NewChannelPolicy(toggle SMSToggle) *ChannelPolicy {
	return &ChannelPolicy{toggle: toggle}
}

// Resolve reads the sms toggle on every call. With sms disabled, an sms request
// for an email-shaped identifier is downgraded to email; any other sms request
// fails with ErrChannelUnavailable.
func (p *ChannelPolicy) Resolve(ctx context.Context, identifier string, requested domain.Channel) (domain.Channel, error) {
	if requested == domain.ChannelEmail {
		return domain.ChannelEmail, nil
	}
	if requested != domain.ChannelSMS {
		return "", fmt.Errorf("%w: unknown channel %q", ErrChannelUnavailable, requested)
	}

	enabled, err := p.toggle.SMSEnabled(ctx)
	if err != nil {
		logger.Warn("sms toggle unreadable, using default",
			zap.Bool("default", DefaultSMSEnabled),
			zap.Error(err),
		)
		enabled = DefaultSMSEnabled
	}

	if enabled {
		return domain.ChannelSMS, nil
	}

	if domain.LooksLikeEmail(identifier) {
		logger.Info("sms disabled, falling back to email", zap.String("identifier", identifier))
		return domain.ChannelEmail, nil
	}

	return "", ErrChannelUnavailable
}
