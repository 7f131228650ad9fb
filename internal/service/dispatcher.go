package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/gamestore-zarzis/backend/internal/domain"
	emailProvider "github.com/gamestore-zarzis/backend/pkg/email"
	"github.com/gamestore-zarzis/backend/pkg/logger"
	"github.com/gamestore-zarzis/backend/pkg/sms"

	"go.uber.org/zap"
)

const (
	verificationEmailSubject = "Code de Connexion - Game Store Zarzis"
	verificationEmailName    = "Client"
	verificationSMSFormat    = "Your Game Store Zarzis verification code is: %s"
	verificationTextFormat   = "Votre code de connexion Game Store Zarzis est: %s. Expire dans %d min."
)

var errSMSNotConfigured = errors.New("sms sender is not configured")

type DispatcherConfig struct {
	Templates            fs.FS
	VerificationTemplate string
	CodeTTL              time.Duration
	// Timeout bounds the sms attempt. Email attempts get their budget per
	// provider from the email chain.
	Timeout time.Duration
}

// Dispatcher renders a verification message and hands it to the provider chain of
// the resolved channel.
type Dispatcher struct {
	email  emailProvider.Sender
	sms    sms.Sender
	config DispatcherConfig
}

func NewDispatcher(emailSender emailProvider.Sender, smsSender sms.Sender, config DispatcherConfig) *Dispatcher {
	return &Dispatcher{
		email:  emailSender,
		sms:    smsSender,
		config: config,
	}
}

type verificationEmailInput struct {
	VerificationCode string
	ExpiresInMinutes int
}

func (d *Dispatcher) Dispatch(ctx context.Context, channel domain.Channel, identifier, code string) error {
	const op = "Dispatcher.Dispatch"

	var err error
	switch channel {
	case domain.ChannelEmail:
		err = d.sendEmail(ctx, identifier, code)
	case domain.ChannelSMS:
		err = d.sendSMS(ctx, identifier, code)
	default:
		return fmt.Errorf("%s: %w: %q", op, ErrChannelUnavailable, channel)
	}

	if err != nil {
		logger.Error("verification code delivery failed",
			zap.String("channel", string(channel)),
			zap.String("identifier", identifier),
			zap.Error(err),
		)
		return fmt.Errorf("%s: %w: %w", op, ErrDeliveryFailure, err)
	}

	return nil
}

func (d *Dispatcher) sendEmail(ctx context.Context, to, code string) error {
	if d.email == nil {
		return emailProvider.ErrNoProviders
	}

	minutes := int(d.config.CodeTTL / time.Minute)
	input := emailProvider.SendEmailInput{
		To:      to,
		Name:    verificationEmailName,
		Subject: verificationEmailSubject,
		Text:    fmt.Sprintf(verificationTextFormat, code, minutes),
	}

	templateInput := verificationEmailInput{VerificationCode: code, ExpiresInMinutes: minutes}
	if err := input.GenerateBodyFromHTML(d.config.Templates, d.config.VerificationTemplate, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	return d.email.Send(ctx, input)
}

func (d *Dispatcher) sendSMS(ctx context.Context, to, code string) error {
	if d.sms == nil {
		return errSMSNotConfigured
	}

	ctx, cancel := withTimeout(ctx, d.config.Timeout)
	defer cancel()

	return d.sms.Send(ctx, to, fmt.Sprintf(verificationSMSFormat, code))
}

type DeliveryStatus struct {
	EmailProviders []string
	SMSEnabled     bool
}

type providerLister interface {
	Providers() []string
}

// Status reports which delivery providers are wired.
func (d *Dispatcher) Status() DeliveryStatus {
	var status DeliveryStatus

	if lister, ok := d.email.(providerLister); ok {
		status.EmailProviders = lister.Providers()
	} else if d.email != nil {
		status.EmailProviders = []string{"default"}
	}

	if s, ok := d.sms.(interface{ Enabled() bool }); ok {
		status.SMSEnabled = s.Enabled()
	}

	return status
}
