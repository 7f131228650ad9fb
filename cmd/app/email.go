package main

import (
	"github.com/gamestore-zarzis/backend/internal/config"
	"github.com/gamestore-zarzis/backend/pkg/email"
	"github.com/gamestore-zarzis/backend/pkg/email/brevo"
	"github.com/gamestore-zarzis/backend/pkg/email/mailersend"
	"github.com/gamestore-zarzis/backend/pkg/email/smtp"
	"github.com/gamestore-zarzis/backend/pkg/logger"

	"go.uber.org/zap"
)

// newEmailSender builds the MailerSend -> SMTP -> Brevo chain out of the
// providers that have credentials.
func newEmailSender(cfg *config.Config) *email.FallbackSender {
	var providers []email.Provider

	if cfg.MailerSend.APIKey != "" {
		sender, err := mailersend.NewSender(cfg.MailerSend.APIKey, cfg.Email.From, cfg.Email.FromName)
		if err != nil {
			logger.Warn("mailersend provider disabled", zap.Error(err))
		} else {
			providers = append(providers, email.Provider{Name: "mailersend", Sender: sender})
		}
	}

	if cfg.SMTP.User != "" && cfg.SMTP.Pass != "" {
		sender, err := smtp.NewSMTPSender(cfg.Email.From, cfg.Email.FromName, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
		if err != nil {
			logger.Warn("smtp provider disabled", zap.Error(err))
		} else {
			providers = append(providers, email.Provider{Name: "smtp", Sender: sender})
		}
	}

	if cfg.Brevo.APIKey != "" {
		sender, err := brevo.NewClient(cfg.Brevo.BaseURL, cfg.Brevo.APIKey, cfg.Email.From, cfg.Email.FromName, cfg.Delivery.Timeout)
		if err != nil {
			logger.Warn("brevo provider disabled", zap.Error(err))
		} else {
			providers = append(providers, email.Provider{Name: "brevo", Sender: sender})
		}
	}

	if len(providers) == 0 {
		logger.Warn("no email provider configured, email delivery will fail")
	}

	return email.NewFallbackSender(email.FallbackSettings{
		ProviderTimeout: cfg.Delivery.Timeout,
		MaxFailures:     cfg.Delivery.BreakerMaxFailures,
		Interval:        cfg.Delivery.BreakerInterval,
		OpenTimeout:     cfg.Delivery.BreakerTimeout,
	}, providers...)
}
