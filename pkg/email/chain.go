package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/gamestore-zarzis/backend/pkg/logger"
)

var (
	ErrNoProviders        = errors.New("no email provider configured")
	ErrAllProvidersFailed = errors.New("all email providers failed")
)

const (
	defaultMaxFailures     = 5
	defaultProviderTimeout = 10 * time.Second
)

// Provider is one named link of the delivery chain.
type Provider struct {
	Name   string
	Sender Sender
}

// FallbackSettings configures the chain. ProviderTimeout bounds every single
// provider attempt, so a provider that hangs still leaves the next one its full
// budget. The breaker fields follow gobreaker.Settings.
type FallbackSettings struct {
	ProviderTimeout time.Duration
	MaxFailures     int
	Interval        time.Duration
	OpenTimeout     time.Duration
}

type chainLink struct {
	name    string
	sender  Sender
	breaker *gobreaker.CircuitBreaker
}

// FallbackSender tries its providers in order, each at most once per Send, and
// stops at the first one that accepts the message. A provider whose breaker is
// open is skipped as a failed attempt.
type FallbackSender struct {
	links           []chainLink
	providerTimeout time.Duration
}

func NewFallbackSender(settings FallbackSettings, providers ...Provider) *FallbackSender {
	maxFailures := settings.MaxFailures
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}

	providerTimeout := settings.ProviderTimeout
	if providerTimeout <= 0 {
		providerTimeout = defaultProviderTimeout
	}

	links := make([]chainLink, 0, len(providers))
	for _, p := range providers {
		if p.Sender == nil {
			continue
		}
		links = append(links, chainLink{
			name:   p.Name,
			sender: p.Sender,
			breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
				Name:        "email-" + p.Name,
				MaxRequests: 1,
				Interval:    settings.Interval,
				Timeout:     settings.OpenTimeout,
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures >= uint32(maxFailures)
				},
				OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
					logger.Info("circuit breaker state", zap.String("name", name), zap.String("from", from.String()), zap.String("to", to.String()))
				},
			}),
		})
	}

	return &FallbackSender{links: links, providerTimeout: providerTimeout}
}

// Providers returns the names of the configured providers in attempt order.
func (f *FallbackSender) Providers() []string {
	names := make([]string, len(f.links))
	for i, l := range f.links {
		names[i] = l.name
	}
	return names
}

func (f *FallbackSender) Send(ctx context.Context, input SendEmailInput) error {
	if len(f.links) == 0 {
		return ErrNoProviders
	}

	var errs []error
	for _, l := range f.links {
		// only the caller's own cancellation ends the chain early
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		_, err := l.breaker.Execute(func() (interface{}, error) {
			return nil, f.attempt(ctx, l, input)
		})
		if err == nil {
			logger.Info("email sent", zap.String("provider", l.name), zap.String("to", input.To))
			return nil
		}

		logger.Warn("email provider failed, falling back", zap.String("provider", l.name), zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", l.name, err))
	}

	return fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
}

func (f *FallbackSender) attempt(ctx context.Context, l chainLink, input SendEmailInput) error {
	ctx, cancel := context.WithTimeout(ctx, f.providerTimeout)
	defer cancel()

	return l.sender.Send(ctx, input)
}
