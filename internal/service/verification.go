package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gamestore-zarzis/backend/internal/config"
	"github.com/gamestore-zarzis/backend/internal/domain"
	"github.com/gamestore-zarzis/backend/internal/repository"
	"github.com/gamestore-zarzis/backend/pkg/logger"
	"github.com/gamestore-zarzis/backend/pkg/otp"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type verificationService struct {
	codes        repository.VerificationCodes
	otpGenerator otp.Generator
	policy       *ChannelPolicy
	dispatcher   *Dispatcher
	throttle     Throttle
	authConfig   config.AuthConfig
	queryTimeout time.Duration
	now          func() time.Time
}

func newVerificationService(codes repository.VerificationCodes,
	otpGenerator otp.Generator,
	policy *ChannelPolicy,
	dispatcher *Dispatcher,
	throttle Throttle,
	authConfig config.AuthConfig,
	queryTimeout time.Duration,
	now func() time.Time,
) *verificationService {
	return &verificationService{
		codes:        codes,
		otpGenerator: otpGenerator,
		policy:       policy,
		dispatcher:   dispatcher,
		throttle:     throttle,
		authConfig:   authConfig,
		queryTimeout: queryTimeout,
		now:          now,
	}
}

// Send throttles, resolves the effective channel, stores a fresh code and delivers it.
// A request rejected before issuance leaves nothing stored and reaches no provider.
func (s *verificationService) Send(ctx context.Context, identifier string, channel domain.Channel) error {
	const op = "verificationService.Send"

	allowed, err := s.throttle.Allow(ctx, identifier)
	if err != nil {
		logger.Warn("send throttle unavailable, allowing request", zap.Error(err))
	}
	if !allowed {
		return ErrTooManyRequests
	}

	effective, err := s.policy.Resolve(ctx, identifier, channel)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	code, err := s.Issue(ctx, identifier)
	if err != nil {
		return err
	}

	if err := s.dispatcher.Dispatch(ctx, effective, identifier, code.Code); err != nil {
		return err
	}

	logger.Info("verification code sent",
		zap.String("channel", string(effective)),
		zap.String("requested_channel", string(channel)),
		zap.String("code_id", code.ID.String()),
	)
	return nil
}

// Issue generates and persists a new code for identifier. Earlier codes stay valid.
func (s *verificationService) Issue(ctx context.Context, identifier string) (*domain.VerificationCode, error) {
	const op = "verificationService.Issue"

	code, err := s.otpGenerator.RandomCode(s.codeLength())
	if err != nil {
		return nil, fmt.Errorf("%s: generate code: %w", op, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("%s: generate id: %w", op, err)
	}

	now := s.now()
	verificationCode := &domain.VerificationCode{
		ID:         id,
		Identifier: identifier,
		Code:       code,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.authConfig.VerificationCodeTTL),
		IsVerified: false,
	}

	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.codes.Create(ctx, verificationCode); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
	}

	return verificationCode, nil
}

// Verify consumes the most recent acceptable code. Wrong, expired and already used
// codes all yield ErrInvalidCode.
func (s *verificationService) Verify(ctx context.Context, identifier, code string) error {
	const op = "verificationService.Verify"

	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	err := s.codes.Verify(ctx, identifier, code, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrInvalidCode
		}
		return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
	}

	return nil
}

func (s *verificationService) codeLength() int {
	if s.authConfig.VerificationCodeLength <= 0 {
		return otp.DefaultLength
	}
	return s.authConfig.VerificationCodeLength
}
