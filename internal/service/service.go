package service

import (
	"context"
	"io/fs"
	"time"

	"github.com/gamestore-zarzis/backend/internal/config"
	"github.com/gamestore-zarzis/backend/internal/domain"
	"github.com/gamestore-zarzis/backend/internal/repository"
	emailProvider "github.com/gamestore-zarzis/backend/pkg/email"
	"github.com/gamestore-zarzis/backend/pkg/otp"
	"github.com/gamestore-zarzis/backend/pkg/sms"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Services struct {
	Verification Verification
	Settings     Settings
	Maintenance  Maintenance
	Admins       Admins
	Delivery     Delivery
}

type Deps struct {
	Config       *config.Config
	Repos        *repository.Repositories
	OtpGenerator otp.Generator
	EmailSender  emailProvider.Sender
	SMSSender    sms.Sender
	Redis        redis.UniversalClient
	Templates    fs.FS
	Now          func() time.Time
}

func NewServices(deps Deps) *Services {
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	cfg := deps.Config
	queryTimeout := cfg.Database.QueryTimeout

	settings := WrapSettingsCache(newSettingsService(deps.Repos.StoreSettings, queryTimeout), cfg.Settings.CacheTTL)
	dispatcher := NewDispatcher(deps.EmailSender, deps.SMSSender, DispatcherConfig{
		Templates:            deps.Templates,
		VerificationTemplate: cfg.Email.Templates.Verification,
		CodeTTL:              cfg.Auth.VerificationCodeTTL,
		Timeout:              cfg.Delivery.Timeout,
	})

	return &Services{
		Verification: newVerificationService(deps.Repos.VerificationCodes,
			deps.OtpGenerator,
			NewChannelPolicy(settings),
			dispatcher,
			NewThrottle(deps.Redis, cfg.Throttle.SendLimit, cfg.Throttle.SendWindow),
			cfg.Auth,
			queryTimeout,
			now,
		),
		Settings:    settings,
		Maintenance: newMaintenanceService(deps.Repos.VerificationCodes, cfg.Cleanup.Retention, queryTimeout, now),
		Admins:      newAdminService(deps.Repos.UserRoles, queryTimeout),
		Delivery:    dispatcher,
	}
}

type Verification interface {
	Send(ctx context.Context, identifier string, channel domain.Channel) error
	Issue(ctx context.Context, identifier string) (*domain.VerificationCode, error)
	Verify(ctx context.Context, identifier, code string) error
}

type Settings interface {
	SMSEnabled(ctx context.Context) (bool, error)
	SetSMSEnabled(ctx context.Context, enabled bool) error
}

type Maintenance interface {
	CleanupVerificationCodes(ctx context.Context) (int64, error)
}

type Admins interface {
	Authorize(ctx context.Context, userID uuid.UUID) error
}

type Delivery interface {
	Status() DeliveryStatus
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
