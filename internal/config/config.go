package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer
	Database   Database
	Limiter    Limiter
	Throttle   Throttle
	Auth       AuthConfig
	Email      EmailConfig
	SMTP       SMTPConfig
	MailerSend MailerSendConfig
	Brevo      BrevoConfig
	SMS        SMSConfig
	Delivery   DeliveryConfig
	Settings   SettingsConfig
	Cleanup    CleanupConfig
	Queue      QueueConfig
	Cache      Cache
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
	AllowedOrigins []string      `env:"HTTP_ALLOWED_ORIGINS" env-default:"http://localhost:5173,http://localhost:8080,https://gamestorezarzis.com.tn,https://www.gamestorezarzis.com.tn" env-description:"comma separated CORS origins"`
}

type Database struct {
	Driver             string        `env:"DB_DRIVER" env-default:"pgx" env-description:"pgx for the hosted postgres, mysql for a local mysql"`
	DSN                string        `env:"DB_DSN" env-default:"" env-description:"full connection string, overrides the fields below"`
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-default:"localhost:5432"`
	DBName             string        `env:"DB_NAME" env-default:"postgres"`
	User               string        `env:"DB_USER" env-default:"postgres"`
	Password           string        `env:"DB_PASSWORD" env-default:""`
	SSLMode            string        `env:"DB_SSLMODE" env-default:"require"`
	TimeZone           string        `env:"DB_TIMEZONE" env-default:"UTC"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"5s"`
	QueryTimeout       time.Duration `env:"DB_QUERY_TIMEOUT" env-default:"5s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"10"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"20"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type Throttle struct {
	SendLimit  int           `env:"THROTTLE_SEND_LIMIT" env-default:"5" env-description:"codes per identifier per window, 0 disables"`
	SendWindow time.Duration `env:"THROTTLE_SEND_WINDOW" env-default:"1h"`
}

type AuthConfig struct {
	JWT                    JWTConfig
	VerificationCodeLength int           `env:"AUTH_VERIFICATION_CODE_LENGTH" env-default:"6"`
	VerificationCodeTTL    time.Duration `env:"AUTH_VERIFICATION_CODE_TTL" env-default:"10m"`
}

type JWTConfig struct {
	SigningKey string `env:"SUPABASE_JWT_SECRET" env-required:"true" env-description:"secret the hosted auth provider signs access tokens with"`
	Audience   string `env:"SUPABASE_JWT_AUDIENCE" env-default:"authenticated"`
}

type EmailConfig struct {
	From      string `env:"FROM_EMAIL" env-required:"true"`
	FromName  string `env:"FROM_NAME" env-default:"Game Store Zarzis"`
	Templates EmailTemplates
}

type EmailTemplates struct {
	Verification string `env:"EMAIL_TEMPLATE_VERIFICATION" env-default:"verification_code.html"`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST" env-default:"smtp.mailersend.net"`
	Port int    `env:"SMTP_PORT" env-default:"587"`
	User string `env:"SMTP_USER" env-default:""`
	Pass string `env:"SMTP_PASS" env-default:""`
}

type MailerSendConfig struct {
	APIKey string `env:"MAILERSEND_API_KEY" env-default:""`
}

type BrevoConfig struct {
	APIKey  string `env:"BREVO_API_KEY" env-default:""`
	BaseURL string `env:"BREVO_BASE_URL" env-default:"https://api.brevo.com/v3"`
}

type SMSConfig struct {
	Enabled     bool   `env:"SMS_ENABLED" env-default:"false" env-description:"false runs the sms sender in stub mode"`
	APIKey      string `env:"SMS_API_KEY" env-default:""`
	ProviderURL string `env:"SMS_PROVIDER_URL" env-default:"https://api.sms-provider.com/send"`
}

type DeliveryConfig struct {
	Timeout            time.Duration `env:"DELIVERY_TIMEOUT" env-default:"10s" env-description:"budget for each provider attempt"`
	BreakerMaxFailures int           `env:"DELIVERY_BREAKER_MAX_FAILURES" env-default:"5"`
	BreakerInterval    time.Duration `env:"DELIVERY_BREAKER_INTERVAL" env-default:"1m"`
	BreakerTimeout     time.Duration `env:"DELIVERY_BREAKER_TIMEOUT" env-default:"30s"`
}

type SettingsConfig struct {
	CacheTTL time.Duration `env:"SETTINGS_CACHE_TTL" env-default:"30s" env-description:"0 reads store settings on every request"`
}

type CleanupConfig struct {
	Retention time.Duration `env:"CLEANUP_RETENTION" env-default:"24h" env-description:"codes expired for longer than this are deleted"`
	Schedule  string        `env:"CLEANUP_SCHEDULE" env-default:"@daily"`
}

type QueueConfig struct {
	Enabled     bool `env:"QUEUE_ENABLED" env-default:"false"`
	Concurrency int  `env:"QUEUE_CONCURRENCY" env-default:"2"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-required:"true" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes: ['172.27.29.90:7000','172.27.29.91:7001'', '172.27.29.92:7002'']"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
