package db

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gamestore-zarzis/backend/internal/config"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const (
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
)

func New(cfg config.Database) (*sqlx.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	dbConn, err := sqlx.Connect(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db connection failed: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConnections)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConnections)

	if err := dbConn.Ping(); err != nil {
		return nil, err
	}

	return dbConn, nil
}

// DSN returns cfg.DSN when set, otherwise builds one for the configured driver.
func DSN(cfg config.Database) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}

	switch cfg.Driver {
	case DriverMySQL:
		location, err := time.LoadLocation(cfg.TimeZone)
		if err != nil {
			return "", fmt.Errorf("time load location failed: %w", err)
		}
		conf := mysql.NewConfig()
		conf.Net = cfg.Net
		conf.Addr = cfg.Server
		conf.User = cfg.User
		conf.Passwd = cfg.Password
		conf.DBName = cfg.DBName
		conf.Timeout = cfg.Timeout
		conf.Loc = location
		conf.ParseTime = true
		return conf.FormatDSN(), nil
	case DriverPostgres:
		q := url.Values{}
		q.Set("sslmode", cfg.SSLMode)
		q.Set("timezone", cfg.TimeZone)
		q.Set("connect_timeout", fmt.Sprintf("%d", int(cfg.Timeout.Seconds())))
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     cfg.Server,
			Path:     "/" + cfg.DBName,
			RawQuery: q.Encode(),
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}
