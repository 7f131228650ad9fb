package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gamestore-zarzis/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type storeSettingRepository struct {
	db          *sqlx.DB
	getQuery    string
	upsertQuery string
}

func newStoreSettingRepository(db *sqlx.DB) *storeSettingRepository {
	r := &storeSettingRepository{db: db}

	if isMySQL(db) {
		r.getQuery = "SELECT value FROM store_settings WHERE `key` = ?"
		r.upsertQuery = "INSERT INTO store_settings (`key`, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)"
	} else {
		r.getQuery = db.Rebind("SELECT value FROM store_settings WHERE key = ?")
		r.upsertQuery = db.Rebind("INSERT INTO store_settings (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value")
	}

	return r
}

// Get returns the raw JSON value stored under key.
func (r *storeSettingRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	if err := r.db.QueryRowxContext(ctx, r.getQuery, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select store setting %q: %w", key, err)
	}

	return value, nil
}

func (r *storeSettingRepository) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, r.upsertQuery, key, string(value)); err != nil {
		return fmt.Errorf("db upsert store setting %q: %w", key, err)
	}

	return nil
}
