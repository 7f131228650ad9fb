package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gamestore-zarzis/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

const (
	verifyCodePostgresQuery = `UPDATE verification_codes SET is_verified = TRUE
WHERE id = (
	SELECT id FROM verification_codes
	WHERE identifier = ? AND code = ? AND is_verified = FALSE AND expires_at > ?
	ORDER BY created_at DESC LIMIT 1
) AND is_verified = FALSE`

	verifyCodeMySQLQuery = `UPDATE verification_codes SET is_verified = TRUE
WHERE identifier = ? AND code = ? AND is_verified = FALSE AND expires_at > ?
ORDER BY created_at DESC LIMIT 1`
)

type verificationCodeRepository struct {
	db          *sqlx.DB
	verifyQuery string
}

func newVerificationCodeRepository(db *sqlx.DB) *verificationCodeRepository {
	verifyQuery := verifyCodePostgresQuery
	if isMySQL(db) {
		verifyQuery = verifyCodeMySQLQuery
	}

	return &verificationCodeRepository{
		db:          db,
		verifyQuery: db.Rebind(verifyQuery),
	}
}

func (r *verificationCodeRepository) Create(ctx context.Context, code *domain.VerificationCode) error {
	const query = `INSERT INTO verification_codes (id, identifier, code, created_at, expires_at, is_verified)
VALUES (:id, :identifier, :code, :created_at, :expires_at, :is_verified)`

	if _, err := r.db.NamedExecContext(ctx, query, code); err != nil {
		return fmt.Errorf("db insert verification code: %w", err)
	}

	return nil
}

func (r *verificationCodeRepository) Verify(ctx context.Context, identifier, code string, now time.Time) error {
	res, err := r.db.ExecContext(ctx, r.verifyQuery, identifier, code, now)
	if err != nil {
		return fmt.Errorf("db update verification code: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db update verification code rows: %w", err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *verificationCodeRepository) DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error) {
	query := r.db.Rebind("DELETE FROM verification_codes WHERE expires_at < ?")

	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("db delete verification codes: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db delete verification codes rows: %w", err)
	}

	return rows, nil
}
