package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Revocations are kept only until the token would have expired on its own.
// Times are stored in UTC so expires_at compares correctly as text.

// RevokeToken records a logged-out token's JTI. Revoking twice is a no-op.
func RevokeToken(ctx context.Context, db *sql.DB, jti string, expiresAt time.Time) error {
	if jti == "" {
		return fmt.Errorf("revoking token: empty jti")
	}
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO revoked_tokens (jti, expires_at) VALUES (?, ?)`,
		jti, expiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// PurgeExpiredTokens deletes revocations of tokens that expired before now
// and reports how many were removed.
func PurgeExpiredTokens(ctx context.Context, db *sql.DB, now time.Time) (int64, error) {
	result, err := db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at < ?`, now.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("purging expired tokens: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purging expired tokens: %w", err)
	}
	return n, nil
}

// IsTokenRevoked reports whether the JTI has been revoked.
func IsTokenRevoked(ctx context.Context, db *sql.DB, jti string) (bool, error) {
	n, err := count(ctx, db, `SELECT COUNT(*) FROM revoked_tokens WHERE jti = ?`, jti)
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return n > 0, nil
}

// CountRevokedTokens returns the number of stored revocations.
func CountRevokedTokens(ctx context.Context, db *sql.DB) (int, error) {
	n, err := count(ctx, db, `SELECT COUNT(*) FROM revoked_tokens`)
	if err != nil {
		return 0, fmt.Errorf("counting revoked tokens: %w", err)
	}
	return n, nil
}
