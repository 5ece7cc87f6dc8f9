package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// TokenRepository records revoked access tokens by fingerprint. MySQL is the
// source of truth; Redis, when present, answers the per-request lookups.
type TokenRepository struct {
	db    *sqlx.DB
	redis *redis.Client
}

func NewTokenRepository(db *sqlx.DB, redisClient *redis.Client) *TokenRepository {
	return &TokenRepository{db: db, redis: redisClient}
}

func (r *TokenRepository) Revoke(ctx context.Context, fingerprint string, expiresAt time.Time) error {
	query := `INSERT INTO tb_token_blacklist (token, expired_at) VALUES (?, ?)
	          ON DUPLICATE KEY UPDATE expired_at = VALUES(expired_at)`
	if _, err := r.db.ExecContext(ctx, query, fingerprint, expiresAt); err != nil {
		return err
	}

	if r.redis != nil {
		ttl := time.Until(expiresAt)
		if ttl > 0 {
			if err := r.redis.Set(ctx, revokedKeyPrefix+fingerprint, "1", ttl).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *TokenRepository) IsRevoked(ctx context.Context, fingerprint string) (bool, error) {
	if r.redis != nil {
		err := r.redis.Get(ctx, revokedKeyPrefix+fingerprint).Err()
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, redis.Nil) {
			return false, err
		}
		// a miss may mean the cache was flushed; fall through to MySQL
	}

	var n int
	query := "SELECT COUNT(*) FROM tb_token_blacklist WHERE token = ? AND expired_at > ?"
	if err := r.db.GetContext(ctx, &n, query, fingerprint, time.Now()); err != nil {
		return false, err
	}
	return n > 0, nil
}

// PurgeExpired drops entries whose tokens can no longer validate anyway.
func (r *TokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tb_token_blacklist WHERE expired_at <= ?", time.Now())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
