package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iskolardev/paygate/internal/pkg/database"
	"github.com/iskolardev/paygate/internal/pkg/logger"
	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/iskolardev/paygate/services/auth"
)

const userCacheTTL = 5 * time.Minute

func userCacheKey(uid string) string {
	return fmt.Sprintf("paygate:user:%s", uid)
}

// AuthRepo implements the auth.AuthRepo interface on top of PostgreSQL
// with a Redis read-through cache
type AuthRepo struct {
	db    *sqlx.DB
	redis *database.RedisClient
}

// NewAuthRepo creates a new auth repository
func NewAuthRepo(db *sqlx.DB, redisClient *database.RedisClient) *AuthRepo {
	return &AuthRepo{
		db:    db,
		redis: redisClient,
	}
}

// GetUser retrieves a user by ID. Cache misses and cache failures fall
// through to the database; role changes take effect within the TTL.
func (r *AuthRepo) GetUser(ctx context.Context, uid string) (*models.User, error) {
	if r.redis != nil {
		if cached, err := r.redis.Get(ctx, userCacheKey(uid)); err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(cached), &user); err == nil {
				return &user, nil
			}
		}
	}

	var user models.User
	query := `
		SELECT id, email, role, created_at, updated_at, is_active
		FROM users
		WHERE id = $1`
	if err := r.db.GetContext(ctx, &user, query, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	r.cacheUser(ctx, &user)

	return &user, nil
}

func (r *AuthRepo) cacheUser(ctx context.Context, user *models.User) {
	if r.redis == nil {
		return
	}

	data, err := json.Marshal(user)
	if err != nil {
		return
	}

	if err := r.redis.Set(ctx, userCacheKey(user.ID), string(data), userCacheTTL); err != nil {
		logger.Warn("Failed to cache user",
			logger.String("user_id", user.ID),
			logger.Err(err))
	}
}
