// Package session keeps one active login session per account in redis.
// Tokens are JWTs naming the session; invalidating the session revokes them all.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"user_admin/internal/domain"
	"user_admin/internal/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:user:"

// Store issues, validates and revokes login sessions
type Store struct {
	rdb          *redis.Client
	secret       string
	ttl          time.Duration
	superAdminID uint64
}

// NewStore builds a Store signing tokens with secret
func NewStore(rdb *redis.Client, secret string, ttl time.Duration, superAdminID uint64) *Store {
	return &Store{rdb: rdb, secret: secret, ttl: ttl, superAdminID: superAdminID}
}

// Issue opens a new session for userID, replacing any previous one, and returns its token
func (s *Store) Issue(ctx context.Context, userID uint64) (string, error) {
	sid := uuid.NewString()
	if err := s.rdb.Set(ctx, key(userID), sid, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	token, err := utils.GenerateJWT(userID, sid, s.secret, s.ttl)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Validate resolves token into the caller it was issued to.
// The token must name the account's current session.
func (s *Store) Validate(ctx context.Context, token string) (domain.CallerIdentity, error) {
	claims, err := utils.ParseJWT(token, s.secret)
	if err != nil {
		return domain.CallerIdentity{}, domain.ErrUnauthorized
	}
	active, err := s.rdb.Get(ctx, key(claims.UserID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.CallerIdentity{}, domain.ErrUnauthorized
	}
	if err != nil {
		return domain.CallerIdentity{}, fmt.Errorf("load session: %w", err)
	}
	if active != claims.SessionID {
		return domain.CallerIdentity{}, domain.ErrUnauthorized
	}
	return domain.NewCaller(claims.UserID, s.superAdminID), nil
}

// Invalidate ends the active session of userID
func (s *Store) Invalidate(ctx context.Context, userID uint64) error {
	if err := s.rdb.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func key(userID uint64) string {
	return keyPrefix + strconv.FormatUint(userID, 10)
}
