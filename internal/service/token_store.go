package service

import (
	"context"
	"fmt"
	"time"

	"hospital-management-system/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore remembers which issued tokens are still live. A token that is
// not in the store has been revoked or has expired.
type TokenStore interface {
	Store(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) error
	// RevokeAll drops every token of userID, e.g. after the account is disabled.
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

// TokenKey is the redis key marking a token as live.
func TokenKey(tokenType jwt.TokenType, userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s_token:%s:%s", tokenType, userID.String(), tokenID)
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func (s *redisTokenStore) Store(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, TokenKey(tokenType, userID, tokenID), "valid", ttl).Err(); err != nil {
		return fmt.Errorf("store %s token: %w", tokenType, err)
	}
	return nil
}

func (s *redisTokenStore) Exists(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	exists, err := s.client.Exists(ctx, TokenKey(tokenType, userID, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check %s token: %w", tokenType, err)
	}
	return exists > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) error {
	if err := s.client.Del(ctx, TokenKey(tokenType, userID, tokenID)).Err(); err != nil {
		return fmt.Errorf("revoke %s token: %w", tokenType, err)
	}
	return nil
}

func (s *redisTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, tokenType := range []jwt.TokenType{jwt.AccessToken, jwt.RefreshToken} {
		pattern := TokenKey(tokenType, userID, "*")
		iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("scan %s tokens: %w", tokenType, err)
		}
		if len(keys) == 0 {
			continue
		}
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("revoke %s tokens: %w", tokenType, err)
		}
	}
	return nil
}
