package redisx

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func Exists(ctx context.Context, rdb *redis.Client, key string) (bool, error) {
	n, err := rdb.Exists(ctx, key).Result()
	return n > 0, err
}

// TokenStore is the persisted client storage holding the API bearer token.
type TokenStore struct {
	rdb *redis.Client
	key string
}

func NewTokenStore(rdb *redis.Client, key string) *TokenStore {
	if key == "" {
		key = KeyAuthToken
	}
	return &TokenStore{rdb: rdb, key: key}
}

// Token returns "" without error when no token has been saved.
func (s *TokenStore) Token(ctx context.Context) (string, error) {
	v, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

// Save stores the token; ttl 0 keeps it until Clear.
func (s *TokenStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.key, token, ttl).Err()
}

func (s *TokenStore) Present(ctx context.Context) (bool, error) {
	return Exists(ctx, s.rdb, s.key)
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key).Err()
}
