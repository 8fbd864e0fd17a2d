package entitlement

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ovoz-voice-service:"

// RedisStore keeps one hash per user under the service key prefix.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(addr, username, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{rdb: rdb}, nil
}

// NewRedisStoreFromClient wraps an already-connected client.
func NewRedisStoreFromClient(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func userKey(userID string) string {
	return keyPrefix + "user:entitlement:" + userID
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*Record, error) {
	fields, err := s.rdb.HGetAll(ctx, userKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("could not load entitlement for user %s: %w", userID, err)
	}
	if len(fields) == 0 {
		return nil, nil // never registered
	}
	consumed, err := strconv.Atoi(fields["consumed"])
	if err != nil {
		return nil, fmt.Errorf("corrupt consumed field for user %s: %w", userID, err)
	}
	limit, err := strconv.Atoi(fields["limit"])
	if err != nil {
		return nil, fmt.Errorf("corrupt limit field for user %s: %w", userID, err)
	}
	return &Record{Consumed: consumed, Limit: limit}, nil
}

func (s *RedisStore) Set(ctx context.Context, userID string, rec Record) error {
	err := s.rdb.HSet(ctx, userKey(userID),
		"consumed", rec.Consumed,
		"limit", rec.Limit,
	).Err()
	if err != nil {
		return fmt.Errorf("could not save entitlement for user %s: %w", userID, err)
	}
	return nil
}

func (s *RedisStore) IncrementConsumed(ctx context.Context, userID string) error {
	exists, err := s.rdb.Exists(ctx, userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("could not check entitlement for user %s: %w", userID, err)
	}
	if exists == 0 {
		return ErrNotRegistered
	}
	return s.rdb.HIncrBy(ctx, userKey(userID), "consumed", 1).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
