// Package redisstore keeps portal sessions in redis.
package redisstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

const keyPrefix = "mahd:session:"

// Storage is a session.Storage over redis. Values expire `ttl` after their last write.
type Storage struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ session.Storage = (*Storage)(nil)

func New(client redis.Cmdable, ttl time.Duration) *Storage {
	return &Storage{client: client, ttl: ttl}
}

// Connect opens a client for the configured redis server and checks it answers.
func Connect(ctx context.Context, conf core.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Address,
		Password: conf.Password,
		DB:       conf.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "redis ping failed")
	}
	return client, nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", session.ErrNotFound
		}
		return "", wrap(err, "redis get")
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, keyPrefix+key, value, s.ttl).Err(); err != nil {
		return wrap(err, "redis set")
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		return wrap(err, "redis del")
	}
	return nil
}

// wrap turns a closed client into a shutdown error: the portal cannot serve sessions without it.
func wrap(err error, msg string) error {
	if errors.Is(err, redis.ErrClosed) {
		return core.NewShutdownError(msg + ": " + err.Error())
	}
	return errors.Wrap(err, msg)
}
