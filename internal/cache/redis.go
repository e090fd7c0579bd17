// Package cache реализует storage.Store поверх Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/finance-calculator/internal/config"
)

// Redis хранит каждый документ отдельным строковым ключом.
type Redis struct {
	Db     *redis.Client
	prefix string
	ttl    time.Duration
}

// New подключается к Redis и проверяет соединение.
func New(ctx context.Context, cfg config.RedisConnection) (*Redis, error) {
	const op = "cache.New"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Redis{Db: db, prefix: cfg.KeyPrefix, ttl: cfg.TTL}, nil
}

func (c *Redis) key(k string) string {
	return c.prefix + k
}

// Get реализует storage.Store.
func (c *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	const op = "cache.Redis.Get"
	val, err := c.Db.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal(val, dst); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set реализует storage.Store. Нулевой TTL означает хранение без срока.
func (c *Redis) Set(ctx context.Context, key string, value any) error {
	const op = "cache.Redis.Set"
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = c.Db.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete реализует storage.Store.
func (c *Redis) Delete(ctx context.Context, key string) error {
	const op = "cache.Redis.Delete"
	if err := c.Db.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Ping проверяет подключение к Redis.
func (c *Redis) Ping(ctx context.Context) error {
	return c.Db.Ping(ctx).Err()
}

// Close закрывает клиент.
func (c *Redis) Close() error {
	return c.Db.Close()
}
