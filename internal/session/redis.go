package session

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStorage, anahtarları önekli olarak Redis'te tutar. Yerel diskin kalıcı
// olmadığı kiosk kurulumları içindir.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage, yeni bir RedisStorage örneği oluşturur
func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

// Get, anahtarın değerini döndürür.
func (rs *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := rs.client.Get(ctx, rs.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "redis get %s", key)
	}
	return v, true, nil
}

// Set, değeri süresiz olarak kaydeder.
func (rs *RedisStorage) Set(ctx context.Context, key, value string) error {
	return errors.Wrapf(rs.client.Set(ctx, rs.prefix+key, value, 0).Err(), "redis set %s", key)
}
