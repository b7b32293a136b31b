package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	blacklistPrefix = "token:blacklist:"
	dashboardKey    = "stats:dashboard"
	dashboardTTL    = 5 * time.Minute
)

// Cache は Redis への薄いラッパー。client が nil でも安全に動作する。
type Cache struct {
	client *redis.Client
}

// NewCache は Redis に接続してキャッシュを返す
func NewCache(addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Disabled は Redis を使わない場合のキャッシュを返す
func Disabled() *Cache {
	return &Cache{}
}

// Enabled は Redis が利用可能かどうか
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// BlacklistToken はログアウトしたトークンを失効させる
func (c *Cache) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, blacklistPrefix+token, "1", ttl).Err()
}

// IsTokenBlacklisted はトークンが失効済みかどうか
func (c *Cache) IsTokenBlacklisted(ctx context.Context, token string) bool {
	if !c.Enabled() {
		return false
	}
	n, err := c.client.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// GetDashboard はキャッシュ済みのダッシュボード統計を取り出す
func (c *Cache) GetDashboard(ctx context.Context, out interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	data, err := c.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetDashboard はダッシュボード統計をキャッシュする
func (c *Cache) SetDashboard(ctx context.Context, v interface{}) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dashboardKey, data, dashboardTTL).Err()
}

// InvalidateDashboard はダッシュボード統計のキャッシュを破棄する
func (c *Cache) InvalidateDashboard(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	c.client.Del(ctx, dashboardKey)
}

// Close は Redis 接続を閉じる
func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
