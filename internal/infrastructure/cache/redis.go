package cache

import (
	"context"
	"fmt"
	"strconv"

	"recipe-curator/internal/infrastructure/config"
	"recipe-curator/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// redisCache Redis 估價快取，多個行程共用同一份估價結果時使用
type redisCache struct {
	client *redis.Client
	config *config.Config
}

// newRedisCache 創建 Redis 快取
func newRedisCache(cfg *config.Config) (*redisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 估價快取已初始化",
		zap.String("addr", cfg.Cache.RedisAddr),
		zap.Duration("存活時間", cfg.Cache.TTL),
	)

	return &redisCache{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取快取的估價
func (s *redisCache) Get(ctx context.Context, key string) (float64, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("redis", key)
			return 0, common.ErrCacheMiss
		}
		return 0, fmt.Errorf("failed to get cache: %w", err)
	}

	price, err := strconv.ParseFloat(data, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse cached price: %w", err)
	}
	common.LogCacheHit("redis", key)
	return price, nil
}

// Set 設置估價快取
func (s *redisCache) Set(ctx context.Context, key string, price float64) error {
	data := strconv.FormatFloat(price, 'f', -1, 64)
	if err := s.client.Set(ctx, key, data, s.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Stats 獲取快取統計信息
func (s *redisCache) Stats() map[string]interface{} {
	return map[string]interface{}{
		"backend": "redis",
		"addr":    s.config.Cache.RedisAddr,
	}
}

// Close 關閉 Redis 連線
func (s *redisCache) Close() error {
	return s.client.Close()
}
