package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"recipe-curator/internal/infrastructure/config"
	"recipe-curator/internal/pkg/common"
)

// PriceCache 食譜估價快取。key 是食材清單的指紋，value 是每份價格。
// 快取命中只是省下重算，不影響「已定價就跳過」的語義。
type PriceCache interface {
	Get(ctx context.Context, key string) (float64, error)
	Set(ctx context.Context, key string, price float64) error
	Stats() map[string]interface{}
	Close() error
}

// New 依設定建立快取。停用時回傳 nil（呼叫端需自行判空）；
// 設定了 redis 位址就用 Redis，否則用行程內記憶體快取。
func New(cfg *config.Config) (PriceCache, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}
	if cfg.Cache.RedisAddr != "" {
		return newRedisCache(cfg)
	}
	return newMemoryCache(cfg), nil
}

// Fingerprint 產生食譜的快取鍵：餐別影響份數，所以一併納入指紋
func Fingerprint(r *common.Recipe) string {
	h := sha256.Sum256([]byte(string(r.MealType) + "\n" + strings.Join(r.Ingredients, "\n")))
	return fmt.Sprintf("price:%s", hex.EncodeToString(h[:]))
}
