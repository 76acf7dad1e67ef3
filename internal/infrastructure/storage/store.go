package storage

import (
	"context"
	"fmt"

	"recipe-curator/internal/infrastructure/config"
	"recipe-curator/internal/pkg/common"
)

// RecipeSet 資料集名稱：原始匯入集或精選集
type RecipeSet string

const (
	SetRaw     RecipeSet = "raw"
	SetCurated RecipeSet = "curated"
)

// Store 食譜持久層。Save 整批覆寫指定的資料集。
type Store interface {
	Load(ctx context.Context, set RecipeSet) ([]*common.Recipe, error)
	Save(ctx context.Context, set RecipeSet, recipes []*common.Recipe) error
	Close() error
}

// New 依設定創建持久層（json 或 sqlite）
func New(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "json":
		return NewJSONStore(cfg.Path, cfg.CuratedPath), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}
