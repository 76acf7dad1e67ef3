package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"recipe-curator/internal/pkg/common"

	"go.uber.org/zap"
)

// JSONStore 以 JSON 檔保存食譜，原始集與精選集各一個檔。
// 寫入走 temp 檔加 rename，避免寫到一半留下壞檔。
type JSONStore struct {
	rawPath     string
	curatedPath string
}

// NewJSONStore 創建 JSON 檔持久層
func NewJSONStore(rawPath, curatedPath string) *JSONStore {
	return &JSONStore{
		rawPath:     rawPath,
		curatedPath: curatedPath,
	}
}

// Load 讀取指定資料集的所有食譜
func (s *JSONStore) Load(ctx context.Context, set RecipeSet) ([]*common.Recipe, error) {
	path, err := s.pathFor(set)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			common.LogWarn("食譜資料檔不存在", zap.String("path", path))
			return nil, common.ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to read recipes file: %w", err)
	}

	var recipes []*common.Recipe
	if err := common.ParseJSONBytes(data, &recipes); err != nil {
		common.LogError("食譜資料檔解析失敗", zap.String("path", path), zap.Error(err))
		return nil, common.ErrStoreCorrupt
	}

	common.LogInfo("載入食譜",
		zap.String("set", string(set)),
		zap.String("path", path),
		zap.Int("count", len(recipes)),
	)
	return recipes, nil
}

// Save 整批覆寫指定資料集
func (s *JSONStore) Save(ctx context.Context, set RecipeSet, recipes []*common.Recipe) error {
	path, err := s.pathFor(set)
	if err != nil {
		return err
	}

	data, err := common.ToJSONIndent(recipes)
	if err != nil {
		return fmt.Errorf("failed to encode recipes: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write recipes file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace recipes file: %w", err)
	}

	common.LogInfo("保存食譜",
		zap.String("set", string(set)),
		zap.String("path", path),
		zap.Int("count", len(recipes)),
	)
	return nil
}

// Close 無資源需釋放
func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) pathFor(set RecipeSet) (string, error) {
	switch set {
	case SetRaw:
		return s.rawPath, nil
	case SetCurated:
		if s.curatedPath == "" {
			return "", fmt.Errorf("curated recipes path is not configured")
		}
		return s.curatedPath, nil
	default:
		return "", fmt.Errorf("unknown recipe set: %s", set)
	}
}
