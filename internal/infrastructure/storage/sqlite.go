package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"recipe-curator/internal/pkg/common"

	"go.uber.org/zap"
)

// SQLiteStore 以 SQLite 保存食譜。食材、步驟、分類放子表，
// 用 position 欄位保住原本的順序。
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore 開啟資料庫並初始化 schema
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close 關閉資料庫連線
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS recipes (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        recipe_set TEXT NOT NULL,
        position INTEGER NOT NULL,
        title TEXT NOT NULL,
        rating REAL,
        protein REAL,
        calories REAL,
        fat REAL,
        sodium REAL,
        estimated_price REAL,
        protein_source TEXT NOT NULL DEFAULT '',
        meal_type TEXT NOT NULL DEFAULT '',
        difficulty TEXT NOT NULL DEFAULT '',
        num_ingredients INTEGER NOT NULL DEFAULT 0,
        num_steps INTEGER NOT NULL DEFAULT 0
    );

    CREATE TABLE IF NOT EXISTS recipe_lines (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        recipe_id INTEGER NOT NULL,
        kind TEXT NOT NULL,
        position INTEGER NOT NULL,
        value TEXT NOT NULL,
        FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
    );

    CREATE INDEX IF NOT EXISTS idx_recipes_set ON recipes(recipe_set, position);
    CREATE INDEX IF NOT EXISTS idx_recipe_lines_recipe ON recipe_lines(recipe_id, kind, position);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Load 讀取指定資料集，照保存時的順序回傳
func (s *SQLiteStore) Load(ctx context.Context, set RecipeSet) ([]*common.Recipe, error) {
	query := `
        SELECT id, title, rating, protein, calories, fat, sodium, estimated_price,
               protein_source, meal_type, difficulty, num_ingredients, num_steps
        FROM recipes
        WHERE recipe_set = ?
        ORDER BY position
    `

	rows, err := s.db.QueryContext(ctx, query, string(set))
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*common.Recipe
	var ids []int64
	for rows.Next() {
		r := &common.Recipe{}
		var id int64
		var rating, protein, calories, fat, sodium, price sql.NullFloat64
		var source, meal, difficulty string

		err := rows.Scan(&id, &r.Title, &rating, &protein, &calories, &fat, &sodium,
			&price, &source, &meal, &difficulty, &r.NumIngredients, &r.NumSteps)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}

		r.Rating = nullableFloat(rating)
		r.Protein = nullableFloat(protein)
		r.Calories = nullableFloat(calories)
		r.Fat = nullableFloat(fat)
		r.Sodium = nullableFloat(sodium)
		r.EstimatedPrice = nullableFloat(price)
		r.ProteinSource = common.ProteinSource(source)
		r.MealType = common.MealType(meal)
		r.Difficulty = common.Difficulty(difficulty)

		recipes = append(recipes, r)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}

	for i, r := range recipes {
		if err := s.loadLines(ctx, ids[i], r); err != nil {
			return nil, fmt.Errorf("failed to load lines for %q: %w", r.Title, err)
		}
	}

	if len(recipes) == 0 {
		common.LogWarn("資料庫內沒有該資料集", zap.String("set", string(set)))
		return nil, common.ErrStoreNotFound
	}

	common.LogInfo("載入食譜", zap.String("set", string(set)), zap.Int("count", len(recipes)))
	return recipes, nil
}

// Save 整批覆寫指定資料集（刪掉舊資料後在同一交易內重寫）
func (s *SQLiteStore) Save(ctx context.Context, set RecipeSet, recipes []*common.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        DELETE FROM recipe_lines WHERE recipe_id IN (SELECT id FROM recipes WHERE recipe_set = ?)
    `, string(set))
	if err != nil {
		return fmt.Errorf("failed to clear recipe lines: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE recipe_set = ?`, string(set)); err != nil {
		return fmt.Errorf("failed to clear recipes: %w", err)
	}

	recipeQuery := `
        INSERT INTO recipes (recipe_set, position, title, rating, protein, calories, fat, sodium,
                             estimated_price, protein_source, meal_type, difficulty,
                             num_ingredients, num_steps)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	lineQuery := `
        INSERT INTO recipe_lines (recipe_id, kind, position, value)
        VALUES (?, ?, ?, ?)
    `

	for pos, r := range recipes {
		res, err := tx.ExecContext(ctx, recipeQuery,
			string(set), pos, r.Title,
			floatValue(r.Rating), floatValue(r.Protein), floatValue(r.Calories),
			floatValue(r.Fat), floatValue(r.Sodium), floatValue(r.EstimatedPrice),
			string(r.ProteinSource), string(r.MealType), string(r.Difficulty),
			r.NumIngredients, r.NumSteps)
		if err != nil {
			return fmt.Errorf("failed to insert recipe %q: %w", r.Title, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get recipe id: %w", err)
		}

		for kind, lines := range map[string][]string{
			"ingredient": r.Ingredients,
			"direction":  r.Directions,
			"category":   r.Categories,
		} {
			for i, value := range lines {
				if _, err := tx.ExecContext(ctx, lineQuery, id, kind, i, value); err != nil {
					return fmt.Errorf("failed to insert %s line: %w", kind, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	common.LogInfo("保存食譜", zap.String("set", string(set)), zap.Int("count", len(recipes)))
	return nil
}

func (s *SQLiteStore) loadLines(ctx context.Context, id int64, r *common.Recipe) error {
	rows, err := s.db.QueryContext(ctx, `
        SELECT kind, value FROM recipe_lines
        WHERE recipe_id = ?
        ORDER BY kind, position
    `, id)
	if err != nil {
		return fmt.Errorf("failed to query lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, value string
		if err := rows.Scan(&kind, &value); err != nil {
			return fmt.Errorf("failed to scan line: %w", err)
		}
		switch kind {
		case "ingredient":
			r.Ingredients = append(r.Ingredients, value)
		case "direction":
			r.Directions = append(r.Directions, value)
		case "category":
			r.Categories = append(r.Categories, value)
		}
	}
	return rows.Err()
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func floatValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
