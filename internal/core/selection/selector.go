package selection

import (
	"math/rand"
	"strings"
	"time"

	"recipe-curator/internal/infrastructure/config"
	"recipe-curator/internal/pkg/common"

	"go.uber.org/zap"
)

// mealTypeCategories 選餐用的餐別對應分類標籤表。
// 與 classify.go 的餐別規則不同：這張表拿原始分類標籤做比對，
// 服務的是「今晚想吃什麼」的篩選，不是標註。
var mealTypeCategories = map[string][]string{
	"entree": {
		"Main Course", "Dinner", "Lunch", "Entrée",
		"Chicken", "Beef", "Pork", "Fish", "Seafood", "Pasta", "Rice",
		"Stew", "Roast", "Grill/Barbecue", "Meat", "Poultry",
	},
	"dessert": {
		"Dessert", "Cake", "Cookie", "Pie", "Chocolate", "Ice Cream",
		"Pudding", "Brownie", "Tart", "Candy", "Cheesecake", "Fruit Dessert",
	},
	"appetizer": {
		"Appetizer", "Starter", "Hors d'Oeuvre", "Dip", "Snack",
		"Finger Food", "Canapé",
	},
	"breakfast": {
		"Breakfast", "Brunch", "Pancake", "Waffle", "Egg",
		"Morning", "Cereal",
	},
	"side": {
		"Side", "Salad", "Vegetable", "Potato", "Rice",
	},
	"soup": {
		"Soup", "Stew", "Chili", "Broth",
	},
}

// Selector 隨機選餐器：套用篩選條件後依評分加權抽樣
type Selector struct {
	cfg config.SelectionConfig
	rng *rand.Rand
}

// NewSelector 創建選餐器
func NewSelector(cfg config.SelectionConfig) *Selector {
	return NewSelectorSeeded(cfg, time.Now().UnixNano())
}

// NewSelectorSeeded 以固定種子創建選餐器（測試用）
func NewSelectorSeeded(cfg config.SelectionConfig, seed int64) *Selector {
	return &Selector{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Filter 套用評分、蛋白質來源與餐別篩選。
// 沒有評分的食譜通過評分門檻（缺資料不等於爛食譜）。
func (s *Selector) Filter(recipes []*common.Recipe) []*common.Recipe {
	out := recipes

	out = keep(out, func(r *common.Recipe) bool {
		return r.Rating == nil || *r.Rating >= s.cfg.MinRating
	})
	common.LogInfo("評分篩選後", zap.Int("剩餘", len(out)), zap.Float64("min_rating", s.cfg.MinRating))

	if src := strings.ToLower(s.cfg.ProteinSource); src != "" && src != "any" {
		out = keep(out, func(r *common.Recipe) bool {
			return strings.ToLower(string(r.ProteinSource)) == src
		})
		common.LogInfo("蛋白質來源篩選後", zap.Int("剩餘", len(out)), zap.String("protein_source", src))
	}

	if meal := strings.ToLower(s.cfg.MealType); meal != "" && meal != "any" {
		targets := mealTypeCategories[meal]
		if len(targets) > 0 {
			out = keep(out, func(r *common.Recipe) bool {
				return hasMatchingCategory(r.Categories, targets)
			})
			common.LogInfo("餐別篩選後", zap.Int("剩餘", len(out)), zap.String("meal_type", meal))
		}
	}

	if len(out) < s.cfg.NumRecipes {
		common.LogWarn("符合條件的食譜少於需求數",
			zap.Int("剩餘", len(out)),
			zap.Int("需求", s.cfg.NumRecipes),
		)
	}

	return out
}

// Pick 依評分加權隨機抽出 n 份食譜（不重複）。
// 沒有評分的食譜以平均評分代入權重；完全沒有評分資料時均勻抽樣。
func (s *Selector) Pick(recipes []*common.Recipe, n int) []*common.Recipe {
	if n <= 0 || len(recipes) == 0 {
		return nil
	}
	if n > len(recipes) {
		n = len(recipes)
	}

	weights := ratingWeights(recipes)

	// 不放回的加權抽樣
	pool := make([]*common.Recipe, len(recipes))
	copy(pool, recipes)

	picked := make([]*common.Recipe, 0, n)
	for len(picked) < n {
		i := s.drawIndex(weights)
		picked = append(picked, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
		weights = append(weights[:i], weights[i+1:]...)
	}
	return picked
}

// drawIndex 依權重抽一個索引
func (s *Selector) drawIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return s.rng.Intn(len(weights))
	}

	target := s.rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}

// ratingWeights 計算評分權重：rating - min + 1，缺評分補平均值
func ratingWeights(recipes []*common.Recipe) []float64 {
	sum, n := 0.0, 0
	minRating := 0.0
	first := true
	for _, r := range recipes {
		if r.Rating == nil {
			continue
		}
		sum += *r.Rating
		n++
		if first || *r.Rating < minRating {
			minRating = *r.Rating
			first = false
		}
	}

	weights := make([]float64, len(recipes))
	if n == 0 {
		// 全部沒有評分：均勻權重
		for i := range weights {
			weights[i] = 1
		}
		return weights
	}

	mean := sum / float64(n)
	for i, r := range recipes {
		rating := mean
		if r.Rating != nil {
			rating = *r.Rating
		}
		weights[i] = rating - minRating + 1
	}
	return weights
}

func keep(recipes []*common.Recipe, pred func(*common.Recipe) bool) []*common.Recipe {
	out := make([]*common.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func hasMatchingCategory(categories, targets []string) bool {
	if len(categories) == 0 {
		return false
	}
	for _, c := range categories {
		cl := strings.ToLower(c)
		for _, t := range targets {
			if cl == strings.ToLower(t) {
				return true
			}
		}
	}
	return false
}
