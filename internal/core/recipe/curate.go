package recipe

import (
	"recipe-curator/internal/infrastructure/config"
	"recipe-curator/internal/pkg/common"

	"go.uber.org/zap"
)

// Curator 精選篩選器：高蛋白、好評、簡單的食譜才留下。
// 門檻都是設定常數，分類邏輯在 classify.go。
type Curator struct {
	cfg config.CurationConfig
}

// CurationStats 各階段的留存數與精選後的統計
type CurationStats struct {
	TotalInput      int `json:"total_input"`
	CompleteData    int `json:"complete_data"`
	HighProtein     int `json:"high_protein"`
	WellRated       int `json:"well_rated"`
	Simple          int `json:"simple"`
	AfterExclusions int `json:"after_exclusions"`

	BySource     map[common.ProteinSource]int `json:"by_source"`
	ByMealType   map[common.MealType]int      `json:"by_meal_type"`
	ByDifficulty map[common.Difficulty]int    `json:"by_difficulty"`
	AvgProtein   float64                      `json:"avg_protein"`
	AvgRating    float64                      `json:"avg_rating"`
}

// NewCurator 創建精選篩選器
func NewCurator(cfg config.CurationConfig) *Curator {
	return &Curator{cfg: cfg}
}

// Curate 依序套用篩選條件，再為留下的食譜補上分類欄位。
// 階段順序與各階段留存數是刻意保留的觀察點。
func (c *Curator) Curate(recipes []*common.Recipe) ([]*common.Recipe, *CurationStats) {
	stats := &CurationStats{TotalInput: len(recipes)}

	// 階段一：資料完整（標題、足夠的食材、至少一個步驟）
	filtered := filterRecipes(recipes, func(r *common.Recipe) bool {
		return r.Title != "" &&
			len(r.Ingredients) >= c.cfg.MinIngredients &&
			len(r.Directions) > 0
	})
	stats.CompleteData = len(filtered)

	// 階段二：蛋白質落在合理區間（上限排除資料錯誤）
	filtered = filterRecipes(filtered, func(r *common.Recipe) bool {
		return r.Protein != nil &&
			*r.Protein >= c.cfg.MinProtein &&
			*r.Protein <= c.cfg.MaxProtein
	})
	stats.HighProtein = len(filtered)

	// 階段三：評分達標
	filtered = filterRecipes(filtered, func(r *common.Recipe) bool {
		return r.Rating != nil && *r.Rating >= c.cfg.MinRating
	})
	stats.WellRated = len(filtered)

	// 階段四：食材數不超標
	filtered = filterRecipes(filtered, func(r *common.Recipe) bool {
		return len(r.Ingredients) <= c.cfg.MaxIngredients
	})
	stats.Simple = len(filtered)

	// 階段五：排除甜點、飲料、麵包類
	filtered = filterRecipes(filtered, func(r *common.Recipe) bool {
		return !ShouldExclude(r)
	})
	stats.AfterExclusions = len(filtered)

	// 補上分類欄位
	for _, r := range filtered {
		Classify(r)
	}

	c.fillStats(filtered, stats)

	common.LogInfo("精選完成",
		zap.Int("輸入", stats.TotalInput),
		zap.Int("資料完整", stats.CompleteData),
		zap.Int("高蛋白", stats.HighProtein),
		zap.Int("好評", stats.WellRated),
		zap.Int("簡單", stats.Simple),
		zap.Int("排除後", stats.AfterExclusions),
	)

	return filtered, stats
}

// fillStats 統計精選結果的分布與平均值
func (c *Curator) fillStats(recipes []*common.Recipe, stats *CurationStats) {
	stats.BySource = make(map[common.ProteinSource]int)
	stats.ByMealType = make(map[common.MealType]int)
	stats.ByDifficulty = make(map[common.Difficulty]int)

	var proteinSum, ratingSum float64
	var proteinN, ratingN int

	for _, r := range recipes {
		stats.BySource[r.ProteinSource]++
		stats.ByMealType[r.MealType]++
		stats.ByDifficulty[r.Difficulty]++

		if r.Protein != nil {
			proteinSum += *r.Protein
			proteinN++
		}
		if r.Rating != nil {
			ratingSum += *r.Rating
			ratingN++
		}
	}

	if proteinN > 0 {
		stats.AvgProtein = proteinSum / float64(proteinN)
	}
	if ratingN > 0 {
		stats.AvgRating = ratingSum / float64(ratingN)
	}
}

func filterRecipes(recipes []*common.Recipe, keep func(*common.Recipe) bool) []*common.Recipe {
	out := make([]*common.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
