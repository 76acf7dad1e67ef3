package ingredient

import (
	"math"

	"recipe-curator/internal/pkg/common"
)

const (
	// DefaultUnmatchedCost 目錄查不到時的固定雜項價。
	// 刻意忽略解析出的數量——這是「平均雜項食材」的假設，不是 bug。
	DefaultUnmatchedCost = 1.50

	// cupToPoundRatio 容量轉重量的粗略近似：一杯約半磅
	cupToPoundRatio = 0.5

	// defaultServings 未知餐別的預設份數
	defaultServings = 4
)

// LineEstimate 單行食材的估價明細
type LineEstimate struct {
	Line       string    `json:"line"`
	Normalized string    `json:"normalized"`
	Magnitude  float64   `json:"magnitude"`
	Unit       UnitClass `json:"unit"`
	Matched    bool      `json:"matched"`
	MatchedKey string    `json:"matched_key,omitempty"`
	UnitPrice  float64   `json:"unit_price,omitempty"`
	Cost       float64   `json:"cost"`
}

// Estimator 食材成本估算器。目錄唯讀共用，估算本身無狀態，
// 可以在多個 goroutine 平行呼叫。
type Estimator struct {
	catalog *Catalog
}

// NewEstimator 建立估算器
func NewEstimator(catalog *Catalog) *Estimator {
	return &Estimator{catalog: catalog}
}

// Estimate 估算單行食材的成本與明細。
// 正規化與數量解析都各自作用在原始文字上，互不相依。
func (e *Estimator) Estimate(line string) LineEstimate {
	normalized := Normalize(line)
	qty := ExtractQuantity(line)

	est := LineEstimate{
		Line:       line,
		Normalized: normalized,
		Magnitude:  qty.Magnitude,
		Unit:       qty.Unit,
	}

	entry, ok := e.catalog.Match(normalized)
	if !ok {
		// 查不到就用固定雜項價，數量不參與計算
		est.Cost = DefaultUnmatchedCost
		return est
	}

	est.Matched = true
	est.MatchedKey = entry.Key
	est.UnitPrice = entry.Price

	switch qty.Unit {
	case UnitPound:
		est.Cost = qty.Magnitude * entry.Price
	case UnitCup:
		est.Cost = qty.Magnitude * entry.Price * cupToPoundRatio
	default:
		// 個數類直接把單價當每個的價格用（蛋、柑橘類）
		est.Cost = qty.Magnitude * entry.Price
	}
	return est
}

// LineCost 估算單行食材的成本
func (e *Estimator) LineCost(line string) float64 {
	return e.Estimate(line).Cost
}

// ServingsFor 依餐別估計份數
func ServingsFor(mealType common.MealType) int {
	switch mealType {
	case common.MealSoup:
		return 6
	case common.MealAppetizer:
		return 8
	case common.MealSalad:
		return defaultServings // 與預設相同，明列為已知情況
	default:
		return defaultServings
	}
}

// RecipePrice 估算整份食譜的每份價格（四捨五入到小數兩位）。
// 沒有食材的食譜回傳 nil（「未知」而不是零）。
func (e *Estimator) RecipePrice(r *common.Recipe) *float64 {
	if len(r.Ingredients) == 0 {
		return nil
	}

	total := 0.0
	for _, line := range r.Ingredients {
		total += e.LineCost(line)
	}

	servings := ServingsFor(r.MealType)
	if servings <= 0 {
		// 固定規則下到不了這裡，仍然防一手：退回未除份數的總價
		return common.Float64Ptr(total)
	}

	perServing := math.Round(total/float64(servings)*100) / 100
	return common.Float64Ptr(perServing)
}
