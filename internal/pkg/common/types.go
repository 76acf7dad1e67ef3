package common

import "strings"

// ProteinSource 蛋白質來源分類
type ProteinSource string

const (
	ProteinChicken ProteinSource = "chicken"
	ProteinBeef    ProteinSource = "beef"
	ProteinPork    ProteinSource = "pork"
	ProteinSeafood ProteinSource = "seafood"
	ProteinTurkey  ProteinSource = "turkey"
	ProteinLamb    ProteinSource = "lamb"
	ProteinEggs    ProteinSource = "eggs"
	ProteinOther   ProteinSource = "other"
)

// MealType 餐別分類
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealSoup      MealType = "soup"
	MealSalad     MealType = "salad"
	MealAppetizer MealType = "appetizer"
	MealEntree    MealType = "entree"
)

// Difficulty 難度分類
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyInvolved Difficulty = "involved"
)

// Recipe 食譜記錄（對應 recipe store 的單筆資料）
// 注意：estimated_price 不加 omitempty——缺欄位、明確 null、有值
// 對「已定價就跳過」的規則有不同意義，序列化時要保留 null。
type Recipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Directions  []string `json:"directions"`
	Categories  []string `json:"categories,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Protein     *float64 `json:"protein,omitempty"`
	Calories    *float64 `json:"calories,omitempty"`
	Fat         *float64 `json:"fat,omitempty"`
	Sodium      *float64 `json:"sodium,omitempty"`

	// 以下欄位由 pipeline 回寫
	EstimatedPrice *float64      `json:"estimated_price"`
	ProteinSource  ProteinSource `json:"protein_source,omitempty"`
	MealType       MealType      `json:"meal_type,omitempty"`
	Difficulty     Difficulty    `json:"difficulty,omitempty"`
	NumIngredients int           `json:"num_ingredients,omitempty"`
	NumSteps       int           `json:"num_steps,omitempty"`
}

// HasPrice 檢查食譜是否已有估價（null 或缺欄位都視為未定價）
func (r *Recipe) HasPrice() bool {
	return r.EstimatedPrice != nil
}

// SearchText 組合標題、分類與食材的小寫文字，供關鍵字分類使用
func (r *Recipe) SearchText() string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(r.Title))
	for _, c := range r.Categories {
		sb.WriteByte(' ')
		sb.WriteString(strings.ToLower(c))
	}
	for _, ing := range r.Ingredients {
		sb.WriteByte(' ')
		sb.WriteString(strings.ToLower(ing))
	}
	return sb.String()
}

// Float64Ptr 回傳 float64 指標（建構 optional 欄位用）
func Float64Ptr(v float64) *float64 {
	return &v
}
