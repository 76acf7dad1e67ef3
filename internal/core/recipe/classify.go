package recipe

import (
	"strings"

	"recipe-curator/internal/pkg/common"
)

// proteinRule 蛋白質來源規則：宣告順序就是比對優先序
type proteinRule struct {
	source   common.ProteinSource
	keywords []string
}

// proteinRules 依宣告順序比對，先中者勝，都沒中歸為 other。
// 順序是契約：同時提到 chicken 與 beef 的食譜永遠分到 chicken。
var proteinRules = []proteinRule{
	{common.ProteinChicken, []string{"chicken", "poultry"}},
	{common.ProteinBeef, []string{"beef", "steak", "ground beef", "chuck", "sirloin", "ribeye", "brisket"}},
	{common.ProteinPork, []string{"pork", "bacon", "ham", "sausage", "prosciutto"}},
	{common.ProteinSeafood, []string{"fish", "salmon", "tuna", "shrimp", "cod", "halibut", "tilapia", "mahi", "trout", "sea bass", "crab", "lobster", "scallop"}},
	{common.ProteinTurkey, []string{"turkey"}},
	{common.ProteinLamb, []string{"lamb"}},
	{common.ProteinEggs, []string{"egg", "eggs", "frittata", "omelet", "omelette"}},
}

// mealRule 餐別規則。category 比對是整個分類標籤的相等比對，
// includeTitle 的規則另外對標題做子字串比對。
type mealRule struct {
	meal         common.MealType
	keywords     []string
	includeTitle bool
}

// mealRules 依宣告順序比對，先中者勝，後面的規則一旦前面命中
// 就不會再被評估（Soup 優先於 Salad 是契約，不是巧合）。
var mealRules = []mealRule{
	{common.MealBreakfast, []string{"breakfast", "brunch", "egg"}, true},
	{common.MealSoup, []string{"soup", "stew", "chili"}, false},
	{common.MealSalad, []string{"salad"}, false},
	{common.MealAppetizer, []string{"appetizer", "starter"}, false},
}

// excludeKeywords 精選階段的排除清單：甜點、飲料、碳水為主的早餐
var excludeKeywords = []string{
	"dessert", "cake", "cookie", "pie", "chocolate", "candy", "brownie",
	"cocktail", "drink", "beverage", "smoothie", "juice",
	"bread", "muffin", "pancake", "waffle",
}

// DetectProteinSource 從標題＋分類＋食材的合併文字偵測主要蛋白質來源
func DetectProteinSource(r *common.Recipe) common.ProteinSource {
	text := r.SearchText()
	for _, rule := range proteinRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.source
			}
		}
	}
	return common.ProteinOther
}

// DetectMealType 依固定優先序判斷餐別，預設 entree
func DetectMealType(r *common.Recipe) common.MealType {
	cats := lowerAll(r.Categories)
	title := strings.ToLower(r.Title)

	for _, rule := range mealRules {
		for _, kw := range rule.keywords {
			if containsString(cats, kw) {
				return rule.meal
			}
			if rule.includeTitle && strings.Contains(title, kw) {
				return rule.meal
			}
		}
	}
	return common.MealEntree
}

// DetectDifficulty 依食材數與步驟數的門檻估計難度
func DetectDifficulty(r *common.Recipe) common.Difficulty {
	numIngredients := len(r.Ingredients)
	numSteps := len(r.Directions)

	switch {
	case numIngredients <= 6 && numSteps <= 4:
		return common.DifficultyEasy
	case numIngredients <= 10 && numSteps <= 7:
		return common.DifficultyMedium
	default:
		return common.DifficultyInvolved
	}
}

// ShouldExclude 檢查食譜是否該被排除（甜點、飲料、麵包類）。
// 沒有分類標籤的食譜不排除。
func ShouldExclude(r *common.Recipe) bool {
	if len(r.Categories) == 0 {
		return false
	}

	cats := lowerAll(r.Categories)
	title := strings.ToLower(r.Title)

	for _, kw := range excludeKeywords {
		if containsString(cats, kw) || strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// Classify 將分類結果寫回食譜記錄
func Classify(r *common.Recipe) {
	r.ProteinSource = DetectProteinSource(r)
	r.MealType = DetectMealType(r)
	r.Difficulty = DetectDifficulty(r)
	r.NumIngredients = len(r.Ingredients)
	r.NumSteps = len(r.Directions)
}

func lowerAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}

func containsString(ss []string, target string) bool {
	for _, s := range ss {
		if s == target {
			return true
		}
	}
	return false
}
