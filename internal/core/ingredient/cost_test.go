package ingredient

import (
	"testing"

	"recipe-curator/internal/pkg/common"
)

func TestEstimateUnmatchedUsesFlatDefault(t *testing.T) {
	e := NewEstimator(DefaultCatalog())

	// 查不到目錄時固定 1.50，解析出的數量不參與計算
	for _, line := range []string{
		"xylophone extract",
		"5 cups xylophone extract",
		"100 lb xylophone extract",
	} {
		if got := e.LineCost(line); got != DefaultUnmatchedCost {
			t.Errorf("LineCost(%q) = %v, want %v", line, got, DefaultUnmatchedCost)
		}
	}
}

func TestEstimateByUnitClass(t *testing.T) {
	e := NewEstimator(DefaultCatalog())

	tests := []struct {
		name string
		line string
		want float64
	}{
		// 2 磅 × $5.00/磅
		{"pound", "2 lb chicken breast", 10.00},
		// 2 杯 × $3.00/磅 × 0.5 磅/杯
		{"cup", "2 cups fresh spinach", 3.00},
		// 3 個 × $0.25/個
		{"count", "3 eggs", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.LineCost(tt.line); !almostEqual(got, tt.want) {
				t.Errorf("LineCost(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestRecipePriceEmptyIngredients(t *testing.T) {
	e := NewEstimator(DefaultCatalog())

	// 沒有食材 → 價格未知（nil），不是零也不是錯誤
	if got := e.RecipePrice(&common.Recipe{Title: "Mystery"}); got != nil {
		t.Errorf("RecipePrice = %v, want nil", *got)
	}
}

func TestRecipePricePerServingByMealType(t *testing.T) {
	e := NewEstimator(DefaultCatalog())

	// 8 項未匹配食材 × $1.50 = $12.00 總價
	ingredients := make([]string, 8)
	for i := range ingredients {
		ingredients[i] = "xylophone extract"
	}

	tests := []struct {
		name     string
		mealType common.MealType
		want     float64
	}{
		{"soup serves six", common.MealSoup, 2.00},
		{"appetizer serves eight", common.MealAppetizer, 1.50},
		{"salad serves four", common.MealSalad, 3.00},
		{"entree serves four", common.MealEntree, 3.00},
		{"unset defaults to four", "", 3.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &common.Recipe{Title: "t", Ingredients: ingredients, MealType: tt.mealType}
			got := e.RecipePrice(r)
			if got == nil {
				t.Fatal("expected a price")
			}
			if *got != tt.want {
				t.Errorf("price = %v, want %v", *got, tt.want)
			}
		})
	}
}

func TestRecipePriceRounding(t *testing.T) {
	e := NewEstimator(DefaultCatalog())

	// 1 項未匹配食材 $1.50 ÷ 4 份 = 0.375 → 0.38
	r := &common.Recipe{Title: "t", Ingredients: []string{"xylophone extract"}}
	got := e.RecipePrice(r)
	if got == nil {
		t.Fatal("expected a price")
	}
	if *got != 0.38 {
		t.Errorf("price = %v, want 0.38", *got)
	}
}
