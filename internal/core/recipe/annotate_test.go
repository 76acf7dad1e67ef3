package recipe

import (
	"context"
	"testing"

	"recipe-curator/internal/core/ingredient"
	"recipe-curator/internal/pkg/common"
)

func newTestAnnotator(workers int) *Annotator {
	return NewAnnotator(ingredient.NewEstimator(ingredient.DefaultCatalog()), nil, workers)
}

func TestAnnotatePricesSkipIfPresent(t *testing.T) {
	a := newTestAnnotator(1)

	r := &common.Recipe{
		Title:          "Already Priced",
		Ingredients:    []string{"2 lb chicken breast"},
		EstimatedPrice: common.Float64Ptr(3.25),
	}

	res := a.AnnotatePrices(context.Background(), []*common.Recipe{r})

	if r.EstimatedPrice == nil || *r.EstimatedPrice != 3.25 {
		t.Errorf("estimated_price = %v, want untouched 3.25", r.EstimatedPrice)
	}
	if res.Skipped != 1 || res.Priced != 0 {
		t.Errorf("skipped = %d, priced = %d, want 1/0", res.Skipped, res.Priced)
	}
}

func TestAnnotatePricesCounts(t *testing.T) {
	a := newTestAnnotator(3)

	recipes := []*common.Recipe{
		{Title: "Fresh", Ingredients: []string{"2 lb chicken breast"}},
		{Title: "Done", Ingredients: []string{"3 eggs"}, EstimatedPrice: common.Float64Ptr(1.00)},
		{Title: "No Ingredients"},
	}

	res := a.AnnotatePrices(context.Background(), recipes)

	if res.Total != 3 || res.Priced != 1 || res.Skipped != 1 || res.Unknown != 1 {
		t.Errorf("result = %+v, want total 3, priced 1, skipped 1, unknown 1", res)
	}

	// 估價有回寫
	if recipes[0].EstimatedPrice == nil {
		t.Error("expected a price on the fresh recipe")
	}
	// 2 lb × $5.00 ÷ 4 份 = 2.50
	if *recipes[0].EstimatedPrice != 2.50 {
		t.Errorf("price = %v, want 2.50", *recipes[0].EstimatedPrice)
	}
	// 沒有食材 → 明確寫入 null，不是零
	if recipes[2].EstimatedPrice != nil {
		t.Errorf("price = %v, want nil", *recipes[2].EstimatedPrice)
	}
}

func TestAnnotatePricesRerunIsStable(t *testing.T) {
	a := newTestAnnotator(2)

	recipes := []*common.Recipe{
		{Title: "A", Ingredients: []string{"2 lb chicken breast"}},
		{Title: "B", Ingredients: []string{"3 eggs"}},
	}

	first := a.AnnotatePrices(context.Background(), recipes)
	if first.Priced != 2 {
		t.Fatalf("priced = %d, want 2", first.Priced)
	}

	priceA := *recipes[0].EstimatedPrice

	second := a.AnnotatePrices(context.Background(), recipes)
	if second.Skipped != 2 || second.Priced != 0 {
		t.Errorf("rerun skipped = %d, priced = %d, want 2/0", second.Skipped, second.Priced)
	}
	if *recipes[0].EstimatedPrice != priceA {
		t.Errorf("price changed on rerun: %v != %v", *recipes[0].EstimatedPrice, priceA)
	}
}
