package recipe

import (
	"testing"

	"recipe-curator/internal/infrastructure/config"
	"recipe-curator/internal/pkg/common"
)

func testCurationConfig() config.CurationConfig {
	return config.CurationConfig{
		MinProtein:     25,
		MaxProtein:     100,
		MinRating:      4.0,
		MinIngredients: 3,
		MaxIngredients: 15,
	}
}

func makeRecipe(title string, protein, rating float64, numIngredients, numSteps int, categories ...string) *common.Recipe {
	r := &common.Recipe{
		Title:       title,
		Ingredients: make([]string, numIngredients),
		Directions:  make([]string, numSteps),
		Categories:  categories,
	}
	for i := range r.Ingredients {
		r.Ingredients[i] = "1 cup chicken broth"
	}
	for i := range r.Directions {
		r.Directions[i] = "Cook."
	}
	if protein > 0 {
		r.Protein = common.Float64Ptr(protein)
	}
	if rating > 0 {
		r.Rating = common.Float64Ptr(rating)
	}
	return r
}

func TestCurateFilters(t *testing.T) {
	keeper := makeRecipe("Roast Chicken", 40, 4.5, 5, 3, "Dinner")

	recipes := []*common.Recipe{
		keeper,
		makeRecipe("Too Few Ingredients", 40, 4.5, 2, 3),
		makeRecipe("No Directions", 40, 4.5, 5, 0),
		makeRecipe("Low Protein", 10, 4.5, 5, 3),
		makeRecipe("Protein Data Error", 500, 4.5, 5, 3),
		makeRecipe("No Protein Data", 0, 4.5, 5, 3),
		makeRecipe("Poorly Rated", 40, 3.0, 5, 3),
		makeRecipe("Unrated", 40, 0, 5, 3),
		makeRecipe("Too Complex", 40, 4.5, 16, 3),
		makeRecipe("Protein Cake", 40, 4.5, 5, 3, "Dessert"),
	}

	curated, stats := NewCurator(testCurationConfig()).Curate(recipes)

	if len(curated) != 1 || curated[0] != keeper {
		t.Fatalf("curated %d recipes, want only the keeper", len(curated))
	}

	if stats.TotalInput != 10 {
		t.Errorf("total_input = %d, want 10", stats.TotalInput)
	}
	if stats.CompleteData != 8 {
		t.Errorf("complete_data = %d, want 8", stats.CompleteData)
	}
	if stats.AfterExclusions != 1 {
		t.Errorf("after_exclusions = %d, want 1", stats.AfterExclusions)
	}
}

func TestCurateAnnotatesMetadata(t *testing.T) {
	r := makeRecipe("Chicken Soup", 30, 4.5, 4, 2, "Soup")

	curated, stats := NewCurator(testCurationConfig()).Curate([]*common.Recipe{r})
	if len(curated) != 1 {
		t.Fatal("expected the recipe to survive curation")
	}

	if r.ProteinSource != common.ProteinChicken {
		t.Errorf("protein_source = %q", r.ProteinSource)
	}
	if r.MealType != common.MealSoup {
		t.Errorf("meal_type = %q", r.MealType)
	}
	if r.NumIngredients != 4 || r.NumSteps != 2 {
		t.Errorf("counts = (%d, %d)", r.NumIngredients, r.NumSteps)
	}

	if stats.BySource[common.ProteinChicken] != 1 {
		t.Errorf("by_source = %v", stats.BySource)
	}
	if stats.AvgProtein != 30 || stats.AvgRating != 4.5 {
		t.Errorf("averages = (%v, %v)", stats.AvgProtein, stats.AvgRating)
	}
}
