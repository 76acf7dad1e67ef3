package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"recipe-curator/internal/infrastructure/config"
	"recipe-curator/internal/infrastructure/storage"
	"recipe-curator/internal/pkg/common"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Env:     "test",
			Debug:   false,
			Version: "test",
		},
		Curation: config.CurationConfig{
			MinProtein:     25,
			MaxProtein:     100,
			MinRating:      4.0,
			MinIngredients: 1,
			MaxIngredients: 15,
		},
		Selection: config.SelectionConfig{
			NumRecipes:    2,
			MinRating:     3.5,
			MealType:      "any",
			ProteinSource: "any",
			Timeout:       5 * time.Second,
		},
		Annotate: config.AnnotateConfig{Workers: 2},
	}
}

func newTestServer(t *testing.T) (*httptest.Server, storage.Store) {
	t.Helper()

	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "recipes.json"), filepath.Join(dir, "curated.json"))

	router, err := SetupRouter(testConfig(), store, nil)
	if err != nil {
		t.Fatalf("SetupRouter: %v", err)
	}

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestEstimateLineEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/pricing/estimate", map[string]string{
		"ingredient": "2 lb chicken breast",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var est struct {
		Matched    bool    `json:"matched"`
		MatchedKey string  `json:"matched_key"`
		Cost       float64 `json:"cost"`
	}
	decodeBody(t, resp, &est)

	if !est.Matched || est.MatchedKey != "chicken breast" {
		t.Errorf("match = (%v, %q)", est.Matched, est.MatchedKey)
	}
	// 2 lb × $5.00
	if est.Cost != 10.0 {
		t.Errorf("cost = %v, want 10.0", est.Cost)
	}
}

func TestEstimateLineRejectsBadRequest(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/pricing/estimate", map[string]int{"bogus": 1})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPriceRecipeEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/pricing/recipe", map[string]interface{}{
		"recipe": map[string]interface{}{
			"title":       "Chicken Soup",
			"meal_type":   "soup",
			"ingredients": []string{"2 lb chicken breast", "secret spice blend"},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		EstimatedPrice *float64 `json:"estimated_price"`
		Servings       int      `json:"servings"`
	}
	decodeBody(t, resp, &out)

	if out.Servings != 6 {
		t.Errorf("servings = %d, want 6 for soup", out.Servings)
	}
	// (10.00 + 1.50) / 6 = 1.9166… → 1.92
	if out.EstimatedPrice == nil || *out.EstimatedPrice != 1.92 {
		t.Errorf("estimated_price = %v, want 1.92", out.EstimatedPrice)
	}
}

func TestPipelineEndpoints(t *testing.T) {
	srv, store := newTestServer(t)

	raw := []*common.Recipe{
		{
			Title:       "Roast Chicken",
			Ingredients: []string{"2 lb chicken breast"},
			Directions:  []string{"Roast."},
			Categories:  []string{"Dinner"},
			Protein:     common.Float64Ptr(40),
			Rating:      common.Float64Ptr(4.5),
		},
		{
			Title:       "Chocolate Cake",
			Ingredients: []string{"2 cups flour"},
			Directions:  []string{"Bake."},
			Categories:  []string{"Dessert"},
			Protein:     common.Float64Ptr(30),
			Rating:      common.Float64Ptr(4.8),
		},
	}
	if err := store.Save(context.Background(), storage.SetRaw, raw); err != nil {
		t.Fatal(err)
	}

	// 精選：甜點被排除
	resp := postJSON(t, srv.URL+"/api/v1/recipes/curate", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("curate status = %d", resp.StatusCode)
	}
	var curate struct {
		Curated int `json:"curated"`
	}
	decodeBody(t, resp, &curate)
	if curate.Curated != 1 {
		t.Errorf("curated = %d, want 1", curate.Curated)
	}

	// 標註：預設作用在精選集（分類後才知道份數）
	resp = postJSON(t, srv.URL+"/api/v1/recipes/annotate", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("annotate status = %d", resp.StatusCode)
	}
	var annotate struct {
		Priced  int `json:"priced"`
		Skipped int `json:"skipped"`
	}
	decodeBody(t, resp, &annotate)
	if annotate.Priced != 1 {
		t.Errorf("priced = %d, want 1", annotate.Priced)
	}

	// 選餐：從精選集抽出餐單
	resp = postJSON(t, srv.URL+"/api/v1/recipes/pick", map[string]interface{}{
		"num_recipes": 1,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pick status = %d", resp.StatusCode)
	}
	var pick struct {
		Recipes []*common.Recipe `json:"recipes"`
		Plan    string           `json:"plan"`
	}
	decodeBody(t, resp, &pick)
	if len(pick.Recipes) != 1 || pick.Recipes[0].Title != "Roast Chicken" {
		t.Fatalf("picked %+v", pick.Recipes)
	}
	// 2 lb × $5.00 ÷ 4 份（entree）
	if pick.Recipes[0].EstimatedPrice == nil || *pick.Recipes[0].EstimatedPrice != 2.50 {
		t.Errorf("estimated_price = %v, want 2.50", pick.Recipes[0].EstimatedPrice)
	}
	if pick.Plan == "" {
		t.Error("expected a rendered meal plan")
	}
}

func TestAnnotateUsesCuratedMealType(t *testing.T) {
	srv, store := newTestServer(t)

	// 8 項未匹配食材 × $1.50 = $12.00；分類後是湯 → 6 份
	ingredients := make([]string, 8)
	for i := range ingredients {
		ingredients[i] = "xylophone extract"
	}
	raw := []*common.Recipe{
		{
			Title:       "Harvest Soup",
			Ingredients: ingredients,
			Directions:  []string{"Simmer."},
			Categories:  []string{"Soup"},
			Protein:     common.Float64Ptr(40),
			Rating:      common.Float64Ptr(4.5),
		},
	}
	if err := store.Save(context.Background(), storage.SetRaw, raw); err != nil {
		t.Fatal(err)
	}

	resp := postJSON(t, srv.URL+"/api/v1/recipes/curate", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("curate status = %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/api/v1/recipes/annotate", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("annotate status = %d", resp.StatusCode)
	}

	curated, err := store.Load(context.Background(), storage.SetCurated)
	if err != nil {
		t.Fatal(err)
	}
	if len(curated) != 1 {
		t.Fatalf("curated set has %d recipes, want 1", len(curated))
	}
	if curated[0].MealType != common.MealSoup {
		t.Fatalf("meal_type = %q, want soup", curated[0].MealType)
	}
	if curated[0].EstimatedPrice == nil || *curated[0].EstimatedPrice != 2.00 {
		t.Errorf("soup priced at %v per serving, want 2.00 (12.00 / 6 servings)", curated[0].EstimatedPrice)
	}
}

func TestAnnotateExplicitRawSet(t *testing.T) {
	srv, store := newTestServer(t)

	raw := []*common.Recipe{
		{Title: "Plain Rice", Ingredients: []string{"1 cup rice"}, Directions: []string{"Boil."}},
	}
	if err := store.Save(context.Background(), storage.SetRaw, raw); err != nil {
		t.Fatal(err)
	}

	resp := postJSON(t, srv.URL+"/api/v1/recipes/annotate", map[string]string{"set": "raw"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("annotate status = %d", resp.StatusCode)
	}
	var annotate struct {
		Priced int `json:"priced"`
	}
	decodeBody(t, resp, &annotate)
	if annotate.Priced != 1 {
		t.Errorf("priced = %d, want 1", annotate.Priced)
	}

	reloaded, err := store.Load(context.Background(), storage.SetRaw)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded[0].EstimatedPrice == nil {
		t.Error("expected a price on the raw set")
	}

	// 未知資料集直接拒絕
	resp = postJSON(t, srv.URL+"/api/v1/recipes/annotate", map[string]string{"set": "bogus"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bogus set status = %d, want 400", resp.StatusCode)
	}
}

func TestPickWithoutCuratedSet(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/recipes/pick", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when the curated set is missing", resp.StatusCode)
	}
}
