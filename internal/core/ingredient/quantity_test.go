package ingredient

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestExtractQuantity(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		magnitude float64
		unit      UnitClass
	}{
		{"mixed fraction with cups", "2 1/2 cups chopped fresh spinach", 2.5, UnitCup},
		{"ounces to pounds", "3 oz cream cheese", 0.1875, UnitPound},
		{"pounds unchanged", "2 lb chicken breast", 2, UnitPound},
		{"bare fraction", "3/4 cup milk", 0.75, UnitCup},
		{"tbsp to cups", "4 tbsp butter", 0.25, UnitCup},
		{"tsp to cups", "3 tsp salt", 1.0 / 16, UnitCup},
		{"decimal quantity", "1.5 cups flour", 1.5, UnitCup},
		{"count without unit", "2 eggs", 2, UnitCount},
		{"unknown unit stays count", "200 grams sugar", 200, UnitCount},
		{"leading text ignored", "about 2 cups broth", 2, UnitCup},
		{"first match only", "1 cup rice and 2 cups water", 1, UnitCup},
		{"no numeric token", "salt to taste", 1, UnitCount},
		{"empty line", "", 1, UnitCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ExtractQuantity(tt.line)
			if !almostEqual(q.Magnitude, tt.magnitude) {
				t.Errorf("magnitude = %v, want %v", q.Magnitude, tt.magnitude)
			}
			if q.Unit != tt.unit {
				t.Errorf("unit = %v, want %v", q.Unit, tt.unit)
			}
		})
	}
}

func TestExtractQuantityFractionFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		magnitude float64
	}{
		{"zero denominator falls back to whole", "2 1/0 cups broth", 2},
		{"bare zero denominator falls back to one", "3/0 cup broth", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ExtractQuantity(tt.line)
			if !almostEqual(q.Magnitude, tt.magnitude) {
				t.Errorf("magnitude = %v, want %v", q.Magnitude, tt.magnitude)
			}
		})
	}
}
