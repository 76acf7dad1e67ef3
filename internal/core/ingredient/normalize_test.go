package ingredient

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"quantity and descriptors stripped", "2 1/2 cups chopped fresh spinach", "spinach"},
		{"unit and descriptor stripped", "3 oz cream cheese", "cream cheese"},
		{"bare number stripped", "2 eggs", "eggs"},
		{"descriptors stripped", "1 lb boneless skinless chicken breast", "chicken breast"},
		{"uppercase lowered", "Extra Virgin Olive Oil", "olive oil"},
		{"whitespace collapsed", "  ground   beef  ", "beef"},
		{"plain name untouched", "soy sauce", "soy sauce"},
		{"empty line", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.line); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	lines := []string{
		"2 1/2 cups chopped fresh spinach",
		"3 oz cream cheese",
		"1 lb boneless skinless chicken breast",
		"salt to taste",
		"2 cloves garlic, minced",
		"",
	}

	for _, line := range lines {
		once := Normalize(line)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", line, once, twice)
		}
	}
}
