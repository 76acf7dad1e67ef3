package ingredient

import "testing"

func TestCatalogMatchPrefersMoreSpecificKey(t *testing.T) {
	c := DefaultCatalog()

	// "chicken" 與 "chicken breast" 都是子字串，長度比高者（更特定）勝出
	entry, ok := c.Match("chicken breast")
	if !ok {
		t.Fatal("expected a match")
	}
	if entry.Key != "chicken breast" {
		t.Errorf("matched %q, want %q", entry.Key, "chicken breast")
	}
	if entry.Price != 5.00 {
		t.Errorf("price = %v, want 5.00", entry.Price)
	}
}

func TestCatalogMatchGenericKey(t *testing.T) {
	c := DefaultCatalog()

	entry, ok := c.Match("chicken thighs with rosemary")
	if !ok {
		t.Fatal("expected a match")
	}
	// "chicken thigh"（13 字元）分數高於 "chicken"（7 字元）與 "rosemary"（8 字元）
	if entry.Key != "chicken thigh" {
		t.Errorf("matched %q, want %q", entry.Key, "chicken thigh")
	}
}

func TestCatalogMatchTieKeepsFirstEntry(t *testing.T) {
	// 平手時保留先出現的項目：目錄順序是契約
	c := NewCatalog([]Entry{
		{"ab", 1.00},
		{"cd", 2.00},
	})

	entry, ok := c.Match("abcd")
	if !ok {
		t.Fatal("expected a match")
	}
	if entry.Key != "ab" {
		t.Errorf("matched %q, want first-encountered %q", entry.Key, "ab")
	}
}

func TestCatalogMatchNoMatch(t *testing.T) {
	c := DefaultCatalog()

	if _, ok := c.Match("xylophone extract"); ok {
		t.Error("expected no match")
	}
	if _, ok := c.Match(""); ok {
		t.Error("empty name must never match")
	}
}
