package usecase

import "testing"

func TestNormalizeCitySynonyms(t *testing.T) {
	cases := map[string]string{
		"киев":      "Київ",
		"Київ":      "Київ",
		"KYIV":      "Київ",
		"kiev":      "Київ",
		"харьков":   "Харків",
		"  одесса ": "Одеса",
		"днепр":     "Дніпро",
		"львов":     "Львів",
		"запорожье": "Запоріжжя",
		"ирпень":    "Ірпінь",
	}
	for raw, want := range cases {
		if got := NormalizeCity(raw); got != want {
			t.Fatalf("NormalizeCity(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeCityStripsUnderscoresAndHyphens(t *testing.T) {
	if got := NormalizeCity("_київ_"); got != "Київ" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeCity("кривой-рог"); got != "Кривой Рог" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeCityFallbackTitleCase(t *testing.T) {
	if got := NormalizeCity("варшава"); got != "Варшава" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeCity("нью йорк"); got != "Нью Йорк" {
		t.Fatalf("got %q", got)
	}
}

// Каноническое значение обязано отображаться само в себя.
func TestNormalizeCityCanonicalFixedPoint(t *testing.T) {
	for _, canon := range cityCanon {
		if got := NormalizeCity(canon); got != canon {
			t.Fatalf("NormalizeCity(%q) = %q, canonical values must be fixed points", canon, got)
		}
	}
}

func TestCleanArea(t *testing.T) {
	cases := map[string]string{
		"до 50 м2___ ": "до 50 м2",
		"  25 м²  ":    "25 м²",
		"—":            "—",
		"50_м2__":      "50_м2",
	}
	for raw, want := range cases {
		if got := CleanArea(raw); got != want {
			t.Fatalf("CleanArea(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestEscapeMarkdown(t *testing.T) {
	if got := EscapeMarkdown("a_b*c[d]`e"); got != `a\_b\*c\[d\]\`+"`"+`e` {
		t.Fatalf("got %q", got)
	}
	// уже экранированное не экранируется повторно целиком, но каждый
	// спецсимвол получает ровно один префикс
	if got := EscapeMarkdown("50_м2"); got != `50\_м2` {
		t.Fatalf("got %q", got)
	}
}
