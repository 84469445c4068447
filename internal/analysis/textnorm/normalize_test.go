package textnorm_test

import (
	"testing"

	"github.com/ecosrev/ecosrev-backend/internal/analysis/textnorm"
)

func TestNormalizeStripsAccentsCaseAndPunctuation(t *testing.T) {
	got := textnorm.Normalize("Café é bom!")
	if got != "cafe e bom" {
		t.Fatalf("Normalize: got %q want %q", got, "cafe e bom")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Como faço login?",
		"  PONTOS!!  ",
		"çãõ ÁÉÍ",
		"",
		"já normalizado",
		"123 abc",
	}
	for _, input := range inputs {
		once := textnorm.Normalize(input)
		twice := textnorm.Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeEmptyAndWhitespace(t *testing.T) {
	if got := textnorm.Normalize(""); got != "" {
		t.Fatalf("Normalize(\"\"): got %q", got)
	}
	if got := textnorm.Normalize("   \t\n"); got != "" {
		t.Fatalf("Normalize(whitespace): got %q", got)
	}
	if got := textnorm.Normalize("?!..."); got != "" {
		t.Fatalf("Normalize(punctuation only): got %q", got)
	}
}

func TestTokens(t *testing.T) {
	got := textnorm.Tokens("  Como GANHO pontos?  ")
	want := []string{"como", "ganho", "pontos"}
	if len(got) != len(want) {
		t.Fatalf("Tokens: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokens[%d]: got %q want %q", i, got[i], want[i])
		}
	}
}
