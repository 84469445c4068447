package faq_test

import (
	"testing"

	faqmatch "github.com/ecosrev/ecosrev-backend/internal/analysis/faq"
	faqmodel "github.com/ecosrev/ecosrev-backend/internal/model/faq"
)

func TestExactMatch(t *testing.T) {
	intents := []faqmodel.Intent{
		{ID: 1, Questions: []string{"Como faço login?"}, Answer: "A"},
	}
	if got := faqmatch.Match("como faço login?", intents); got != "A" {
		t.Fatalf("Match: got %q want %q", got, "A")
	}
}

func TestExactMatchTieBreakByStoreOrder(t *testing.T) {
	intents := []faqmodel.Intent{
		{ID: 2, Questions: []string{"Como faço login?"}, Answer: "primeiro"},
		{ID: 1, Questions: []string{"como faco login"}, Answer: "segundo"},
	}
	if got := faqmatch.Match("Como faço login?", intents); got != "primeiro" {
		t.Fatalf("tie-break: got %q want %q", got, "primeiro")
	}
}

func TestPartialMatchThreshold(t *testing.T) {
	intents := []faqmodel.Intent{
		{ID: 1, Questions: []string{"como resgatar beneficios acumulados"}, Answer: "A"},
	}

	// Four tokens, required = ceil(4*0.5) = 2. Two long tokens appear in
	// the question, so the match succeeds.
	if got := faqmatch.Match("resgatar beneficios xq zw", intents); got != "A" {
		t.Fatalf("2 of 4 tokens: got %q want %q", got, "A")
	}

	// Only one long token appears; falls through every tier.
	if got := faqmatch.Match("resgatar blafoo xq zw", intents); got != faqmatch.DefaultFallback {
		t.Fatalf("1 of 4 tokens: got %q want fallback", got)
	}
}

func TestPartialMatchIgnoresShortTokens(t *testing.T) {
	intents := []faqmodel.Intent{
		{ID: 1, Questions: []string{"de o ao da"}, Answer: "A"},
	}
	// Every token is two runes or fewer, so none can count even though all
	// of them occur in the question.
	if got := faqmatch.Match("de o", intents); got != faqmatch.DefaultFallback {
		t.Fatalf("short tokens only: got %q want fallback", got)
	}
}

func TestKeywordFallback(t *testing.T) {
	intents := []faqmodel.Intent{
		{ID: 4, Questions: []string{"zzzz"}, Answer: "saldo"},
		{ID: 3, Questions: []string{"yyyy"}, Answer: "ganhar"},
	}
	// Tiers 1 and 2 cannot match; "pontos" routes to ids {3, 4} and the
	// first of them in store order wins.
	got := faqmatch.Match("quero saber dos meus pontos agora mesmo valeu", intents)
	if got != "saldo" {
		t.Fatalf("keyword fallback: got %q want %q", got, "saldo")
	}
}

func TestNoMatchReturnsDefaultFallback(t *testing.T) {
	intents := faqmodel.Seed()
	if got := faqmatch.Match("xyzzy plugh", intents); got != faqmatch.DefaultFallback {
		t.Fatalf("no match: got %q want fallback", got)
	}
}

func TestEmptyInputReturnsDefaultFallback(t *testing.T) {
	intents := faqmodel.Seed()
	for _, input := range []string{"", "   ", "?!."} {
		if got := faqmatch.Match(input, intents); got != faqmatch.DefaultFallback {
			t.Fatalf("Match(%q): got %q want fallback", input, got)
		}
	}
}

func TestSeedQuestionsMatchThemselves(t *testing.T) {
	intents := faqmodel.Seed()
	for _, intent := range intents {
		for _, question := range intent.Questions {
			if got := faqmatch.Match(question, intents); got != intent.Answer {
				t.Fatalf("seed question %q: got %q want answer of intent %d", question, got, intent.ID)
			}
		}
	}
}
