// Package faq answers user questions against the static intent store using
// a layered strategy: exact match, partial token match, keyword routing,
// then a fixed fallback. Every tier breaks ties by store order so repeated
// inputs always produce the same answer.
package faq

import (
	"strings"

	"github.com/ecosrev/ecosrev-backend/internal/analysis/textnorm"
	faqmodel "github.com/ecosrev/ecosrev-backend/internal/model/faq"
)

// DefaultFallback is returned when no tier matches.
const DefaultFallback = "Desculpe, não entendi. Você pode perguntar sobre pontos, benefícios ou como escanear um QR code."

// keywordRoute maps a single keyword to candidate intent ids. Routes are
// scanned in declaration order; the ids are tried in store order.
type keywordRoute struct {
	keyword   string
	intentIDs []int
}

// Keywords are already in normalized form.
var keywordRoutes = []keywordRoute{
	{keyword: "pontos", intentIDs: []int{3, 4}},
	{keyword: "beneficio", intentIDs: []int{5}},
	{keyword: "qr", intentIDs: []int{6}},
	{keyword: "senha", intentIDs: []int{7, 1}},
	{keyword: "login", intentIDs: []int{1}},
	{keyword: "cadastr", intentIDs: []int{2}},
	{keyword: "recicl", intentIDs: []int{8}},
	{keyword: "descart", intentIDs: []int{8}},
	{keyword: "ecosrev", intentIDs: []int{9}},
}

// minTokenLen is the exclusive length bound below which tokens are too
// generic to count toward a partial match (articles, prepositions).
const minTokenLen = 2

// Match returns the answer for the best-matching intent, or
// DefaultFallback. Total: never fails, empty input falls through to the
// fallback.
func Match(userText string, intents []faqmodel.Intent) string {
	normalized := textnorm.Normalize(userText)

	if answer, ok := exactMatch(normalized, intents); ok {
		return answer
	}
	if answer, ok := partialMatch(normalized, intents); ok {
		return answer
	}
	if answer, ok := keywordMatch(normalized, intents); ok {
		return answer
	}
	return DefaultFallback
}

// exactMatch compares the normalized input against every normalized example
// question. First intent/question pair in store order wins.
func exactMatch(normalized string, intents []faqmodel.Intent) (string, bool) {
	if normalized == "" {
		return "", false
	}
	for _, intent := range intents {
		for _, question := range intent.Questions {
			if textnorm.Normalize(question) == normalized {
				return intent.Answer, true
			}
		}
	}
	return "", false
}

// partialMatch tolerates rephrasing: a question matches when at least half
// of the input tokens (rounded up) appear as substrings of it, counting only
// tokens longer than minTokenLen runes. Zero-token input never matches.
func partialMatch(normalized string, intents []faqmodel.Intent) (string, bool) {
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return "", false
	}
	required := (len(tokens) + 1) / 2

	for _, intent := range intents {
		for _, question := range intent.Questions {
			normalizedQuestion := textnorm.Normalize(question)
			matched := 0
			for _, token := range tokens {
				if len([]rune(token)) <= minTokenLen {
					continue
				}
				if strings.Contains(normalizedQuestion, token) {
					matched++
				}
			}
			if matched >= required {
				return intent.Answer, true
			}
		}
	}
	return "", false
}

// keywordMatch catches single-topic utterances tiers 1 and 2 miss. The
// first declared route whose keyword occurs in the input and resolves to a
// stored intent wins.
func keywordMatch(normalized string, intents []faqmodel.Intent) (string, bool) {
	if normalized == "" {
		return "", false
	}
	for _, route := range keywordRoutes {
		if !strings.Contains(normalized, route.keyword) {
			continue
		}
		for _, intent := range intents {
			for _, id := range route.intentIDs {
				if intent.ID == id {
					return intent.Answer, true
				}
			}
		}
	}
	return "", false
}
