// Package retrieval ranks knowledge documents against a user query.
//
// The scoring is a deliberate keyword-overlap heuristic, not a semantic
// search. It is kept behind a small pure function so a vector-based retriever
// can replace it without touching the rest of the pipeline. Known limits: it
// misses documents whose relevant content shares no literal vocabulary with
// the query, and short common words above the length threshold can produce
// false positives.
package retrieval

import (
	"sort"
	"strings"
	"unicode"

	"github.com/fusbox/chatarbor-alternative/internal/domain/knowledge"
)

const (
	// DefaultTopK bounds how many documents are injected as context.
	DefaultTopK = 2

	// minTokenLength filters noise words; tokens of this length or shorter
	// are ignored.
	minTokenLength = 2

	// titleWeight is awarded per query token found in the title, biasing
	// relevance toward topical documents.
	titleWeight = 2
)

type scoredDocument struct {
	doc   knowledge.Document
	score int
}

// Score ranks documents by keyword overlap with the query and returns at most
// topK documents with a positive score, best first. Ties keep input order.
func Score(query string, docs []knowledge.Document, topK int) []knowledge.Document {
	if topK <= 0 {
		topK = DefaultTopK
	}

	tokens := tokenize(query)
	if len(tokens) == 0 || len(docs) == 0 {
		return nil
	}

	scored := make([]scoredDocument, 0, len(docs))
	for _, doc := range docs {
		content := strings.ToLower(doc.Content)
		title := strings.ToLower(doc.Title)

		score := 0
		for token := range tokens {
			if strings.Contains(content, token) {
				score++
			}
			if strings.Contains(title, token) {
				score += titleWeight
			}
		}
		if score > 0 {
			scored = append(scored, scoredDocument{doc: doc, score: score})
		}
	}
	if len(scored) == 0 {
		return nil
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	result := make([]knowledge.Document, len(scored))
	for i, s := range scored {
		result[i] = s.doc
	}
	return result
}

// tokenize lowercases the query, splits on whitespace, trims surrounding
// punctuation, and drops tokens at or below the noise threshold. The returned
// set keeps tokens distinct so a repeated word scores once.
func tokenize(query string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(f) <= minTokenLength {
			continue
		}
		tokens[f] = struct{}{}
	}
	return tokens
}
