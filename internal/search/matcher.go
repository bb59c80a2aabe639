// Package search implements the fuzzy matcher, the filter/sort/paginate
// pipeline, and the query facade over one catalog's index cache.
package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/tripline/catsearch/internal/catalog"
)

// weightedField pairs a record accessor with its relevance weight.
type weightedField struct {
	get    func(*catalog.Record) string
	weight float64
}

// searchFields returns the full weighted field set for a config.
func searchFields(w catalog.FieldWeights) []weightedField {
	return []weightedField{
		{func(r *catalog.Record) string { return r.Title }, w.Title},
		{func(r *catalog.Record) string { return r.CategoryName }, w.Category},
		{func(r *catalog.Record) string { return r.BrandName }, w.Brand},
		{func(r *catalog.Record) string { return r.City }, w.City},
		{func(r *catalog.Record) string { return r.Description }, w.Description},
	}
}

// nameFields returns only the name-like fields, used for suggestions.
func nameFields(w catalog.FieldWeights) []weightedField {
	return []weightedField{
		{func(r *catalog.Record) string { return r.Title }, w.Title},
		{func(r *catalog.Record) string { return r.CategoryName }, w.Category},
		{func(r *catalog.Record) string { return r.BrandName }, w.Brand},
	}
}

// rank scores records against the query tokens across the weighted fields
// and returns matching records in descending relevance order, ties kept
// stable. A record matches when at least one token clears the looseness
// cutoff on at least one field; its score sums, per token, the best
// weighted field score, so records matching more tokens rank higher.
//
// The input slice is never reordered or mutated.
func rank(query string, records []catalog.Record, fields []weightedField, threshold float64) []catalog.Record {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return records
	}

	// The cutoff maps the configured 0=exact..1=anything looseness onto
	// the normalized match score.
	cutoff := 1 - threshold

	selfScores := make([]float64, len(tokens))
	for i, tok := range tokens {
		selfScores[i] = selfScore(tok)
	}

	type scored struct {
		rec   catalog.Record
		score float64
	}
	matched := make([]scored, 0, len(records))

	for i := range records {
		rec := &records[i]
		var total float64
		var hit bool
		for t, tok := range tokens {
			var best float64
			for _, f := range fields {
				if f.weight <= 0 {
					continue
				}
				value := f.get(rec)
				if value == "" {
					continue
				}
				norm := normalizedScore(tok, value, selfScores[t])
				if norm < cutoff {
					continue
				}
				if s := norm * f.weight; s > best {
					best = s
				}
			}
			if best > 0 {
				hit = true
				total += best
			}
		}
		if hit {
			matched = append(matched, scored{rec: *rec, score: total})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	out := make([]catalog.Record, len(matched))
	for i, m := range matched {
		out[i] = m.rec
	}
	return out
}

// tokenize lowercases and splits the query on whitespace.
func tokenize(query string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(query)))
}

// selfScore is the score of a token matched against itself — the best
// score the token can achieve, used to normalize field scores to 0..1.
func selfScore(token string) float64 {
	matches := fuzzy.Find(token, []string{token})
	if len(matches) == 0 || matches[0].Score <= 0 {
		return 1
	}
	return float64(matches[0].Score)
}

// normalizedScore fuzzy-matches token against value and scales the score
// by the token's self score, clamped to 0..1. Returns 0 on no match.
func normalizedScore(token, value string, self float64) float64 {
	matches := fuzzy.Find(token, []string{value})
	if len(matches) == 0 {
		return 0
	}
	norm := float64(matches[0].Score) / self
	if norm < 0 {
		return 0
	}
	if norm > 1 {
		return 1
	}
	return norm
}
