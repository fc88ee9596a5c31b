package services

import (
	"fmt"
	"sort"
	"strings"

	"foodfindr/models"
)

// DefaultMaxFeatures is the vocabulary size used when none is configured.
const DefaultMaxFeatures = 5000

// BuildTermCounts fits a vocabulary over docs and counts every vocabulary term
// in every document. The vocabulary is the maxFeatures most frequent terms of
// the whole corpus (ties broken alphabetically) and the table's columns are in
// alphabetical order. Row i belongs to links[i] and docs[i].
//
// The whole corpus must be available up front; there is no incremental update.
func BuildTermCounts(links, docs []string, maxFeatures int) (*models.TermCountTable, error) {
	if len(links) != len(docs) {
		return nil, fmt.Errorf("vectorizer: %d links for %d documents", len(links), len(docs))
	}
	if maxFeatures < 1 {
		return nil, fmt.Errorf("vectorizer: maxFeatures must be positive, got %d", maxFeatures)
	}

	tokenized := make([][]string, len(docs))
	freq := make(map[string]int)
	for i, doc := range docs {
		tokenized[i] = strings.Fields(doc)
		for _, tok := range tokenized[i] {
			freq[tok]++
		}
	}

	vocab := TopTerms(freq, maxFeatures)
	terms := make([]string, len(vocab))
	for i, tc := range vocab {
		terms[i] = tc.Term
	}
	sort.Strings(terms)

	column := make(map[string]int, len(terms))
	for j, term := range terms {
		column[term] = j
	}

	counts := make([][]int, len(docs))
	for i, toks := range tokenized {
		row := make([]int, len(terms))
		for _, tok := range toks {
			if j, ok := column[tok]; ok {
				row[j]++
			}
		}
		counts[i] = row
	}

	return &models.TermCountTable{
		Terms:  terms,
		Links:  append([]string(nil), links...),
		Counts: counts,
	}, nil
}

// TopTerms returns up to n entries of freq ordered by descending count, then term.
func TopTerms(freq map[string]int, n int) []models.TermCount {
	all := make([]models.TermCount, 0, len(freq))
	for term, count := range freq {
		all = append(all, models.TermCount{Term: term, Count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Term < all[j].Term
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}
