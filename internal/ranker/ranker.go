// Package ranker selects the translation examples attached to a prompt. It
// asks a pluggable nearest-neighbour capability for candidates scoped to one
// language pair, drops the query itself, orders by similarity and caps the
// result. It is read-only and keeps no state between calls.
package ranker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/valpere/promptran/internal"
)

// ErrUnavailable marks a retrieval backend failure. Callers must treat it
// as distinct from an empty example list; zero matches is a normal result,
// a failed backend is not.
var ErrUnavailable = errors.New("similarity search unavailable")

// Searcher is the nearest-neighbour capability the ranker relies on.
// Production uses the vector store behind an embedding adapter; tests use an
// in-memory fake.
type Searcher interface {
	// Search returns up to k stored pairs most similar to querySentence,
	// restricted to records whose language pair equals langs exactly.
	// Scores are in [0, 1], higher is more similar, descending order.
	Search(ctx context.Context, querySentence string, langs internal.LanguagePair, k int) ([]internal.Example, error)
}

// Config holds the ranking parameters.
type Config struct {
	// MaxExamples caps the returned list.
	MaxExamples int
	// SearchK is how many candidates to over-fetch before filtering.
	SearchK int
}

// DefaultConfig asks the backend for 10 candidates and returns at most 4.
func DefaultConfig() Config {
	return Config{MaxExamples: 4, SearchK: 10}
}

// Ranker produces the ordered, capped example list for a query.
type Ranker struct {
	searcher Searcher
	cfg      Config
}

// New creates a Ranker. Zero-valued config fields fall back to defaults.
func New(searcher Searcher, cfg Config) *Ranker {
	def := DefaultConfig()
	if cfg.MaxExamples <= 0 {
		cfg.MaxExamples = def.MaxExamples
	}
	if cfg.SearchK < cfg.MaxExamples {
		cfg.SearchK = def.SearchK
	}
	return &Ranker{searcher: searcher, cfg: cfg}
}

// TopExamples returns the examples for querySentence on the given language
// pair. An empty (after trimming) query yields an empty list, not an error.
// A backend failure is reported wrapped in ErrUnavailable and is never
// masked as "no matches".
func (r *Ranker) TopExamples(ctx context.Context, querySentence string, langs internal.LanguagePair) ([]internal.Example, error) {
	query := strings.TrimSpace(querySentence)
	if query == "" {
		return nil, nil
	}

	candidates, err := r.searcher.Search(ctx, query, langs, r.cfg.SearchK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	normQuery := normalizeSentence(query)
	examples := make([]internal.Example, 0, len(candidates))
	for _, c := range candidates {
		// An example identical to the query would only teach it back.
		if normalizeSentence(c.Sentence) == normQuery {
			continue
		}
		examples = append(examples, c)
	}

	// Descending score; SliceStable keeps the backend's retrieval order on ties.
	sort.SliceStable(examples, func(i, j int) bool {
		return examples[i].Score > examples[j].Score
	})

	if len(examples) > r.cfg.MaxExamples {
		examples = examples[:r.cfg.MaxExamples]
	}
	return examples, nil
}

// normalizeSentence lowercases and collapses inner whitespace for the
// self-match comparison.
func normalizeSentence(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
