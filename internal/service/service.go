// Package service wires the embedding, storage, ranking and composition
// pieces into the two request pipelines: prompt generation and stammering
// detection. Both pipelines are stateless per request; the only shared
// component is an optional read cache of recent example lists.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/valpere/promptran/internal"
	"github.com/valpere/promptran/internal/embedding"
	"github.com/valpere/promptran/internal/prompt"
	"github.com/valpere/promptran/internal/ranker"
	"github.com/valpere/promptran/internal/stammer"
	"github.com/valpere/promptran/internal/vectorstore"
)

// Config holds service-level settings.
type Config struct {
	// MaxExamples caps examples per prompt (default 4).
	MaxExamples int
	// SearchK is the candidate over-fetch for ranking (default 10).
	SearchK int
	// CacheTTL enables caching of per-query example lists when positive.
	CacheTTL time.Duration
	// Stammer overrides the detector thresholds; zero fields use defaults.
	Stammer stammer.Config
}

// Service exposes the operations consumed by the HTTP boundary and the CLI.
type Service struct {
	embedder embedding.Embedder
	store    *vectorstore.Store
	ranker   *ranker.Ranker
	detector *stammer.Detector
	cache    *gocache.Cache
}

// New assembles a Service on top of an embedder and a vector store.
func New(embedder embedding.Embedder, store *vectorstore.Store, cfg Config) *Service {
	s := &Service{
		embedder: embedder,
		store:    store,
		detector: stammer.New(cfg.Stammer),
	}
	s.ranker = ranker.New(
		&semanticSearcher{embedder: embedder, store: store},
		ranker.Config{MaxExamples: cfg.MaxExamples, SearchK: cfg.SearchK},
	)
	if cfg.CacheTTL > 0 {
		s.cache = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return s
}

// AddPair embeds the sentence and stores the pair, returning the stored id.
func (s *Service) AddPair(ctx context.Context, pair internal.TranslationPair) (string, error) {
	vector, err := s.embedder.Embed(ctx, pair.Sentence)
	if err != nil {
		return "", fmt.Errorf("failed to embed sentence: %w", err)
	}

	id, err := s.store.Add(ctx, pair, vector)
	if err != nil {
		return "", err
	}

	// New pairs change retrieval results; drop all cached example lists.
	if s.cache != nil {
		s.cache.Flush()
	}
	return id, nil
}

// GeneratePrompt builds the translation prompt for querySentence. A backend
// failure surfaces as an error wrapping ranker.ErrUnavailable, never as a
// prompt with silently missing examples.
func (s *Service) GeneratePrompt(ctx context.Context, sourceLang, targetLang, querySentence string) (string, error) {
	langs := internal.NewLanguagePair(sourceLang, targetLang)

	examples, err := s.examplesFor(ctx, querySentence, langs)
	if err != nil {
		return "", err
	}

	return prompt.Compose(langs.Source, langs.Target, querySentence, examples), nil
}

// DetectStammer reports whether translatedSentence contains non-natural
// repetition relative to sourceSentence.
func (s *Service) DetectStammer(sourceSentence, translatedSentence string) bool {
	return s.detector.Detect(sourceSentence, translatedSentence)
}

// Stats returns stored-corpus statistics.
func (s *Service) Stats(ctx context.Context) (int, []vectorstore.PairStats, error) {
	return s.store.Stats(ctx)
}

func (s *Service) examplesFor(ctx context.Context, querySentence string, langs internal.LanguagePair) ([]internal.Example, error) {
	key := cacheKey(querySentence, langs)
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			return cached.([]internal.Example), nil
		}
	}

	examples, err := s.ranker.TopExamples(ctx, querySentence, langs)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetDefault(key, examples)
	}
	return examples, nil
}

func cacheKey(querySentence string, langs internal.LanguagePair) string {
	return langs.Source + ":" + langs.Target + ":" + strings.TrimSpace(querySentence)
}

// semanticSearcher adapts the embedder + vector store combination to the
// ranker's Searcher capability.
type semanticSearcher struct {
	embedder embedding.Embedder
	store    *vectorstore.Store
}

func (ss *semanticSearcher) Search(ctx context.Context, querySentence string, langs internal.LanguagePair, k int) ([]internal.Example, error) {
	vector, err := ss.embedder.Embed(ctx, querySentence)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return ss.store.Search(ctx, vector, langs, k)
}
