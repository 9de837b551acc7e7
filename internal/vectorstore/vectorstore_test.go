package vectorstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/valpere/promptran/internal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func pair(src, tgt, sentence, translation string) internal.TranslationPair {
	return internal.TranslationPair{
		SourceLanguage: src,
		TargetLanguage: tgt,
		Sentence:       sentence,
		Translation:    translation,
	}
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_AddAndSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Add(ctx, pair("en", "it", "Hello.", "Ciao."), []float32{1, 0, 0})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id == "" {
		t.Error("expected non-empty id")
	}

	matches, err := s.Search(ctx, []float32{1, 0, 0}, internal.NewLanguagePair("en", "it"), 4)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Sentence != "Hello." || matches[0].Translation != "Ciao." {
		t.Errorf("unexpected match: %+v", matches[0])
	}
	if matches[0].Score < 0.99 {
		t.Errorf("identical vectors should score ~1, got %f", matches[0].Score)
	}
}

func TestStore_Search_LanguagePairIsolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, pair("en", "it", "Hello.", "Ciao."), []float32{1, 0}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := s.Add(ctx, pair("en", "fr", "Hello.", "Salut."), []float32{1, 0}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	matches, err := s.Search(ctx, []float32{1, 0}, internal.NewLanguagePair("en", "fr"), 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match scoped to en-fr, got %d", len(matches))
	}
	if matches[0].Translation != "Salut." {
		t.Errorf("expected the en-fr record, got %+v", matches[0])
	}
}

func TestStore_Search_CaseInsensitiveLangCodes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, pair("EN", "IT", "Hello.", "Ciao."), []float32{1, 0}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	matches, err := s.Search(ctx, []float32{1, 0}, internal.NewLanguagePair("en", "It"), 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected codes normalized on both paths, got %d matches", len(matches))
	}
}

func TestStore_Search_OrdersByScoreAndCaps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	vectors := [][]float32{
		{1, 0, 0},
		{0.9, 0.1, 0},
		{0, 1, 0},
		{0.5, 0.5, 0},
		{0, 0, 1},
	}
	for i, v := range vectors {
		sentence := string(rune('a'+i)) + " sentence"
		if _, err := s.Add(ctx, pair("en", "it", sentence, "x"), v); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	matches, err := s.Search(ctx, []float32{1, 0, 0}, internal.NewLanguagePair("en", "it"), 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not in descending score order at %d", i)
		}
	}
	if matches[0].Sentence != "a sentence" {
		t.Errorf("expected the identical vector first, got %q", matches[0].Sentence)
	}
	for _, m := range matches {
		if m.Score < 0 || m.Score > 1 {
			t.Errorf("score %f outside [0, 1]", m.Score)
		}
	}
}

func TestStore_Search_SkipsMismatchedDimensions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, pair("en", "it", "old model", "x"), []float32{1, 0}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := s.Add(ctx, pair("en", "it", "new model", "x"), []float32{1, 0, 0}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	matches, err := s.Search(ctx, []float32{1, 0, 0}, internal.NewLanguagePair("en", "it"), 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Sentence != "new model" {
		t.Errorf("expected only the matching-dimension record, got %+v", matches)
	}
}

func TestStore_Add_DuplicatesAllowed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := pair("en", "it", "Hello.", "Ciao.")
	if _, err := s.Add(ctx, p, []float32{1, 0}); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	if _, err := s.Add(ctx, p, []float32{1, 0}); err != nil {
		t.Errorf("duplicate Add should succeed: %v", err)
	}

	total, _, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 stored pairs, got %d", total)
	}
}

func TestStore_Add_RejectsEmptyVector(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Add(context.Background(), pair("en", "it", "Hello.", "Ciao."), nil); err == nil {
		t.Error("expected error for empty embedding vector")
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, pair("en", "it", "one", "uno"), []float32{1})
	s.Add(ctx, pair("en", "it", "two", "due"), []float32{1})
	s.Add(ctx, pair("en", "fr", "one", "un"), []float32{1})

	total, perPair, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
	if len(perPair) != 2 {
		t.Fatalf("expected 2 language pairs, got %d", len(perPair))
	}
	if perPair[0].SourceLang != "en" || perPair[0].TargetLang != "fr" || perPair[0].Count != 1 {
		t.Errorf("unexpected first stats row: %+v", perPair[0])
	}
	if perPair[1].Count != 2 {
		t.Errorf("expected 2 en-it pairs, got %d", perPair[1].Count)
	}
}

func TestVectorCodec_RoundTrip(t *testing.T) {
	in := []float32{0.25, -1.5, 3.75, 0}
	out, err := decodeVector(encodeVector(in))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d values, got %d", len(in), len(out))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("value %d: expected %f, got %f", i, in[i], out[i])
		}
	}
}

func TestDecodeVector_CorruptBlob(t *testing.T) {
	if _, err := decodeVector([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for misaligned blob")
	}
}
