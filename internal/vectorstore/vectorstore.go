// Package vectorstore persists translation pairs together with their
// sentence embeddings in SQLite and answers nearest-neighbour queries over
// them. Search is brute-force cosine over one language-pair partition, which
// stays comfortably fast at prompt-time candidate counts.
package vectorstore

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/promptran/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translation_pairs (
		id TEXT PRIMARY KEY,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		sentence TEXT NOT NULL,
		translation TEXT NOT NULL,
		embedding BLOB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_pairs_langs ON translation_pairs(source_lang, target_lang);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Add stores a translation pair with its sentence embedding and returns the
// generated id. Pairs are immutable; duplicates are allowed to coexist.
func (s *Store) Add(ctx context.Context, pair internal.TranslationPair, vector []float32) (string, error) {
	if len(vector) == 0 {
		return "", fmt.Errorf("embedding vector is empty")
	}

	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translation_pairs (id, source_lang, target_lang, sentence, translation, embedding) VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		internal.NormalizeLangCode(pair.SourceLanguage),
		internal.NormalizeLangCode(pair.TargetLanguage),
		normalizeText(pair.Sentence),
		normalizeText(pair.Translation),
		encodeVector(vector))
	if err != nil {
		return "", fmt.Errorf("failed to insert pair: %w", err)
	}
	return id, nil
}

// Search returns up to k stored pairs most similar to the query vector,
// restricted to the exact language pair, ordered by descending score.
// Scores map cosine similarity into [0, 1]. Rows whose embedding dimension
// differs from the query (a pair ingested under another model) are skipped.
func (s *Store) Search(ctx context.Context, vector []float32, langs internal.LanguagePair, k int) ([]internal.Example, error) {
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source_lang, target_lang, sentence, translation, embedding
		 FROM translation_pairs
		 WHERE source_lang = ? AND target_lang = ?
		 ORDER BY created_at, id`,
		langs.Source, langs.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to query pairs: %w", err)
	}
	defer rows.Close()

	var matches []internal.Example
	for rows.Next() {
		var ex internal.Example
		var blob []byte
		if err := rows.Scan(&ex.SourceLanguage, &ex.TargetLanguage, &ex.Sentence, &ex.Translation, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan pair: %w", err)
		}

		stored, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("corrupt embedding for %q: %w", ex.Sentence, err)
		}
		if len(stored) != len(vector) {
			continue
		}

		ex.Score = similarityScore(vector, stored)
		matches = append(matches, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// PairStats is the stored-pair count for one language pair.
type PairStats struct {
	SourceLang string
	TargetLang string
	Count      int
}

// Stats returns the total pair count and per-language-pair breakdown.
func (s *Store) Stats(ctx context.Context) (int, []PairStats, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM translation_pairs`).Scan(&total); err != nil {
		return 0, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source_lang, target_lang, COUNT(*)
		 FROM translation_pairs
		 GROUP BY source_lang, target_lang
		 ORDER BY source_lang, target_lang`)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var stats []PairStats
	for rows.Next() {
		var ps PairStats
		if err := rows.Scan(&ps.SourceLang, &ps.TargetLang, &ps.Count); err != nil {
			return 0, nil, err
		}
		stats = append(stats, ps)
	}
	return total, stats, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization so
// stored sentences compare consistently.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// encodeVector packs a float32 slice as a little-endian blob.
func encodeVector(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of 4", len(blob))
	}
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:]))
	}
	return vector, nil
}

// similarityScore maps cosine similarity into [0, 1], higher = more similar.
func similarityScore(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	score := (1 + cos) / 2
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
