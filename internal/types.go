package internal

import "strings"

// TranslationPair is a stored (sentence, translation) record together with
// its language pair. Pairs are immutable once stored; duplicates may coexist.
type TranslationPair struct {
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	Sentence       string `json:"sentence"`
	Translation    string `json:"translation"`
}

// LanguagePair is the ordered (source, target) combination of ISO 639-1
// codes used to partition the retrieval space. Codes are held lowercase.
type LanguagePair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// NewLanguagePair normalizes both codes (trim + lowercase).
func NewLanguagePair(source, target string) LanguagePair {
	return LanguagePair{
		Source: NormalizeLangCode(source),
		Target: NormalizeLangCode(target),
	}
}

// NormalizeLangCode lowercases and trims an ISO 639-1 code. Legitimacy of
// the code itself is a boundary concern and is not checked here.
func NormalizeLangCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Example is a stored translation pair surfaced as a similarity match for a
// specific query sentence. Score is in [0, 1], higher is more similar.
// Examples are computed per request and never persisted.
type Example struct {
	TranslationPair
	Score float64 `json:"score"`
}
