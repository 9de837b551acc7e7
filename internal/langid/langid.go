// Package langid identifies the language of ingested sentences so the
// boundary can warn when a sentence does not look like its declared source
// language. It never rejects: language-code legitimacy is not a core concern.
package langid

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// minCheckLength is the minimum rune count required to attempt detection.
// Shorter texts produce unreliable results and are accepted silently.
const minCheckLength = 20

// Checker detects sentence languages. The underlying detector is expensive
// to build; reuse the instance.
type Checker struct {
	detector lingua.LanguageDetector
}

// New creates a Checker backed by the lingua-go language detector.
func New() *Checker {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Checker{detector: detector}
}

// DetectISO returns the ISO 639-1 code of text's detected language.
func (c *Checker) DetectISO(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lang, ok := c.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

// Mismatch reports the detected code when text appears to be written in a
// language other than declaredCode. Short or ambiguous texts never mismatch.
func (c *Checker) Mismatch(text, declaredCode string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" || declaredCode == "" {
		return "", false
	}
	if len([]rune(text)) < minCheckLength {
		return "", false
	}

	detected, ok := c.DetectISO(text)
	if !ok {
		return "", false
	}
	if strings.EqualFold(detected, declaredCode) {
		return "", false
	}
	return detected, true
}
