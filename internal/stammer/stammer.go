// Package stammer detects non-natural repetition in a translated sentence:
// character elongations ("noooooo") and short phrases repeated back-to-back
// ("thank you thank you thank you"), both typical artifacts of a degenerate
// generation loop. Repetition that mirrors the source sentence at comparable
// multiplicity is treated as intentional and is not flagged.
package stammer

import (
	"strings"
	"unicode"
)

// Config holds the detection thresholds. Passing it explicitly (rather than
// reading ambient state) keeps the detector deterministic under test.
type Config struct {
	// MaxCharRun is the longest run of a single letter considered natural.
	// A run strictly longer than this is an elongation candidate.
	MaxCharRun int
	// MinPhraseRepeats is the number of adjacent repeats of a word n-gram
	// that counts as a loop. Doubled words stay below this floor.
	MinPhraseRepeats int
	// MaxWindowWords is the largest n-gram window checked for loops.
	MaxWindowWords int
	// RunTolerance is the slack allowed over the source's own repetition
	// before a matching run in the translation is considered artificial.
	RunTolerance int
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		MaxCharRun:       3,
		MinPhraseRepeats: 3,
		MaxWindowWords:   5,
		RunTolerance:     1,
	}
}

// Detector analyses (source, translation) pairs for stammering.
type Detector struct {
	cfg Config
}

// New creates a Detector. Zero-valued config fields fall back to defaults.
func New(cfg Config) *Detector {
	def := DefaultConfig()
	if cfg.MaxCharRun <= 0 {
		cfg.MaxCharRun = def.MaxCharRun
	}
	if cfg.MinPhraseRepeats <= 0 {
		cfg.MinPhraseRepeats = def.MinPhraseRepeats
	}
	if cfg.MaxWindowWords <= 0 {
		cfg.MaxWindowWords = def.MaxWindowWords
	}
	if cfg.RunTolerance < 0 {
		cfg.RunTolerance = def.RunTolerance
	}
	return &Detector{cfg: cfg}
}

// Detect reports whether translatedSentence contains a non-natural
// repetition relative to sourceSentence with the default thresholds.
func Detect(sourceSentence, translatedSentence string) bool {
	return New(DefaultConfig()).Detect(sourceSentence, translatedSentence)
}

// Detect reports whether translatedSentence contains a non-natural
// repetition relative to sourceSentence. Either detection level firing is
// enough. It is a total function: any Unicode text is accepted, an empty or
// whitespace-only translation yields false.
func (d *Detector) Detect(sourceSentence, translatedSentence string) bool {
	translated := strings.TrimSpace(translatedSentence)
	if translated == "" {
		return false
	}
	if d.hasElongation(sourceSentence, translated) {
		return true
	}
	return d.hasPhraseLoop(sourceSentence, translated)
}

// hasElongation looks for a single letter repeated consecutively more than
// MaxCharRun times. Punctuation, digit and whitespace runs ("......", "    ")
// are exempt. A run is natural when the source itself carries a comparable
// run: the same letter is preferred, but any letter of the source counts so
// that a transliterated elongation ("sooo" rendered as "suuu") still passes.
func (d *Detector) hasElongation(source, translated string) bool {
	transRuns := letterRuns(translated)
	srcRuns := letterRuns(source)

	srcBest := 0
	for _, run := range srcRuns {
		if run > srcBest {
			srcBest = run
		}
	}

	for _, run := range transRuns {
		if run <= d.cfg.MaxCharRun {
			continue
		}
		if run > srcBest+d.cfg.RunTolerance {
			return true
		}
	}
	return false
}

// hasPhraseLoop looks for a word n-gram (n = 1..MaxWindowWords) repeated
// immediately adjacent to itself MinPhraseRepeats or more times. As with
// elongation, a loop already present in the source at comparable
// multiplicity is natural. This is what keeps an "ah ah ah" rendering of
// "ha ha ha" unflagged even though the repeated unit changes spelling.
func (d *Detector) hasPhraseLoop(source, translated string) bool {
	transTokens := tokenize(translated)
	srcTokens := tokenize(source)

	for n := 1; n <= d.cfg.MaxWindowWords && n*d.cfg.MinPhraseRepeats <= len(transTokens); n++ {
		transRuns := ngramRuns(transTokens, n)
		srcRuns := ngramRuns(srcTokens, n)

		srcBest := 0
		for _, run := range srcRuns {
			if run > srcBest {
				srcBest = run
			}
		}

		for _, run := range transRuns {
			if run < d.cfg.MinPhraseRepeats {
				continue
			}
			if run > srcBest+d.cfg.RunTolerance {
				return true
			}
		}
	}
	return false
}

// letterRuns returns, for every letter appearing in text (lowercased), the
// longest consecutive run of that letter. Non-letter runes break runs and
// are never counted themselves.
func letterRuns(text string) map[rune]int {
	runs := make(map[rune]int)
	var prev rune
	count := 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			prev, count = 0, 0
			continue
		}
		r = unicode.ToLower(r)
		if r == prev {
			count++
		} else {
			prev, count = r, 1
		}
		if count > runs[r] {
			runs[r] = count
		}
	}
	return runs
}

// tokenize splits text on whitespace, lowercases each token and strips
// surrounding punctuation, dropping tokens that end up empty.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// ngramRuns returns, for every n-gram in tokens, the longest chain of
// immediately adjacent repeats (stride n, so "thank you thank you thank you"
// is a run of 3 for the 2-gram "thank you").
func ngramRuns(tokens []string, n int) map[string]int {
	runs := make(map[string]int)
	if n <= 0 || len(tokens) < n {
		return runs
	}
	for i := 0; i+n <= len(tokens); i++ {
		unit := strings.Join(tokens[i:i+n], " ")
		count := 1
		for j := i + n; j+n <= len(tokens) && unit == strings.Join(tokens[j:j+n], " "); j += n {
			count++
		}
		if count > runs[unit] {
			runs[unit] = count
		}
	}
	return runs
}
