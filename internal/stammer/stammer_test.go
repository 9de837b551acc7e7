package stammer_test

import (
	"testing"

	"github.com/valpere/promptran/internal/stammer"
)

// --- clean input ---

func TestDetect_CleanText(t *testing.T) {
	cases := []struct{ source, translated string }{
		{"See you later, my friend.", "A dopo, amico mio."},
		{"The weather is nice today.", "Il tempo è bello oggi."},
		{"Good morning!", "Buongiorno!"},
	}
	for _, c := range cases {
		if stammer.Detect(c.source, c.translated) {
			t.Errorf("Detect(%q, %q) = true, want false", c.source, c.translated)
		}
	}
}

func TestDetect_EmptyTranslation(t *testing.T) {
	if stammer.Detect("Hello", "") {
		t.Error("empty translation should never stammer")
	}
	if stammer.Detect("Hello", "   \t  ") {
		t.Error("whitespace-only translation should never stammer")
	}
}

func TestDetect_NonAlphabeticText(t *testing.T) {
	// Digit and punctuation runs are exempt from elongation.
	if stammer.Detect("123", "...... 777777 !!!???") {
		t.Error("non-alphabetic text should never stammer")
	}
}

// --- character elongation ---

func TestDetect_Elongation(t *testing.T) {
	if !stammer.Detect("Hello", "Ciaooooooo") {
		t.Error(`Detect("Hello", "Ciaooooooo") = false, want true`)
	}
	if !stammer.Detect("I said no", "noooooo way") {
		t.Error(`Detect("I said no", "noooooo way") = false, want true`)
	}
}

func TestDetect_ElongationWithinThreshold(t *testing.T) {
	// A run of exactly 3 is borderline and allowed.
	if stammer.Detect("I said no", "nooo way") {
		t.Error("run of 3 should be within the natural threshold")
	}
}

func TestDetect_ElongationMirrorsSource(t *testing.T) {
	// The source itself is elongated; a comparable run in the translation
	// is a faithful rendering, not an artifact.
	if stammer.Detect("Noooo way!", "Ciaooooo!") {
		t.Error("elongation matching the source within tolerance should pass")
	}
	// Far beyond the source's run is still flagged.
	if !stammer.Detect("Noooo way!", "Ciaoooooooooooo!") {
		t.Error("elongation far exceeding the source should be flagged")
	}
}

// --- phrase repetition ---

func TestDetect_PhraseLoop(t *testing.T) {
	if !stammer.Detect("Thank you.", "thank you thank you thank you") {
		t.Error("tripled phrase with no source counterpart should be flagged")
	}
	if !stammer.Detect("OK", "ok ok ok") {
		t.Error("tripled word with no source counterpart should be flagged")
	}
}

func TestDetect_DoubledWordAllowed(t *testing.T) {
	if stammer.Detect("Very good.", "molto molto buono") {
		t.Error("a doubled word is natural and must not be flagged")
	}
	if stammer.Detect("Hurry up!", "schnell, schnell!") {
		t.Error("a doubled interjection is natural and must not be flagged")
	}
}

func TestDetect_RepetitionMirrorsSource(t *testing.T) {
	// The repeated unit changes spelling in translation but the source
	// carries the same multiplicity.
	if stammer.Detect("ha ha ha, very funny", "ah ah ah, molto divertente") {
		t.Error("repetition mirroring the source should pass")
	}
}

func TestDetect_SourceDominatedPhrase(t *testing.T) {
	source := "Ring ring ring ring went the phone."
	if stammer.Detect(source, "Dring dring dring dring fece il telefono.") {
		t.Error("phrase loop matching the source's own loop should pass")
	}
	if !stammer.Detect(source, "Dring dring dring dring dring dring fece il telefono.") {
		t.Error("phrase loop well beyond the source's loop should be flagged")
	}
}

func TestDetect_MultiWordWindow(t *testing.T) {
	translated := "I am here I am here I am here"
	if !stammer.Detect("I am here.", translated) {
		t.Error("tripled 3-word window should be flagged")
	}
}

// --- determinism and configuration ---

func TestDetect_Idempotent(t *testing.T) {
	d := stammer.New(stammer.DefaultConfig())
	first := d.Detect("Hello", "Ciaooooooo")
	for i := 0; i < 5; i++ {
		if d.Detect("Hello", "Ciaooooooo") != first {
			t.Fatal("Detect is not deterministic for identical inputs")
		}
	}
}

func TestDetect_CustomThresholds(t *testing.T) {
	lenient := stammer.New(stammer.Config{MaxCharRun: 8})
	if lenient.Detect("Hello", "Ciaooooooo") {
		t.Error("run of 7 should pass with MaxCharRun=8")
	}

	strict := stammer.New(stammer.Config{MinPhraseRepeats: 2})
	if !strict.Detect("Very good.", "molto molto buono") {
		t.Error("doubled word should be flagged with MinPhraseRepeats=2")
	}
}

func TestNew_ZeroConfigFallsBackToDefaults(t *testing.T) {
	d := stammer.New(stammer.Config{})
	if !d.Detect("Hello", "Ciaooooooo") {
		t.Error("zero config should behave like DefaultConfig")
	}
	if d.Detect("I said no", "nooo way") {
		t.Error("zero config should behave like DefaultConfig")
	}
}
