// Package prompt renders the translation instruction block handed to a
// human or machine translator: the quoted query sentence plus up to a few
// numbered similarity examples. It is pure formatting; the query is emitted
// verbatim apart from the surrounding quotes.
package prompt

import (
	"fmt"
	"strings"

	"github.com/valpere/promptran/internal"
)

// Compose builds the prompt text for translating querySentence from
// sourceLang to targetLang. Examples are rendered in the order given,
// numbered from 1. With no examples the similar-examples section is omitted
// entirely, leaving no dangling header.
func Compose(sourceLang, targetLang, querySentence string, examples []internal.Example) string {
	lines := []string{
		fmt.Sprintf("Translate the following sentence from %s to %s:", sourceLang, targetLang),
		"",
		`"` + querySentence + `"`,
		"",
	}

	if len(examples) > 0 {
		lines = append(lines, "Here are some similar translation examples:", "")
		for i, ex := range examples {
			lines = append(lines,
				fmt.Sprintf("%d. %s: \"%s\"", i+1, ex.SourceLanguage, ex.Sentence),
				fmt.Sprintf("   %s: \"%s\"", ex.TargetLanguage, ex.Translation),
				"")
		}
	}

	return strings.Join(lines, "\n")
}
