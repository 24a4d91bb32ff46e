//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tpc

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/e-gun/TopicaGoServer/internal/vv"
)

//
// TEXT PREPARATION
//

var notaletter = regexp.MustCompile(`[^a-z\s]`)

// SiftParagraphs - keep only the paragraphs long enough to say something about a topic
func SiftParagraphs(pp []string) []string {
	sifted := make([]string, 0, len(pp))
	for i := range pp {
		p := strings.TrimSpace(pp[i])
		if utf8.RuneCountInString(p) > vv.MINPARAGRAPHCHARS {
			sifted = append(sifted, p)
		}
	}
	return sifted
}

// CleanParagraphs - reduce each paragraph to a string of lowercase stop-worded tokens; near-empty results are dropped
func CleanParagraphs(pp []string) []string {
	cleaned := make([]string, 0, len(pp))
	for i := range pp {
		tokens := normalizetext(pp[i])
		if len(tokens) > vv.MINDOCTOKENS {
			cleaned = append(cleaned, strings.Join(tokens, " "))
		}
	}
	return cleaned
}

// normalizetext - lowercase, letters only, no stopwords; "Caesar's 10 legions..." yields [caesar legions]
func normalizetext(p string) []string {
	lettersonly := notaletter.ReplaceAllString(strings.ToLower(p), " ")

	var tokens []string
	for _, t := range strings.Fields(lettersonly) {
		if _, skip := englishstops[t]; skip {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}
