//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tpc

import (
	"strings"
	"testing"
)

func TestSiftParagraphs(t *testing.T) {
	keepme := "This paragraph easily clears the thirty character bar."

	in := []string{
		"Too short to matter.",
		"   " + keepme + "   ",
		strings.Repeat("a", 30),
		strings.Repeat("b", 31),
		"",
	}

	have := SiftParagraphs(in)
	want := []string{keepme, strings.Repeat("b", 31)}

	if len(have) != len(want) {
		t.Fatalf("SiftParagraphs() kept %d paragraphs, want %d: %v", len(have), len(want), have)
	}

	for i := range want {
		if have[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, have[i], want[i])
		}
	}
}

func TestSiftParagraphsCountsCharacters(t *testing.T) {
	// 16 two-byte runes: 32 bytes but only 16 characters
	in := []string{strings.Repeat("é", 16)}
	if have := SiftParagraphs(in); len(have) != 0 {
		t.Errorf("SiftParagraphs() kept a 16 character paragraph: %v", have)
	}
}

func TestCleanParagraphs(t *testing.T) {
	in := []string{
		"The Quick brown fox, jumped over 12 lazy dogs!",
		"Don't the authors think pelicans migrate yearly?",
		"Is it on or in it of ours?",
		"zebra yak wolf vole",
		"zebra yak wolf",
	}

	have := CleanParagraphs(in)
	want := []string{
		"quick brown fox jumped lazy dogs",
		"authors think pelicans migrate yearly",
		"zebra yak wolf vole",
	}

	if len(have) != len(want) {
		t.Fatalf("CleanParagraphs() kept %d paragraphs, want %d: %v", len(have), len(want), have)
	}

	for i := range want {
		if have[i] != want[i] {
			t.Errorf("cleaned %d = %q, want %q", i, have[i], want[i])
		}
	}
}
