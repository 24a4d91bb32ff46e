//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tpc

import (
	"testing"

	"github.com/e-gun/TopicaGoServer/internal/str"
	"gonum.org/v1/gonum/mat"
)

func TestTopTopicTerms(t *testing.T) {
	vocab := []string{"ash", "beech", "cedar", "delta", "elm", "fir"}
	weights := mat.NewDense(1, 6, []float64{0.1, 0.5, 0.5, 0.2, 0.9, 0.3})

	have := toptopicterms(0, 5, weights, vocab)

	// beech and cedar tie at 0.5; vocabulary order decides, and beech comes first
	want := []str.TermWeight{
		{Term: "elm", Weight: 0.9},
		{Term: "beech", Weight: 0.5},
		{Term: "cedar", Weight: 0.5},
		{Term: "fir", Weight: 0.3},
		{Term: "delta", Weight: 0.2},
	}

	if len(have) != len(want) {
		t.Fatalf("toptopicterms() returned %d terms, want %d", len(have), len(want))
	}

	for i := range want {
		if have[i] != want[i] {
			t.Errorf("term %d = %v, want %v", i, have[i], want[i])
		}
	}
}

func TestTopTopicTermsSmallVocabulary(t *testing.T) {
	vocab := []string{"gorse", "heath"}
	weights := mat.NewDense(1, 2, []float64{0.25, 0.75})

	have := toptopicterms(0, 5, weights, vocab)

	if len(have) != 2 {
		t.Fatalf("toptopicterms() returned %d terms from a 2 term vocabulary, want 2", len(have))
	}

	if have[0].Term != "heath" || have[1].Term != "gorse" {
		t.Errorf("toptopicterms() = [%s %s], want [heath gorse]", have[0].Term, have[1].Term)
	}
}

func TestLdaTopicLabels(t *testing.T) {
	v := &TopicVectoriser{Vocabulary: map[string]int{"iris": 0, "jade": 1, "kale": 2}}
	weights := mat.NewDense(2, 3, []float64{
		0.7, 0.2, 0.1,
		0.1, 0.3, 0.6,
	})

	labels := ldatopiclabels(2, 2, weights, v)

	if len(labels) != 2 {
		t.Fatalf("ldatopiclabels() returned %d labels, want 2", len(labels))
	}

	if labels[0].Topic != 1 || labels[0].Title != "Iris Jade" {
		t.Errorf("label 0 = %d %q, want 1 \"Iris Jade\"", labels[0].Topic, labels[0].Title)
	}

	if labels[1].Topic != 2 || labels[1].Title != "Kale Jade" {
		t.Errorf("label 1 = %d %q, want 2 \"Kale Jade\"", labels[1].Topic, labels[1].Title)
	}

	if labels[0].Terms[0].Term != "iris" || labels[0].Terms[0].Weight != 0.7 {
		t.Errorf("label 0 lead term = %v, want iris at 0.7", labels[0].Terms[0])
	}
}
