//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tpc

import (
	"testing"
)

func TestTopicVectoriserFit(t *testing.T) {
	corpus := []string{
		"alpha cedar alpha",
		"alpha cedar drum",
		"cedar drum echo",
		"cedar drum echo",
	}

	// document frequencies: alpha 2, cedar 4, drum 3, echo 2; the ceiling is 0.85 x 4 = 3.4,
	// so cedar is filler and everything else stays

	v := NewTopicVectoriser()
	v.Fit(corpus...)

	want := map[string]int{"alpha": 0, "drum": 1, "echo": 2}

	if len(v.Vocabulary) != len(want) {
		t.Fatalf("Fit() built a vocabulary of %d terms, want %d: %v", len(v.Vocabulary), len(want), v.Vocabulary)
	}

	for term, idx := range want {
		if v.Vocabulary[term] != idx {
			t.Errorf("Vocabulary[%q] = %d, want %d", term, v.Vocabulary[term], idx)
		}
	}
}

func TestTopicVectoriserStops(t *testing.T) {
	corpus := []string{
		"would kelp marsh",
		"would kelp marsh",
		"newt oak pine",
	}

	// kelp and marsh sit at the frequency floor; "would" would too, but the net catches it first

	v := NewTopicVectoriser()
	v.Fit(corpus...)

	if _, bad := v.Vocabulary["would"]; bad {
		t.Error("Fit() let a netted term into the vocabulary")
	}

	want := map[string]int{"kelp": 0, "marsh": 1}
	if len(v.Vocabulary) != len(want) {
		t.Fatalf("Fit() built a vocabulary of %d terms, want %d: %v", len(v.Vocabulary), len(want), v.Vocabulary)
	}

	for term, idx := range want {
		if v.Vocabulary[term] != idx {
			t.Errorf("Vocabulary[%q] = %d, want %d", term, v.Vocabulary[term], idx)
		}
	}
}

func TestTopicVectoriserCeilingIsInclusive(t *testing.T) {
	corpus := []string{
		"fern gulch",
		"fern gulch",
		"fern heron",
		"heron ibex",
	}

	// with a ratio of 0.5 the ceiling is exactly 2.0: fern (3) goes, gulch and heron (2) sit
	// right on the line and stay, ibex (1) is below the floor

	v := NewTopicVectoriser()
	v.MaxDocRatio = 0.5
	v.Fit(corpus...)

	want := map[string]int{"gulch": 0, "heron": 1}

	if len(v.Vocabulary) != len(want) {
		t.Fatalf("Fit() built a vocabulary of %d terms, want %d: %v", len(v.Vocabulary), len(want), v.Vocabulary)
	}

	for term, idx := range want {
		if v.Vocabulary[term] != idx {
			t.Errorf("Vocabulary[%q] = %d, want %d", term, v.Vocabulary[term], idx)
		}
	}
}

func TestTopicVectoriserTransform(t *testing.T) {
	corpus := []string{
		"lilac lilac moss",
		"moss lilac",
		"reed moss",
		"reed vetch",
	}

	// vocabulary: lilac (df 2), moss (df 3), reed (df 2); vetch drops out

	v := NewTopicVectoriser()
	m, err := v.FitTransform(corpus...)
	if err != nil {
		t.Fatalf("FitTransform() returned error: %v", err)
	}

	r, c := m.Dims()
	if r != 3 || c != 4 {
		t.Fatalf("FitTransform() built a %dx%d matrix, want 3x4", r, c)
	}

	checks := []struct {
		term string
		doc  int
		n    float64
	}{
		{"lilac", 0, 2},
		{"lilac", 1, 1},
		{"lilac", 2, 0},
		{"moss", 0, 1},
		{"moss", 1, 1},
		{"moss", 2, 1},
		{"moss", 3, 0},
		{"reed", 2, 1},
		{"reed", 3, 1},
		{"reed", 0, 0},
	}

	for _, ck := range checks {
		if have := m.At(v.Vocabulary[ck.term], ck.doc); have != ck.n {
			t.Errorf("count of %q in document %d = %v, want %v", ck.term, ck.doc, have, ck.n)
		}
	}
}

func TestTopicVectoriserTwoDocumentDeadEnd(t *testing.T) {
	// with two documents every term is either too rare (1 < 2) or too common (2 > 1.7)

	v := NewTopicVectoriser()
	v.Fit("quartz slate", "quartz basalt")

	if len(v.Vocabulary) != 0 {
		t.Errorf("Fit() on a two document corpus should yield an empty vocabulary, got %v", v.Vocabulary)
	}
}
