//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tpc

import (
	"sort"
	"strings"

	"github.com/e-gun/TopicaGoServer/internal/str"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/mat"
)

//
// TOPIC LABELS
//

// ldatopiclabels - turn each fitted topic row into a short display title
func ldatopiclabels(ntopics int, nwords int, topicsOverWords mat.Matrix, vectoriser *TopicVectoriser) []str.TopicLabel {
	// invert the vocabulary: index -> term
	vocab := make([]string, len(vectoriser.Vocabulary))
	for k, v := range vectoriser.Vocabulary {
		vocab[v] = k
	}

	// a cases.Caser is not safe to share, so build one per run
	titler := cases.Title(language.English)

	labels := make([]str.TopicLabel, ntopics)
	for topic := 0; topic < ntopics; topic++ {
		tw := toptopicterms(topic, nwords, topicsOverWords, vocab)

		words := make([]string, len(tw))
		for i := range tw {
			words[i] = tw[i].Term
		}

		labels[topic] = str.TopicLabel{
			Topic: topic + 1,
			Title: titler.String(strings.Join(words, " ")),
			Terms: tw,
		}
	}

	return labels
}

// toptopicterms - the nwords heaviest terms of one topic, heaviest first; a small vocabulary yields fewer
func toptopicterms(topic int, nwords int, topicsOverWords mat.Matrix, vocab []string) []str.TermWeight {
	idx := make([]int, len(vocab))
	for i := range idx {
		idx[i] = i
	}

	// heaviest first; equal weights fall back on vocabulary order, so reruns always agree
	sort.Slice(idx, func(i, j int) bool {
		wi := topicsOverWords.At(topic, idx[i])
		wj := topicsOverWords.At(topic, idx[j])
		if wi != wj {
			return wi > wj
		}
		return idx[i] < idx[j]
	})

	if nwords > len(idx) {
		nwords = len(idx)
	}

	tw := make([]str.TermWeight, nwords)
	for i := 0; i < nwords; i++ {
		tw[i] = str.TermWeight{Term: vocab[idx[i]], Weight: topicsOverWords.At(topic, idx[i])}
	}

	return tw
}
