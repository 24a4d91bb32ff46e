//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tpc

import (
	"sort"
	"strings"

	"github.com/e-gun/TopicaGoServer/internal/vv"
	"github.com/james-bowman/nlp"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

//
// TERM COUNTING
//

// TopicVectoriser - a document-frequency-sieved counter that can ride in an nlp.Pipeline; terms seen in
// fewer than MinDocCount documents are noise and terms seen in more than MaxDocRatio of them are filler,
// so neither reaches the vocabulary
type TopicVectoriser struct {
	Vocabulary  map[string]int
	MinDocCount int
	MaxDocRatio float64
	stops       map[string]struct{}
}

func NewTopicVectoriser() *TopicVectoriser {
	return &TopicVectoriser{
		Vocabulary:  make(map[string]int),
		MinDocCount: vv.MINTERMDOCCOUNT,
		MaxDocRatio: vv.MAXTERMDOCRATIO,
		stops:       vectorizerstops,
	}
}

// Fit - build the vocabulary from the training corpus; alphabetical order keeps the indices reproducible
func (v *TopicVectoriser) Fit(train ...string) nlp.Vectoriser {
	docfrq := make(map[string]int)
	for i := range train {
		seen := make(map[string]struct{})
		for _, t := range strings.Fields(train[i]) {
			if _, skip := v.stops[t]; skip {
				continue
			}
			seen[t] = struct{}{}
		}
		for t := range seen {
			docfrq[t]++
		}
	}

	// both bounds are inclusive: a term in exactly MinDocCount documents stays, as does one sitting
	// exactly on the ratio ceiling
	ceiling := v.MaxDocRatio * float64(len(train))
	keep := make([]string, 0, len(docfrq))
	for t, n := range docfrq {
		if n < v.MinDocCount || float64(n) > ceiling {
			continue
		}
		keep = append(keep, t)
	}
	sort.Strings(keep)

	v.Vocabulary = make(map[string]int, len(keep))
	for i, t := range keep {
		v.Vocabulary[t] = i
	}

	return v
}

// Transform - count vocabulary terms per document into a terms x documents matrix; the cells are
// assembled in sorted order so one corpus always yields one matrix, bit for bit
func (v *TopicVectoriser) Transform(docs ...string) (mat.Matrix, error) {
	type cell struct {
		term int
		doc  int
		n    float64
	}

	var cells []cell
	for d := range docs {
		counted := make(map[int]float64)
		for _, t := range strings.Fields(docs[d]) {
			if i, ok := v.Vocabulary[t]; ok {
				counted[i]++
			}
		}
		for i, n := range counted {
			cells = append(cells, cell{term: i, doc: d, n: n})
		}
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].term != cells[j].term {
			return cells[i].term < cells[j].term
		}
		return cells[i].doc < cells[j].doc
	})

	ia := make([]int, len(v.Vocabulary)+1)
	ja := make([]int, 0, len(cells))
	data := make([]float64, 0, len(cells))

	for i := range cells {
		ia[cells[i].term+1]++
		ja = append(ja, cells[i].doc)
		data = append(data, cells[i].n)
	}
	for i := 1; i < len(ia); i++ {
		ia[i] += ia[i-1]
	}

	return sparse.NewCSR(len(v.Vocabulary), len(docs), ia, ja, data), nil
}

func (v *TopicVectoriser) FitTransform(docs ...string) (mat.Matrix, error) {
	return v.Fit(docs...).Transform(docs...)
}
