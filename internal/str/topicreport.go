//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "time"

//
// TOPICREPORTS
//

// TermWeight - one vocabulary term and the probability mass a topic assigns to it
type TermWeight struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// TopicLabel - one fitted topic: its index, its title-cased label, and the terms behind the label
type TopicLabel struct {
	Topic int          `json:"topic"`
	Title string       `json:"title"`
	Terms []TermWeight `json:"terms"`
}

// TopicReport - the outcome of one modeling run over one uploaded document
type TopicReport struct {
	ID          string       `json:"id"`
	Filename    string       `json:"filename"`
	K           int          `json:"k"`
	Labels      []TopicLabel `json:"labels"`
	Fingerprint string       `json:"fingerprint"`
	Requested   time.Time    `json:"requested"`
	Elapsed     float64      `json:"elapsed"` // seconds
	Cached      bool         `json:"cached"`
}

// Titles - the title strings in topic order; the extraction route numbers them for display
func (r *TopicReport) Titles() []string {
	tt := make([]string, len(r.Labels))
	for i := range r.Labels {
		tt[i] = r.Labels[i].Title
	}
	return tt
}
