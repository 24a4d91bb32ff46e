//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

// ExtractionOutputJSON - what the extraction route sends back to the browser
type ExtractionOutputJSON struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	K        int      `json:"k"`
	Topics   []string `json:"topics"`
	Message  string   `json:"message"`
	Cached   bool     `json:"cached"`
	Elapsed  string   `json:"elapsed"`
}

// ExtractionFailureJSON - what the extraction route sends back when the pipeline cannot finish
type ExtractionFailureJSON struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
