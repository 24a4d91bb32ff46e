//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	CONFIGTOPICMODEL   = "tgs-topicmodel-conf.json"
	CONFIGSTOPSENGLISH = "tgs-stops-english.json"
	CONFIGSTOPSVECTOR  = "tgs-stops-vectorizer.json"
	DEFAULTCHRTWIDTH   = "1500px"
	DEFAULTCHRTHEIGHT  = "400px"
	DEFAULTTOPICCOUNT  = 10

	// the paragraph/token sieve
	MINPARAGRAPHCHARS = 30   // a trimmed paragraph shorter than this is noise: headers, captions, page furniture
	MINDOCTOKENS      = 3    // a document must still hold more than this many tokens after stopword removal
	MINTERMDOCCOUNT   = 2    // a term must appear in at least this many documents
	MAXTERMDOCRATIO   = 0.85 // a term in more than this fraction of the documents is ambient vocabulary

	// the model itself
	LDAMAXTOPICS    = 120 // you can ask for an absurd number of topics, but not an unbounded one
	LDASEED         = 42
	LDAITER         = 200
	LDABURNINPASSES = 2
	LDAXFORMPASSES  = 100
	LDACHGEVALFRQ   = 10
	LDAPERPEVALFRQ  = 10
	LDAPERPTOL      = 1e-2
	TOPICWORDCOUNT  = 5
)
