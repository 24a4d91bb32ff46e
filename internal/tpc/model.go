//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tpc

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/e-gun/TopicaGoServer/internal/vv"
	"github.com/james-bowman/nlp"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

//
// MODEL CONFIGURATION
//

// TopicModelConfig - the fitting schedule; adjust via the vv.CONFIGTOPICMODEL file
type TopicModelConfig struct {
	LDAIterations  int
	LDAXformPasses int
	BurnInPasses   int
	ChangeEvalFrq  int
	PerplexEvalFrq int
	PerplexTol     float64
	Seed           uint64
	TopicWordCount int
}

var (
	// DefaultTopicModel - what you get if you never touch the configuration file
	DefaultTopicModel = TopicModelConfig{
		LDAIterations:  vv.LDAITER,
		LDAXformPasses: vv.LDAXFORMPASSES,
		BurnInPasses:   vv.LDABURNINPASSES,
		ChangeEvalFrq:  vv.LDACHGEVALFRQ,
		PerplexEvalFrq: vv.LDAPERPEVALFRQ,
		PerplexTol:     vv.LDAPERPTOL,
		Seed:           vv.LDASEED,
		TopicWordCount: vv.TOPICWORDCOUNT,
	}

	// ActiveModel - the schedule extraction requests actually run with; ModelAtLaunch() can overwrite it
	ActiveModel = DefaultTopicModel
)

// ModelAtLaunch - install the user's fitting schedule; the server calls this once before it starts serving
func ModelAtLaunch() {
	ActiveModel = topicmodelconfig()
}

// topicmodelconfig - read the vv.CONFIGTOPICMODEL file and return the model settings; if it does not exist, generate it
func topicmodelconfig() TopicModelConfig {
	const (
		ERR1 = "topicmodelconfig() cannot find UserHomeDir"
		ERR2 = "topicmodelconfig() failed to parse "
		MSG1 = "wrote default topic model configuration file "
	)

	cfg := DefaultTopicModel

	h, e := os.UserHomeDir()
	if e != nil {
		Msg.MAND(ERR1)
		return cfg
	}

	_, yes := os.Stat(fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGTOPICMODEL)

	if yes != nil {
		content, err := json.MarshalIndent(cfg, vv.JSONINDENT, vv.JSONINDENT)
		Msg.EC(err)

		err = os.WriteFile(fmt.Sprintf(vv.CONFIGALTAPTH, h)+vv.CONFIGTOPICMODEL, content, vv.WRITEPERMS)
		Msg.EC(err)
		Msg.PEEK(MSG1 + vv.CONFIGTOPICMODEL)
	} else {
		loadedcfg, _ := os.Open(fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGTOPICMODEL)
		decoderc := json.NewDecoder(loadedcfg)
		tc := TopicModelConfig{}
		errc := decoderc.Decode(&tc)
		_ = loadedcfg.Close()
		if errc != nil {
			Msg.CRIT(ERR2 + vv.CONFIGTOPICMODEL)
			tc = cfg
		}
		cfg = tc
	}

	// an old or hand-edited configuration file might mean zero-value fields
	if cfg.LDAIterations == 0 {
		cfg.LDAIterations = vv.LDAITER
	}
	if cfg.LDAXformPasses == 0 {
		cfg.LDAXformPasses = vv.LDAXFORMPASSES
	}
	if cfg.ChangeEvalFrq == 0 {
		cfg.ChangeEvalFrq = vv.LDACHGEVALFRQ
	}
	if cfg.PerplexEvalFrq == 0 {
		cfg.PerplexEvalFrq = vv.LDAPERPEVALFRQ
	}
	if cfg.TopicWordCount == 0 {
		cfg.TopicWordCount = vv.TOPICWORDCOUNT
	}

	return cfg
}

//
// MODEL FITTING
//

// ldamodel - fit the lda model for the corpus and hand back its topic-term weights
func ldamodel(topics int, corpus []string, vectoriser *TopicVectoriser, cfg TopicModelConfig) (mat.Matrix, error) {
	lda := nlp.NewLatentDirichletAllocation(topics)

	// reruns have to agree byte for byte: one worker, one batch spanning the whole corpus, a pinned seed
	lda.Processes = 1
	lda.BatchSize = len(corpus)
	lda.Rnd = rand.New(rand.NewSource(cfg.Seed))

	lda.Iterations = cfg.LDAIterations
	lda.TransformationPasses = cfg.LDAXformPasses
	lda.BurnInPasses = cfg.BurnInPasses
	lda.ChangeEvaluationFrequency = cfg.ChangeEvalFrq
	lda.PerplexityEvaluationFrequency = cfg.PerplexEvalFrq
	lda.PerplexityTolerance = cfg.PerplexTol

	pipeline := nlp.NewPipeline(vectoriser, lda)

	if _, err := pipeline.FitTransform(corpus...); err != nil {
		return nil, err
	}

	return lda.Components(), nil
}
