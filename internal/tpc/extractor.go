//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tpc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/e-gun/TopicaGoServer/internal/dox"
	"github.com/e-gun/TopicaGoServer/internal/lnch"
	"github.com/e-gun/TopicaGoServer/internal/str"
	"github.com/e-gun/TopicaGoServer/internal/vv"
)

var Msg = lnch.NewMessageMakerWithDefaults()

//
// THE PIPELINE
//

// PipelineStages - how many Notify() stages ExtractTopics walks through
const PipelineStages = 5

// Settings - one extraction run's worth of choices
type Settings struct {
	K      int
	Model  TopicModelConfig
	Ctx    context.Context
	Notify func(stage string)
}

// ExtractTopics - a docx goes in, one title per topic comes out
func ExtractTopics(path string, s Settings) ([]str.TopicLabel, error) {
	const (
		MSG1 = "reading the document"
		MSG2 = "cleaning the text"
		MSG3 = "counting the terms"
		MSG4 = "fitting the topic model"
		MSG5 = "labeling the topics"
	)

	if s.Notify == nil {
		s.Notify = func(string) {}
	}
	if s.Ctx == nil {
		s.Ctx = context.Background()
	}

	// a zero-valued schedule means the caller wants whatever is active
	if s.Model == (TopicModelConfig{}) {
		s.Model = ActiveModel
	}
	if s.Model.TopicWordCount < 1 {
		s.Model.TopicWordCount = vv.TOPICWORDCOUNT
	}

	// cancellation is coarse: a reset can only land between stages, and only the slow stages look for it
	halted := func() error {
		if e := s.Ctx.Err(); e != nil {
			return fmt.Errorf("%w: %v", ErrExtractionHalted, e)
		}
		return nil
	}

	start := time.Now()
	previous := time.Now()

	s.Notify(MSG1)
	pp, err := dox.ReadParagraphs(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrInputNotFound, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInputUnparsable, err)
	}
	Msg.Timer("A", MSG1, start, previous)
	previous = time.Now()

	s.Notify(MSG2)
	cleaned := CleanParagraphs(SiftParagraphs(pp))
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: no paragraph survived the length and token sieves", ErrInsufficientContent)
	}

	if s.K < 1 || s.K > len(cleaned) {
		return nil, fmt.Errorf("%w: asked for %d topics from %d cleaned paragraphs", ErrInvalidTopicCount, s.K, len(cleaned))
	}
	Msg.Timer("B", MSG2, start, previous)
	previous = time.Now()

	if e := halted(); e != nil {
		return nil, e
	}

	s.Notify(MSG3)
	vectoriser := NewTopicVectoriser()
	vectoriser.Fit(cleaned...)
	if len(vectoriser.Vocabulary) == 0 {
		return nil, fmt.Errorf("%w: every term was either too rare or too common", ErrInsufficientContent)
	}
	Msg.Timer("C", MSG3, start, previous)
	previous = time.Now()

	if e := halted(); e != nil {
		return nil, e
	}

	// the pipeline inside ldamodel() will refit identically; the early pass above exists so that an
	// empty vocabulary fails before any modeling starts
	s.Notify(MSG4)
	topicsOverWords, err := ldamodel(s.K, cleaned, vectoriser, s.Model)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelFitFailure, err)
	}
	Msg.Timer("D", MSG4, start, previous)
	previous = time.Now()

	s.Notify(MSG5)
	labels := ldatopiclabels(s.K, s.Model.TopicWordCount, topicsOverWords, vectoriser)
	Msg.Timer("E", MSG5, start, previous)

	return labels, nil
}
