//    TopicaGoServer
//    Copyright: E Gunderson 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tpc

import "errors"

// the extraction route maps these onto http status codes; errors.Is() sees through the wrapping

var (
	ErrInputNotFound       = errors.New("input file not found")
	ErrInputUnparsable     = errors.New("input file is not a readable docx")
	ErrInsufficientContent = errors.New("no usable text survived cleaning")
	ErrInvalidTopicCount   = errors.New("topic count out of range for this document")
	ErrModelFitFailure     = errors.New("topic model could not be fit")
	ErrExtractionHalted    = errors.New("extraction cancelled before it finished")
)
