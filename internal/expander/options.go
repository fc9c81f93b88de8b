package expander

import (
	"github.com/griffnb/core-savior/internal/comment"
	"github.com/griffnb/core-savior/internal/selector"
	"github.com/griffnb/core-savior/internal/source"
)

// NewService creates a new expander over index with optional configuration
func NewService(index source.Index, options ...Option) *Service {
	s := &Service{
		index:     index,
		extractor: comment.NewExtractor(),
		selector:  selector.New(index),
		maxDepth:  DefaultMaxDepth,
		debug:     &noOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithMaxDepth sets the nesting limit; values below one keep the default
func WithMaxDepth(depth int) Option {
	return func(s *Service) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger Debugger) Option {
	return func(s *Service) {
		if debugger != nil {
			s.debug = debugger
		}
	}
}

// WithExtractor replaces the comment extractor
func WithExtractor(extractor *comment.Extractor) Option {
	return func(s *Service) {
		if extractor != nil {
			s.extractor = extractor
		}
	}
}
