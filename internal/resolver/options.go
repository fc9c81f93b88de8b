package resolver

import (
	"github.com/griffnb/core-savior/internal/domain"
)

// Option is a functional option for configuring Service
type Option func(*Service)

// HideMethodFunc decides whether a method is hidden in addition to its own @hidden annotation
type HideMethodFunc func(method string, info *domain.CommentInfo) bool

// Debugger interface for logging
type Debugger interface {
	Printf(format string, v ...interface{})
}

// noOpDebugger is a no-op debugger
type noOpDebugger struct{}

func (n *noOpDebugger) Printf(format string, v ...interface{}) {}

// WithMaxDepth sets the expansion nesting limit
func WithMaxDepth(depth int) Option {
	return func(s *Service) {
		s.maxDepth = depth
	}
}

// WithHideMethod sets an additional method hiding policy
func WithHideMethod(hide HideMethodFunc) Option {
	return func(s *Service) {
		s.hideMethod = hide
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
