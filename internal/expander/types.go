package expander

import (
	"github.com/griffnb/core-savior/internal/comment"
	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/selector"
	"github.com/griffnb/core-savior/internal/source"
)

// DefaultMaxDepth bounds nesting for instantiations whose identities never repeat
const DefaultMaxDepth = 64

// Service expands type handles into structural trees
type Service struct {
	index     source.Index
	extractor *comment.Extractor
	selector  *selector.Selector
	maxDepth  int
	debug     Debugger
}

// Debugger interface for logging
type Debugger interface {
	Printf(format string, v ...interface{})
}

// Expansion is the result of expanding one root type
type Expansion struct {
	Root *domain.TypeNode

	// Comments holds member documentation keyed by field path
	Comments map[string]*domain.CommentInfo

	// TypeComments holds declaration documentation keyed by type identity
	TypeComments map[string]*domain.CommentInfo
}

// Option is a functional option for configuring Service
type Option func(*Service)

// noOpDebugger is a no-op debugger
type noOpDebugger struct{}

func (n *noOpDebugger) Printf(format string, v ...interface{}) {}
