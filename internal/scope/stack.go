// Package scope holds the filter frames of a single resolution call.
//
// A Stack is created by the resolver for each call and passed explicitly to
// the expander, so two resolutions never observe each other's filters. A
// Stack itself is not safe for concurrent use.
package scope

import (
	"strings"

	"github.com/griffnb/core-savior/internal/domain"
)

// Frame is one pushed pair of hide and allow lists.
type Frame struct {
	Hidden []string
	Only   []string
}

// Stack is a LIFO of filter frames. The zero value is an empty stack.
type Stack struct {
	frames []Frame
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push makes hidden and only the active filters until the matching Pop.
func (s *Stack) Push(hidden, only []string) {
	s.frames = append(s.frames, Frame{
		Hidden: domain.OrderedSet(hidden),
		Only:   domain.OrderedSet(only),
	})
}

// Pop removes the active frame. Popping an empty stack is a no-op.
func (s *Stack) Pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// PopAll clears the stack.
func (s *Stack) PopAll() {
	s.frames = s.frames[:0]
}

// Depth returns the number of pushed frames.
func (s *Stack) Depth() int {
	if s == nil {
		return 0
	}
	return len(s.frames)
}

func (s *Stack) top() (Frame, bool) {
	if s.Depth() == 0 {
		return Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// CurrentHidden returns the active hide list, empty when nothing is pushed.
func (s *Stack) CurrentHidden() []string {
	f, _ := s.top()
	return f.Hidden
}

// CurrentOnly returns the active allow list, empty when nothing is pushed.
func (s *Stack) CurrentOnly() []string {
	f, _ := s.top()
	return f.Only
}

// Allows reports whether a member at path survives the active filters.
//
// A non-empty allow list is exclusive and the hide list is ignored. An allow
// entry keeps its own path, every ancestor on the way to it and everything
// below it. A hide entry drops exactly its own path and, with it, the subtree.
func (s *Stack) Allows(path string) bool {
	f, ok := s.top()
	if !ok {
		return true
	}
	if len(f.Only) > 0 {
		for _, allowed := range f.Only {
			if matches(path, allowed) {
				return true
			}
		}
		return false
	}
	for _, hidden := range f.Hidden {
		if path == hidden {
			return false
		}
	}
	return true
}

func matches(path, allowed string) bool {
	if path == allowed {
		return true
	}
	// ancestor of an allowed path
	if strings.HasPrefix(allowed, path+domain.PathSeparator) {
		return true
	}
	// descendant of an allowed path
	return strings.HasPrefix(path, allowed+domain.PathSeparator)
}
