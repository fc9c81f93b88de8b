// Package expander walks a type declaration graph into a domain.TypeNode tree.
//
// Cycle detection is scoped to the current branch: a composite identity is
// recorded on the way down and forgotten on the way back, so sibling branches
// may expand the same type again while a type reached through itself becomes a
// CYCLE_REF terminal.
package expander

import (
	"fmt"
	"strings"

	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/scope"
	"github.com/griffnb/core-savior/internal/source"
)

// walk is the state of a single Expand call
type walk struct {
	stack     *scope.Stack
	ancestors map[string]struct{}
	result    *Expansion
}

// Expand builds the structural tree of t. Member paths start at basePath and
// are filtered by the active frame of stack. Expand never fails: problems
// degrade to an empty OBJECT carrying a diagnostic.
func (s *Service) Expand(t source.TypeHandle, basePath string, stack *scope.Stack) *Expansion {
	if stack == nil {
		stack = scope.NewStack()
	}

	w := &walk{
		stack:     stack,
		ancestors: make(map[string]struct{}),
		result: &Expansion{
			Comments:     make(map[string]*domain.CommentInfo),
			TypeComments: make(map[string]*domain.CommentInfo),
		},
	}

	w.result.Root = s.expand(w, t, basePath, 0)

	return w.result
}

// TypeComment returns the declaration documentation of t.
func (s *Service) TypeComment(t source.TypeHandle) *domain.CommentInfo {
	return s.extractor.Extract(s.index.DocumentationFor(t))
}

func (s *Service) expand(w *walk, t source.TypeHandle, path string, depth int) *domain.TypeNode {
	identity := s.index.TypeIdentity(t)

	if depth > s.maxDepth {
		s.debug.Printf("expander: %s at %q exceeds max depth %d", identity, path, s.maxDepth)
		return degraded(identity, fmt.Sprintf("max depth %d exceeded", s.maxDepth))
	}

	class, err := s.index.ClassifyType(t)
	if err != nil {
		s.debug.Printf("expander: classify %s at %q: %v", identity, path, err)
		return degraded(identity, err.Error())
	}

	switch class.Kind {
	case domain.KindPrimitive:
		return &domain.TypeNode{Kind: domain.KindPrimitive, TypeName: identity}

	case domain.KindEnum:
		if _, ok := w.result.TypeComments[identity]; !ok {
			w.result.TypeComments[identity] = s.TypeComment(t)
		}
		return &domain.TypeNode{Kind: domain.KindEnum, TypeName: identity, EnumValues: class.EnumValues}

	case domain.KindArray:
		if !w.enter(identity) {
			return &domain.TypeNode{Kind: domain.KindCycleRef, TypeName: identity}
		}
		defer w.leave(identity)

		// elements share the path of their container
		return &domain.TypeNode{
			Kind:     domain.KindArray,
			TypeName: identity,
			Elem:     s.expand(w, class.Elem, path, depth+1),
		}

	case domain.KindMap:
		if !w.enter(identity) {
			return &domain.TypeNode{Kind: domain.KindCycleRef, TypeName: identity}
		}
		defer w.leave(identity)

		// values share the path of their container, keys get their own segment
		return &domain.TypeNode{
			Kind:     domain.KindMap,
			TypeName: identity,
			Key:      s.expand(w, class.Key, domain.JoinPath(path, domain.MapKeySegment), depth+1),
			Value:    s.expand(w, class.Value, path, depth+1),
		}

	case domain.KindObject:
		return s.expandObject(w, t, identity, path, depth)

	case domain.KindCycleRef:
		// an index may report a reference it already knows is recursive
		return &domain.TypeNode{Kind: domain.KindCycleRef, TypeName: identity}
	}

	return degraded(identity, fmt.Sprintf("unknown kind %s", class.Kind))
}

func (s *Service) expandObject(w *walk, t source.TypeHandle, identity, path string, depth int) *domain.TypeNode {
	if w.seen(identity) {
		return &domain.TypeNode{Kind: domain.KindCycleRef, TypeName: identity}
	}

	typeComment, ok := w.result.TypeComments[identity]
	if !ok {
		typeComment = s.TypeComment(t)
		w.result.TypeComments[identity] = typeComment
	}

	node := &domain.TypeNode{Kind: domain.KindObject, TypeName: identity}
	if typeComment.Hidden {
		node.Hidden = true
		return node
	}

	w.enter(identity)
	defer w.leave(identity)

	fields, err := s.selector.Fields(t)
	if err != nil {
		s.debug.Printf("expander: members of %s at %q: %v", identity, path, err)
		node.Diagnostic = err.Error()
		return node
	}

	for _, field := range fields {
		memberComment := s.extractor.Extract(s.index.DocumentationFor(field.Member))
		if memberComment.Hidden {
			continue
		}

		childPath := domain.JoinPath(path, field.Name)
		if !w.stack.Allows(childPath) {
			continue
		}

		var child *domain.TypeNode
		memberType, err := s.index.MemberType(field.Member)
		switch {
		case err != nil:
			s.debug.Printf("expander: type of %s at %q: %v", field.Name, childPath, err)
			child = degraded("", err.Error())
		case memberType == nil:
			child = degraded("", "member has no type")
		default:
			child = s.expand(w, memberType, childPath, depth+1)
		}

		w.result.Comments[childPath] = memberComment
		node.Children = append(node.Children, &domain.Field{Name: field.Name, Path: childPath, Node: child})
	}

	return node
}

func (w *walk) seen(identity string) bool {
	_, ok := w.ancestors[identity]
	return ok
}

// enter records identity on the current branch. It reports false when the
// identity is already an ancestor. Unnamed containers are never recorded:
// they can only recur through a named type, which is caught there.
func (w *walk) enter(identity string) bool {
	if !namedIdentity(identity) {
		return true
	}
	if w.seen(identity) {
		return false
	}
	w.ancestors[identity] = struct{}{}
	return true
}

func (w *walk) leave(identity string) {
	if namedIdentity(identity) {
		delete(w.ancestors, identity)
	}
}

// namedIdentity reports whether identity names a declared type rather than
// a type literal such as []T, [4]T or map[K]V.
func namedIdentity(identity string) bool {
	return identity != "" && !strings.HasPrefix(identity, "[") && !strings.HasPrefix(identity, "map[")
}

func degraded(identity, diagnostic string) *domain.TypeNode {
	return &domain.TypeNode{Kind: domain.KindObject, TypeName: identity, Diagnostic: diagnostic}
}
