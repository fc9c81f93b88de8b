// Package resolver combines the structural expansion of a method's parameters
// and results with the documentation of every declaration involved.
//
// Each Resolve call owns its filter stack: parameter filters are active while
// parameters are expanded and result filters while results are expanded, and
// nothing survives the call. A Service is safe for concurrent use when its
// source.Index is.
package resolver

import (
	"errors"
	"fmt"

	"github.com/griffnb/core-savior/internal/comment"
	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/expander"
	"github.com/griffnb/core-savior/internal/scope"
	"github.com/griffnb/core-savior/internal/selector"
	"github.com/griffnb/core-savior/internal/source"
)

// Service resolves methods of owner types
type Service struct {
	index      source.Index
	extractor  *comment.Extractor
	selector   *selector.Selector
	expander   *expander.Service
	hideMethod HideMethodFunc
	maxDepth   int
	debug      Debugger
}

// NewService creates a new resolver over index with optional configuration
func NewService(index source.Index, options ...Option) *Service {
	s := &Service{
		index:     index,
		extractor: comment.NewExtractor(),
		selector:  selector.New(index),
		maxDepth:  expander.DefaultMaxDepth,
		debug:     &noOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	s.expander = expander.NewService(index,
		expander.WithMaxDepth(s.maxDepth),
		expander.WithDebugger(s.debug),
		expander.WithExtractor(s.extractor),
	)

	return s
}

// Resolve builds the combined parameter and result trees of method.
//
// A hidden method yields (nil, nil) unless includeHidden is set. The only
// errors returned are *domain.InputError values.
func (s *Service) Resolve(owner source.TypeHandle, method source.MemberHandle, includeHidden bool) (*domain.ResolvedMethod, error) {
	ownerIdentity, err := s.ownerIdentity(owner)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, &domain.InputError{Subject: "method", Cause: errors.New("nil method")}
	}

	methodName := s.index.MemberName(method)
	if s.index.MemberKind(method) != source.MemberMethod {
		return nil, &domain.InputError{Subject: "method", Name: methodName, Cause: errors.New("member is not a method")}
	}

	info := s.extractor.Extract(s.index.DocumentationFor(method))
	if s.isHidden(methodName, info) && !includeHidden {
		s.debug.Printf("resolver: skipping hidden method %s.%s", ownerIdentity, methodName)
		return nil, nil
	}

	sig, err := s.index.MethodSignature(method)
	if err != nil {
		return nil, &domain.InputError{Subject: "method", Name: methodName, Cause: fmt.Errorf("signature: %w", err)}
	}

	stack := scope.NewStack()

	hidden, only := info.RequestFilter()
	stack.Push(hidden, only)
	params := s.resolveParams(sig.Params, info, stack)
	stack.Pop()

	hidden, only = info.ResponseFilter()
	stack.Push(hidden, only)
	results := s.resolveResults(sig.Results, stack)
	stack.Pop()

	return &domain.ResolvedMethod{
		Owner:   domain.ShortTypeName(ownerIdentity),
		Method:  methodName,
		Comment: info,
		Params:  params,
		Return:  results,
	}, nil
}

// ResolveOwner resolves every documentable method of owner in selector order.
// Per method hard failures are recorded on the result and do not stop the batch.
func (s *Service) ResolveOwner(owner source.TypeHandle, includeHidden bool) (*domain.ResolvedOwner, error) {
	identity, err := s.ownerIdentity(owner)
	if err != nil {
		return nil, err
	}

	candidates, err := s.selector.Methods(owner)
	if err != nil {
		return nil, &domain.InputError{Subject: "owner", Name: identity, Cause: err}
	}

	result := &domain.ResolvedOwner{
		Name:     domain.BaseTypeName(identity),
		Identity: identity,
		Comment:  s.expander.TypeComment(owner),
	}

	for _, candidate := range candidates {
		method, err := s.Resolve(owner, candidate.Member, includeHidden)
		if err != nil {
			s.debug.Printf("resolver: %s.%s: %v", identity, candidate.Name, err)
			result.Failures = append(result.Failures, domain.MethodFailure{Method: candidate.Name, Err: err})
			continue
		}
		if method == nil {
			continue
		}
		result.Methods = append(result.Methods, method)
	}

	return result, nil
}

func (s *Service) ownerIdentity(owner source.TypeHandle) (string, error) {
	if owner == nil {
		return "", &domain.InputError{Subject: "owner", Cause: errors.New("nil owner")}
	}
	identity := s.index.TypeIdentity(owner)
	if identity == "" {
		return "", &domain.InputError{Subject: "owner", Cause: fmt.Errorf("unknown handle %T", owner)}
	}
	return identity, nil
}

func (s *Service) isHidden(method string, info *domain.CommentInfo) bool {
	if info.Hidden {
		return true
	}
	return s.hideMethod != nil && s.hideMethod(method, info)
}

// resolveParams places every parameter under a synthesized object root. A
// parameter's path is its name.
func (s *Service) resolveParams(params []source.Param, method *domain.CommentInfo, stack *scope.Stack) *domain.StructureAndCommentInfo {
	root := synthesizedRoot()

	for i, param := range params {
		name := param.Name
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}
		if !stack.Allows(name) {
			continue
		}

		own := s.extractor.Extract(param.Doc)
		if own.Description == "" && method.Params[name] != "" {
			own.Description = method.Params[name]
		}

		s.appendChild(root, name, param.Type, own, stack)
	}

	return root
}

// resolveResults expands a single result as the root itself and several
// results under a synthesized root.
func (s *Service) resolveResults(results []source.Param, stack *scope.Stack) *domain.StructureAndCommentInfo {
	switch len(results) {
	case 0:
		return nil
	case 1:
		result := results[0]
		exp := s.expander.Expand(result.Type, "", stack)
		return merge(result.Name, "", exp.Root, s.extractor.Extract(result.Doc), exp)
	}

	root := synthesizedRoot()
	for i, result := range results {
		name := result.Name
		if name == "" || name == "_" {
			name = fmt.Sprintf("result%d", i)
		}
		if !stack.Allows(name) {
			continue
		}
		s.appendChild(root, name, result.Type, s.extractor.Extract(result.Doc), stack)
	}

	return root
}

func (s *Service) appendChild(root *domain.StructureAndCommentInfo, name string, t source.TypeHandle, own *domain.CommentInfo, stack *scope.Stack) {
	exp := s.expander.Expand(t, name, stack)
	root.Node.Children = append(root.Node.Children, &domain.Field{Name: name, Path: name, Node: exp.Root})
	root.Children = append(root.Children, merge(name, name, exp.Root, own, exp))
}

func synthesizedRoot() *domain.StructureAndCommentInfo {
	return &domain.StructureAndCommentInfo{
		Node:    &domain.TypeNode{Kind: domain.KindObject},
		Comment: &domain.CommentInfo{},
	}
}
