package resolver

import (
	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/expander"
)

// merge aligns an expanded node with the comments recorded for its path,
// producing the combined tree rooted at node.
func merge(name, path string, node *domain.TypeNode, own *domain.CommentInfo, exp *expander.Expansion) *domain.StructureAndCommentInfo {
	inner := node.Innermost()

	var typeComment *domain.CommentInfo
	if inner != nil && inner.TypeName != "" {
		typeComment = exp.TypeComments[inner.TypeName]
	}

	out := &domain.StructureAndCommentInfo{
		Name:    name,
		Path:    path,
		Node:    node,
		Comment: withFallback(own, typeComment),
	}

	// a cycle terminal has no children to align
	if inner == nil || inner.Kind != domain.KindObject {
		return out
	}

	for _, field := range inner.Children {
		out.Children = append(out.Children, merge(field.Name, field.Path, field.Node, exp.Comments[field.Path], exp))
	}

	return out
}

// withFallback fills the display name and description of own from the
// declaration comment of its type. own is copied, never modified.
func withFallback(own, typeComment *domain.CommentInfo) *domain.CommentInfo {
	if own == nil {
		own = &domain.CommentInfo{}
	}
	if typeComment == nil {
		return own
	}
	if own.Description != "" && own.DisplayName != "" {
		return own
	}
	if typeComment.Description == "" && typeComment.DisplayName == "" {
		return own
	}

	merged := *own
	if merged.Description == "" {
		merged.Description = typeComment.Description
	}
	if merged.DisplayName == "" {
		merged.DisplayName = typeComment.DisplayName
	}
	return &merged
}
