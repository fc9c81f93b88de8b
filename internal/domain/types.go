// Package domain contains the value types shared by the resolution engine,
// its source indexes and its renderers. Renderers traverse these types
// read-only; nothing here holds references back into a source index.
package domain

import "strings"

// NodeKind classifies a structural node.
type NodeKind int

const (
	// KindPrimitive is a scalar: numbers, strings, booleans, dates.
	KindPrimitive NodeKind = iota
	// KindObject is a composite type with named members.
	KindObject
	// KindArray is an ordered collection wrapping an element node.
	KindArray
	// KindMap is a keyed collection wrapping key and value nodes.
	KindMap
	// KindEnum is a scalar restricted to a declared set of values.
	KindEnum
	// KindCycleRef marks a type already being expanded higher up the same branch.
	KindCycleRef
)

var nodeKindNames = map[NodeKind]string{
	KindPrimitive: "PRIMITIVE",
	KindObject:    "OBJECT",
	KindArray:     "ARRAY",
	KindMap:       "MAP",
	KindEnum:      "ENUM",
	KindCycleRef:  "CYCLE_REF",
}

// String returns the upper case kind name.
func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// CommentInfo is the documentation record of a single declaration.
// It is built once by the comment extractor and treated as immutable afterwards.
type CommentInfo struct {
	// DisplayName is the human readable name (@name, title tag)
	DisplayName string

	// Description is the long form documentation
	Description string

	// Example is the raw example value (@example, example tag)
	Example string

	// Hidden marks the declaration as excluded from documentation
	Hidden bool

	// Required marks a field as mandatory (validate/binding tags, @required)
	Required bool

	// Deprecated is set by a "Deprecated:" paragraph
	Deprecated bool

	// HiddenFields and OnlyFields apply to both parameters and results
	HiddenFields []string
	OnlyFields   []string

	// Scope specific filter lists
	HiddenRequest  []string
	OnlyRequest    []string
	HiddenResponse []string
	OnlyResponse   []string

	// ActionName labels an operation (@actionName)
	ActionName string

	// AllowedValues from validate:"oneof=..."
	AllowedValues []string

	// Params maps a parameter name to its @param description
	Params map[string]string

	// Tags holds every annotation without a dedicated field, in encounter order per key
	Tags map[string][]string
}

// Tag returns the first value recorded for an annotation, if any.
func (c *CommentInfo) Tag(name string) (string, bool) {
	if c == nil || c.Tags == nil {
		return "", false
	}
	values, ok := c.Tags[strings.ToLower(name)]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// TagOr returns the first value of an annotation or the fallback.
func (c *CommentInfo) TagOr(name, fallback string) string {
	if v, ok := c.Tag(name); ok {
		return v
	}
	return fallback
}

// ItemName returns the display name, or fallback when none was declared.
func (c *CommentInfo) ItemName(fallback string) string {
	if c == nil || c.DisplayName == "" {
		return fallback
	}
	return c.DisplayName
}

// RequestFilter returns the hidden and only lists that apply to parameters.
func (c *CommentInfo) RequestFilter() (hidden []string, only []string) {
	if c == nil {
		return nil, nil
	}
	return OrderedSet(c.HiddenFields, c.HiddenRequest), OrderedSet(c.OnlyFields, c.OnlyRequest)
}

// ResponseFilter returns the hidden and only lists that apply to results.
func (c *CommentInfo) ResponseFilter() (hidden []string, only []string) {
	if c == nil {
		return nil, nil
	}
	return OrderedSet(c.HiddenFields, c.HiddenResponse), OrderedSet(c.OnlyFields, c.OnlyResponse)
}

// Field is a named child of an OBJECT node.
type Field struct {
	// Name is the serialized member name
	Name string

	// Path is the dotted field path from the expansion root, e.g. "order.items.price"
	Path string

	Node *TypeNode
}

// TypeNode is the structural shape of a declared type.
type TypeNode struct {
	Kind NodeKind

	// TypeName is the canonical identity of the declared type including type arguments
	TypeName string

	// Children are the members of an OBJECT node in resolved order
	Children []*Field

	// Elem is the element of an ARRAY node
	Elem *TypeNode

	// Key and Value describe a MAP node
	Key   *TypeNode
	Value *TypeNode

	// EnumValues lists the declared values of an ENUM node
	EnumValues []string

	// Hidden is set when the declaration itself is documented as hidden
	Hidden bool

	// Diagnostic explains why a branch degraded to an empty OBJECT
	Diagnostic string
}

// Child returns the named child of an OBJECT node.
func (n *TypeNode) Child(name string) *Field {
	if n == nil {
		return nil
	}
	for _, f := range n.Children {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Innermost unwraps ARRAY elements and MAP values down to the first other node.
func (n *TypeNode) Innermost() *TypeNode {
	for n != nil {
		switch n.Kind {
		case KindArray:
			if n.Elem == nil {
				return n
			}
			n = n.Elem
		case KindMap:
			if n.Value == nil {
				return n
			}
			n = n.Value
		default:
			return n
		}
	}
	return nil
}

// StructureAndCommentInfo is one position of a resolved tree: the structural
// node at that position merged with the documentation of the declaration
// that produced it.
type StructureAndCommentInfo struct {
	// Name of the member or parameter, empty for a root
	Name string

	// Path is the dotted field path used for filtering
	Path string

	Node *TypeNode

	// Comment is never nil
	Comment *CommentInfo

	// Children are the members of the innermost OBJECT reached through
	// array elements and map values
	Children []*StructureAndCommentInfo
}

// Child returns the named child, if present.
func (s *StructureAndCommentInfo) Child(name string) *StructureAndCommentInfo {
	if s == nil {
		return nil
	}
	for _, c := range s.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Walk visits s and every descendant depth first, parents before children.
func (s *StructureAndCommentInfo) Walk(visit func(node *StructureAndCommentInfo, depth int)) {
	s.walk(visit, 0)
}

func (s *StructureAndCommentInfo) walk(visit func(node *StructureAndCommentInfo, depth int), depth int) {
	if s == nil {
		return
	}
	visit(s, depth)
	for _, c := range s.Children {
		c.walk(visit, depth+1)
	}
}

// ResolvedMethod is the combined resolution of one method.
type ResolvedMethod struct {
	// Owner is the display identity of the declaring type
	Owner string

	// Method is the declared method name
	Method string

	Comment *CommentInfo

	// Params is a synthesized OBJECT whose children are the parameters
	Params *StructureAndCommentInfo

	// Return is nil for methods without results
	Return *StructureAndCommentInfo
}

// ActionName returns the operation label: @actionName, else the method name.
func (m *ResolvedMethod) ActionName() string {
	if m.Comment != nil && m.Comment.ActionName != "" {
		return m.Comment.ActionName
	}
	return m.Method
}

// MethodFailure records a hard failure of one method inside an owner batch.
type MethodFailure struct {
	Method string
	Err    error
}

// ResolvedOwner groups the resolved methods of one owner type.
type ResolvedOwner struct {
	// Name is the short type name
	Name string

	// Identity is the canonical type identity
	Identity string

	Comment *CommentInfo

	Methods []*ResolvedMethod

	Failures []MethodFailure
}
