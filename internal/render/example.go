package render

import (
	"bytes"
	"encoding/json"

	"github.com/griffnb/core-savior/internal/domain"
)

// Object is a JSON object that keeps its key order.
type Object []Member

// Member is one key of an Object.
type Member struct {
	Key   string
	Value any
}

// MarshalJSON writes the members in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value of key.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Example builds an example value for a resolved tree. Object keys follow
// field order, declared examples win, cycles become empty objects.
func Example(s *domain.StructureAndCommentInfo) any {
	if s == nil || s.Node == nil {
		return nil
	}
	if s.Comment != nil && s.Comment.Example != "" {
		if v, ok := decodeExample(s.Comment.Example); ok && !isScalarKind(s.Node.Kind) {
			return v
		}
	}
	return exampleOf(s.Node, s)
}

// ExampleJSON is Example encoded as indented JSON.
func ExampleJSON(s *domain.StructureAndCommentInfo) (string, error) {
	b, err := json.MarshalIndent(Example(s), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func exampleOf(node *domain.TypeNode, s *domain.StructureAndCommentInfo) any {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case domain.KindPrimitive:
		return scalarExample(node, s.Comment)
	case domain.KindEnum:
		if s.Comment != nil && s.Comment.Example != "" {
			return s.Comment.Example
		}
		if len(node.EnumValues) > 0 {
			return node.EnumValues[0]
		}
		return ""
	case domain.KindArray:
		return []any{exampleOf(node.Elem, s)}
	case domain.KindMap:
		key := "key"
		if node.Key != nil && node.Key.Kind == domain.KindEnum && len(node.Key.EnumValues) > 0 {
			key = node.Key.EnumValues[0]
		}
		return Object{{Key: key, Value: exampleOf(node.Value, s)}}
	case domain.KindCycleRef:
		return Object{}
	}

	obj := Object{}
	for _, child := range s.Children {
		obj = append(obj, Member{Key: child.Name, Value: Example(child)})
	}
	return obj
}

func scalarExample(node *domain.TypeNode, info *domain.CommentInfo) any {
	jsonType, format := domain.JSONType(node.TypeName)

	if info != nil {
		if info.Example != "" {
			if jsonType != domain.STRING {
				if v, ok := decodeExample(info.Example); ok {
					return v
				}
			}
			return info.Example
		}
		if len(info.AllowedValues) > 0 {
			return info.AllowedValues[0]
		}
	}

	switch jsonType {
	case domain.INTEGER, domain.NUMBER:
		return 0
	case domain.BOOLEAN:
		return false
	case domain.OBJECT:
		return Object{}
	}
	if format == "date-time" {
		return "2006-01-02T15:04:05Z"
	}
	return ""
}

func decodeExample(raw string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, false
	}
	return v, true
}

func isScalarKind(kind domain.NodeKind) bool {
	return kind == domain.KindPrimitive || kind == domain.KindEnum
}
