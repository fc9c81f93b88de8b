// Package memory is a builder-style source.Index held entirely in memory.
// Types are created through the Index so that forward references and
// mutually recursive declarations can be wired in any order.
package memory

import (
	"fmt"
	"math"
	"sync"

	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/source"
)

// Index is an in-memory source.Index. Build it completely before handing it
// to a resolver; reads are safe for concurrent use once building is done.
type Index struct {
	mu    sync.Mutex
	types map[string]*Type
}

var _ source.Index = (*Index)(nil)

// New creates an empty index.
func New() *Index {
	return &Index{types: make(map[string]*Type)}
}

// Type is a declared or composite type.
type Type struct {
	index   *Index
	id      string
	class   source.Classification
	doc     source.Documentation
	members []*Member
	err     error
}

// Member is a field or method of a Type.
type Member struct {
	owner    *Type
	name     string
	kind     source.MemberKind
	mods     source.Modifiers
	typ      *Type
	typeErr  error
	sig      source.Signature
	sigErr   error
	doc      source.Documentation
	order    int
	hasOrder bool
}

func (idx *Index) intern(id string, build func() *Type) *Type {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if t, ok := idx.types[id]; ok {
		return t
	}
	t := build()
	t.index = idx
	t.id = id
	if t.doc.Name == "" {
		t.doc.Name = domain.ShortTypeName(id)
	}
	idx.types[id] = t
	return t
}

// Primitive returns the scalar type with the given identity.
func (idx *Index) Primitive(name string) *Type {
	return idx.intern(name, func() *Type {
		return &Type{class: source.Classification{Kind: domain.KindPrimitive}}
	})
}

// Object returns the object type with the given identity, creating it if needed.
func (idx *Index) Object(id string) *Type {
	return idx.intern(id, func() *Type {
		return &Type{class: source.Classification{Kind: domain.KindObject}}
	})
}

// Array returns the array type of elem.
func (idx *Index) Array(elem *Type) *Type {
	return idx.intern("[]"+elem.id, func() *Type {
		return &Type{class: source.Classification{Kind: domain.KindArray, Elem: elem}}
	})
}

// Map returns the map type from key to value.
func (idx *Index) Map(key, value *Type) *Type {
	return idx.intern(fmt.Sprintf("map[%s]%s", key.id, value.id), func() *Type {
		return &Type{class: source.Classification{Kind: domain.KindMap, Key: key, Value: value}}
	})
}

// NamedArray returns a declared array type. Set its element with Of, which
// may be the type itself.
func (idx *Index) NamedArray(id string) *Type {
	return idx.intern(id, func() *Type {
		return &Type{class: source.Classification{Kind: domain.KindArray}}
	})
}

// NamedMap returns a declared map type keyed by key. Set its value with Of.
func (idx *Index) NamedMap(id string, key *Type) *Type {
	return idx.intern(id, func() *Type {
		return &Type{class: source.Classification{Kind: domain.KindMap, Key: key}}
	})
}

// Enum returns the enum type with the given identity and values.
func (idx *Index) Enum(id string, values ...string) *Type {
	return idx.intern(id, func() *Type {
		return &Type{class: source.Classification{Kind: domain.KindEnum, EnumValues: values}}
	})
}

// Unresolvable returns a type whose classification always fails.
func (idx *Index) Unresolvable(id string) *Type {
	return idx.intern(id, func() *Type {
		return &Type{err: &domain.TypeError{TypeName: id, Reason: "declaration not found"}}
	})
}

// ID returns the identity of the type.
func (t *Type) ID() string {
	return t.id
}

// Of sets the element of an array or the value of a map.
func (t *Type) Of(elem *Type) *Type {
	switch t.class.Kind {
	case domain.KindArray:
		t.class.Elem = elem
	case domain.KindMap:
		t.class.Value = elem
	}
	return t
}

// Doc sets the declaration doc comment.
func (t *Type) Doc(text string) *Type {
	t.doc.Text = text
	return t
}

// Field appends a field member.
func (t *Type) Field(name string, typ *Type) *Member {
	m := &Member{owner: t, name: name, kind: source.MemberField, typ: typ, order: math.MaxInt}
	t.members = append(t.members, m)
	return m
}

// Method appends a method member without parameters or results.
func (t *Type) Method(name string) *Member {
	m := &Member{owner: t, name: name, kind: source.MemberMethod, order: math.MaxInt}
	t.members = append(t.members, m)
	return m
}

// Member returns the first member with the given name, or nil.
func (t *Type) Member(name string) *Member {
	for _, m := range t.members {
		if m.name == name {
			return m
		}
	}
	return nil
}

// Param appends a parameter to a method.
func (m *Member) Param(name string, typ *Type) *Member {
	m.sig.Params = append(m.sig.Params, source.Param{Name: name, Type: typ})
	return m
}

// Result appends a result to a method.
func (m *Member) Result(name string, typ *Type) *Member {
	m.sig.Results = append(m.sig.Results, source.Param{Name: name, Type: typ})
	return m
}

// WithDoc sets the member doc comment.
func (m *Member) WithDoc(text string) *Member {
	m.doc.Text = text
	return m
}

// WithTag sets the raw struct tag.
func (m *Member) WithTag(tag string) *Member {
	m.doc.Tag = tag
	return m
}

// WithOrder sets an explicit order.
func (m *Member) WithOrder(order int) *Member {
	m.order = order
	m.hasOrder = true
	return m
}

// WithModifiers adds modifier flags.
func (m *Member) WithModifiers(mods source.Modifiers) *Member {
	m.mods |= mods
	return m
}

// WithTypeError makes MemberType fail.
func (m *Member) WithTypeError(err error) *Member {
	m.typeErr = err
	return m
}

// WithSignatureError makes MethodSignature fail.
func (m *Member) WithSignatureError(err error) *Member {
	m.sigErr = err
	return m
}

func asType(t source.TypeHandle) (*Type, error) {
	typ, ok := t.(*Type)
	if !ok || typ == nil {
		return nil, fmt.Errorf("memory: %T is not a memory type", t)
	}
	return typ, nil
}

func asMember(m source.MemberHandle) (*Member, error) {
	member, ok := m.(*Member)
	if !ok || member == nil {
		return nil, fmt.Errorf("memory: %T is not a memory member", m)
	}
	return member, nil
}

// ListMembers returns members in insertion order.
func (idx *Index) ListMembers(t source.TypeHandle) ([]source.MemberHandle, error) {
	typ, err := asType(t)
	if err != nil {
		return nil, err
	}
	if typ.err != nil {
		return nil, typ.err
	}
	out := make([]source.MemberHandle, 0, len(typ.members))
	for _, m := range typ.members {
		out = append(out, m)
	}
	return out, nil
}

// MemberName returns the member name.
func (idx *Index) MemberName(m source.MemberHandle) string {
	member, err := asMember(m)
	if err != nil {
		return ""
	}
	return member.name
}

// MemberKind returns field or method.
func (idx *Index) MemberKind(m source.MemberHandle) source.MemberKind {
	member, err := asMember(m)
	if err != nil {
		return source.MemberField
	}
	return member.kind
}

// MemberModifiers returns the modifier flags.
func (idx *Index) MemberModifiers(m source.MemberHandle) source.Modifiers {
	member, err := asMember(m)
	if err != nil {
		return 0
	}
	return member.mods
}

// MemberType returns the field type, or the first result of a method.
func (idx *Index) MemberType(m source.MemberHandle) (source.TypeHandle, error) {
	member, err := asMember(m)
	if err != nil {
		return nil, err
	}
	if member.typeErr != nil {
		return nil, member.typeErr
	}
	if member.kind == source.MemberMethod {
		if len(member.sig.Results) == 0 {
			return nil, nil
		}
		return member.sig.Results[0].Type, nil
	}
	if member.typ == nil {
		return nil, &domain.TypeError{Reason: fmt.Sprintf("field %s has no type", member.name)}
	}
	return member.typ, nil
}

// MethodSignature returns the declared parameters and results.
func (idx *Index) MethodSignature(m source.MemberHandle) (source.Signature, error) {
	member, err := asMember(m)
	if err != nil {
		return source.Signature{}, err
	}
	if member.kind != source.MemberMethod {
		return source.Signature{}, fmt.Errorf("memory: %s is not a method", member.name)
	}
	if member.sigErr != nil {
		return source.Signature{}, member.sigErr
	}
	return member.sig, nil
}

// TypeIdentity returns the identity given at creation.
func (idx *Index) TypeIdentity(t source.TypeHandle) string {
	typ, err := asType(t)
	if err != nil {
		return ""
	}
	return typ.id
}

// ClassifyType returns the classification given at creation.
func (idx *Index) ClassifyType(t source.TypeHandle) (source.Classification, error) {
	typ, err := asType(t)
	if err != nil {
		return source.Classification{}, &domain.TypeError{Cause: err}
	}
	if typ.err != nil {
		return source.Classification{}, typ.err
	}
	return typ.class, nil
}

// DocumentationFor returns the docs of a *Type or *Member.
func (idx *Index) DocumentationFor(h any) source.Documentation {
	switch v := h.(type) {
	case *Type:
		if v != nil {
			return v.doc
		}
	case *Member:
		if v != nil {
			doc := v.doc
			doc.Name = v.name
			return doc
		}
	}
	return source.Documentation{}
}

// ExplicitOrderOf returns the order set with WithOrder.
func (idx *Index) ExplicitOrderOf(m source.MemberHandle) (int, bool) {
	member, err := asMember(m)
	if err != nil || !member.hasOrder {
		return math.MaxInt, false
	}
	return member.order, true
}
