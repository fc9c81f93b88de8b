// Package source defines the capability the resolution engine needs from a
// declaration index. The engine never inspects handles itself; every question
// about a type or member goes through an Index.
package source

import (
	"github.com/griffnb/core-savior/internal/domain"
)

// TypeHandle is an opaque reference to a declared or instantiated type.
type TypeHandle any

// MemberHandle is an opaque reference to a field or method.
type MemberHandle any

// MemberKind distinguishes fields from methods.
type MemberKind int

const (
	// MemberField is a data member
	MemberField MemberKind = iota
	// MemberMethod is a callable member
	MemberMethod
)

// Modifiers are capability flags resolved by the index front-end.
type Modifiers uint8

const (
	// Static marks a member not bound to an instance
	Static Modifiers = 1 << iota
	// Private marks a member not visible outside its package
	Private
	// Constructor marks a member that creates the owner type
	Constructor
	// Generated marks a member declared in generated code
	Generated
)

// Has reports whether every flag in f is set.
func (m Modifiers) Has(f Modifiers) bool {
	return m&f == f
}

// Documentation is the raw documentation attached to a declaration.
type Documentation struct {
	// Name is the declared name
	Name string

	// Text is the doc comment with comment markers stripped
	Text string

	// Tag is the raw struct tag, fields only
	Tag string
}

// Classification is the structural category of a type.
type Classification struct {
	Kind domain.NodeKind

	// Elem is set for arrays
	Elem TypeHandle

	// Key and Value are set for maps
	Key   TypeHandle
	Value TypeHandle

	// EnumValues is set for enums
	EnumValues []string
}

// Param is one parameter or result of a method signature.
type Param struct {
	Name string
	Type TypeHandle

	// Doc is documentation attached to the parameter, if the index has any
	Doc Documentation
}

// Signature describes the parameters and results of a method.
type Signature struct {
	Params  []Param
	Results []Param
}

// Index answers structural and documentation questions about declarations.
// Implementations must be safe for concurrent reads.
type Index interface {
	// ListMembers returns declared members before inherited or promoted ones
	ListMembers(t TypeHandle) ([]MemberHandle, error)
	MemberName(m MemberHandle) string
	MemberKind(m MemberHandle) MemberKind
	MemberModifiers(m MemberHandle) Modifiers
	MemberType(m MemberHandle) (TypeHandle, error)
	MethodSignature(m MemberHandle) (Signature, error)

	// TypeIdentity is canonical: equal types yield equal identities
	TypeIdentity(t TypeHandle) string

	// ClassifyType returns a *domain.TypeError for types it cannot describe
	ClassifyType(t TypeHandle) (Classification, error)

	// DocumentationFor accepts a TypeHandle or a MemberHandle
	DocumentationFor(h any) Documentation
	ExplicitOrderOf(m MemberHandle) (int, bool)
}
