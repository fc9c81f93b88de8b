package loader

import (
	"fmt"
	"go/token"
	"go/types"
	"sort"
	"sync"

	"github.com/griffnb/core-savior/internal/comment"
	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/source"
)

// Index is a source.Index over type-checked Go packages.
// Type handles are types.Type values; pointers are transparent.
// It is read-only after Load and safe for concurrent use.
type Index struct {
	result         *loadResult
	namingStrategy string

	mu      sync.Mutex
	members map[string][]source.MemberHandle
}

var _ source.Index = (*Index)(nil)

func newIndex(result *loadResult, namingStrategy string) *Index {
	return &Index{
		result:         result,
		namingStrategy: namingStrategy,
		members:        make(map[string][]source.MemberHandle),
	}
}

// identity is the package path qualified type string
func identity(t types.Type) string {
	if t == nil {
		return ""
	}
	return types.TypeString(deref(t), func(pkg *types.Package) string {
		return pkg.Path()
	})
}

// deref strips pointers and aliases
func deref(t types.Type) types.Type {
	for {
		t = types.Unalias(t)
		ptr, ok := t.(*types.Pointer)
		if !ok {
			return t
		}
		t = ptr.Elem()
	}
}

func asType(t source.TypeHandle) (types.Type, error) {
	typ, ok := t.(types.Type)
	if !ok || typ == nil {
		return nil, fmt.Errorf("loader: %T is not a go/types type", t)
	}
	return deref(typ), nil
}

// Owners lists the named, non generic types of the loaded packages that declare methods,
// in package then declaration order.
func (idx *Index) Owners() []Owner {
	var owners []Owner
	for _, pkg := range idx.result.roots {
		scope := pkg.Types.Scope()
		var found []Owner
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || tn.IsAlias() {
				continue
			}
			named, ok := tn.Type().(*types.Named)
			if !ok || named.TypeParams().Len() > 0 {
				continue
			}
			iface, isInterface := named.Underlying().(*types.Interface)
			switch {
			case isInterface && iface.NumMethods() == 0:
				continue
			case !isInterface && types.NewMethodSet(types.NewPointer(named)).Len() == 0:
				continue
			}
			found = append(found, Owner{
				Name:      tn.Name(),
				Identity:  identity(named),
				Package:   pkg.PkgPath,
				Interface: isInterface,
				Type:      named,
			})
		}
		sort.SliceStable(found, func(i, j int) bool {
			return found[i].Type.(*types.Named).Obj().Pos() < found[j].Type.(*types.Named).Obj().Pos()
		})
		owners = append(owners, found...)
	}
	return owners
}

// Lookup finds a loaded named type by name, package qualified name or identity.
func (idx *Index) Lookup(name string) (types.Type, bool) {
	for _, pkg := range idx.result.roots {
		for _, n := range pkg.Types.Scope().Names() {
			tn, ok := pkg.Types.Scope().Lookup(n).(*types.TypeName)
			if !ok {
				continue
			}
			switch name {
			case tn.Name(), pkg.Types.Name() + "." + tn.Name(), pkg.PkgPath + "." + tn.Name():
				return tn.Type(), true
			}
		}
	}
	return nil, false
}

// Position returns the source position of the declaration of a handle.
func (idx *Index) Position(h any) token.Position {
	switch v := h.(type) {
	case *member:
		return idx.result.fset.Position(v.obj.Pos())
	case types.Type:
		if named, ok := deref(v).(*types.Named); ok {
			return idx.result.fset.Position(named.Obj().Pos())
		}
	}
	return token.Position{}
}

// TypeIdentity implements source.Index.
func (idx *Index) TypeIdentity(t source.TypeHandle) string {
	typ, err := asType(t)
	if err != nil {
		return ""
	}
	return identity(typ)
}

// ClassifyType implements source.Index.
func (idx *Index) ClassifyType(t source.TypeHandle) (source.Classification, error) {
	typ, err := asType(t)
	if err != nil {
		return source.Classification{}, &domain.TypeError{Cause: err}
	}
	id := identity(typ)

	if _, ok := typ.(*types.TypeParam); ok {
		return source.Classification{Kind: domain.KindObject}, nil
	}

	if domain.IsExtendedPrimitiveType(id) || isTextMarshaler(typ) {
		return source.Classification{Kind: domain.KindPrimitive}, nil
	}

	if named, ok := typ.(*types.Named); ok {
		if _, isBasic := named.Underlying().(*types.Basic); isBasic {
			if values := idx.result.enums[id]; len(values) > 0 {
				return source.Classification{Kind: domain.KindEnum, EnumValues: values}, nil
			}
		}
	}

	switch u := typ.Underlying().(type) {
	case *types.Basic:
		if u.Kind() == types.Invalid {
			return source.Classification{}, &domain.TypeError{TypeName: id, Reason: "invalid type"}
		}
		return source.Classification{Kind: domain.KindPrimitive}, nil
	case *types.Slice:
		return source.Classification{Kind: domain.KindArray, Elem: u.Elem()}, nil
	case *types.Array:
		return source.Classification{Kind: domain.KindArray, Elem: u.Elem()}, nil
	case *types.Map:
		return source.Classification{Kind: domain.KindMap, Key: u.Key(), Value: u.Elem()}, nil
	case *types.Struct, *types.Interface:
		return source.Classification{Kind: domain.KindObject}, nil
	case *types.Chan:
		return source.Classification{}, &domain.TypeError{TypeName: id, Reason: "channels are not serializable"}
	case *types.Signature:
		return source.Classification{}, &domain.TypeError{TypeName: id, Reason: "functions are not serializable"}
	}

	return source.Classification{}, &domain.TypeError{TypeName: id, Reason: fmt.Sprintf("unsupported type %T", typ.Underlying())}
}

func isTextMarshaler(t types.Type) bool {
	if _, ok := t.(*types.Named); !ok {
		return false
	}
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(t), true, nil, "MarshalText")
	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}
	sig := fn.Type().(*types.Signature)
	return sig.Params().Len() == 0 && sig.Results().Len() == 2
}

// ListMembers implements source.Index: declared fields, promoted fields,
// declared methods, promoted methods, then package functions returning the type.
func (idx *Index) ListMembers(t source.TypeHandle) ([]source.MemberHandle, error) {
	typ, err := asType(t)
	if err != nil {
		return nil, err
	}
	id := identity(typ)

	idx.mu.Lock()
	cached, ok := idx.members[id]
	idx.mu.Unlock()
	if ok {
		return cached, nil
	}

	members, err := idx.collectMembers(typ)
	if err != nil {
		return nil, err
	}

	handles := make([]source.MemberHandle, 0, len(members))
	for _, m := range members {
		handles = append(handles, m)
	}

	idx.mu.Lock()
	idx.members[id] = handles
	idx.mu.Unlock()

	return handles, nil
}

func asMember(m source.MemberHandle) (*member, error) {
	mem, ok := m.(*member)
	if !ok || mem == nil {
		return nil, fmt.Errorf("loader: %T is not a loader member", m)
	}
	return mem, nil
}

// MemberName implements source.Index.
func (idx *Index) MemberName(m source.MemberHandle) string {
	mem, err := asMember(m)
	if err != nil {
		return ""
	}
	return mem.name
}

// MemberKind implements source.Index.
func (idx *Index) MemberKind(m source.MemberHandle) source.MemberKind {
	mem, err := asMember(m)
	if err != nil {
		return source.MemberField
	}
	return mem.kind
}

// MemberModifiers implements source.Index.
func (idx *Index) MemberModifiers(m source.MemberHandle) source.Modifiers {
	mem, err := asMember(m)
	if err != nil {
		return 0
	}
	return mem.mods
}

// MemberType implements source.Index. For methods it is the first documented result.
func (idx *Index) MemberType(m source.MemberHandle) (source.TypeHandle, error) {
	mem, err := asMember(m)
	if err != nil {
		return nil, err
	}
	if mem.kind == source.MemberField {
		return mem.typ, nil
	}
	sig, err := idx.MethodSignature(m)
	if err != nil {
		return nil, err
	}
	if len(sig.Results) == 0 {
		return nil, nil
	}
	return sig.Results[0].Type, nil
}

// MethodSignature implements source.Index. A leading context.Context
// parameter and a trailing error result are omitted.
func (idx *Index) MethodSignature(m source.MemberHandle) (source.Signature, error) {
	mem, err := asMember(m)
	if err != nil {
		return source.Signature{}, err
	}
	if mem.kind != source.MemberMethod || mem.sig == nil {
		return source.Signature{}, fmt.Errorf("loader: %s is not a method", mem.name)
	}

	var sig source.Signature
	params := mem.sig.Params()
	for i := 0; i < params.Len(); i++ {
		v := params.At(i)
		if i == 0 && identity(v.Type()) == "context.Context" {
			continue
		}
		sig.Params = append(sig.Params, source.Param{Name: v.Name(), Type: v.Type(), Doc: source.Documentation{Name: v.Name()}})
	}

	results := mem.sig.Results()
	for i := 0; i < results.Len(); i++ {
		v := results.At(i)
		if i == results.Len()-1 && identity(v.Type()) == "error" {
			continue
		}
		sig.Results = append(sig.Results, source.Param{Name: v.Name(), Type: v.Type(), Doc: source.Documentation{Name: v.Name()}})
	}

	return sig, nil
}

// DocumentationFor implements source.Index for types.Type and member handles.
func (idx *Index) DocumentationFor(h any) source.Documentation {
	switch v := h.(type) {
	case *member:
		return source.Documentation{Name: v.name, Text: idx.result.docs[v.obj.Pos()], Tag: v.tag}
	case types.Type:
		if named, ok := deref(v).(*types.Named); ok {
			obj := named.Obj()
			return source.Documentation{Name: obj.Name(), Text: idx.result.docs[obj.Pos()]}
		}
		return source.Documentation{Name: identity(v)}
	}
	return source.Documentation{}
}

// ExplicitOrderOf implements source.Index via the order tag or an @order line.
func (idx *Index) ExplicitOrderOf(m source.MemberHandle) (int, bool) {
	mem, err := asMember(m)
	if err != nil {
		return comment.DefaultOrder, false
	}
	return comment.OrderOf(idx.DocumentationFor(mem))
}

func (idx *Index) generated(obj types.Object) bool {
	if !obj.Pos().IsValid() {
		return false
	}
	file, ok := idx.result.files[idx.result.fset.Position(obj.Pos()).Filename]
	return ok && file.Generated
}

func (idx *Index) fieldName(v *types.Var, tagName string) string {
	if tagName != "" {
		return tagName
	}
	return comment.ApplyNamingStrategy(v.Name(), idx.namingStrategy)
}
