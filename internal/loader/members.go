package loader

import (
	"go/types"
	"reflect"
	"strings"

	"github.com/griffnb/core-savior/internal/comment"
	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/source"
)

// member is the loader's source.MemberHandle
type member struct {
	name string
	kind source.MemberKind
	mods source.Modifiers
	obj  types.Object

	// typ is set for fields
	typ types.Type

	// sig is set for methods and functions
	sig *types.Signature

	tag string
}

func (idx *Index) collectMembers(t types.Type) ([]*member, error) {
	var out []*member

	switch u := t.Underlying().(type) {
	case *types.Struct:
		out = idx.structFields(u, map[string]struct{}{identity(t): {}})
	case *types.Interface:
		out = idx.interfaceMethods(u)
	case *types.Basic:
		if u.Kind() == types.Invalid {
			return nil, &domain.TypeError{TypeName: identity(t), Reason: "invalid type"}
		}
	}

	if named, ok := t.(*types.Named); ok {
		if _, isInterface := named.Underlying().(*types.Interface); !isInterface {
			out = append(out, idx.methods(named)...)
		}
		out = append(out, idx.packageFuncs(named)...)
	}

	return out, nil
}

// structFields lists declared fields, then the fields promoted from untagged
// embedded structs. visited guards against embedding cycles through pointers.
func (idx *Index) structFields(st *types.Struct, visited map[string]struct{}) []*member {
	var declared, promoted []*member

	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		tag := st.Tag(i)

		name, _, ignore := comment.ParseJSONTag(reflect.StructTag(tag))
		if ignore {
			continue
		}

		if f.Embedded() && name == "" {
			embedded := deref(f.Type())
			if est, ok := embedded.Underlying().(*types.Struct); ok {
				id := identity(embedded)
				if _, seen := visited[id]; seen {
					continue
				}
				visited[id] = struct{}{}
				promoted = append(promoted, idx.structFields(est, visited)...)
				delete(visited, id)
				continue
			}
		}

		var mods source.Modifiers
		if !f.Exported() {
			mods |= source.Private
		}
		if idx.generated(f) {
			mods |= source.Generated
		}

		declared = append(declared, &member{
			name: idx.fieldName(f, name),
			kind: source.MemberField,
			mods: mods,
			obj:  f,
			typ:  f.Type(),
			tag:  tag,
		})
	}

	return append(declared, promoted...)
}

// methods lists the methods declared on named, then those promoted through embedding
func (idx *Index) methods(named *types.Named) []*member {
	var out []*member
	seen := make(map[string]struct{})

	for i := 0; i < named.NumMethods(); i++ {
		fn := named.Method(i)
		seen[fn.Name()] = struct{}{}
		out = append(out, idx.method(fn, 0))
	}

	mset := types.NewMethodSet(types.NewPointer(named))
	for i := 0; i < mset.Len(); i++ {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok {
			continue
		}
		if _, ok := seen[fn.Name()]; ok {
			continue
		}
		seen[fn.Name()] = struct{}{}
		out = append(out, idx.method(fn, 0))
	}

	return out
}

// interfaceMethods lists explicit methods in source order, then embedded ones
func (idx *Index) interfaceMethods(iface *types.Interface) []*member {
	var out []*member
	seen := make(map[string]struct{})

	for i := 0; i < iface.NumExplicitMethods(); i++ {
		fn := iface.ExplicitMethod(i)
		seen[fn.Name()] = struct{}{}
		out = append(out, idx.method(fn, 0))
	}
	for i := 0; i < iface.NumMethods(); i++ {
		fn := iface.Method(i)
		if _, ok := seen[fn.Name()]; ok {
			continue
		}
		out = append(out, idx.method(fn, 0))
	}

	return out
}

// packageFuncs lists package level functions whose first result is named.
// New* functions are constructors; every function is static.
func (idx *Index) packageFuncs(named *types.Named) []*member {
	var out []*member
	for _, fn := range idx.result.funcs[identity(named.Origin())] {
		mods := source.Static
		if strings.HasPrefix(fn.Name(), "New") {
			mods |= source.Constructor
		}
		out = append(out, idx.method(fn, mods))
	}
	return out
}

func (idx *Index) method(fn *types.Func, mods source.Modifiers) *member {
	if !fn.Exported() {
		mods |= source.Private
	}
	if idx.generated(fn) {
		mods |= source.Generated
	}
	sig, _ := fn.Type().(*types.Signature)
	return &member{
		name: fn.Name(),
		kind: source.MemberMethod,
		mods: mods,
		obj:  fn,
		sig:  sig,
	}
}
