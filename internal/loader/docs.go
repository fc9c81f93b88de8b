package loader

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"sort"
	"strings"
)

// collectDocs records the doc comment of every type, field, interface method
// and function in file, keyed by the position of the declared name
func collectDocs(file *ast.File, docs map[token.Pos]string) {
	ast.Inspect(file, func(n ast.Node) bool {
		switch decl := n.(type) {
		case *ast.GenDecl:
			if decl.Tok != token.TYPE {
				return true
			}
			for _, spec := range decl.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				// a lone spec carries its doc on the declaration
				if doc == nil && len(decl.Specs) == 1 {
					doc = decl.Doc
				}
				if text := doc.Text(); text != "" {
					docs[ts.Name.Pos()] = text
				}
			}
		case *ast.FuncDecl:
			if text := decl.Doc.Text(); text != "" {
				docs[decl.Name.Pos()] = text
			}
		case *ast.StructType:
			collectFieldDocs(decl.Fields, docs)
		case *ast.InterfaceType:
			collectFieldDocs(decl.Methods, docs)
		}
		return true
	})
}

func collectFieldDocs(fields *ast.FieldList, docs map[token.Pos]string) {
	if fields == nil {
		return
	}
	for _, field := range fields.List {
		text := field.Doc.Text()
		if text == "" {
			text = field.Comment.Text()
		}
		if text == "" {
			continue
		}
		for _, name := range field.Names {
			docs[name.Pos()] = text
		}
	}
}

// collectScope records enum values and package level functions returning a
// named type of pkg
func collectScope(pkg *types.Package, result *loadResult) {
	scope := pkg.Scope()

	objects := make([]types.Object, 0, len(scope.Names()))
	for _, name := range scope.Names() {
		objects = append(objects, scope.Lookup(name))
	}
	// declaration order
	sort.SliceStable(objects, func(i, j int) bool { return objects[i].Pos() < objects[j].Pos() })

	for _, obj := range objects {
		switch o := obj.(type) {
		case *types.Const:
			named, ok := o.Type().(*types.Named)
			if !ok {
				continue
			}
			if _, isBasic := named.Underlying().(*types.Basic); !isBasic {
				continue
			}
			id := identity(named)
			result.enums[id] = append(result.enums[id], constantValue(o.Val()))
		case *types.Func:
			sig, ok := o.Type().(*types.Signature)
			if !ok || sig.Recv() != nil || sig.Results().Len() == 0 {
				continue
			}
			named, ok := deref(sig.Results().At(0).Type()).(*types.Named)
			if !ok || named.Obj().Pkg() != pkg {
				continue
			}
			id := identity(named.Origin())
			result.funcs[id] = append(result.funcs[id], o)
		}
	}
}

// constantValue renders a constant the way it is written in JSON
func constantValue(val constant.Value) string {
	switch val.Kind() {
	case constant.String:
		return constant.StringVal(val)
	case constant.Bool:
		return val.ExactString()
	default:
		return strings.TrimSpace(val.ExactString())
	}
}
