package loader

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedImports |
	packages.NeedTypes | packages.NeedTypesSizes | packages.NeedSyntax | packages.NeedTypesInfo

// Load loads the packages matching patterns with go/packages and indexes their declarations.
// Patterns default to "./...".
func (s *Service) Load(patterns ...string) (*Index, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	if s.parseDependency {
		deps, err := s.dependencyPatterns()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, deps...)
	}

	absDir, err := filepath.Abs(s.dir)
	if err != nil {
		return nil, err
	}

	mode := loadMode
	if s.parseDependency {
		mode |= packages.NeedDeps
	}

	fset := token.NewFileSet()
	pkgs, err := packages.Load(&packages.Config{
		Mode:       mode,
		Dir:        absDir,
		Fset:       fset,
		Tests:      s.tests,
		BuildFlags: s.buildFlags,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			return nil, fmt.Errorf("package %s: %w", pkg.PkgPath, e)
		}
	}

	result := &loadResult{
		fset:  fset,
		files: make(map[string]*fileInfo),
		docs:  make(map[token.Pos]string),
		enums: make(map[string][]string),
		funcs: make(map[string][]*types.Func),
	}

	s.walkPackages(pkgs, result)

	s.debug.Printf("loader: indexed %d packages, %d files", len(result.roots), len(result.files))

	return newIndex(result, s.namingStrategy), nil
}

// walkPackages walks packages loaded with go/packages
func (s *Service) walkPackages(pkgs []*packages.Package, result *loadResult) {
	pkgSeen := make(map[string]struct{})
	s.walkPackagesInternal(pkgs, result, pkgSeen)
}

func (s *Service) walkPackagesInternal(pkgs []*packages.Package, result *loadResult, pkgSeen map[string]struct{}) {
	for _, pkg := range pkgs {
		if s.skipPackageByPrefix(pkg.PkgPath) || s.skipVendor(pkg.PkgPath) {
			continue
		}
		if _, ok := pkgSeen[pkg.ID]; ok {
			continue
		}
		pkgSeen[pkg.ID] = struct{}{}

		if pkg.Types == nil {
			continue
		}
		result.roots = append(result.roots, pkg)

		for i, file := range pkg.Syntax {
			path := ""
			if i < len(pkg.CompiledGoFiles) {
				path = pkg.CompiledGoFiles[i]
			}
			if path == "" {
				path = result.fset.Position(file.Package).Filename
			}
			result.files[path] = &fileInfo{
				Path:        path,
				PackagePath: pkg.PkgPath,
				Generated:   ast.IsGenerated(file),
			}
			collectDocs(file, result.docs)
		}

		collectScope(pkg.Types, result)

		if s.parseDependency {
			imports := make([]*packages.Package, 0, len(pkg.Imports))
			for _, dep := range pkg.Imports {
				imports = append(imports, dep)
			}
			// map iteration order is random
			sort.Slice(imports, func(i, j int) bool { return imports[i].PkgPath < imports[j].PkgPath })
			s.walkPackagesInternal(imports, result, pkgSeen)
		}
	}
}

// skipPackageByPrefix checks if a package should be skipped based on prefix
func (s *Service) skipPackageByPrefix(pkgpath string) bool {
	if len(s.packagePrefix) == 0 {
		return false
	}
	for _, prefix := range s.packagePrefix {
		if strings.HasPrefix(pkgpath, prefix) {
			return false
		}
	}
	return true
}

func (s *Service) skipVendor(pkgpath string) bool {
	if s.parseVendor {
		return false
	}
	return strings.HasPrefix(pkgpath, "vendor/") || strings.Contains(pkgpath, "/vendor/")
}
