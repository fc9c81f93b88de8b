package loader

import (
	"fmt"

	"github.com/KyleBanks/depth"
)

// dependencyPatterns resolves the import paths reachable from the package in
// the service directory, up to the configured depth
func (s *Service) dependencyPatterns() ([]string, error) {
	var t depth.Tree
	t.ResolveInternal = true
	t.MaxDepth = s.parseDepth

	pkgName, err := getPkgName(s.dir)
	if err != nil {
		return nil, err
	}

	err = t.Resolve(pkgName)
	if err != nil {
		return nil, fmt.Errorf("pkg %s cannot find all dependencies, %s", pkgName, err)
	}

	seen := make(map[string]struct{})
	var patterns []string
	for i := 0; i < len(t.Root.Deps); i++ {
		patterns = s.collectDependency(&t.Root.Deps[i], seen, patterns)
	}

	s.debug.Printf("loader: %s has %d dependency packages", pkgName, len(patterns))

	return patterns, nil
}

// collectDependency appends the import path of pkg and its dependencies
func (s *Service) collectDependency(pkg *depth.Pkg, seen map[string]struct{}, patterns []string) []string {
	ignoreInternal := pkg.Internal && !s.parseInternal
	if ignoreInternal || !pkg.Resolved {
		return patterns
	}

	if pkg.Raw == nil {
		// cgo pseudo package
		return patterns
	}

	if s.skipPackageByPrefix(pkg.Raw.ImportPath) {
		return patterns
	}

	if _, ok := seen[pkg.Raw.ImportPath]; ok {
		return patterns
	}
	seen[pkg.Raw.ImportPath] = struct{}{}
	patterns = append(patterns, pkg.Raw.ImportPath)

	for i := 0; i < len(pkg.Deps); i++ {
		patterns = s.collectDependency(&pkg.Deps[i], seen, patterns)
	}

	return patterns
}
