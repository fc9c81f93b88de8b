package loader

import (
	"go/build"
	"testing"

	"github.com/KyleBanks/depth"
	"github.com/stretchr/testify/assert"
)

func TestCollectDependency(t *testing.T) {
	root := depth.Pkg{
		Name:     "example.com/shop/store",
		Resolved: true,
		Raw:      &build.Package{ImportPath: "example.com/shop/store"},
		Deps: []depth.Pkg{
			{Name: "context", Resolved: true, Internal: true, Raw: &build.Package{ImportPath: "context"}},
			{Name: "example.com/shop/money", Resolved: true, Raw: &build.Package{ImportPath: "example.com/shop/money"}},
			{Name: "example.com/missing", Resolved: false},
			{Name: "C", Resolved: true},
			{Name: "example.com/shop/money", Resolved: true, Raw: &build.Package{ImportPath: "example.com/shop/money"}},
		},
	}

	t.Run("skips internal, unresolved and duplicates", func(t *testing.T) {
		s := NewService()
		got := s.collectDependency(&root, map[string]struct{}{}, nil)
		assert.Equal(t, []string{"example.com/shop/store", "example.com/shop/money"}, got)
	})

	t.Run("follows internal when asked", func(t *testing.T) {
		s := NewService(WithParseInternal(true))
		got := s.collectDependency(&root, map[string]struct{}{}, nil)
		assert.Equal(t, []string{"example.com/shop/store", "context", "example.com/shop/money"}, got)
	})

	t.Run("respects package prefix", func(t *testing.T) {
		s := NewService(WithPackagePrefix([]string{"example.com/shop/store"}))
		got := s.collectDependency(&root, map[string]struct{}{}, nil)
		assert.Equal(t, []string{"example.com/shop/store"}, got)
	})
}
