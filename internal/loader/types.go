package loader

import (
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// Service loads Go packages into a source index
type Service struct {
	dir             string
	tests           bool
	namingStrategy  string
	parseVendor     bool
	parseInternal   bool
	parseDependency bool
	parseDepth      int
	packagePrefix   []string
	buildFlags      []string
	debug           Debugger
}

// Debugger interface for logging
type Debugger interface {
	Printf(format string, v ...interface{})
}

// Option is a functional option for configuring Service
type Option func(*Service)

// noOpDebugger is a no-op debugger
type noOpDebugger struct{}

func (n *noOpDebugger) Printf(format string, v ...interface{}) {}

// Owner is a named type that declares methods and may be documented as an API surface
type Owner struct {
	// Name is the declared type name
	Name string

	// Identity is the package path qualified type name
	Identity string

	// Package is the import path of the declaring package
	Package string

	// Interface is set when the type is an interface
	Interface bool

	Type types.Type
}

// fileInfo contains information about a loaded file
type fileInfo struct {
	Path        string
	PackagePath string
	Generated   bool
}

// loadResult contains everything collected from a packages.Load call
type loadResult struct {
	fset  *token.FileSet
	roots []*packages.Package
	files map[string]*fileInfo
	docs  map[token.Pos]string
	enums map[string][]string
	funcs map[string][]*types.Func
}
