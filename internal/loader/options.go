package loader

import "github.com/griffnb/core-savior/internal/comment"

// DefaultParseDepth is the dependency depth used when dependency parsing is enabled
const DefaultParseDepth = 100

// NewService creates a new loader service with optional configuration
func NewService(options ...Option) *Service {
	s := &Service{
		dir:             ".",
		namingStrategy:  comment.CamelCase,
		parseVendor:     false,
		parseInternal:   false,
		parseDependency: false,
		parseDepth:      DefaultParseDepth,
		packagePrefix:   []string{},
		debug:           &noOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithDir sets the working directory patterns are resolved against
func WithDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// WithTests sets whether test packages are loaded
func WithTests(tests bool) Option {
	return func(s *Service) {
		s.tests = tests
	}
}

// WithNamingStrategy sets the naming of untagged fields: camelcase, snakecase or pascalcase
func WithNamingStrategy(strategy string) Option {
	return func(s *Service) {
		if strategy != "" {
			s.namingStrategy = strategy
		}
	}
}

// WithParseVendor sets whether to index packages under vendor directories
func WithParseVendor(parse bool) Option {
	return func(s *Service) {
		s.parseVendor = parse
	}
}

// WithParseInternal sets whether to follow standard library dependencies
func WithParseInternal(parse bool) Option {
	return func(s *Service) {
		s.parseInternal = parse
	}
}

// WithParseDependency sets whether dependency packages are indexed too
func WithParseDependency(parse bool) Option {
	return func(s *Service) {
		s.parseDependency = parse
	}
}

// WithParseDepth sets how deep dependencies are followed
func WithParseDepth(depth int) Option {
	return func(s *Service) {
		if depth > 0 {
			s.parseDepth = depth
		}
	}
}

// WithPackagePrefix sets package path prefixes to filter
func WithPackagePrefix(prefixes []string) Option {
	return func(s *Service) {
		s.packagePrefix = prefixes
	}
}

// WithBuildFlags sets flags passed to the build system, e.g. -tags
func WithBuildFlags(flags []string) Option {
	return func(s *Service) {
		s.buildFlags = flags
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger Debugger) Option {
	return func(s *Service) {
		if debugger != nil {
			s.debug = debugger
		}
	}
}
