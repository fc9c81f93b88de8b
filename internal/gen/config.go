package gen

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/griffnb/core-savior/internal/comment"
	"github.com/griffnb/core-savior/internal/expander"
)

// DefaultConfigFile is the location savior will look for configuration.
const DefaultConfigFile = ".savior.yaml"

// DefaultOutputDir is used when no output directory is configured.
const DefaultOutputDir = "docs"

// Config presents Gen configurations.
type Config struct {
	Debugger Debugger `yaml:"-"`

	// SearchDir is the module directory packages are loaded from
	SearchDir string `yaml:"searchDir"`

	// Patterns are go/packages patterns relative to SearchDir, default ./...
	Patterns []string `yaml:"patterns"`

	// OutputDir represents the output directory for all the generated files
	OutputDir string `yaml:"outputDir"`

	// OutputTypes define types of files which should be generated: markdown, json, yaml, postman
	OutputTypes []string `yaml:"outputTypes"`

	// Owners restricts generation to owners whose name matches one of the globs
	Owners []string `yaml:"owners"`

	// PropNamingStrategy represents property naming strategy like snake case,camel case,pascal case
	PropNamingStrategy string `yaml:"propNamingStrategy"`

	// ParseDepth dependency parse depth
	ParseDepth int `yaml:"parseDepth"`

	// ParseVendor whether vendor folders are parsed
	ParseVendor bool `yaml:"parseVendor"`

	// ParseDependency whether dependency packages are searched for owners
	ParseDependency bool `yaml:"parseDependency"`

	// ParseInternal whether internal dependency packages are parsed
	ParseInternal bool `yaml:"parseInternal"`

	// ParseTests whether _test.go files are loaded
	ParseTests bool `yaml:"parseTests"`

	// Parse only packages whose import path match the given prefix, comma separated
	PackagePrefix string `yaml:"packagePrefix"`

	// BuildTags are passed to the build system, comma separated
	BuildTags string `yaml:"buildTags"`

	// IncludeHidden documents methods annotated @hidden
	IncludeHidden bool `yaml:"includeHidden"`

	// MaxDepth is the type nesting limit of one expansion
	MaxDepth int `yaml:"maxDepth"`

	// Parallelism bounds the number of owners resolved at once
	Parallelism int `yaml:"parallelism"`

	// Version is written into OpenAPI documents
	Version string `yaml:"version"`

	// BaseURL is the default base URL of Postman collections
	BaseURL string `yaml:"baseUrl"`
}

// LoadConfig reads a YAML configuration file. A missing default file yields an empty config.
func LoadConfig(file string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(file)
	if err != nil {
		// Don't bother reporting if the default file is missing
		if file == DefaultConfigFile && os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("could not open config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", file, err)
	}

	return config, nil
}

// withDefaults fills the unset fields.
func (c *Config) withDefaults() *Config {
	out := *c
	if out.SearchDir == "" {
		out.SearchDir = "."
	}
	if out.OutputDir == "" {
		out.OutputDir = DefaultOutputDir
	}
	if len(out.OutputTypes) == 0 {
		out.OutputTypes = []string{"markdown"}
	}
	if out.PropNamingStrategy == "" {
		out.PropNamingStrategy = comment.CamelCase
	}
	if out.MaxDepth <= 0 {
		out.MaxDepth = expander.DefaultMaxDepth
	}
	if out.Parallelism <= 0 {
		out.Parallelism = runtime.NumCPU()
	}
	return &out
}

// buildFlags converts the build tags to go list flags.
func (c *Config) buildFlags() []string {
	if strings.TrimSpace(c.BuildTags) == "" {
		return nil
	}
	return []string{"-tags=" + strings.Join(parsePackagePrefix(c.BuildTags), ",")}
}

// parsePackagePrefix converts comma-separated prefix string to slice.
func parsePackagePrefix(packagePrefix string) []string {
	if packagePrefix == "" {
		return []string{}
	}

	result := []string{}
	for _, prefix := range strings.Split(packagePrefix, ",") {
		prefix = strings.TrimSpace(prefix)
		if prefix != "" {
			result = append(result, prefix)
		}
	}
	return result
}
