package gen

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffnb/core-savior/internal/expander"
)

func TestLoadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "savior.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
searchDir: ./api
outputDir: out
outputTypes: [markdown, postman]
owners:
  - "*Controller"
propNamingStrategy: snakecase
parseDependency: true
includeHidden: true
parallelism: 2
baseUrl: https://api.example.com
`), 0o644))

	config, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		SearchDir:          "./api",
		OutputDir:          "out",
		OutputTypes:        []string{"markdown", "postman"},
		Owners:             []string{"*Controller"},
		PropNamingStrategy: "snakecase",
		ParseDependency:    true,
		IncludeHidden:      true,
		Parallelism:        2,
		BaseURL:            "https://api.example.com",
	}, config)
}

func TestLoadConfig_Missing(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := LoadConfig(DefaultConfigFile)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, config)

	_, err = LoadConfig("other.yaml")
	assert.ErrorContains(t, err, "could not open config file")
}

func TestLoadConfig_Invalid(t *testing.T) {
	file := filepath.Join(t.TempDir(), "savior.yaml")
	require.NoError(t, os.WriteFile(file, []byte("outputTypes: {"), 0o644))

	_, err := LoadConfig(file)
	assert.ErrorContains(t, err, "could not parse config file")
}

func TestConfig_WithDefaults(t *testing.T) {
	original := &Config{}
	config := original.withDefaults()

	assert.Equal(t, ".", config.SearchDir)
	assert.Equal(t, DefaultOutputDir, config.OutputDir)
	assert.Equal(t, []string{"markdown"}, config.OutputTypes)
	assert.Equal(t, "camelcase", config.PropNamingStrategy)
	assert.Equal(t, expander.DefaultMaxDepth, config.MaxDepth)
	assert.Equal(t, runtime.NumCPU(), config.Parallelism)
	assert.Equal(t, &Config{}, original)
}

func TestConfig_BuildFlags(t *testing.T) {
	assert.Nil(t, (&Config{}).buildFlags())
	assert.Equal(t, []string{"-tags=integration,linux"}, (&Config{BuildTags: "integration, linux"}).buildFlags())
}

func TestParsePackagePrefix(t *testing.T) {
	assert.Equal(t, []string{}, parsePackagePrefix(""))
	assert.Equal(t, []string{"github.com/a", "github.com/b"}, parsePackagePrefix("github.com/a, ,github.com/b"))
}
