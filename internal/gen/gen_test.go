package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffnb/core-savior/internal/loader"
)

const searchDir = "../loader/testdata/shop"

type recordingDebugger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingDebugger) Printf(format string, v ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, format)
}

func TestGen_Build(t *testing.T) {
	config := &Config{
		Debugger:    &recordingDebugger{},
		SearchDir:   searchDir,
		OutputDir:   t.TempDir(),
		OutputTypes: []string{"markdown", "json", "unknownType", "json"},
	}

	result, err := New().Build(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Owners)

	expectedFiles := []string{
		filepath.Join(config.OutputDir, "markdown", "OrderService.md"),
		filepath.Join(config.OutputDir, "openapi", "OrderService.json"),
		filepath.Join(config.OutputDir, "markdown", "Store.md"),
		filepath.Join(config.OutputDir, "openapi", "Store.json"),
	}
	assert.Equal(t, expectedFiles, result.Files)

	for _, expectedFile := range expectedFiles {
		_, err := os.Stat(expectedFile)
		require.NoError(t, err)
	}

	md, err := os.ReadFile(expectedFiles[0])
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Get\n\n`GET /orders/{id}`")
	assert.NotContains(t, string(md), "## Delete")

	_, err = os.Stat(filepath.Join(config.OutputDir, "postman"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestGen_OwnerFilter(t *testing.T) {
	config := &Config{
		Debugger:    &recordingDebugger{},
		SearchDir:   searchDir,
		OutputDir:   t.TempDir(),
		OutputTypes: []string{"postman", "yaml"},
		Owners:      []string{"Order*"},
	}

	result, err := New().Build(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Owners)
	assert.Equal(t, []string{
		filepath.Join(config.OutputDir, "postman", "OrderService.postman_collection.json"),
		filepath.Join(config.OutputDir, "openapi", "OrderService.yaml"),
	}, result.Files)
}

func TestGen_OutputTypeAliases(t *testing.T) {
	debugger := &recordingDebugger{}
	config := &Config{
		Debugger:    debugger,
		SearchDir:   searchDir,
		OutputDir:   t.TempDir(),
		OutputTypes: []string{"markdown", "md", "yaml", "yml"},
		Owners:      []string{"OrderService"},
	}

	result, err := New().Build(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(config.OutputDir, "markdown", "OrderService.md"),
		filepath.Join(config.OutputDir, "openapi", "OrderService.yaml"),
	}, result.Files)
	assert.Contains(t, debugger.lines, "gen: output type %s duplicates %s")
}

func TestGen_IncludeHidden(t *testing.T) {
	config := &Config{
		Debugger:      &recordingDebugger{},
		SearchDir:     searchDir,
		OutputDir:     t.TempDir(),
		Owners:        []string{"OrderService"},
		IncludeHidden: true,
	}

	result, err := New().Build(context.Background(), config)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	md, err := os.ReadFile(result.Files[0])
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Delete")
}

func TestGen_SearchDirIsNotExist(t *testing.T) {
	config := &Config{
		SearchDir: "../isNotExistDir",
		OutputDir: t.TempDir(),
	}

	_, err := New().Build(context.Background(), config)
	assert.EqualError(t, err, "dir: ../isNotExistDir does not exist")
}

func TestGen_InvalidOwnerPattern(t *testing.T) {
	config := &Config{
		Debugger:  &recordingDebugger{},
		SearchDir: searchDir,
		OutputDir: t.TempDir(),
		Owners:    []string{"["},
	}

	_, err := New().Build(context.Background(), config)
	assert.ErrorContains(t, err, "invalid owner pattern")
}

func TestGen_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := &Config{
		Debugger:  &recordingDebugger{},
		SearchDir: searchDir,
		OutputDir: t.TempDir(),
	}

	_, err := New().Build(ctx, config)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGen_FailToWrite(t *testing.T) {
	outputDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(outputDir, "markdown", "OrderService.md"), 0o755))

	config := &Config{
		Debugger:  &recordingDebugger{},
		SearchDir: searchDir,
		OutputDir: outputDir,
		Owners:    []string{"OrderService"},
	}

	_, err := New().Build(context.Background(), config)
	assert.ErrorContains(t, err, "write markdown for OrderService")
}

func TestGen_Debugger(t *testing.T) {
	debugger := &recordingDebugger{}
	config := &Config{
		Debugger:  debugger,
		SearchDir: searchDir,
		OutputDir: t.TempDir(),
	}

	_, err := New().Build(context.Background(), config)
	require.NoError(t, err)
	assert.Contains(t, debugger.lines, "gen: %d owners selected")
}

func TestTargets(t *testing.T) {
	got := targets([]loader.Owner{
		{Name: "Service", Package: "example.com/orders"},
		{Name: "Service", Package: "example.com/users"},
		{Name: "Store", Package: "example.com/orders"},
	})

	require.Len(t, got, 3)
	assert.Equal(t, "orders.Service", got[0].FileName)
	assert.Equal(t, "users.Service", got[1].FileName)
	assert.Equal(t, "Store", got[2].FileName)
}

func TestMatchOwner(t *testing.T) {
	ok, err := matchOwner("OrderService", nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matchOwner("OrderService", []string{"User*", "*Service"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matchOwner("Store", []string{"*Service"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGen_Renderer(t *testing.T) {
	g := New()
	for _, name := range g.OutputTypes() {
		r, err := g.Renderer(name, &Config{})
		require.NoError(t, err, name)
		assert.NotEmpty(t, r.Extension())
	}

	r, err := g.Renderer(" YAML ", &Config{})
	require.NoError(t, err)
	assert.Equal(t, "yaml", r.Format())

	_, err = g.Renderer("docx", &Config{})
	assert.EqualError(t, err, "output type 'docx' not supported")
}
