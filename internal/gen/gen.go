// Package gen drives documentation generation: it loads a Go module, selects
// the API owners, resolves them concurrently and writes every configured
// output format.
package gen

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"

	"github.com/griffnb/core-savior/internal/console"
	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/loader"
	"github.com/griffnb/core-savior/internal/render"
	"github.com/griffnb/core-savior/internal/render/markdown"
	"github.com/griffnb/core-savior/internal/render/openapi"
	"github.com/griffnb/core-savior/internal/render/postman"
	"github.com/griffnb/core-savior/internal/resolver"
)

// outputType places one renderer's files under a directory of the output dir.
type outputType struct {
	dir      string
	renderer func(*Config) render.Renderer
}

// Gen presents a generate tool for savior.
type Gen struct {
	outputTypeMap map[string]outputType
	debug         Debugger
}

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// Result summarises a build.
type Result struct {
	// Files are the written paths in owner then output type order
	Files []string

	// Owners is the number of owners rendered
	Owners int

	// Failures counts methods that could not be resolved
	Failures int
}

// New creates a new Gen.
func New() *Gen {
	gen := Gen{
		debug: console.Logger,
	}

	gen.outputTypeMap = map[string]outputType{
		"markdown": {dir: "markdown", renderer: func(*Config) render.Renderer { return markdown.New() }},
		"md":       {dir: "markdown", renderer: func(*Config) render.Renderer { return markdown.New() }},
		"json": {dir: "openapi", renderer: func(c *Config) render.Renderer {
			return openapi.New(openapi.WithVersion(c.Version))
		}},
		"yaml": {dir: "openapi", renderer: func(c *Config) render.Renderer {
			return openapi.New(openapi.WithVersion(c.Version), openapi.WithYAML(true))
		}},
		"yml": {dir: "openapi", renderer: func(c *Config) render.Renderer {
			return openapi.New(openapi.WithVersion(c.Version), openapi.WithYAML(true))
		}},
		"postman": {dir: "postman", renderer: func(c *Config) render.Renderer {
			return postman.New(postman.WithBaseURL(c.BaseURL))
		}},
	}

	return &gen
}

// OutputTypes lists the supported output type names.
func (g *Gen) OutputTypes() []string {
	return []string{"markdown", "md", "json", "yaml", "yml", "postman"}
}

// Renderer returns the renderer of an output type.
func (g *Gen) Renderer(name string, config *Config) (render.Renderer, error) {
	ot, ok := g.outputTypeMap[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("output type '%s' not supported", name)
	}
	return ot.renderer(config.withDefaults()), nil
}

// Load loads the packages described by config into a source index.
func (g *Gen) Load(config *Config) (*loader.Index, error) {
	config = config.withDefaults()
	if config.Debugger != nil {
		g.debug = config.Debugger
	}

	if _, err := os.Stat(config.SearchDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("dir: %s does not exist", config.SearchDir)
	}

	return loader.NewService(
		loader.WithDir(config.SearchDir),
		loader.WithTests(config.ParseTests),
		loader.WithNamingStrategy(config.PropNamingStrategy),
		loader.WithParseVendor(config.ParseVendor),
		loader.WithParseInternal(config.ParseInternal),
		loader.WithParseDependency(config.ParseDependency),
		loader.WithParseDepth(config.ParseDepth),
		loader.WithPackagePrefix(parsePackagePrefix(config.PackagePrefix)),
		loader.WithBuildFlags(config.buildFlags()),
		loader.WithDebugger(g.debug),
	).Load(config.Patterns...)
}

// Build generates the documents for every selected owner.
func (g *Gen) Build(ctx context.Context, config *Config) (*Result, error) {
	config = config.withDefaults()
	if config.Debugger != nil {
		g.debug = config.Debugger
	}

	writers := make(map[string]outputType)
	destinations := make(map[string]string)
	var formats []string
	for _, name := range config.OutputTypes {
		name = strings.ToLower(strings.TrimSpace(name))
		ot, ok := g.outputTypeMap[name]
		if !ok {
			log.Printf("output type '%s' not supported", name)
			continue
		}
		// aliases such as md and markdown write the same file
		destination := ot.dir + "/" + ot.renderer(config).Extension()
		if first, dup := destinations[destination]; dup {
			g.debug.Printf("gen: output type %s duplicates %s", name, first)
			continue
		}
		destinations[destination] = name
		writers[name] = ot
		formats = append(formats, name)
	}

	console.Logger.Debug("Generate savior docs....")

	idx, err := g.Load(config)
	if err != nil {
		return nil, err
	}

	owners, err := SelectOwners(idx, config.Owners)
	if err != nil {
		return nil, err
	}
	g.debug.Printf("gen: %d owners selected", len(owners))

	if err := os.MkdirAll(config.OutputDir, os.ModePerm); err != nil {
		return nil, err
	}

	res := resolver.NewService(idx,
		resolver.WithMaxDepth(config.MaxDepth),
		resolver.WithDebugger(g.debug),
	)

	var (
		rendered atomic.Int64
		failures atomic.Int64
	)
	files := make([][]string, len(owners))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(config.Parallelism)

	for i, t := range targets(owners) {
		if groupCtx.Err() != nil {
			break
		}

		i, t := i, t

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			ownerCtx := slogctx.With(console.Logger.Context(groupCtx), "owner", t.Name, "package", t.Package)

			resolved, err := res.ResolveOwner(t.Type, config.IncludeHidden)
			if err != nil {
				slogctx.Error(ownerCtx, "resolve owner", "err", err)
				failures.Add(1)
				return nil
			}
			for _, failure := range resolved.Failures {
				slogctx.Warn(ownerCtx, "skipped method", "method", failure.Method, "err", failure.Err)
			}
			failures.Add(int64(len(resolved.Failures)))

			for _, name := range formats {
				file, err := g.write(config, writers[name], t.FileName, resolved)
				if err != nil {
					return fmt.Errorf("write %s for %s: %w", name, t.Name, err)
				}
				files[i] = append(files[i], file)
			}

			rendered.Add(1)
			slogctx.Info(ownerCtx, "rendered owner", "methods", len(resolved.Methods), "failures", len(resolved.Failures))
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Owners: int(rendered.Load()), Failures: int(failures.Load())}
	for _, f := range files {
		result.Files = append(result.Files, f...)
	}
	return result, nil
}

func (g *Gen) write(config *Config, ot outputType, fileName string, owner *domain.ResolvedOwner) (string, error) {
	renderer := ot.renderer(config)

	var buf bytes.Buffer
	if err := renderer.Render(&buf, owner); err != nil {
		return "", err
	}

	dir := filepath.Join(config.OutputDir, ot.dir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	file := filepath.Join(dir, fileName+"."+renderer.Extension())
	if err := g.writeFile(buf.Bytes(), file); err != nil {
		return "", err
	}

	console.Logger.Debug("create %s at %+v", renderer.Format(), file)

	return file, nil
}

func (g *Gen) writeFile(b []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = f.Write(b)

	return err
}
