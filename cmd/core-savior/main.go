package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/griffnb/core-savior/internal/comment"
	"github.com/griffnb/core-savior/internal/console"
	"github.com/griffnb/core-savior/internal/gen"
	"github.com/griffnb/core-savior/internal/mcpserver"
	"github.com/griffnb/core-savior/internal/render"
	"github.com/griffnb/core-savior/internal/resolver"
)

const (
	configFlag           = "config"
	searchDirFlag        = "dir"
	patternsFlag         = "patterns"
	propertyStrategyFlag = "propertyStrategy"
	outputFlag           = "output"
	outputTypesFlag      = "outputTypes"
	ownersFlag           = "owners"
	ownerFlag            = "owner"
	formatFlag           = "format"
	parseVendorFlag      = "parseVendor"
	parseDependencyFlag  = "parseDependency"
	parseInternalFlag    = "parseInternal"
	parseDepthFlag       = "parseDepth"
	parseTestsFlag       = "parseTests"
	packagePrefixFlag    = "packagePrefix"
	buildTagsFlag        = "tags"
	includeHiddenFlag    = "includeHidden"
	maxDepthFlag         = "maxDepth"
	parallelismFlag      = "parallelism"
	apiVersionFlag       = "apiVersion"
	baseURLFlag          = "baseUrl"
	quietFlag            = "quiet"
	debugFlag            = "debug"
)

var loadFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    configFlag,
		Aliases: []string{"c"},
		Value:   gen.DefaultConfigFile,
		Usage:   "YAML configuration file, flags set on the command line take precedence",
	},
	&cli.StringFlag{
		Name:    searchDirFlag,
		Aliases: []string{"d"},
		Value:   "./",
		Usage:   "Module directory you want to parse",
	},
	&cli.StringFlag{
		Name:  patternsFlag,
		Usage: "Package patterns relative to dir, comma separated (default ./...)",
	},
	&cli.StringFlag{
		Name:    propertyStrategyFlag,
		Aliases: []string{"p"},
		Value:   comment.CamelCase,
		Usage:   "Property Naming Strategy like " + comment.SnakeCase + "," + comment.CamelCase + "," + comment.PascalCase,
	},
	&cli.BoolFlag{
		Name:  parseVendorFlag,
		Usage: "Parse go files in 'vendor' folder, disabled by default",
	},
	&cli.BoolFlag{
		Name:    parseDependencyFlag,
		Aliases: []string{"pd"},
		Usage:   "Search dependency packages for owners, disabled by default",
	},
	&cli.BoolFlag{
		Name:  parseInternalFlag,
		Usage: "Parse go files in internal dependency packages, disabled by default",
	},
	&cli.IntFlag{
		Name:  parseDepthFlag,
		Value: 100,
		Usage: "Dependency parse depth",
	},
	&cli.BoolFlag{
		Name:  parseTestsFlag,
		Usage: "Load _test.go files, disabled by default",
	},
	&cli.StringFlag{
		Name:  packagePrefixFlag,
		Value: "",
		Usage: "Parse only packages whose import path match the given prefix, comma separated",
	},
	&cli.StringFlag{
		Name:    buildTagsFlag,
		Aliases: []string{"t"},
		Usage:   "Build tags, comma separated",
	},
	&cli.BoolFlag{
		Name:  includeHiddenFlag,
		Usage: "Document methods annotated @hidden",
	},
	&cli.IntFlag{
		Name:  maxDepthFlag,
		Usage: "Type nesting limit of one expansion",
	},
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Make the logger quiet.",
	},
	&cli.BoolFlag{
		Name:  debugFlag,
		Usage: "Enable debug mode, disabled by default",
	},
}

var generateFlags = append([]cli.Flag{
	&cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Value:   "./docs",
		Usage:   "Output directory for all the generated files",
	},
	&cli.StringFlag{
		Name:    outputTypesFlag,
		Aliases: []string{"ot"},
		Value:   "markdown",
		Usage:   "Output types of generated files like markdown,json,yaml,postman",
	},
	&cli.StringFlag{
		Name:  ownersFlag,
		Usage: "Owner name globs, comma separated",
	},
	&cli.IntFlag{
		Name:  parallelismFlag,
		Usage: "Owners resolved at once (default number of CPUs)",
	},
	&cli.StringFlag{
		Name:  apiVersionFlag,
		Value: "1.0",
		Usage: "info.version of generated OpenAPI documents",
	},
	&cli.StringFlag{
		Name:  baseURLFlag,
		Usage: "Default {{baseUrl}} of generated Postman collections",
	},
}, loadFlags...)

var inspectFlags = append([]cli.Flag{
	&cli.StringFlag{
		Name:     ownerFlag,
		Required: true,
		Usage:    "Owner type name, package qualified name or full identity",
	},
	&cli.StringFlag{
		Name:    formatFlag,
		Aliases: []string{"f"},
		Value:   "tree",
		Usage:   "tree, or any output type like markdown,json,yaml,postman",
	},
}, loadFlags...)

func setupLogging(ctx *cli.Context) {
	if ctx.Bool(debugFlag) {
		console.Logger.DebugLevel = 1
	}
	if ctx.Bool(quietFlag) {
		console.Logger.SetOutput(io.Discard, true)
		log.SetOutput(io.Discard)
	}
}

func splitList(value string) []string {
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// buildConfig reads the config file and applies the flags the user set explicitly.
func buildConfig(ctx *cli.Context) (*gen.Config, error) {
	config, err := gen.LoadConfig(ctx.String(configFlag))
	if err != nil {
		return nil, err
	}

	set := func(name string, apply func()) {
		if ctx.IsSet(name) {
			apply()
		}
	}
	orDefault := func(name string, empty bool, apply func()) {
		if ctx.IsSet(name) || empty {
			apply()
		}
	}

	orDefault(searchDirFlag, config.SearchDir == "", func() { config.SearchDir = ctx.String(searchDirFlag) })
	set(patternsFlag, func() { config.Patterns = splitList(ctx.String(patternsFlag)) })
	orDefault(propertyStrategyFlag, config.PropNamingStrategy == "", func() { config.PropNamingStrategy = ctx.String(propertyStrategyFlag) })
	set(parseVendorFlag, func() { config.ParseVendor = ctx.Bool(parseVendorFlag) })
	set(parseDependencyFlag, func() { config.ParseDependency = ctx.Bool(parseDependencyFlag) })
	set(parseInternalFlag, func() { config.ParseInternal = ctx.Bool(parseInternalFlag) })
	orDefault(parseDepthFlag, config.ParseDepth == 0, func() { config.ParseDepth = ctx.Int(parseDepthFlag) })
	set(parseTestsFlag, func() { config.ParseTests = ctx.Bool(parseTestsFlag) })
	set(packagePrefixFlag, func() { config.PackagePrefix = ctx.String(packagePrefixFlag) })
	set(buildTagsFlag, func() { config.BuildTags = ctx.String(buildTagsFlag) })
	set(includeHiddenFlag, func() { config.IncludeHidden = ctx.Bool(includeHiddenFlag) })
	set(maxDepthFlag, func() { config.MaxDepth = ctx.Int(maxDepthFlag) })

	// generate only, unknown flags read as zero values for inspect
	orDefault(outputFlag, config.OutputDir == "", func() { config.OutputDir = ctx.String(outputFlag) })
	orDefault(outputTypesFlag, len(config.OutputTypes) == 0, func() { config.OutputTypes = splitList(ctx.String(outputTypesFlag)) })
	set(ownersFlag, func() { config.Owners = splitList(ctx.String(ownersFlag)) })
	set(parallelismFlag, func() { config.Parallelism = ctx.Int(parallelismFlag) })
	orDefault(apiVersionFlag, config.Version == "", func() { config.Version = ctx.String(apiVersionFlag) })
	set(baseURLFlag, func() { config.BaseURL = ctx.String(baseURLFlag) })

	switch config.PropNamingStrategy {
	case comment.CamelCase, comment.SnakeCase, comment.PascalCase:
	default:
		return nil, fmt.Errorf("not supported %s propertyStrategy", config.PropNamingStrategy)
	}

	config.Debugger = console.Logger
	return config, nil
}

func generateAction(ctx *cli.Context) error {
	setupLogging(ctx)

	config, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	if len(config.OutputTypes) == 0 {
		return fmt.Errorf("no output types specified")
	}

	result, err := gen.New().Build(ctx.Context, config)
	if err != nil {
		return err
	}

	console.Logger.Info("generated %d files for %d owners, %d methods skipped", len(result.Files), result.Owners, result.Failures)
	return nil
}

func inspectAction(ctx *cli.Context) error {
	setupLogging(ctx)

	config, err := buildConfig(ctx)
	if err != nil {
		return err
	}

	g := gen.New()
	idx, err := g.Load(config)
	if err != nil {
		return err
	}

	typ, ok := idx.Lookup(ctx.String(ownerFlag))
	if !ok {
		return fmt.Errorf("owner %s not found", ctx.String(ownerFlag))
	}

	owner, err := resolver.NewService(idx,
		resolver.WithMaxDepth(config.MaxDepth),
		resolver.WithDebugger(console.Logger),
	).ResolveOwner(typ, config.IncludeHidden)
	if err != nil {
		return err
	}

	if format := ctx.String(formatFlag); format != "tree" {
		renderer, err := g.Renderer(format, config)
		if err != nil {
			return err
		}
		return renderer.Render(ctx.App.Writer, owner)
	}
	return render.WriteTree(ctx.App.Writer, owner)
}

func mcpAction(ctx *cli.Context) error {
	// stdout carries the protocol
	console.Logger.SetOutput(os.Stderr, true)
	return mcpserver.Run(ctx.Context, gen.Version)
}

func main() {
	app := cli.NewApp()
	app.Version = gen.Version
	app.Usage = "Resolve Go API types and comments into RESTful documentation."
	app.Commands = []*cli.Command{
		{
			Name:    "generate",
			Aliases: []string{"g"},
			Usage:   "Generate documentation for every API owner",
			Action:  generateAction,
			Flags:   generateFlags,
		},
		{
			Name:    "inspect",
			Aliases: []string{"i"},
			Usage:   "Print the resolved structure of one owner",
			Action:  inspectAction,
			Flags:   inspectFlags,
		},
		{
			Name:   "mcp",
			Usage:  "Serve list_owners and resolve_owner over MCP stdio",
			Action: mcpAction,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
