package mcpserver

import (
	"bytes"
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/griffnb/core-savior/internal/gen"
	"github.com/griffnb/core-savior/internal/resolver"
)

type listOwnersInput struct {
	Dir      string   `json:"dir"                jsonschema:"Module directory to load"`
	Patterns []string `json:"patterns,omitempty" jsonschema:"go/packages patterns relative to dir (default ./...)"`
	Owners   []string `json:"owners,omitempty"   jsonschema:"Owner name globs, e.g. *Service"`
}

type ownerSummary struct {
	Name      string `json:"name"`
	Package   string `json:"package"`
	Interface bool   `json:"interface,omitempty"`
}

type listOwnersOutput struct {
	Count  int            `json:"count"`
	Owners []ownerSummary `json:"owners"`
}

func handleListOwners(_ context.Context, _ *mcp.CallToolRequest, input listOwnersInput) (*mcp.CallToolResult, listOwnersOutput, error) {
	if input.Dir == "" {
		return errResult(fmt.Errorf("dir is required")), listOwnersOutput{}, nil
	}

	config := &gen.Config{SearchDir: input.Dir, Patterns: input.Patterns}
	idx, err := gen.New().Load(config)
	if err != nil {
		return errResult(err), listOwnersOutput{}, nil
	}

	owners, err := gen.SelectOwners(idx, input.Owners)
	if err != nil {
		return errResult(err), listOwnersOutput{}, nil
	}

	output := listOwnersOutput{Count: len(owners), Owners: make([]ownerSummary, 0, len(owners))}
	for _, owner := range owners {
		output.Owners = append(output.Owners, ownerSummary{
			Name:      owner.Name,
			Package:   owner.Package,
			Interface: owner.Interface,
		})
	}
	return nil, output, nil
}

type resolveOwnerInput struct {
	Dir           string   `json:"dir"                      jsonschema:"Module directory to load"`
	Patterns      []string `json:"patterns,omitempty"       jsonschema:"go/packages patterns relative to dir (default ./...)"`
	Owner         string   `json:"owner"                    jsonschema:"Owner type name, package qualified name or full identity"`
	Format        string   `json:"format,omitempty"         jsonschema:"Output format: markdown (default), json, yaml or postman"`
	IncludeHidden bool     `json:"include_hidden,omitempty" jsonschema:"Also document methods annotated @hidden"`
}

type methodFailure struct {
	Method string `json:"method"`
	Error  string `json:"error"`
}

type resolveOwnerOutput struct {
	Owner    string          `json:"owner"`
	Identity string          `json:"identity"`
	Methods  []string        `json:"methods"`
	Failures []methodFailure `json:"failures,omitempty"`
	Document string          `json:"document"`
}

func handleResolveOwner(_ context.Context, _ *mcp.CallToolRequest, input resolveOwnerInput) (*mcp.CallToolResult, resolveOwnerOutput, error) {
	if input.Dir == "" {
		return errResult(fmt.Errorf("dir is required")), resolveOwnerOutput{}, nil
	}
	if input.Owner == "" {
		return errResult(fmt.Errorf("owner is required")), resolveOwnerOutput{}, nil
	}
	format := input.Format
	if format == "" {
		format = "markdown"
	}

	g := gen.New()
	config := &gen.Config{SearchDir: input.Dir, Patterns: input.Patterns}
	renderer, err := g.Renderer(format, config)
	if err != nil {
		return errResult(err), resolveOwnerOutput{}, nil
	}

	idx, err := g.Load(config)
	if err != nil {
		return errResult(err), resolveOwnerOutput{}, nil
	}

	typ, ok := idx.Lookup(input.Owner)
	if !ok {
		return errResult(fmt.Errorf("owner %s not found", input.Owner)), resolveOwnerOutput{}, nil
	}

	owner, err := resolver.NewService(idx).ResolveOwner(typ, input.IncludeHidden)
	if err != nil {
		return errResult(err), resolveOwnerOutput{}, nil
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, owner); err != nil {
		return errResult(fmt.Errorf("render %s: %w", format, err)), resolveOwnerOutput{}, nil
	}

	output := resolveOwnerOutput{
		Owner:    owner.Name,
		Identity: owner.Identity,
		Methods:  make([]string, 0, len(owner.Methods)),
		Document: buf.String(),
	}
	for _, m := range owner.Methods {
		output.Methods = append(output.Methods, m.Method)
	}
	for _, f := range owner.Failures {
		output.Failures = append(output.Failures, methodFailure{Method: f.Method, Error: sanitizeError(f.Err)})
	}
	return nil, output, nil
}
