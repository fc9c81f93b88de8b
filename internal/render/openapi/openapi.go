// Package openapi renders resolved owners as Swagger 2.0 documents.
package openapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"github.com/go-openapi/spec"
	"sigs.k8s.io/yaml"

	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/render"
)

const definitionsPrefix = "#/definitions/"

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_.\-]+`)

// Renderer writes one Swagger document per owner.
type Renderer struct {
	yaml    bool
	version string
}

// Option is a functional option for configuring Renderer
type Option func(*Renderer)

// WithYAML switches the output from JSON to YAML
func WithYAML(yaml bool) Option {
	return func(r *Renderer) {
		r.yaml = yaml
	}
}

// WithVersion sets info.version
func WithVersion(version string) Option {
	return func(r *Renderer) {
		if version != "" {
			r.version = version
		}
	}
}

// New creates a Swagger renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{version: "1.0"}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Format implements render.Renderer.
func (r *Renderer) Format() string {
	if r.yaml {
		return "yaml"
	}
	return "json"
}

// Extension implements render.Renderer.
func (r *Renderer) Extension() string {
	if r.yaml {
		return "yaml"
	}
	return "json"
}

// Render implements render.Renderer.
func (r *Renderer) Render(w io.Writer, owner *domain.ResolvedOwner) error {
	swagger, err := r.Build(owner)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(swagger, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal swagger: %w", err)
	}

	if r.yaml {
		b, err = yaml.JSONToYAML(b)
		if err != nil {
			return fmt.Errorf("cannot convert json to yaml: %w", err)
		}
	}

	_, err = w.Write(b)
	return err
}

// Build converts an owner to a Swagger document.
func (r *Renderer) Build(owner *domain.ResolvedOwner) (*spec.Swagger, error) {
	if owner == nil {
		return nil, fmt.Errorf("openapi: nil owner")
	}

	swagger := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: "2.0",
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       owner.Comment.ItemName(owner.Name),
					Description: render.Description(owner.Comment),
					Version:     r.version,
				},
			},
			Consumes:    []string{"application/json"},
			Produces:    []string{"application/json"},
			Paths:       &spec.Paths{Paths: make(map[string]spec.PathItem)},
			Definitions: make(spec.Definitions),
		},
	}

	b := &builder{definitions: swagger.Definitions, refs: make(map[string]struct{})}
	failures := make([]map[string]string, 0, len(owner.Failures))
	for _, failure := range owner.Failures {
		failures = append(failures, map[string]string{"method": failure.Method, "error": failure.Err.Error()})
	}

	for _, method := range owner.Methods {
		route := render.RouteOf(owner, method)

		pathItem := swagger.Paths.Paths[route.Path]
		op := refRouteMethodOp(&pathItem, route.Method)
		if op == nil {
			failures = append(failures, map[string]string{"method": method.Method, "error": "invalid HTTP method: " + route.Method})
			continue
		}
		if *op != nil {
			failures = append(failures, map[string]string{
				"method": method.Method,
				"error":  fmt.Sprintf("route %s %s is declared multiple times", route.Method, route.Path),
			})
			continue
		}

		*op = b.operation(owner, method, route)
		swagger.Paths.Paths[route.Path] = pathItem
	}

	if len(failures) > 0 {
		swagger.AddExtension("x-failures", failures)
	}

	return swagger, nil
}

// refRouteMethodOp returns a pointer to the operation field for the given HTTP method
func refRouteMethodOp(item *spec.PathItem, method string) **spec.Operation {
	switch method {
	case http.MethodGet:
		return &item.Get
	case http.MethodPost:
		return &item.Post
	case http.MethodDelete:
		return &item.Delete
	case http.MethodPut:
		return &item.Put
	case http.MethodPatch:
		return &item.Patch
	case http.MethodHead:
		return &item.Head
	case http.MethodOptions:
		return &item.Options
	default:
		return nil
	}
}

type builder struct {
	definitions spec.Definitions

	// refs are definition names targeted by a cycle reference
	refs map[string]struct{}
}

func (b *builder) operation(owner *domain.ResolvedOwner, method *domain.ResolvedMethod, route render.Route) *spec.Operation {
	operation := &spec.Operation{
		OperationProps: spec.OperationProps{
			ID:          owner.Name + "." + method.ActionName(),
			Summary:     method.Comment.ItemName(method.ActionName()),
			Description: method.Comment.Description,
			Tags:        []string{owner.Name},
			Deprecated:  method.Comment.Deprecated,
		},
	}

	var body []*domain.StructureAndCommentInfo
	if method.Params != nil {
		for _, param := range method.Params.Children {
			in := render.Locate(route, param)
			if in == render.InBody {
				body = append(body, param)
				continue
			}
			operation.Parameters = append(operation.Parameters, b.simpleParameter(param, in))
		}
	}
	switch len(body) {
	case 0:
	case 1:
		operation.Parameters = append(operation.Parameters, spec.Parameter{
			ParamProps: spec.ParamProps{
				Name:        body[0].Name,
				In:          render.InBody,
				Required:    true,
				Description: body[0].Comment.Description,
				Schema:      b.schema(body[0]),
			},
		})
	default:
		// Swagger allows a single body parameter, group them
		operation.Parameters = append(operation.Parameters, spec.Parameter{
			ParamProps: spec.ParamProps{
				Name:     "body",
				In:       render.InBody,
				Required: true,
				Schema:   b.object(body),
			},
		})
	}

	responses := &spec.Responses{
		ResponsesProps: spec.ResponsesProps{
			StatusCodeResponses: make(map[int]spec.Response),
		},
	}
	if method.Return == nil {
		responses.StatusCodeResponses[http.StatusNoContent] = spec.Response{
			ResponseProps: spec.ResponseProps{Description: "No Content"},
		}
	} else {
		desc := method.Return.Comment.Description
		if desc == "" {
			desc = "OK"
		}
		responses.StatusCodeResponses[http.StatusOK] = spec.Response{
			ResponseProps: spec.ResponseProps{
				Description: desc,
				Schema:      b.schema(method.Return),
				Examples:    map[string]interface{}{"application/json": render.Example(method.Return)},
			},
		}
	}
	operation.Responses = responses

	return operation
}

func (b *builder) simpleParameter(param *domain.StructureAndCommentInfo, in string) spec.Parameter {
	specParam := spec.Parameter{
		ParamProps: spec.ParamProps{
			Name:        param.Name,
			In:          in,
			Required:    in == render.InPath || param.Comment.Required,
			Description: render.Description(param.Comment),
		},
	}

	node := param.Node
	if node.Kind == domain.KindArray {
		specParam.Type = domain.ARRAY
		specParam.CollectionFormat = "csv"
		specParam.Items = &spec.Items{}
		specParam.Items.Type, specParam.Items.Format = simpleType(node.Elem)
		if node.Elem != nil && node.Elem.Kind == domain.KindEnum {
			specParam.Items.Enum = enumValues(node.Elem.EnumValues)
		}
		return specParam
	}

	specParam.Type, specParam.Format = simpleType(node)
	if node.Kind == domain.KindEnum {
		specParam.Enum = enumValues(node.EnumValues)
	} else if len(param.Comment.AllowedValues) > 0 {
		specParam.Enum = enumValues(param.Comment.AllowedValues)
	}
	return specParam
}

func simpleType(node *domain.TypeNode) (string, string) {
	if node == nil || node.Kind == domain.KindEnum {
		return domain.STRING, ""
	}
	return domain.JSONType(node.TypeName)
}

// schema converts a resolved position. A cycle reference points at an
// ancestor of the same tree, which is recorded as a definition once built.
func (b *builder) schema(s *domain.StructureAndCommentInfo) *spec.Schema {
	schema := b.schemaOf(s.Node, s)
	if schema.Ref.String() != "" {
		return schema
	}

	schema.Description = render.Description(s.Comment)
	schema.Title = s.Comment.DisplayName
	if s.Comment.Example != "" {
		var v interface{}
		if err := json.Unmarshal([]byte(s.Comment.Example), &v); err == nil {
			schema.Example = v
		} else {
			schema.Example = s.Comment.Example
		}
	}
	return schema
}

func (b *builder) schemaOf(node *domain.TypeNode, s *domain.StructureAndCommentInfo) *spec.Schema {
	if node == nil {
		return &spec.Schema{}
	}

	switch node.Kind {
	case domain.KindPrimitive:
		jsonType, format := domain.JSONType(node.TypeName)
		schema := &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{jsonType}, Format: format}}
		if len(s.Comment.AllowedValues) > 0 {
			schema.Enum = enumValues(s.Comment.AllowedValues)
		}
		return schema
	case domain.KindEnum:
		return &spec.Schema{SchemaProps: spec.SchemaProps{
			Type: []string{domain.STRING},
			Enum: enumValues(node.EnumValues),
		}}
	case domain.KindArray:
		return b.define(node, spec.ArrayProperty(b.schemaOf(node.Elem, s)))
	case domain.KindMap:
		return b.define(node, spec.MapProperty(b.schemaOf(node.Value, s)))
	case domain.KindCycleRef:
		name := definitionName(node.TypeName)
		b.refs[name] = struct{}{}
		return spec.RefSchema(definitionsPrefix + name)
	}

	schema := b.object(s.Children)
	if node.Diagnostic != "" {
		schema.AddExtension("x-diagnostic", node.Diagnostic)
	}
	return b.define(node, schema)
}

// define records schema as the definition of a built composite when a cycle
// reference below it points back at its type.
func (b *builder) define(node *domain.TypeNode, schema *spec.Schema) *spec.Schema {
	if node.TypeName == "" {
		return schema
	}
	name := definitionName(node.TypeName)
	_, referenced := b.refs[name]
	if _, ok := b.definitions[name]; referenced && !ok {
		b.definitions[name] = *schema
	}
	return schema
}

func (b *builder) object(children []*domain.StructureAndCommentInfo) *spec.Schema {
	schema := &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{domain.OBJECT}}}
	for _, child := range children {
		schema.SetProperty(child.Name, *b.schema(child))
		if child.Comment.Required {
			schema.AddRequired(child.Name)
		}
	}
	return schema
}

func definitionName(identity string) string {
	return unsafeName.ReplaceAllString(domain.BaseTypeName(identity), "_")
}

func enumValues(values []string) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
