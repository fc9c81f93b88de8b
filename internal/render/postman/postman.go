// Package postman renders resolved owners as Postman v2.1 collections.
package postman

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/render"
)

// SchemaURL identifies the collection format.
const SchemaURL = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// DefaultBaseURL is the value of the {{baseUrl}} collection variable
const DefaultBaseURL = "http://localhost:8080"

// Collection is a Postman v2.1 collection.
type Collection struct {
	Info     Info       `json:"info"`
	Item     []Item     `json:"item"`
	Variable []Variable `json:"variable,omitempty"`
}

// Info describes the collection.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Schema      string `json:"schema"`
}

// Item is one request of the collection.
type Item struct {
	Name     string     `json:"name"`
	Request  Request    `json:"request"`
	Response []Response `json:"response"`
}

// Request is a Postman request.
type Request struct {
	Method      string     `json:"method"`
	Header      []Variable `json:"header"`
	URL         URL        `json:"url"`
	Body        *Body      `json:"body,omitempty"`
	Description string     `json:"description,omitempty"`
}

// URL is a structured request URL.
type URL struct {
	Raw      string     `json:"raw"`
	Host     []string   `json:"host"`
	Path     []string   `json:"path"`
	Query    []Variable `json:"query,omitempty"`
	Variable []Variable `json:"variable,omitempty"`
}

// Variable is a key/value pair used for headers, query and path variables.
type Variable struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Body is a raw request body.
type Body struct {
	Mode    string       `json:"mode"`
	Raw     string       `json:"raw"`
	Options *BodyOptions `json:"options,omitempty"`
}

// BodyOptions sets the raw body language.
type BodyOptions struct {
	Raw struct {
		Language string `json:"language"`
	} `json:"raw"`
}

// Response is a saved example response.
type Response struct {
	Name            string     `json:"name"`
	OriginalRequest Request    `json:"originalRequest"`
	Status          string     `json:"status"`
	Code            int        `json:"code"`
	PreviewLanguage string     `json:"_postman_previewlanguage"`
	Header          []Variable `json:"header"`
	Body            string     `json:"body"`
}

// Renderer writes one collection per owner.
type Renderer struct {
	baseURL string
}

// Option is a functional option for configuring Renderer
type Option func(*Renderer)

// WithBaseURL sets the default of the {{baseUrl}} variable
func WithBaseURL(baseURL string) Option {
	return func(r *Renderer) {
		if baseURL != "" {
			r.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// New creates a Postman renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{baseURL: DefaultBaseURL}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Format implements render.Renderer.
func (r *Renderer) Format() string { return "postman" }

// Extension implements render.Renderer.
func (r *Renderer) Extension() string { return "postman_collection.json" }

// Render implements render.Renderer.
func (r *Renderer) Render(w io.Writer, owner *domain.ResolvedOwner) error {
	collection, err := r.Build(owner)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(collection, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// Build converts an owner to a collection.
func (r *Renderer) Build(owner *domain.ResolvedOwner) (*Collection, error) {
	if owner == nil {
		return nil, fmt.Errorf("postman: nil owner")
	}

	collection := &Collection{
		Info: Info{
			Name:        owner.Comment.ItemName(owner.Name),
			Description: render.Description(owner.Comment),
			Schema:      SchemaURL,
		},
		Item:     []Item{},
		Variable: []Variable{{Key: "baseUrl", Value: r.baseURL}},
	}

	for _, method := range owner.Methods {
		item, err := r.item(owner, method)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", owner.Name, method.Method, err)
		}
		collection.Item = append(collection.Item, item)
	}

	return collection, nil
}

func (r *Renderer) item(owner *domain.ResolvedOwner, method *domain.ResolvedMethod) (Item, error) {
	route := render.RouteOf(owner, method)

	request := Request{
		Method:      route.Method,
		Header:      []Variable{{Key: "Content-Type", Value: "application/json"}},
		Description: render.Description(method.Comment),
	}

	var (
		query []Variable
		vars  = make(map[string]Variable)
		body  = render.Object{}
	)
	if method.Params != nil {
		for _, param := range method.Params.Children {
			switch render.Locate(route, param) {
			case render.InPath:
				vars[param.Name] = Variable{Key: param.Name, Value: scalarValue(param), Description: param.Comment.Description}
			case render.InQuery:
				query = append(query, Variable{Key: param.Name, Value: scalarValue(param), Description: param.Comment.Description})
			default:
				body = append(body, render.Member{Key: param.Name, Value: render.Example(param)})
			}
		}
	}

	var segments []string
	var pathVars []Variable
	for _, segment := range strings.Split(strings.Trim(route.Path, "/"), "/") {
		if segment == "" {
			continue
		}
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			name := strings.Trim(segment, "{}")
			v, ok := vars[name]
			if !ok {
				v = Variable{Key: name}
			}
			pathVars = append(pathVars, v)
			segment = ":" + name
		}
		segments = append(segments, segment)
	}

	raw := "{{baseUrl}}/" + strings.Join(segments, "/")
	if len(query) > 0 {
		pairs := make([]string, 0, len(query))
		for _, q := range query {
			pairs = append(pairs, q.Key+"="+q.Value)
		}
		raw += "?" + strings.Join(pairs, "&")
	}
	request.URL = URL{
		Raw:      raw,
		Host:     []string{"{{baseUrl}}"},
		Path:     segments,
		Query:    query,
		Variable: pathVars,
	}

	if len(body) > 0 {
		var payload any = body
		// A single body parameter is the body itself
		if len(body) == 1 {
			payload = body[0].Value
		}
		b, err := json.MarshalIndent(payload, "", "    ")
		if err != nil {
			return Item{}, fmt.Errorf("request body: %w", err)
		}
		request.Body = &Body{Mode: "raw", Raw: string(b), Options: &BodyOptions{}}
		request.Body.Options.Raw.Language = "json"
	}

	item := Item{
		Name:     method.Comment.ItemName(method.ActionName()),
		Request:  request,
		Response: []Response{},
	}

	if method.Return != nil {
		b, err := json.MarshalIndent(render.Example(method.Return), "", "    ")
		if err != nil {
			return Item{}, fmt.Errorf("response body: %w", err)
		}
		item.Response = append(item.Response, Response{
			Name:            "OK",
			OriginalRequest: request,
			Status:          "OK",
			Code:            200,
			PreviewLanguage: "json",
			Header:          []Variable{{Key: "Content-Type", Value: "application/json"}},
			Body:            string(b),
		})
	}

	return item, nil
}

func scalarValue(param *domain.StructureAndCommentInfo) string {
	v := render.Example(param)
	switch v := v.(type) {
	case string:
		return v
	case nil:
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return strings.Trim(string(b), "[]")
}
