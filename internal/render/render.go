// Package render defines the output capability of the resolution engine and
// the helpers its formats share. Renderers only read resolved trees.
package render

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/griffnb/core-savior/internal/domain"
)

// Renderer turns a resolved owner into one document.
type Renderer interface {
	// Format is the configuration name, e.g. "markdown"
	Format() string

	// Extension is the file extension without the dot
	Extension() string

	Render(w io.Writer, owner *domain.ResolvedOwner) error
}

// Route is the HTTP binding of a method.
type Route struct {
	Method string
	Path   string
}

// Parameter locations
const (
	InPath  = "path"
	InQuery = "query"
	InBody  = "body"
)

var routerPattern = regexp.MustCompile(`^(/[\w./\-{}\(\)+:$~]*)[[:blank:]]+\[(\w+)]`)

// RouteOf returns the @router binding of method, or POST /<owner>/<method>.
func RouteOf(owner *domain.ResolvedOwner, method *domain.ResolvedMethod) Route {
	if raw, ok := method.Comment.Tag("router"); ok {
		if matches := routerPattern.FindStringSubmatch(raw); len(matches) == 3 {
			return Route{Method: strings.ToUpper(matches[2]), Path: matches[1]}
		}
	}

	ownerName := ""
	if owner != nil {
		ownerName = owner.Name
	}
	if ownerName == "" {
		ownerName = domain.BaseTypeName(method.Owner)
	}

	return Route{
		Method: "POST",
		Path:   "/" + lowerFirst(ownerName) + "/" + lowerFirst(method.ActionName()),
	}
}

// PathParams lists the {name} segments of a route path.
func (r Route) PathParams() []string {
	var names []string
	for _, segment := range strings.Split(r.Path, "/") {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			names = append(names, strings.Trim(segment, "{}"))
		}
	}
	return names
}

// Locate decides where a parameter travels: path segments by name, scalars and
// scalar lists in the query of bodiless methods, everything else in the body.
func Locate(route Route, param *domain.StructureAndCommentInfo) string {
	for _, name := range route.PathParams() {
		if name == param.Name {
			return InPath
		}
	}

	if !IsScalar(param.Node) {
		return InBody
	}

	switch route.Method {
	case "GET", "DELETE", "HEAD", "OPTIONS":
		return InQuery
	}
	return InBody
}

// IsScalar reports whether a node is a primitive, an enum or a list of them.
func IsScalar(node *domain.TypeNode) bool {
	if node == nil {
		return false
	}
	switch node.Kind {
	case domain.KindPrimitive, domain.KindEnum:
		jsonType, _ := domain.JSONType(node.TypeName)
		return node.Kind == domain.KindEnum || jsonType != domain.OBJECT
	case domain.KindArray:
		return node.Elem != nil && (node.Elem.Kind == domain.KindPrimitive || node.Elem.Kind == domain.KindEnum)
	}
	return false
}

// TypeLabel is a short human readable type description.
func TypeLabel(node *domain.TypeNode) string {
	if node == nil {
		return "unknown"
	}
	switch node.Kind {
	case domain.KindPrimitive:
		jsonType, format := domain.JSONType(node.TypeName)
		if format != "" {
			return fmt.Sprintf("%s(%s)", jsonType, format)
		}
		return jsonType
	case domain.KindEnum:
		return "enum(" + strings.Join(node.EnumValues, "|") + ")"
	case domain.KindArray:
		return "array<" + TypeLabel(node.Elem) + ">"
	case domain.KindMap:
		return "map<" + TypeLabel(node.Key) + ", " + TypeLabel(node.Value) + ">"
	case domain.KindCycleRef:
		return "ref " + domain.BaseTypeName(node.TypeName)
	}
	if node.TypeName == "" {
		return domain.OBJECT
	}
	return domain.OBJECT + " " + domain.BaseTypeName(node.TypeName)
}

// Description returns the description of a node, marking deprecation.
func Description(info *domain.CommentInfo) string {
	if info == nil {
		return ""
	}
	desc := info.Description
	if info.Deprecated {
		desc = strings.TrimSpace("Deprecated. " + desc)
	}
	return desc
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
