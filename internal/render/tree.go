package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/griffnb/core-savior/internal/domain"
)

// WriteTree prints an owner as an indented outline, one line per position.
func WriteTree(w io.Writer, owner *domain.ResolvedOwner) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", owner.Name, owner.Identity)
	for _, method := range owner.Methods {
		route := RouteOf(owner, method)
		fmt.Fprintf(&b, "  %s %s %s\n", method.Method, route.Method, route.Path)

		if method.Params != nil && len(method.Params.Children) > 0 {
			b.WriteString("    params\n")
			for _, param := range method.Params.Children {
				writeNode(&b, param, 3)
			}
		}
		if method.Return != nil {
			b.WriteString("    returns\n")
			if len(method.Return.Children) == 0 || method.Return.Name != "" || method.Return.Node.TypeName != "" {
				writeNode(&b, method.Return, 3)
			} else {
				for _, child := range method.Return.Children {
					writeNode(&b, child, 3)
				}
			}
		}
	}
	for _, failure := range owner.Failures {
		fmt.Fprintf(&b, "  %s FAILED: %v\n", failure.Method, failure.Err)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeNode(b *strings.Builder, s *domain.StructureAndCommentInfo, indent int) {
	s.Walk(func(node *domain.StructureAndCommentInfo, depth int) {
		name := node.Name
		if name == "" {
			name = "@"
		}
		line := fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", indent+depth), name, node.Node.Kind, TypeLabel(node.Node))
		if node.Comment.Required {
			line += " required"
		}
		if desc := Description(node.Comment); desc != "" {
			line += " // " + strings.ReplaceAll(desc, "\n", " ")
		}
		if node.Node.Diagnostic != "" {
			line += " !" + node.Node.Diagnostic
		}
		b.WriteString(line + "\n")
	})
}
