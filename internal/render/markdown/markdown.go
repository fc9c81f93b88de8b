// Package markdown renders resolved owners as Markdown API documents.
package markdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/render"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Renderer writes one Markdown document per owner.
type Renderer struct {
	examples bool
}

// Option is a functional option for configuring Renderer
type Option func(*Renderer)

// WithExamples toggles the JSON example blocks
func WithExamples(examples bool) Option {
	return func(r *Renderer) {
		r.examples = examples
	}
}

// New creates a Markdown renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{
		examples: true,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Format implements render.Renderer.
func (r *Renderer) Format() string { return "markdown" }

// Extension implements render.Renderer.
func (r *Renderer) Extension() string { return "md" }

// Render implements render.Renderer.
func (r *Renderer) Render(w io.Writer, owner *domain.ResolvedOwner) error {
	if owner == nil {
		return fmt.Errorf("markdown: nil owner")
	}

	// Casers keep state, one per call
	title := cases.Title(language.English, cases.NoLower)

	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title.String(owner.Comment.ItemName(owner.Name)))
	if desc := render.Description(owner.Comment); desc != "" {
		b.WriteString(desc + "\n\n")
	}

	for _, method := range owner.Methods {
		if err := r.writeMethod(&b, title, owner, method); err != nil {
			return err
		}
	}

	if len(owner.Failures) > 0 {
		b.WriteString("## Failures\n\n")
		for _, failure := range owner.Failures {
			fmt.Fprintf(&b, "- `%s`: %s\n", failure.Method, escape(failure.Err.Error()))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) writeMethod(b *strings.Builder, title cases.Caser, owner *domain.ResolvedOwner, method *domain.ResolvedMethod) error {
	route := render.RouteOf(owner, method)

	fmt.Fprintf(b, "## %s\n\n", title.String(method.Comment.ItemName(method.ActionName())))
	fmt.Fprintf(b, "`%s %s`\n\n", route.Method, route.Path)
	if desc := render.Description(method.Comment); desc != "" {
		b.WriteString(desc + "\n\n")
	}

	b.WriteString("### Request\n\n")
	if method.Params == nil || len(method.Params.Children) == 0 {
		b.WriteString("No parameters.\n\n")
	} else {
		writeTable(b, method.Params, true, func(s *domain.StructureAndCommentInfo) string {
			if s.Path == s.Name {
				return render.Locate(route, s)
			}
			return ""
		})
		if r.examples {
			for _, param := range method.Params.Children {
				if render.Locate(route, param) != render.InBody {
					continue
				}
				if err := writeExample(b, param); err != nil {
					return fmt.Errorf("example of %s: %w", param.Name, err)
				}
			}
		}
	}

	b.WriteString("### Response\n\n")
	if method.Return == nil {
		b.WriteString("No content.\n\n")
		return nil
	}

	writeTable(b, method.Return, len(method.Return.Children) > 0, nil)
	if r.examples {
		if err := writeExample(b, method.Return); err != nil {
			return fmt.Errorf("example of %s result: %w", method.Method, err)
		}
	}
	return nil
}

func writeTable(b *strings.Builder, root *domain.StructureAndCommentInfo, skipRoot bool, location func(*domain.StructureAndCommentInfo) string) {
	if location != nil {
		b.WriteString("| Name | In | Type | Required | Description |\n")
		b.WriteString("| --- | --- | --- | --- | --- |\n")
	} else {
		b.WriteString("| Name | Type | Required | Description |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
	}

	root.Walk(func(node *domain.StructureAndCommentInfo, depth int) {
		if skipRoot && depth == 0 {
			return
		}

		name := node.Path
		if name == "" {
			name = node.Name
		}
		if name == "" {
			name = "-"
		}

		required := ""
		if node.Comment.Required {
			required = "yes"
		}

		desc := node.Comment.Description
		if title := node.Comment.DisplayName; title != "" {
			if desc == "" {
				desc = title
			} else {
				desc = title + ". " + desc
			}
		}
		if node.Comment.Deprecated {
			desc = strings.TrimSpace("Deprecated. " + desc)
		}
		if node.Node != nil && node.Node.Diagnostic != "" {
			desc = strings.TrimSpace(desc + " (" + node.Node.Diagnostic + ")")
		}

		if location != nil {
			fmt.Fprintf(b, "| `%s` | %s | %s | %s | %s |\n", name, location(node), escape(render.TypeLabel(node.Node)), required, escape(desc))
			return
		}
		fmt.Fprintf(b, "| `%s` | %s | %s | %s |\n", name, escape(render.TypeLabel(node.Node)), required, escape(desc))
	})
	b.WriteString("\n")
}

func writeExample(b *strings.Builder, s *domain.StructureAndCommentInfo) error {
	example, err := render.ExampleJSON(s)
	if err != nil {
		return err
	}
	b.WriteString("```json\n")
	b.WriteString(example)
	b.WriteString("\n```\n\n")
	return nil
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", "<br>")
}
