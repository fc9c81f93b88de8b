package markdown

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffnb/core-savior/internal/domain"
	"github.com/griffnb/core-savior/internal/render/rendertest"
)

func renderOwner(t *testing.T, r *Renderer, owner *domain.ResolvedOwner) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, owner))
	return buf.String()
}

func TestRender(t *testing.T) {
	out := renderOwner(t, New(), rendertest.OrderService())

	assert.True(t, strings.HasPrefix(out, "# OrderService\n\nOrderService manages orders.\n\n"))
	assert.Contains(t, out, "## Get\n\n`GET /orders/{id}`\n\nGet returns one order.\n\n")
	assert.Contains(t, out, "| `id` | path | integer(int64) |  | the order id |")
	assert.Contains(t, out, "| `limit` | query | integer |  |  |")

	// action names become headings
	assert.Contains(t, out, "## CreateOrder\n\n`POST /orders`")
	assert.Contains(t, out, "| `order.items.price` |  | number(double) | yes |")
	assert.Contains(t, out, "| `order.items.order` |  | ref Order |  | Order is a purchase. |")
	assert.NotContains(t, out, "secret")

	// onlyResponse keeps the listed field
	list := out[strings.Index(out, "## List"):strings.Index(out, "## CreateOrder")]
	assert.Contains(t, list, "| `id` | integer(int64) |  | Order ID |")
	assert.NotContains(t, list, "`status`")

	assert.Contains(t, out, "## Ping\n\n`POST /orderService/ping`\n\n### Request\n\nNo parameters.\n\n### Response\n\nNo content.\n\n")
	assert.Contains(t, out, "## Failures\n\n- `Broken`: invalid method")
}

func TestRender_Examples(t *testing.T) {
	out := renderOwner(t, New(), rendertest.OrderService())
	assert.Contains(t, out, "```json\n{\n  \"id\": 42,\n  \"status\": \"pending\",")

	out = renderOwner(t, New(WithExamples(false)), rendertest.OrderService())
	assert.NotContains(t, out, "```json")
}

func TestRender_Escaping(t *testing.T) {
	owner := &domain.ResolvedOwner{
		Name:    "Pipes",
		Comment: &domain.CommentInfo{},
		Methods: []*domain.ResolvedMethod{{
			Method:  "Run",
			Comment: &domain.CommentInfo{},
			Return: &domain.StructureAndCommentInfo{
				Node:    &domain.TypeNode{Kind: domain.KindPrimitive, TypeName: "string"},
				Comment: &domain.CommentInfo{Description: "a|b\nc"},
			},
		}},
	}

	out := renderOwner(t, New(), owner)
	assert.Contains(t, out, "| `-` | string |  | a\\|b<br>c |")
}

func TestRender_DisplayName(t *testing.T) {
	field := func(name, desc string) *domain.StructureAndCommentInfo {
		return &domain.StructureAndCommentInfo{
			Name:    "total",
			Path:    "total",
			Node:    &domain.TypeNode{Kind: domain.KindPrimitive, TypeName: "int"},
			Comment: &domain.CommentInfo{DisplayName: name, Description: desc},
		}
	}
	owner := func(f *domain.StructureAndCommentInfo) *domain.ResolvedOwner {
		return &domain.ResolvedOwner{
			Name:    "Totals",
			Comment: &domain.CommentInfo{},
			Methods: []*domain.ResolvedMethod{{
				Method:  "Sum",
				Comment: &domain.CommentInfo{},
				Return: &domain.StructureAndCommentInfo{
					Node:     &domain.TypeNode{Kind: domain.KindObject},
					Comment:  &domain.CommentInfo{},
					Children: []*domain.StructureAndCommentInfo{f},
				},
			}},
		}
	}

	out := renderOwner(t, New(), owner(field("Total", "")))
	assert.Contains(t, out, "| `total` | integer |  | Total |\n")

	out = renderOwner(t, New(), owner(field("Total", "Sum of lines.")))
	assert.Contains(t, out, "| `total` | integer |  | Total. Sum of lines. |\n")
}

func TestRender_NilOwner(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, New().Render(&buf, nil))
}

func TestRenderer_Identity(t *testing.T) {
	r := New()
	assert.Equal(t, "markdown", r.Format())
	assert.Equal(t, "md", r.Extension())
}
