package mcpserver

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopDir = "../loader/testdata/shop"

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestListOwnersTool(t *testing.T) {
	result, output, err := handleListOwners(context.Background(), &mcp.CallToolRequest{}, listOwnersInput{Dir: shopDir})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, []ownerSummary{
		{Name: "OrderService", Package: "example.com/shop"},
		{Name: "Store", Package: "example.com/shop", Interface: true},
	}, output.Owners)
}

func TestListOwnersTool_Filter(t *testing.T) {
	_, output, err := handleListOwners(context.Background(), &mcp.CallToolRequest{}, listOwnersInput{Dir: shopDir, Owners: []string{"St*"}})
	require.NoError(t, err)
	require.Len(t, output.Owners, 1)
	assert.Equal(t, "Store", output.Owners[0].Name)
}

func TestListOwnersTool_Errors(t *testing.T) {
	result, _, err := handleListOwners(context.Background(), &mcp.CallToolRequest{}, listOwnersInput{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "dir is required", resultText(t, result))

	result, _, err = handleListOwners(context.Background(), &mcp.CallToolRequest{}, listOwnersInput{Dir: "./missing"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "does not exist")
}

func TestResolveOwnerTool(t *testing.T) {
	result, output, err := handleResolveOwner(context.Background(), &mcp.CallToolRequest{}, resolveOwnerInput{
		Dir:   shopDir,
		Owner: "shop.OrderService",
	})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "OrderService", output.Owner)
	assert.Equal(t, "example.com/shop.OrderService", output.Identity)
	assert.Contains(t, output.Methods, "Get")
	assert.NotContains(t, output.Methods, "Delete")
	assert.Contains(t, output.Document, "# OrderService")
}

func TestResolveOwnerTool_FormatAndHidden(t *testing.T) {
	_, output, err := handleResolveOwner(context.Background(), &mcp.CallToolRequest{}, resolveOwnerInput{
		Dir:           shopDir,
		Owner:         "OrderService",
		Format:        "json",
		IncludeHidden: true,
	})
	require.NoError(t, err)
	assert.Contains(t, output.Methods, "Delete")
	assert.Contains(t, output.Document, `"swagger": "2.0"`)
}

func TestResolveOwnerTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input resolveOwnerInput
		want  string
	}{
		{name: "no dir", input: resolveOwnerInput{Owner: "OrderService"}, want: "dir is required"},
		{name: "no owner", input: resolveOwnerInput{Dir: shopDir}, want: "owner is required"},
		{name: "bad format", input: resolveOwnerInput{Dir: shopDir, Owner: "OrderService", Format: "docx"}, want: "output type 'docx' not supported"},
		{name: "unknown owner", input: resolveOwnerInput{Dir: shopDir, Owner: "Nope"}, want: "owner Nope not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleResolveOwner(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Equal(t, tt.want, resultText(t, result))
		})
	}
}

func TestSanitizeError(t *testing.T) {
	assert.Equal(t, "", sanitizeError(nil))
	assert.Equal(t, "open <path>: no such file", sanitizeError(errors.New("open /home/me/src/x.go: no such file")))
}
