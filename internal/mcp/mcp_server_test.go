package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemindhq/codemind/internal/contract"
	mcp_internal "github.com/codemindhq/codemind/internal/mcp"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{TargetPath: "."}

	// No store, fetcher or suggester: handlers must degrade to tool errors,
	// never raw Go errors.
	s := mcp_internal.NewMCPServer(baseCfg, nil, nil, nil)
	ctx := context.Background()

	run := func(name string, args map[string]any) *mcp.CallToolResult {
		tool := s.GetTool(name)
		require.NotNil(t, tool, "Tool %s should exist", name)
		res, err := tool.Handler(ctx, mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: name, Arguments: args},
		})
		require.NoError(t, err)
		return res
	}

	t.Run("analyze_github without fetcher", func(t *testing.T) {
		res := run("analyze_github", map[string]any{"username": "alice"})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "not configured")
	})

	t.Run("get_style_profile without store", func(t *testing.T) {
		res := run("get_style_profile", map[string]any{"owner": "alice"})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "not configured")
	})

	t.Run("suggest_improvement without engine", func(t *testing.T) {
		res := run("suggest_improvement", map[string]any{"code": "x = 1"})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "not configured")
	})

	t.Run("analyze_path bad path", func(t *testing.T) {
		res := run("analyze_path", map[string]any{"path": "/definitely/not/here"})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})
}

func TestMCPServerToolsRegistered(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{TargetPath: "."}, nil, nil, nil)

	for _, name := range []string{"analyze_path", "analyze_github", "get_style_profile", "suggest_improvement"} {
		assert.NotNil(t, s.GetTool(name), "Tool %s should be registered", name)
	}
}
