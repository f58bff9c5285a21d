// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/codemindhq/codemind/internal/contract"
)

// NewMCPServer initializes and configures the CodeMind MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.ProfileStore, fetcher contract.RepoFetcher, suggester contract.Suggester) *server.MCPServer {
	s := server.NewMCPServer(
		"CodeMind Style Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:   baseCfg,
		store:     store,
		fetcher:   fetcher,
		suggester: suggester,
	}

	// --- 1. Tool: analyze_path ---
	s.AddTool(mcp.NewTool("analyze_path",
		mcp.WithDescription("Analyze source files under a local path and return the author's style profile (style DNA)."),
		mcp.WithString("path", mcp.Description("Path to the file or directory to analyze (defaults to current directory)."), mcp.Required()),
		mcp.WithString("owner", mcp.Description("Optional owner id to persist the profile under.")),
	), h.handleAnalyzePath)

	// --- 2. Tool: analyze_github ---
	s.AddTool(mcp.NewTool("analyze_github",
		mcp.WithDescription("Fetch a GitHub user's repositories and return their style profile."),
		mcp.WithString("username", mcp.Description("GitHub username to analyze."), mcp.Required()),
	), h.handleAnalyzeGitHub)

	// --- 3. Tool: get_style_profile ---
	s.AddTool(mcp.NewTool("get_style_profile",
		mcp.WithDescription("Return the stored style profile and feedback counters for an owner."),
		mcp.WithString("owner", mcp.Description("Owner id whose profile should be returned."), mcp.Required()),
	), h.handleGetStyleProfile)

	// --- 4. Tool: suggest_improvement ---
	s.AddTool(mcp.NewTool("suggest_improvement",
		mcp.WithDescription("Suggest an improvement to a code snippet that matches the owner's stored coding style."),
		mcp.WithString("code", mcp.Description("The code snippet to improve."), mcp.Required()),
		mcp.WithString("owner", mcp.Description("Owner id whose stored style should be matched.")),
	), h.handleSuggestImprovement)

	return s
}

// StartMCPServer starts the CodeMind MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.ProfileStore, fetcher contract.RepoFetcher, suggester contract.Suggester) error {
	s := NewMCPServer(baseCfg, store, fetcher, suggester)
	return server.ServeStdio(s)
}
