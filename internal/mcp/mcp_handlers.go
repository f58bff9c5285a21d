package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/codemindhq/codemind/core"
	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg   *contract.Config
	store     contract.ProfileStore
	fetcher   contract.RepoFetcher
	suggester contract.Suggester
}

func (h *toolHandler) handleAnalyzePath(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.TargetPath = request.GetString("path", ".")
	owner := request.GetString("owner", "")

	files, err := core.CollectFiles(cfg.TargetPath, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	profile := core.BuildProfile(files)
	h.persist(owner, profile)

	jsonData, _ := json.MarshalIndent(profile, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAnalyzeGitHub(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.fetcher == nil {
		return mcp.NewToolResultError("github fetching is not configured"), nil
	}
	username := request.GetString("username", "")
	if username == "" {
		return mcp.NewToolResultError("username is required"), nil
	}

	files, err := h.fetcher.FetchFiles(ctx, username, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("github fetch failed: %v", err)), nil
	}
	if len(files) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no source files found for %s", username)), nil
	}

	profile := core.BuildProfile(files)
	h.persist(username, profile)

	jsonData, _ := json.MarshalIndent(profile, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStyleProfile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("profile store is not configured"), nil
	}
	owner := request.GetString("owner", "")

	stored, err := h.store.GetProfile(owner)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("profile lookup failed: %v", err)), nil
	}
	if stored == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no stored profile for %s", owner)), nil
	}

	jsonData, _ := json.MarshalIndent(stored, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSuggestImprovement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.suggester == nil {
		return mcp.NewToolResultError("suggestion engine is not configured"), nil
	}
	code := request.GetString("code", "")
	if code == "" {
		return mcp.NewToolResultError("code is required"), nil
	}
	owner := request.GetString("owner", "")

	profile := core.BuildProfile(nil)
	if h.store != nil && owner != "" {
		stored, err := h.store.GetProfile(owner)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("profile lookup failed: %v", err)), nil
		}
		if stored != nil {
			profile = &stored.Profile
		}
	}

	suggestion, err := h.suggester.Suggest(ctx, code, profile)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("suggestion failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(suggestion, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// persist saves a profile when a store and owner are configured. Tool output
// never depends on persistence succeeding.
func (h *toolHandler) persist(owner string, profile *schema.StyleProfile) {
	if h.store == nil || owner == "" {
		return
	}
	if err := h.store.SaveProfile(owner, profile); err != nil {
		contract.LogWarn("profile not saved", err)
	}
}
