package cmd

import (
	"github.com/spf13/cobra"

	"github.com/codemindhq/codemind/internal/aiengine"
	"github.com/codemindhq/codemind/internal/contract"
	"github.com/codemindhq/codemind/internal/githubfetch"
	"github.com/codemindhq/codemind/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the CodeMind MCP server",
	Long:  `Launch an MCP server that lets AI agents run style analysis and request style-matched suggestions via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		fetcher := githubfetch.New(cfg)
		var suggester contract.Suggester
		if engine, err := aiengine.NewEngine(rootCtx, cfg.GeminiAPIKey, cfg.GeminiModel); err == nil {
			suggester = engine
		}
		return mcp.StartMCPServer(rootCtx, cfg, store, fetcher, suggester)
	},
}
