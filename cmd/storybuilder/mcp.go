package main

import (
	"fmt"
	"os"

	"github.com/aretw0/storybuilder/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the story as MCP tools so AI agents can play it.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP on --addr.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := loadOptions(cmd)
		opts.Transport, _ = cmd.Flags().GetString("transport")

		ctx, stop := signalContext()
		defer stop()

		if err := cli.RunMCP(ctx, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
}
