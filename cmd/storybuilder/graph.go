package main

import (
	"fmt"
	"os"

	"github.com/aretw0/storybuilder/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [story]",
	Short: "Export the story graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the story. With --session the
pages that session visited are highlighted; the session is looked up in the
store selected by --redis-url or --session-dir.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := loadOptions(cmd)
		if !cmd.Flags().Changed("story") && len(args) > 0 {
			opts.Story = args[0]
		}
		sessionID, _ := cmd.Flags().GetString("session")

		ctx, stop := signalContext()
		defer stop()

		if err := cli.RunGraph(ctx, opts, sessionID, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("session", "", "Highlight the trail of this session")
}
