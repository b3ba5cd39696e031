package main

import (
	"fmt"
	"os"

	"github.com/aretw0/storybuilder/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the story as a JSON API for browser clients: sessions, choices,
history, the story graph, images and Prometheus metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := loadOptions(cmd)
		if cmd.Flags().Changed("metrics") {
			opts.Metrics, _ = cmd.Flags().GetBool("metrics")
		}
		if cmd.Flags().Changed("session-ttl") {
			opts.SessionTTL, _ = cmd.Flags().GetDuration("session-ttl")
		}

		ctx, stop := signalContext()
		defer stop()

		if err := cli.RunServe(ctx, opts, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")
	serveCmd.Flags().Duration("session-ttl", 0, "Expire idle Redis sessions after this long (default 24h)")
}
