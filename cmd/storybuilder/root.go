package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/storybuilder/internal/cli"
	"github.com/aretw0/storybuilder/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storybuilder",
	Short: "StoryBuilder plays branching picture stories",
	Long: `StoryBuilder reads a branching story (a YAML file, a directory of markdown
nodes, or the built-in "El gato" story) and lets you play it in the console,
in the browser over HTTP, or from an AI agent over MCP.

Without a sub-command a menu asks where to play.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := loadOptions(cmd)
		ctx, stop := signalContext()
		defer stop()

		if err := cli.RunLauncher(ctx, opts, os.Stdin, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("story", "", "Story to load: a YAML file, a Loam directory or builtin:<name> (default: built-in story)")
	rootCmd.PersistentFlags().String("start", "", "Override the start node declared by the story")
	rootCmd.PersistentFlags().String("assets", "", "Directory holding story images (default \"assets\")")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().Bool("lenient", false, "Load stories with validation issues (issues are logged)")
	rootCmd.PersistentFlags().Int("max-choices", 0, "Report nodes with more choices than this (0 disables the check)")
	rootCmd.PersistentFlags().String("addr", "", "Listen address for HTTP and MCP SSE (default \":8080\")")
	rootCmd.PersistentFlags().String("redis-url", "", "Keep sessions in Redis instead of memory")
	rootCmd.PersistentFlags().String("session-dir", "", "Keep sessions as JSON files in this directory instead of memory")
	rootCmd.PersistentFlags().String("env-file", config.DefaultDotEnv, "Optional dotenv file read before the environment")
}

// loadOptions reads the environment and applies the flags set on cmd on top.
func loadOptions(cmd *cobra.Command) cli.Options {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	opts := cli.FromConfig(cfg)

	overrideString(cmd, "story", &opts.Story)
	overrideString(cmd, "start", &opts.Start)
	overrideString(cmd, "assets", &opts.Assets)
	overrideString(cmd, "addr", &opts.Addr)
	overrideString(cmd, "redis-url", &opts.RedisURL)
	overrideString(cmd, "session-dir", &opts.SessionDir)
	opts.Debug, _ = cmd.Flags().GetBool("debug")
	opts.Lenient, _ = cmd.Flags().GetBool("lenient")
	if cmd.Flags().Changed("max-choices") {
		opts.MaxChoices, _ = cmd.Flags().GetInt("max-choices")
	}
	return opts
}

func overrideString(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetString(name)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
