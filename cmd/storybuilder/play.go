package main

import (
	"fmt"
	"os"

	"github.com/aretw0/storybuilder/internal/cli"
	"github.com/spf13/cobra"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play [story]",
	Short: "Play the story in the console",
	Long: `Shows each page of the story with numbered choices and reads your answer
from standard input. Type "exit" or press Ctrl+D to leave early.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := loadOptions(cmd)
		if !cmd.Flags().Changed("story") && len(args) > 0 {
			opts.Story = args[0]
		}
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Headless, _ = cmd.Flags().GetBool("headless")

		ctx, stop := signalContext()
		defer stop()

		if err := cli.RunPlay(ctx, opts, os.Stdin, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Bool("headless", false, "Plain output: no title banner, markdown rendering or recap")
	playCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
}
