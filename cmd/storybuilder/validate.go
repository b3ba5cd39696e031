package main

import (
	"fmt"
	"os"

	"github.com/aretw0/storybuilder/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [story]",
	Short: "Check the story graph for consistency",
	Long: `Reports a missing start node, choices that lead nowhere, pages that can
never be reached and paths that can never end.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := loadOptions(cmd)
		if !cmd.Flags().Changed("story") && len(args) > 0 {
			opts.Story = args[0]
		}
		opts.JSON, _ = cmd.Flags().GetBool("json")

		if err := cli.RunValidate(opts, os.Stdout); err != nil {
			if !opts.JSON {
				fmt.Printf("Validation failed: %v\n", err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("json", false, "Print the report as JSON")
}
