package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/storybuilder"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of storybuilder",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("storybuilder version %s\n", strings.TrimSpace(storybuilder.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
