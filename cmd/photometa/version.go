package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/photometa"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), photometa.GetVersionInfo())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
