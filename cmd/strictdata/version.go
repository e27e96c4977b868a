package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yannn/strictdata"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of strictdata",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "strictdata version %s\n", strings.TrimSpace(strictdata.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
