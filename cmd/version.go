package cmd

import (
	"fmt"

	"github.com/xonestonex/supervisor/internal/pkg/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and git info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetGitInfo())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
