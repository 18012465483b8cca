package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "supervisor",
	Short: "supervisor keeps network connection profiles in sync with the host network daemon",
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
