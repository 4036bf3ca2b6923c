package cmd

import (
	"github.com/shivasurya/code-pathfinder/pycpg/analytics"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pycpg",
	Short: "pycpg - translates Python source into a code property graph",
	Long:  `pycpg parses Python source files into a typed code property graph for downstream static analysis.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		disableMetrics, _ := cmd.Flags().GetBool("disable-metrics") //nolint:all
		analytics.LoadEnvFile()
		analytics.Init(disableMetrics)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("disable-metrics", false, "Disable metrics collection")
}
