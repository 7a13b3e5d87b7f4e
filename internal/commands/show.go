// internal/commands/show.go
package commands

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/promptlab/internal/appconfig"
)

var showRaw bool

// showCmd groups the 'show' subcommands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show information about the current setup",
}

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings after defaults, config file, environment and flags have been merged.`,
	Run: func(cmd *cobra.Command, args []string) {
		appconfig.ShowConfig(cmd.OutOrStdout(), GetConfig(), showRaw)
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showRaw, "raw", false, "pretty-print the whole configuration struct")
	showCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(showCmd)
}
