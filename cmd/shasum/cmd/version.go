package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"massnet.org/shasum/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetAppVersion())
		return nil
	},
}
