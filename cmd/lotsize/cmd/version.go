package cmd

import (
	"fmt"

	"github.com/rustyeddy/lotsize/api"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lotsize version %s\n", api.ServiceVersion)
		fmt.Fprintln(cmd.OutOrStdout(), "https://github.com/rustyeddy/lotsize")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
