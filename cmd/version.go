package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the application version, overridable at build time with
// -ldflags "-X github.com/KaramelBytes/autoviz/cmd.Version=...".
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the AutoViz version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("autoviz", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
