package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/autoviz/internal/classify"
	"github.com/KaramelBytes/autoviz/internal/dataset"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Classify a dataset's columns without rendering charts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.LoadFile(args[0])
		if err != nil {
			return err
		}
		c := classify.Classify(ds)
		fmt.Print(classify.Markdown(ds, c))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
