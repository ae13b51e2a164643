package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List output formats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := service()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, f := range svc.Formats() {
			fmt.Fprintf(out, "%-5s %-6s %s\n", f, f.Extension(), f.Description())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
