package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/footprint/internal/adapters/driven/config/file"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the resolved extraction parameters",
	Long: `Print the extraction parameters a run would use, as a TOML file that
can be edited and passed back with --params.

Missing or mistyped values are replaced by their defaults, so the output
shows exactly what the extractor will see.`,
	Args: cobra.NoArgs,
	RunE: runParams,
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}

func runParams(cmd *cobra.Command, _ []string) error {
	params, err := loadParameters()
	if err != nil {
		return err
	}

	svc, err := service()
	if err != nil {
		return err
	}

	data, err := file.Encode(svc.Resolve(params))
	if err != nil {
		return fmt.Errorf("encoding parameters: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
