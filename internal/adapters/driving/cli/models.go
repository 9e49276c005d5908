package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var modelsJSON bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect model configuration",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the model configured for each content type",
	Args:  cobra.NoArgs,
	RunE:  runModelsList,
}

func init() {
	modelsListCmd.Flags().BoolVar(&modelsJSON, "json", false, "output models as JSON")
	modelsCmd.AddCommand(modelsListCmd)
	rootCmd.AddCommand(modelsCmd)
}

func runModelsList(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Models == nil {
		return errors.New("model registry not configured")
	}

	configs := services.Models.Configs()
	if useJSON(cmd, modelsJSON) {
		return printJSON(cmd, configs)
	}

	if len(configs) == 0 {
		cmd.Println("No models configured.")
		return nil
	}

	table := newTable(cmd.OutOrStdout(), "Type", "Name", "Mode", "Location")
	for _, cfg := range configs {
		mode, location := "local", cfg.Settings.ModelPath
		if cfg.Settings.IsCloud() {
			mode, location = "cloud", cfg.Settings.Endpoint
		}
		table.Append([]string{cfg.ContentType.String(), cfg.Name, mode, location})
	}
	table.Render()
	return nil
}
