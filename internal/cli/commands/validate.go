package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fivegscan/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a fivegscan configuration file without running analysis.

Checks:
  - YAML syntax
  - Numeric limits (preview_lines, max_file_size, chart size)
  - Chart format (png or svg)
  - Export paths
  - Webhook URLs and triggers`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := commandContext(cmd)
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Preview lines: %d\n", cfg.PreviewLines)
	fmt.Fprintf(w, "  Max file size: %d bytes\n", cfg.MaxFileSize)
	fmt.Fprintf(w, "  Chart:         %dx%d %s\n", cfg.Chart.Width, cfg.Chart.Height, cfg.Chart.Format)

	if cfg.Export.CSVPath != "" {
		fmt.Fprintf(w, "  CSV export:    %s\n", cfg.Export.CSVPath)
	}
	if cfg.Export.ChartPath != "" {
		fmt.Fprintf(w, "  Chart export:  %s\n", cfg.Export.ChartPath)
	}

	if len(cfg.Webhooks) > 0 {
		fmt.Fprintf(w, "\nWebhooks:\n")
		for i, wh := range cfg.Webhooks {
			name := wh.Name
			if name == "" {
				name = wh.URL
			}
			fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, wh.Trigger, name)
		}
	}

	return nil
}
