package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/fivegscan/internal/tui"
	"github.com/ccollicutt/fivegscan/pkg/config"
)

// runViewer starts the interactive viewer. Replaced in tests.
var runViewer = tui.Run

// NewViewCommand creates the view command.
func NewViewCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "view <log-file>",
		Short: "Browse an analysed log interactively",
		Long: `Analyse a log file and open an interactive terminal view of the
metrics, latency statistics and parsed entries.

Keys:
  s           toggle spikes only
  up/down     scroll entries
  q, esc      quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			cfg, err := config.Load(ctx, configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			report, err := analyzeFile(ctx, cfg, args[0])
			if err != nil {
				return err
			}

			if err := runViewer(report, tea.WithAltScreen(), tea.WithContext(ctx)); err != nil {
				return fmt.Errorf("running viewer: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file (optional)")

	return cmd
}
