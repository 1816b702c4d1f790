package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/fivegscan/pkg/config"
	"github.com/ccollicutt/fivegscan/pkg/parser"
)

// PreviewOptions holds options for the preview command.
type PreviewOptions struct {
	ConfigPath string
	Lines      int
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	opts := &PreviewOptions{}

	cmd := &cobra.Command{
		Use:   "preview <log-file>",
		Short: "Show the first lines of a log without analysing it",
		Long: `Print the first lines of a log file as decoded, with surrounding
whitespace removed, followed by the total line count.

The line count defaults to preview_lines from the config (20).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (optional)")
	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 0, "Number of lines to show (default from config)")

	return cmd
}

func runPreview(cmd *cobra.Command, path string, opts *PreviewOptions) error {
	ctx := commandContext(cmd)

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	n := cfg.PreviewLines
	if opts.Lines > 0 {
		n = opts.Lines
	}

	doc, err := parser.ReadFile(ctx, path, cfg.MaxFileSize)
	if err != nil {
		return fmt.Errorf("loading log: %w", err)
	}

	printPreview(cmd.OutOrStdout(), doc, n)
	return nil
}

func printPreview(w io.Writer, doc *parser.Document, n int) {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	lineNum := r.NewStyle().Foreground(lipgloss.Color("8"))
	loaded := r.NewStyle().Foreground(lipgloss.Color("10"))

	fmt.Fprintln(w, heading.Render(fmt.Sprintf("Raw Log Preview: %s", doc.Source)))
	for i, line := range doc.Preview(n) {
		fmt.Fprintf(w, "%s  %s\n", lineNum.Render(fmt.Sprintf("%4d", i+1)), line)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, loaded.Render(fmt.Sprintf("Loaded %d log lines.", len(doc.Lines))))
}
