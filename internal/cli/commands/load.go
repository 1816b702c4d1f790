package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fivegscan/pkg/analyzer"
	"github.com/ccollicutt/fivegscan/pkg/config"
	"github.com/ccollicutt/fivegscan/pkg/output"
	"github.com/ccollicutt/fivegscan/pkg/parser"
)

// NoFileProvidedPrompt is shown when a command that needs a log is run without one.
const NoFileProvidedPrompt = "Please provide a log file to continue."

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// analyzeFile reads one log and runs the classifier over it.
// The whole input is decoded before any line is classified, so a decode
// error never leaves a partial report behind.
func analyzeFile(ctx context.Context, cfg *config.Config, path string) (*output.Report, error) {
	start := time.Now()

	doc, err := parser.ReadFile(ctx, path, cfg.MaxFileSize)
	if err != nil {
		return nil, fmt.Errorf("loading log: %w", err)
	}

	source := doc.LineSource()
	defer source.Close()

	summary, err := analyzer.Analyze(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	return output.NewReport(summary, output.Metadata{
		Source:     doc.Source,
		Size:       doc.Size,
		AnalyzedAt: time.Now(),
		Duration:   time.Since(start),
		Preview:    doc.Preview(cfg.PreviewLines),
	}), nil
}
