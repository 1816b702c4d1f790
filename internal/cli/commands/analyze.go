package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fivegscan/pkg/analyzer"
	"github.com/ccollicutt/fivegscan/pkg/chart"
	"github.com/ccollicutt/fivegscan/pkg/config"
	"github.com/ccollicutt/fivegscan/pkg/output"
	"github.com/ccollicutt/fivegscan/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	ConfigPath string
	Output     string
	ChartPath  string
	CSVPath    string
	Verbose    bool
	Quiet      bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [log-file]",
		Short: "Analyze a 5G harness log for latency and errors",
		Long: `Analyze one 5G test harness log file.

Every line is counted as Error, Warning, Packet or Info. Lines shaped like
"[HH:MM:SS] ... RTT=<n>ms" also yield a latency sample. RTT values of 100ms
or more are reported as spikes.

Use "-" as the log file to read standard input.

Exit codes:
  0 - No spikes or error lines
  1 - Latency spikes or error lines found
  2 - Configuration or runtime error`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (optional)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|csv)")
	cmd.Flags().StringVar(&opts.ChartPath, "chart", "", "Write the latency chart to this path (.png or .svg)")
	cmd.Flags().StringVar(&opts.CSVPath, "csv", "", "Write the parsed entries as CSV to this path (a directory gets parsed_log.csv)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include the raw log preview and run metadata")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_issues", "When to fire webhook (on_issues|always|never)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), NoFileProvidedPrompt)
		return nil
	}

	if err := validateWebhookTrigger(opts.WebhookTrigger); err != nil {
		return err
	}

	ctx := commandContext(cmd)

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}

	report, err := analyzeFile(ctx, cfg, args[0])
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if err := writeExports(cfg, opts, report, cmd.ErrOrStderr()); err != nil {
		return err
	}

	// Send webhooks (errors logged but don't fail analysis)
	sendWebhooks(ctx, cfg, opts, report, cmd.ErrOrStderr())

	if report.HasIssues() {
		ExitCode = 1
	}

	return nil
}

func createFormatter(opts *AnalyzeOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	case "csv":
		return output.NewCSVFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json or csv)", opts.Output)
	}
}

// writeExports writes the CSV table and latency chart when a path is set on
// the command line or in the config. Flags win over config.
func writeExports(cfg *config.Config, opts *AnalyzeOptions, report *output.Report, stderr io.Writer) error {
	if path := firstNonEmpty(opts.CSVPath, cfg.Export.CSVPath); path != "" {
		path = csvExportPath(path)
		if err := writeFile(path, func(w io.Writer) error {
			return output.WriteCSV(w, report.Entries)
		}); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
		fmt.Fprintf(stderr, "CSV written to %s\n", path)
	}

	path := firstNonEmpty(opts.ChartPath, cfg.Export.ChartPath)
	if path == "" {
		return nil
	}

	if !report.HasData() {
		fmt.Fprintf(stderr, "Chart skipped: %s\n", output.NoDataNotice)
		return nil
	}

	chartOpts := chart.OptionsFromConfig(cfg.Chart)
	chartOpts.Format = chartFormatFor(path, cfg.Chart.Format)

	err := writeFile(path, func(w io.Writer) error {
		return chart.RenderLatency(w, report.Measurements, chartOpts)
	})
	if errors.Is(err, analyzer.ErrNoMeasurementData) {
		fmt.Fprintf(stderr, "Chart skipped: %s\n", output.NoDataNotice)
		return nil
	}
	if err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	fmt.Fprintf(stderr, "Chart written to %s\n", path)

	return nil
}

// csvExportPath places the default file name inside path when path is an
// existing directory.
func csvExportPath(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, config.DefaultCSVFileName)
	}
	return path
}

// chartFormatFor picks the encoding from the file extension, falling back to
// the configured format for other extensions.
func chartFormatFor(path string, fallback config.ChartFormat) config.ChartFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return config.ChartFormatSVG
	case ".png":
		return config.ChartFormatPNG
	default:
		return fallback
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path) // #nosec G304 -- user-provided export path is expected
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged to stderr but don't fail the analysis.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *AnalyzeOptions, report *output.Report, stderr io.Writer) {
	webhooks := collectWebhooks(cfg, opts)

	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasIssues()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(stderr, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(stderr, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with CLI webhook.
func collectWebhooks(cfg *config.Config, opts *AnalyzeOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)

	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnIssues
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// validateWebhookTrigger rejects --webhook-trigger values the config file
// would also reject. Empty means the default.
func validateWebhookTrigger(trigger string) error {
	switch config.WebhookTrigger(trigger) {
	case "", config.WebhookTriggerOnIssues, config.WebhookTriggerAlways, config.WebhookTriggerNever:
		return nil
	default:
		return fmt.Errorf("invalid --webhook-trigger %q (must be on_issues, always, or never)", trigger)
	}
}

// shouldFireWebhook determines if a webhook should fire based on trigger and issues.
func shouldFireWebhook(trigger config.WebhookTrigger, hasIssues bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasIssues
	}
}
