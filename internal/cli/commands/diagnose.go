package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/fivegscan/pkg/analyzer"
	"github.com/ccollicutt/fivegscan/pkg/config"
	"github.com/ccollicutt/fivegscan/pkg/parser"
)

// maxNearMisses caps how many unmatched RTT lines are echoed back.
const maxNearMisses = 3

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	ConfigPath string
	Verbose    bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <log-file>",
		Short: "Diagnose why a log yields no metrics",
		Long: `Diagnose common problems with a log file before analysis.

This command checks:
- Configuration file, when one is given
- Log file existence and size limit
- UTF-8 decoding
- Lines matching "[HH:MM:SS] ... RTT=<n>ms"
- Category spread (Error, Warning, Packet, Info)

Example:
  fivegscan diagnose harness.log
  fivegscan diagnose -v -c fivegscan.yaml harness.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(commandContext(cmd), args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (optional)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, logPath string, opts *DiagnoseOptions, w io.Writer) error {
	results := []DiagnosticResult{}

	cfg, result := checkConfig(ctx, opts.ConfigPath)
	if result.Status != "ok" || opts.Verbose {
		results = append(results, result)
	}
	if cfg == nil {
		printDiagnostics(w, results, opts)
		return nil
	}

	result = checkLogFile(logPath, cfg.MaxFileSize)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	doc, result := checkEncoding(ctx, logPath, cfg.MaxFileSize)
	results = append(results, result)
	if doc == nil {
		printDiagnostics(w, results, opts)
		return nil
	}

	lines := doc.Contents()
	results = append(results, checkPattern(lines, opts))
	results = append(results, checkCategories(analyzer.AnalyzeLines(lines)))
	results = append(results, checkWebhooks(cfg, opts)...)

	printDiagnostics(w, results, opts)
	return nil
}

func checkConfig(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Configuration",
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to load config: %v", err)
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		return nil, result
	}

	result.Status = "ok"
	if path == "" {
		result.Message = "No config file given, using defaults"
	} else {
		result.Message = fmt.Sprintf("Loaded %s", path)
	}
	result.Details = []string{
		fmt.Sprintf("Preview lines: %d", cfg.PreviewLines),
		fmt.Sprintf("Max file size: %d bytes", cfg.MaxFileSize),
		fmt.Sprintf("Chart: %dx%d %s", cfg.Chart.Width, cfg.Chart.Height, cfg.Chart.Format),
	}
	return cfg, result
}

func checkLogFile(path string, maxSize int64) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Log File",
	}

	if path == parser.StdinName {
		result.Status = "ok"
		result.Message = "Reading from standard input"
		return result
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		result.Status = "error"
		result.Message = fmt.Sprintf("File does not exist: %s", path)
		result.Suggests = []string{"Check if the log file path is correct"}
	case err != nil:
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access file: %v", err)
		result.Suggests = []string{"Check file permissions"}
	case info.IsDir():
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		result.Suggests = []string{"Only one log file is analysed per run"}
	case maxSize > 0 && info.Size() > maxSize:
		result.Status = "error"
		result.Message = fmt.Sprintf("File is %d bytes, limit is %d", info.Size(), maxSize)
		result.Suggests = []string{
			fmt.Sprintf("Raise max_file_size in the config or set %s", config.EnvMaxFileSize),
		}
	case info.Size() == 0:
		result.Status = "warning"
		result.Message = "File is empty (0 bytes)"
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	}

	return result
}

func checkEncoding(ctx context.Context, path string, maxSize int64) (*parser.Document, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Encoding",
	}

	doc, err := parser.ReadFile(ctx, path, maxSize)
	if err != nil {
		result.Status = "error"
		var decodeErr *parser.DecodeError
		if errors.As(err, &decodeErr) {
			result.Message = "File is not valid UTF-8"
			result.Details = []string{
				fmt.Sprintf("First invalid byte on line %d (offset %d)", decodeErr.Line, decodeErr.Offset),
			}
			result.Suggests = []string{
				"Re-export the log as UTF-8, e.g. iconv -f latin1 -t utf-8 in.log > out.log",
			}
		} else {
			result.Message = fmt.Sprintf("Cannot read file: %v", err)
		}
		return nil, result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Valid UTF-8, %d line(s)", len(doc.Lines))
	return doc, result
}

func checkPattern(lines []string, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "RTT Pattern",
	}

	matchCount := 0
	var sampleMatch string
	var nearMisses []string
	for _, line := range lines {
		if _, ok := analyzer.Extract(line); ok {
			matchCount++
			if sampleMatch == "" {
				sampleMatch = line
			}
			continue
		}
		if strings.Contains(line, "RTT=") && len(nearMisses) < maxNearMisses {
			nearMisses = append(nearMisses, truncate(line, 80))
		}
	}

	if matchCount == 0 {
		result.Status = "warning"
		result.Message = "No lines carry an RTT measurement"
		result.Details = nearMisses
		result.Suggests = []string{
			"Measurement lines look like: [12:00:01] Packet sent RTT=42ms",
			"Timestamps need brackets and RTT needs an integer followed by ms",
		}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("%d of %d line(s) carry an RTT measurement", matchCount, len(lines))
	if opts.Verbose {
		result.Details = append(result.Details, fmt.Sprintf("Sample: %s", truncate(sampleMatch, 80)))
	}
	for _, m := range nearMisses {
		result.Details = append(result.Details, fmt.Sprintf("Unmatched: %s", m))
	}
	return result
}

func checkCategories(summary *analyzer.RunSummary) DiagnosticResult {
	result := DiagnosticResult{
		Check:  "Categories",
		Status: "ok",
		Message: fmt.Sprintf("Error: %d, Warning: %d, Packet: %d, Info: %d",
			summary.ErrorCount, summary.WarningCount, summary.PacketCount, summary.InfoCount),
	}

	if summary.TotalLines > 0 && summary.InfoCount == summary.TotalLines {
		result.Status = "warning"
		result.Message = fmt.Sprintf("All %d line(s) are Info", summary.TotalLines)
		result.Suggests = []string{
			`Categories match the case-sensitive words "Error", "Warning" and "Packet"`,
		}
	}

	if spikes := len(summary.Spikes()); spikes > 0 {
		result.Details = append(result.Details,
			fmt.Sprintf("%d spike(s) at or above %dms", spikes, analyzer.SpikeThresholdMs))
	}

	return result
}

func checkWebhooks(cfg *config.Config, opts *DiagnoseOptions) []DiagnosticResult {
	results := []DiagnosticResult{}

	for _, wh := range cfg.Webhooks {
		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		result := DiagnosticResult{
			Check:   fmt.Sprintf("Webhook: %s", name),
			Status:  "ok",
			Message: fmt.Sprintf("Trigger: %s", wh.Trigger),
		}

		// Check if token looks like an unexpanded env var
		if strings.HasPrefix(wh.Token, "$") {
			result.Status = "warning"
			result.Message = "Token appears to be an unresolved env var"
			result.Details = []string{wh.Token}
		}

		results = append(results, result)

		if opts.Verbose {
			conn := checkWebhookConnectivity(wh)
			conn.Check = fmt.Sprintf("Webhook Connectivity: %s", name)
			results = append(results, conn)
		}
	}

	return results
}

func checkWebhookConnectivity(wh config.WebhookConfig) DiagnosticResult {
	result := DiagnosticResult{}

	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	req, err := http.NewRequest(http.MethodHead, wh.URL, nil)
	if err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Cannot create request: %v", err)
		return result
	}

	if wh.Token != "" {
		req.Header.Set("Authorization", "Bearer "+wh.Token)
	}

	resp, err := client.Do(req)
	if err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Cannot connect: %v", err)
		result.Suggests = []string{"Check the webhook URL and network connectivity"}
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.Status = "ok"
		result.Message = fmt.Sprintf("Reachable (status %d)", resp.StatusCode)
	} else {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Reachable but returned status %d", resp.StatusCode)
		result.Suggests = []string{"The endpoint may only accept POST"}
	}

	return result
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	r := lipgloss.NewRenderer(w)
	pass := r.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	warn := r.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	fail := r.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	fmt.Fprintln(w, "=== fivegscan Log Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, res := range results {
		var icon string
		switch res.Status {
		case "ok":
			icon = pass.Render("PASS")
			okCount++
		case "warning":
			icon = warn.Render("WARN")
			warnCount++
		case "error":
			icon = fail.Render("FAIL")
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, res.Check)
		fmt.Fprintf(w, "    %s\n", res.Message)

		if opts.Verbose || res.Status != "ok" {
			for _, d := range res.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range res.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	switch {
	case errCount > 0:
		fmt.Fprintln(w, "\nFix the errors above before running analysis.")
	case warnCount > 0:
		fmt.Fprintln(w, "\nLog is readable but analysis may report no latency data.")
	default:
		fmt.Fprintln(w, "\nLog looks good!")
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
