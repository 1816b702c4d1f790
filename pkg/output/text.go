package output

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ccollicutt/fivegscan/pkg/analyzer"
)

// TextFormatter formats reports as styled, human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// styles are bound to a renderer so colour support follows the destination writer.
type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	metric  lipgloss.Style
	notice  lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	spike   lipgloss.Style
	border  lipgloss.Style
	faint   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		section: r.NewStyle().Bold(true).Underline(true),
		metric: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Margin(0, 1, 0, 0),
		notice: r.NewStyle().Foreground(lipgloss.Color("#FFB000")),
		header: r.NewStyle().Bold(true).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
		spike: r.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFCCCC")),
		border: r.NewStyle().Foreground(lipgloss.Color("240")),
		faint:  r.NewStyle().Faint(true),
	}
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	s := report.Summary
	_, err := fmt.Fprintf(w, "fivegscan: %d lines, %d packets, %d errors, %d warnings, %d measurements, %d spikes\n",
		s.TotalLines, s.PacketCount, s.ErrorCount, s.WarningCount, s.MeasurementCount, s.SpikeCount)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	st := newStyles(w)
	var b strings.Builder

	b.WriteString(st.title.Render("5G Log Analysis Report"))
	b.WriteString("\n\n")
	if report.Metadata.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", report.Metadata.Source)
	}
	fmt.Fprintf(&b, "Loaded %d log lines.\n\n", report.Summary.TotalLines)

	if f.opts.Verbose && len(report.Metadata.Preview) > 0 {
		b.WriteString(st.section.Render("Raw Log Preview"))
		b.WriteString("\n")
		for _, line := range report.Metadata.Preview {
			b.WriteString(st.faint.Render("  " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(st.section.Render("Log Metrics"))
	b.WriteString("\n")
	b.WriteString(renderMetrics(st, report.Summary))
	b.WriteString("\n\n")

	if report.Stats != nil {
		b.WriteString(st.section.Render("Latency Stats"))
		b.WriteString("\n")
		b.WriteString(renderStats(report.Stats))
		b.WriteString("\n")
	} else {
		b.WriteString(st.notice.Render(NoDataNotice))
		b.WriteString("\n\n")
	}

	if len(report.Entries) > 0 {
		b.WriteString(st.section.Render("Parsed Log Table"))
		b.WriteString("\n")
		b.WriteString(renderEntries(st, report.Entries))
		b.WriteString("\n\n")
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "Summary: %d lines, %d measurements, %d spikes, %d errors\n",
		report.Summary.TotalLines,
		report.Summary.MeasurementCount,
		report.Summary.SpikeCount,
		report.Summary.ErrorCount)

	if f.opts.Verbose {
		fmt.Fprintf(&b, "Run ID: %s\n", report.Metadata.RunID)
		fmt.Fprintf(&b, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderMetrics(st styles, s Summary) string {
	boxes := []string{
		st.metric.Render(fmt.Sprintf("Total Packets\n%d", s.PacketCount)),
		st.metric.Render(fmt.Sprintf("Errors\n%d", s.ErrorCount)),
		st.metric.Render(fmt.Sprintf("Warnings\n%d", s.WarningCount)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func renderStats(stats *analyzer.LatencyStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Average RTT: %s ms\n", stats.FormatAverage())
	fmt.Fprintf(&b, "  Max RTT: %d ms\n", stats.Max)
	fmt.Fprintf(&b, "  Min RTT: %d ms\n", stats.Min)
	fmt.Fprintf(&b, "  Spikes (>= %d ms): %d\n", analyzer.SpikeThresholdMs, stats.Spikes)
	return b.String()
}

func renderEntries(st styles, entries []analyzer.LogEntry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		Headers(CSVHeader...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return rowStyle(st, entries, row)
		})

	for _, e := range entries {
		t.Row(e.Timestamp, strconv.Itoa(e.RTTMs), string(e.Category))
	}

	return t.Render()
}

// rowStyle highlights spike rows; spike status is derived from the row's RTT.
func rowStyle(st styles, entries []analyzer.LogEntry, row int) lipgloss.Style {
	switch {
	case row == table.HeaderRow:
		return st.header
	case row >= 0 && row < len(entries) && entries[row].IsSpike():
		return st.spike
	default:
		return st.cell
	}
}
