// Package tui provides an interactive terminal viewer for an analysis report.
package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ccollicutt/fivegscan/pkg/analyzer"
	"github.com/ccollicutt/fivegscan/pkg/output"
)

const (
	defaultTableHeight = 12
	spikeMarker        = "SPIKE"
)

// ReportModel browses the retained entries of one report.
type ReportModel struct {
	report     *output.Report
	table      table.Model
	spikesOnly bool
	height     int
}

// NewReportModel creates the viewer model for a report.
func NewReportModel(report *output.Report) ReportModel {
	columns := []table.Column{
		{Title: "Timestamp", Width: 12},
		{Title: "RTT (ms)", Width: 10},
		{Title: "Type", Width: 9},
		{Title: "", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(entryRows(report.Entries, false)),
		table.WithFocused(true),
		table.WithHeight(defaultTableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ReportModel{
		report: report,
		table:  t,
		height: defaultTableHeight,
	}
}

// Init implements tea.Model. The report is static, so no command is needed.
func (m ReportModel) Init() tea.Cmd {
	return nil
}

// entryRows converts entries to table rows, marking spikes.
func entryRows(entries []analyzer.LogEntry, spikesOnly bool) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		marker := ""
		if e.IsSpike() {
			marker = spikeMarker
		} else if spikesOnly {
			continue
		}
		rows = append(rows, table.Row{e.Timestamp, strconv.Itoa(e.RTTMs), string(e.Category), marker})
	}
	return rows
}

// Run starts the interactive viewer and blocks until the user quits.
func Run(report *output.Report, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(NewReportModel(report), opts...)
	_, err := p.Run()
	return err
}
