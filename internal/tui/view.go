package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ccollicutt/fivegscan/pkg/analyzer"
	"github.com/ccollicutt/fivegscan/pkg/output"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Margin(0, 1)

	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB000"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

func (m ReportModel) View() string {
	title := titleStyle.Render(fmt.Sprintf("5G Log Analyzer - %s", m.report.Metadata.Source))

	s := m.report.Summary
	metrics := fmt.Sprintf("Lines: %d\nTotal Packets: %d\nErrors: %d\nWarnings: %d",
		s.TotalLines, s.PacketCount, s.ErrorCount, s.WarningCount)
	metricsBox := infoStyle.Render(metrics)

	var statsBox string
	if st := m.report.Stats; st != nil {
		statsBox = infoStyle.Render(fmt.Sprintf("Average RTT: %s ms\nMax RTT: %d ms\nMin RTT: %d ms\nSpikes (>= %d ms): %d",
			st.FormatAverage(), st.Max, st.Min, analyzer.SpikeThresholdMs, st.Spikes))
	} else {
		statsBox = infoStyle.Render(noticeStyle.Render(output.NoDataNotice))
	}

	row1 := lipgloss.JoinHorizontal(lipgloss.Top, metricsBox, statsBox)

	var body string
	if len(m.report.Entries) == 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, title, row1)
	} else {
		label := "Parsed Log Table"
		if m.spikesOnly {
			label += " (spikes only)"
		}
		tableBox := infoStyle.Render(label + "\n" + m.table.View())
		body = lipgloss.JoinVertical(lipgloss.Left, title, row1, tableBox)
	}

	return body + "\n" + helpStyle.Render("↑/↓ scroll • s toggle spikes • q quit")
}
