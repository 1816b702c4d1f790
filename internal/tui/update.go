package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// reserved is the number of lines taken by everything except the table.
const reserved = 14

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "s":
			m.spikesOnly = !m.spikesOnly
			m.table.SetRows(entryRows(m.report.Entries, m.spikesOnly))
			m.table.GotoTop()
			return m, nil
		}

	case tea.WindowSizeMsg:
		h := msg.Height - reserved
		if h < 3 {
			h = 3
		}
		m.height = h
		m.table.SetHeight(h)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}
