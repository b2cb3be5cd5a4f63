package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reviewdesk/internal/logtail"
)

const activityTailLines = 500

type logsMsg []logtail.Entry

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logsMsg(nil)
		}
		lines, err := logtail.Read(path, activityTailLines)
		if err != nil {
			return statusMsg{text: err.Error(), err: true}
		}
		return logsMsg(logtail.ParseLines(lines))
	}
}

// renderActivity shows the newest log entries that fit, oldest first.
func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	if m.logPath == "" {
		return styles.MutedText.Render("Logging to a file is disabled")
	}
	if len(m.logEntries) == 0 {
		return styles.MutedText.Render("No log entries in " + m.logPath)
	}

	entries := m.logEntries
	if h := m.contentHeight(); len(entries) > h {
		entries = entries[len(entries)-h:]
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := truncate(logtail.Format(e), m.width)
		switch strings.ToLower(e.Level) {
		case "error", "fatal", "panic":
			line = styles.DangerText.Render(line)
		case "warn", "warning":
			line = styles.WarningText.Render(line)
		case "debug", "trace":
			line = styles.FaintText.Render(line)
		default:
			line = styles.Text.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
