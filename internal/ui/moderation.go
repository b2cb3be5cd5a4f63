package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reviewdesk/internal/api"
)

// handleModerationKey processes keyboard input for the flag queue.
func (m Model) handleModerationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Refresh) {
		return m, m.loadFlagsCmd()
	}

	count := len(m.flags)
	if count == 0 {
		return m, nil
	}
	flag := m.flags[clamp(m.selectedFlag, count)]

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedFlag < count-1 {
			m.selectedFlag++
			m.modContent = nil
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedFlag > 0 {
			m.selectedFlag--
			m.modContent = nil
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedFlag = 0
		m.modContent = nil
	case key.Matches(msg, m.keys.Bottom):
		m.selectedFlag = count - 1
		m.modContent = nil
	case key.Matches(msg, m.keys.Open):
		return m, m.loadContentCmd(flag)
	case key.Matches(msg, m.keys.Resolve):
		return m, m.resolveCmd(string(flag.ID), "", "")
	case key.Matches(msg, m.keys.Dismiss):
		return m, m.resolveCmd(string(flag.ID), api.ActionDismiss, "")
	case key.Matches(msg, m.keys.RemoveContent):
		return m, m.resolveCmd(string(flag.ID), api.ActionRemoveContent, "")
	case key.Matches(msg, m.keys.RedactContent):
		initial := ""
		if m.modContent != nil {
			initial = m.modContent.Content
		}
		m.prompt = newPrompt(promptRedactFlag, "Redacted text", string(flag.ID), initial)
		return m, m.prompt.focus()
	}
	return m, nil
}

// renderModeration renders the flag list above the selected flag's content.
func (m Model) renderModeration() string {
	styles := m.theme.Styles()

	if !m.snapshot.Auth.IsModerator {
		return styles.DangerText.Render("Moderator access required")
	}
	if len(m.flags) == 0 {
		return styles.MutedText.Render("No open flags")
	}

	listHeight := m.contentHeight() / 2
	if listHeight < 3 {
		listHeight = 3
	}

	var b strings.Builder
	start := 0
	if m.selectedFlag >= listHeight {
		start = m.selectedFlag - listHeight + 1
	}
	end := start + listHeight
	if end > len(m.flags) {
		end = len(m.flags)
	}
	for i := start; i < end; i++ {
		f := m.flags[i]
		line := fmt.Sprintf("  %s %s %s %s",
			padRight(truncate(string(f.ContentID), 14), 14),
			padRight(truncate(f.Reason, 30), 30),
			padRight(truncate(f.ReportedBy, 24), 24),
			f.Status)
		badge := styles.Badge(f.ContentType, padRight(strings.ToUpper(f.ContentType), 7))
		if i == m.selectedFlag {
			b.WriteString(badge + styles.Selected.Render(line))
		} else {
			b.WriteString(badge + styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderModerationContent())
	return b.String()
}

func (m Model) renderModerationContent() string {
	styles := m.theme.Styles()
	width := m.width - 4
	if width < 20 {
		width = 20
	}

	c := m.modContent
	if c == nil {
		return styles.Panel.Width(width).Render(styles.FaintText.Render("Press enter to load the flagged content"))
	}

	head := []string{styles.Badge(c.ContentType, strings.ToUpper(c.ContentType)), styles.Text.Render(c.Author)}
	if c.ProductID != "" {
		head = append(head, styles.MutedText.Render("product "+string(c.ProductID)))
	}
	if c.IsRemoved {
		head = append(head, styles.Badge("removed", "REMOVED"))
	}
	text := c.Content
	if c.RedactedContent != nil && *c.RedactedContent != "" {
		head = append(head, styles.Badge("redacted", "REDACTED"))
		text = *c.RedactedContent + "\n" + styles.FaintText.Render("original: "+c.Content)
	}

	body := strings.Join(head, " ") + "\n\n" + lipgloss.NewStyle().Width(width-4).Render(text)
	return styles.PanelFocus.Width(width).Render(body)
}
