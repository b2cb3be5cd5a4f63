package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reviewdesk/internal/api"
	"github.com/five82/reviewdesk/internal/prefs"
)

type promptKind int

const (
	promptSearch promptKind = iota
	promptComment
	promptReply
	promptFlagReview
	promptFlagComment
	promptRedactComment
	promptRedactFlag
)

// prompt is the single-line input shown under the content area.
type prompt struct {
	kind   promptKind
	label  string
	target string // review, comment or flag id the input applies to
	input  textinput.Model
}

func newPrompt(kind promptKind, label, target, initial string) *prompt {
	ti := textinput.New()
	ti.Prompt = label + ": "
	ti.CharLimit = 2000
	ti.SetValue(initial)
	ti.CursorEnd()
	return &prompt{kind: kind, label: label, target: target, input: ti}
}

func (p *prompt) focus() tea.Cmd {
	return p.input.Focus()
}

// handlePromptKey routes keys to the active prompt.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.prompt = nil
		return m, nil
	case tea.KeyEnter:
		p := m.prompt
		m.prompt = nil
		return m.submitPrompt(p.kind, p.target, strings.TrimSpace(p.input.Value()))
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

// submitPrompt turns a confirmed prompt into the matching syncer command.
func (m Model) submitPrompt(kind promptKind, target, value string) (tea.Model, tea.Cmd) {
	if kind == promptSearch {
		m.searchQuery = value
		m.selectedProduct = 0
		m.recentSearches = prefs.Remember(m.recentSearches, value)
		m.savePrefs()
		if value == "" {
			return m, m.refreshProductsCmd()
		}
		return m, m.searchCmd(value)
	}

	if value == "" {
		m.status = statusMsg{text: "Nothing entered", err: true}
		return m, nil
	}

	switch kind {
	case promptComment:
		return m, m.addCommentCmd(m.openProductID, value, nil)
	case promptReply:
		parent := target
		return m, m.addCommentCmd(m.openProductID, value, &parent)
	case promptFlagReview:
		return m, m.flagReviewCmd(target, value)
	case promptFlagComment:
		return m, m.flagCommentCmd(target, value)
	case promptRedactComment:
		return m, m.redactCommentCmd(target, value, m.openProductID)
	case promptRedactFlag:
		return m, m.resolveCmd(target, api.ActionRedactContent, value)
	}
	return m, nil
}

func (m Model) renderPrompt() string {
	styles := m.theme.Styles()
	return styles.Footer.Width(m.width).Render(m.prompt.input.View())
}
