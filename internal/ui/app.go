package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reviewdesk/internal/api"
	"github.com/five82/reviewdesk/internal/logtail"
	"github.com/five82/reviewdesk/internal/prefs"
	"github.com/five82/reviewdesk/internal/state"
	"github.com/five82/reviewdesk/internal/syncer"
)

// View represents the current active view.
type View int

const (
	ViewProducts View = iota
	ViewDetail
	ViewModeration
	ViewActivity
)

// detailPane selects which list of the detail view the cursor is in.
type detailPane int

const (
	paneReviews detailPane = iota
	paneComments
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Syncer     *syncer.Syncer
	Store      *state.Store
	ThemeName  string
	LastSearch string
	PrefsPath  string
	LogPath    string

	// RecentSearches are offered as completions in the search prompt.
	RecentSearches []string

	// Changes signals store updates; Run wires it to the store.
	Changes <-chan struct{}
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	syncer    *syncer.Syncer
	store     *state.Store
	changes   <-chan struct{}
	prefsPath string
	logPath   string
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	prompt      *prompt
	status      statusMsg

	// Data state
	snapshot state.Snapshot

	// Products state
	selectedProduct int
	searchQuery     string
	recentSearches  []string

	// Detail state
	openProductID    string
	detailFocus      detailPane
	selectedReview   int
	selectedComment  int
	reviewVotes      map[string]api.VoteInfo
	commentVotes     map[string]api.VoteInfo
	commentUserVotes map[string]api.VoteType
	detailViewport   viewport.Model

	// Moderation state
	flags        []api.Flag
	selectedFlag int
	modContent   *api.ModerationContent

	// Activity state
	logEntries []logtail.Entry
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:              ctx,
		syncer:           opts.Syncer,
		store:            opts.Store,
		changes:          opts.Changes,
		prefsPath:        prefsPath,
		logPath:          opts.LogPath,
		keys:             DefaultKeyMap(),
		theme:            GetTheme(themeName),
		currentView:      ViewProducts,
		searchQuery:      strings.TrimSpace(opts.LastSearch),
		recentSearches:   opts.RecentSearches,
		reviewVotes:      make(map[string]api.VoteInfo),
		commentVotes:     make(map[string]api.VoteInfo),
		commentUserVotes: make(map[string]api.VoteType),
	}
	if opts.Store != nil {
		m.snapshot = opts.Store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if cmd := waitForChange(m.ctx, m.store, m.changes); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.searchQuery != "" && m.syncer != nil {
		cmds = append(cmds, m.searchCmd(m.searchQuery))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(msg.Width, m.contentHeight())
		}
		m.ready = true
		m.detailViewport.Width = msg.Width
		m.detailViewport.Height = m.contentHeight()
		m.syncDetailViewport()
		return m, nil

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.clampSelections()
		m.syncDetailViewport()
		return m, waitForChange(m.ctx, m.store, m.changes)

	case statusMsg:
		m.status = msg
		return m, nil

	case detailLoadedMsg:
		for id, info := range msg.reviewVotes {
			m.reviewVotes[id] = info
		}
		m.status = msg.status
		m.syncDetailViewport()
		return m, nil

	case voteMsg:
		m.applyVote(msg)
		m.syncDetailViewport()
		return m, nil

	case flagsMsg:
		m.flags = []api.Flag(msg)
		m.selectedFlag = clamp(m.selectedFlag, len(m.flags))
		m.modContent = nil
		return m, nil

	case logsMsg:
		m.logEntries = []logtail.Entry(msg)
		return m, nil

	case modContentMsg:
		m.modContent = msg.content
		if msg.content == nil {
			m.status = statusMsg{text: "Content unavailable", err: true}
		}
		return m, nil
	}

	if m.prompt != nil {
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.prompt != nil {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.syncDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		return m, m.logoutCmd()

	case key.Matches(msg, m.keys.ViewProducts):
		m.currentView = ViewProducts
		return m, nil

	case key.Matches(msg, m.keys.ViewModeration):
		if !m.snapshot.Auth.IsModerator {
			m.status = statusMsg{text: "Moderator access required", err: true}
			return m, nil
		}
		m.currentView = ViewModeration
		return m, m.loadFlagsCmd()

	case key.Matches(msg, m.keys.ViewActivity):
		m.currentView = ViewActivity
		return m, loadLogsCmd(m.logPath)

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewProducts
		return m, nil
	}

	switch m.currentView {
	case ViewProducts:
		return m.handleProductsKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewModeration:
		return m.handleModerationKey(msg)
	case ViewActivity:
		if key.Matches(msg, m.keys.Refresh) {
			return m, loadLogsCmd(m.logPath)
		}
	}
	return m, nil
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + session + status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	if m.prompt != nil {
		b.WriteString("\n")
		b.WriteString(m.renderPrompt())
	}
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewProducts:
		return m.renderProducts()
	case ViewDetail:
		return m.detailViewport.View()
	case ViewModeration:
		return m.renderModeration()
	case ViewActivity:
		return m.renderActivity()
	default:
		return ""
	}
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.Logo.Render("reviewdesk")}

	auth := m.snapshot.Auth
	switch {
	case auth.IsAuthenticated && auth.User != nil:
		parts = append(parts, styles.Text.Render(auth.User.DisplayName()))
	case auth.IsAuthenticated:
		parts = append(parts, styles.Text.Render("signed in"))
	default:
		parts = append(parts, styles.MutedText.Render("anonymous"))
	}
	if auth.IsModerator {
		parts = append(parts, styles.Badge("moderator", "MOD"))
	}

	parts = append(parts, styles.MutedText.Render(m.viewLabel()))

	if m.status.text != "" {
		if m.status.err {
			parts = append(parts, styles.DangerText.Render(truncate(m.status.text, 60)))
		} else {
			parts = append(parts, styles.SuccessText.Render(truncate(m.status.text, 60)))
		}
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	var hints []key.Binding
	switch m.currentView {
	case ViewProducts:
		hints = []key.Binding{m.keys.Open, m.keys.Search, m.keys.LoadMore, m.keys.Refresh, m.keys.ViewModeration}
	case ViewDetail:
		hints = []key.Binding{m.keys.Focus, m.keys.VoteUp, m.keys.VoteDown, m.keys.Flag, m.keys.Comment, m.keys.Reply}
		if m.snapshot.Auth.IsModerator {
			hints = append(hints, m.keys.Remove, m.keys.Redact)
		}
		hints = append(hints, m.keys.Escape)
	case ViewModeration:
		hints = []key.Binding{m.keys.Open, m.keys.Dismiss, m.keys.RemoveContent, m.keys.RedactContent, m.keys.Resolve, m.keys.Escape}
	case ViewActivity:
		hints = []key.Binding{m.keys.Refresh, m.keys.Escape}
	}
	hints = append(hints, m.keys.Help, m.keys.Quit)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, styles.AccentText.Render("<"+h.Help().Key+">")+" "+styles.MutedText.Render(h.Help().Desc))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) viewLabel() string {
	switch m.currentView {
	case ViewDetail:
		return "Product"
	case ViewModeration:
		return "Moderation"
	case ViewActivity:
		return "Activity"
	default:
		if m.searchQuery != "" {
			return "Products /" + m.searchQuery
		}
		return "Products"
	}
}

// contentHeight is the space left under the two header lines and the
// prompt line.
func (m Model) contentHeight() int {
	h := m.height - 3
	if h < 1 {
		return 1
	}
	return h
}

func (m *Model) clampSelections() {
	m.selectedProduct = clamp(m.selectedProduct, len(m.snapshot.Products))
	m.selectedReview = clamp(m.selectedReview, len(m.currentReviews()))
	m.selectedComment = clamp(m.selectedComment, len(flattenThreads(syncer.BuildThreads(m.snapshot.Comments))))
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:          m.theme.Name,
		LastSearch:     m.searchQuery,
		RecentSearches: m.recentSearches,
	})
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Store != nil && opts.Changes == nil {
		changes, unsubscribe := watchStore(opts.Store)
		defer unsubscribe()
		opts.Changes = changes
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
