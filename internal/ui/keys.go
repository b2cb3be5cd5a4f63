package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding
	Refresh    key.Binding
	Logout     key.Binding

	// View switching
	ViewProducts   key.Binding
	ViewModeration key.Binding
	ViewActivity   key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Open     key.Binding
	Focus    key.Binding

	// Products
	Search   key.Binding
	LoadMore key.Binding

	// Detail
	VoteUp   key.Binding
	VoteDown key.Binding
	Flag     key.Binding
	Comment  key.Binding
	Reply    key.Binding
	Remove   key.Binding
	Redact   key.Binding

	// Moderation
	Dismiss       key.Binding
	RemoveContent key.Binding
	RedactContent key.Binding
	Resolve       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Log out"),
		),

		ViewProducts: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Products"),
		),
		ViewModeration: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Moderation"),
		),
		ViewActivity: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Activity log"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "Scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("ctrl+d", "Scroll down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Reviews/comments"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Load more"),
		),

		VoteUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Vote up"),
		),
		VoteDown: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Vote down"),
		),
		Flag: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Flag"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Comment"),
		),
		Reply: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reply"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Remove comment"),
		),
		Redact: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Redact comment"),
		),

		Dismiss: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Dismiss flag"),
		),
		RemoveContent: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Remove content"),
		),
		RedactContent: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Redact content"),
		),
		Resolve: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Resolve"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewProducts, k.ViewModeration, k.ViewActivity, k.Escape, k.Refresh},
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown, k.Open},
		{k.Search, k.LoadMore},
		{k.Focus, k.VoteUp, k.VoteDown, k.Flag, k.Comment, k.Reply, k.Remove, k.Redact},
		{k.Dismiss, k.RemoveContent, k.RedactContent, k.Resolve},
		{k.CycleTheme, k.Logout, k.Help, k.Quit},
	}
}
