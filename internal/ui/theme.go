package ui

import "github.com/charmbracelet/lipgloss"

// Theme is a named color palette. Colors are hex strings.
type Theme struct {
	Name string

	Background string
	Surface    string
	Selection  string
	OnSelect   string
	Border     string
	Focus      string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// BadgeColors maps a badge name (up, down, flagged, ...) to its fill.
	BadgeColors map[string]string
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header     lipgloss.Style
	Footer     lipgloss.Style
	Logo       lipgloss.Style
	Selected   lipgloss.Style
	Panel      lipgloss.Style
	PanelFocus lipgloss.Style

	badge  lipgloss.Style
	badges map[string]string
	muted  string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func bar(t Theme, color string) lipgloss.Style {
	return fg(color).Background(lipgloss.Color(t.Surface)).Padding(0, 1)
}

func panel(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1)
}

// Styles builds the styles for t.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),

		Header:     bar(t, t.Text),
		Footer:     bar(t, t.Muted),
		Logo:       fg(t.Accent).Bold(true),
		Selected:   fg(t.OnSelect).Background(lipgloss.Color(t.Selection)),
		Panel:      panel(t.Border),
		PanelFocus: panel(t.Focus),

		badge:  fg(t.Background).Padding(0, 1),
		badges: t.BadgeColors,
		muted:  t.Muted,
	}
}

// Badge renders label as a filled chip in the color registered for name,
// or the muted color when name is unknown.
func (s Styles) Badge(name, label string) string {
	color, ok := s.badges[name]
	if !ok || color == "" {
		color = s.muted
	}
	return s.badge.Background(lipgloss.Color(color)).Render(label)
}

// themeList is also the cycle order for NextTheme.
var themeList = []Theme{
	{
		Name:       "Dracula",
		Background: "#21222c",
		Surface:    "#282a36",
		Selection:  "#44475a",
		OnSelect:   "#f8f8f2",
		Border:     "#44475a",
		Focus:      "#bd93f9",
		Text:       "#f8f8f2",
		Muted:      "#6272a4",
		Faint:      "#4d5b86",
		Accent:     "#bd93f9",
		Success:    "#50fa7b",
		Warning:    "#f1fa8c",
		Danger:     "#ff5555",
		BadgeColors: map[string]string{
			"up": "#50fa7b", "down": "#ff79c6", "flagged": "#ffb86c", "removed": "#ff5555",
			"redacted": "#f1fa8c", "moderator": "#bd93f9", "review": "#8be9fd", "comment": "#6272a4",
		},
	},
	{
		Name:       "Gruvbox",
		Background: "#1d2021",
		Surface:    "#282828",
		Selection:  "#504945",
		OnSelect:   "#fbf1c7",
		Border:     "#665c54",
		Focus:      "#fabd2f",
		Text:       "#ebdbb2",
		Muted:      "#a89984",
		Faint:      "#7c6f64",
		Accent:     "#fabd2f",
		Success:    "#b8bb26",
		Warning:    "#fe8019",
		Danger:     "#fb4934",
		BadgeColors: map[string]string{
			"up": "#b8bb26", "down": "#d3869b", "flagged": "#fe8019", "removed": "#fb4934",
			"redacted": "#fabd2f", "moderator": "#83a598", "review": "#8ec07c", "comment": "#a89984",
		},
	},
	{
		Name:       "Nord",
		Background: "#242933",
		Surface:    "#2e3440",
		Selection:  "#434c5e",
		OnSelect:   "#eceff4",
		Border:     "#4c566a",
		Focus:      "#88c0d0",
		Text:       "#e5e9f0",
		Muted:      "#8f9bb3",
		Faint:      "#616e88",
		Accent:     "#88c0d0",
		Success:    "#a3be8c",
		Warning:    "#ebcb8b",
		Danger:     "#bf616a",
		BadgeColors: map[string]string{
			"up": "#a3be8c", "down": "#b48ead", "flagged": "#d08770", "removed": "#bf616a",
			"redacted": "#ebcb8b", "moderator": "#81a1c1", "review": "#8fbcbb", "comment": "#616e88",
		},
	},
}

// GetTheme returns the theme called name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range themeList {
		if t.Name == name {
			return t
		}
	}
	return themeList[0]
}

// NextTheme returns the theme after current, wrapping around.
func NextTheme(current string) string {
	for i, t := range themeList {
		if t.Name == current {
			return themeList[(i+1)%len(themeList)].Name
		}
	}
	return themeList[0].Name
}

// ThemeNames lists the themes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themeList))
	for i, t := range themeList {
		names[i] = t.Name
	}
	return names
}
