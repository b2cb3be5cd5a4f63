// Package prefs persists reviewdesk UI preferences in a small TOML file,
// ~/.config/reviewdesk/prefs.toml unless a path is given.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences that survive restarts.
type Prefs struct {
	Theme          string   `toml:"theme"`
	LastSearch     string   `toml:"last_search,omitempty"`
	RecentSearches []string `toml:"recent_searches,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/reviewdesk/prefs.toml"
	defaultTheme     = "Dracula"

	// MaxRecentSearches bounds RecentSearches.
	MaxRecentSearches = 10
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the preferences used before anything was saved.
func Default() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads preferences from path. A missing file is not an error. On any
// other failure the defaults are returned together with the error so the
// caller can report it and carry on.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), err
	}

	file, err := os.Open(resolved)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("open prefs: %w", err)
	}
	defer file.Close()

	var p Prefs
	if err := toml.NewDecoder(file).Decode(&p); err != nil {
		return Default(), fmt.Errorf("parse prefs %s: %w", resolved, err)
	}
	p.normalize()
	return p, nil
}

// Save writes p to path through a temporary file in the same directory.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	p.normalize()
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

// Remember puts term at the front of recent, dropping an older copy and
// anything past MaxRecentSearches. Blank terms leave recent unchanged.
func Remember(recent []string, term string) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return recent
	}
	out := make([]string, 0, len(recent)+1)
	out = append(out, term)
	for _, r := range recent {
		if !strings.EqualFold(r, term) {
			out = append(out, r)
		}
	}
	if len(out) > MaxRecentSearches {
		out = out[:MaxRecentSearches]
	}
	return out
}

func (p *Prefs) normalize() {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.LastSearch = strings.TrimSpace(p.LastSearch)

	recent := p.RecentSearches[:0:0]
	for _, r := range p.RecentSearches {
		r = strings.TrimSpace(r)
		if r != "" && !slices.Contains(recent, r) {
			recent = append(recent, r)
		}
	}
	if len(recent) > MaxRecentSearches {
		recent = recent[:MaxRecentSearches]
	}
	if len(recent) == 0 {
		recent = nil
	}
	p.RecentSearches = recent
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPrefsPath
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
