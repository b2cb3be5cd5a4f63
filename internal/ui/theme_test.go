package ui

import (
	"reflect"
	"strings"
	"testing"
)

func TestThemeCycle(t *testing.T) {
	if got, want := ThemeNames(), []string{"Dracula", "Gruvbox", "Nord"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ThemeNames() = %v, want %v", got, want)
	}

	tests := map[string]string{
		"Dracula": "Gruvbox",
		"Gruvbox": "Nord",
		"Nord":    "Dracula",
		"Unknown": "Dracula",
	}
	for current, want := range tests {
		if got := NextTheme(current); got != want {
			t.Errorf("NextTheme(%q) = %q, want %q", current, got, want)
		}
	}
}

func TestGetThemeFallsBack(t *testing.T) {
	if got := GetTheme("Nord").Name; got != "Nord" {
		t.Fatalf("GetTheme(Nord).Name = %q", got)
	}
	if got := GetTheme("Slate").Name; got != "Dracula" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Dracula", got)
	}
}

func TestThemesAreComplete(t *testing.T) {
	badges := []string{"up", "down", "flagged", "removed", "redacted", "moderator", "review", "comment"}
	for _, th := range themeList {
		v := reflect.ValueOf(th)
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.Kind() == reflect.String && f.String() == "" {
				t.Errorf("theme %s leaves %s empty", th.Name, v.Type().Field(i).Name)
			}
		}
		for _, b := range badges {
			if th.BadgeColors[b] == "" {
				t.Errorf("theme %s has no color for badge %q", th.Name, b)
			}
		}
	}
}

func TestBadgeRendersLabel(t *testing.T) {
	styles := GetTheme("Dracula").Styles()
	for _, name := range []string{"flagged", "unknown"} {
		if got := styles.Badge(name, "MOD"); !strings.Contains(got, "MOD") {
			t.Fatalf("Badge(%q) = %q, want it to contain the label", name, got)
		}
	}
}
