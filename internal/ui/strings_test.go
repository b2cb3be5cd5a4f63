package ui

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer title", 8, "a lon..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
		{"ünïcödé text", 7, "ünïc..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight should not cut, got %q", got)
	}
}

func TestStars(t *testing.T) {
	tests := map[float64]string{
		0:   "☆☆☆☆☆",
		2.4: "★★☆☆☆",
		2.5: "★★★☆☆",
		5:   "★★★★★",
		7:   "★★★★★",
		-1:  "☆☆☆☆☆",
	}
	for rating, want := range tests {
		if got := stars(rating); got != want {
			t.Errorf("stars(%v) = %q, want %q", rating, got, want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := formatPrice(9.5, 0); got != "$9.50" {
		t.Fatalf("formatPrice no discount = %q", got)
	}
	if got := formatPrice(19.99, 12.4); got != "$19.99 (-12%)" {
		t.Fatalf("formatPrice discount = %q", got)
	}
}

func TestHumanizeAge(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, ""},
		{now.Add(-10 * time.Second), "now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-50 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		if got := humanizeAge(tt.t, now); got != tt.want {
			t.Errorf("humanizeAge(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{0, 0, 0},
		{5, 0, 0},
		{-1, 3, 0},
		{1, 3, 1},
		{3, 3, 2},
	}
	for _, tt := range tests {
		if got := clamp(tt.i, tt.n); got != tt.want {
			t.Errorf("clamp(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}
