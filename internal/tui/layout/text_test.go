package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ANSI", "hello", "hello"},
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"mixed", "plain \x1b[1;4mstyled\x1b[0m plain", "plain styled plain"},
		{"only ANSI", "\x1b[1m\x1b[0m", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	if got := VisibleLength("\x1b[1mCafé\x1b[0m"); got != 4 {
		t.Errorf("VisibleLength = %d, want 4", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     string
	}{
		{"fits", "GitHub", 10, "GitHub"},
		{"exact", "GitHub", 6, "GitHub"},
		{"cut", "Hacker News", 6, "Hacke…"},
		{"one", "Hacker News", 1, "…"},
		{"zero", "Hacker News", 0, ""},
		{"runes", "Cafécafé", 5, "Café…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTwoColumns(t *testing.T) {
	tests := []struct {
		name   string
		left   string
		right  string
		width  int
		share  int
		want   string
	}{
		{"both fit", "Jira", "jira.example.com", 40, 50, "Jira  jira.example.com"},
		{"no detail", "Work", "", 40, 50, "Work"},
		{"detail cut", "Jira", "jira.example.com", 12, 50, "Jira  jira.…"},
		{"name cut", "Hacker News", "news.ycombinator.com", 12, 50, "Hacke…  new…"},
		{"no room", "Hacker News", "x", 7, 100, "Hacker…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TwoColumns(tt.left, tt.right, tt.width, tt.share)
			if got != tt.want {
				t.Errorf("TwoColumns() = %q, want %q", got, tt.want)
			}
		})
	}
}
