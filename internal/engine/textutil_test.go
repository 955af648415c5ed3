package engine

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{"zero", 0, "0:00"},
		{"negative", -5, "0:00"},
		{"under a minute", 42, "0:42"},
		{"minutes", 754, "12:34"},
		{"exactly one hour", 3600, "1:00:00"},
		{"hours", 3725, "1:02:05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"  <b>bold</b> caption ", "bold caption"},
		{"<font color=\"#CCCCCC\">line</font>", "line"},
		{"rock &amp; roll", "rock & roll"},
		{"it&#39;s", "it's"},
	}
	for _, tt := range tests {
		if got := CleanHTML(tt.in); got != tt.want {
			t.Errorf("CleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
