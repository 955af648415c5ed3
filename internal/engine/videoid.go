package engine

import "regexp"

// videoIDPatterns are tried in order against the raw URL; the first
// 11-character match group wins. Covers watch, shortened, and embed forms.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([A-Za-z0-9_-]{11})`),
}

// ExtractVideoID resolves the canonical 11-character video identifier from a
// raw URL. Pure function, no network access. The boolean is false when no
// pattern matches.
func ExtractVideoID(url string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(url); len(m) >= 2 {
			return m[1], true
		}
	}
	return "", false
}
