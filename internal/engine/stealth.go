package engine

import (
	stealth "github.com/anatolykoptev/go-stealth"
)

// Re-export stealth identity helpers for engine consumers.
// The actual media download spoofing happens inside yt-dlp; these cover
// the direct innertube/timedtext HTTP calls.

func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }
func RandomUserAgent() string          { return stealth.RandomUserAgent() }
