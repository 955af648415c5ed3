package engine

import (
	"fmt"
	"strings"
)

// BotDetectionError marks a platform-side block on automated access.
// It carries the offending URL so the caller can route it to CAPTCHA
// recovery; it is never retried automatically.
type BotDetectionError struct {
	URL     string
	Message string
}

func (e *BotDetectionError) Error() string {
	return fmt.Sprintf("bot detection triggered for %s: %s", e.URL, e.Message)
}

// DefaultBotDetectPatterns returns the marker phrases that identify a
// bot-detection block. The exact wording tracks one provider's current error
// text, so deployments can override the list via configuration.
func DefaultBotDetectPatterns() []string {
	return []string{
		"sign in to confirm you're not a bot",
		"not a bot",
		"bot detection",
		"verify you're not a robot",
		"captcha",
	}
}

// IsBotDetection classifies an error message by substring pattern matching,
// case-insensitive. Pure string matching, no IO.
func IsBotDetection(msg string) bool {
	m := strings.ToLower(msg)
	for _, p := range cfg.BotDetectPatterns {
		if strings.Contains(m, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// classifyFetchError converts a downloader failure into a BotDetectionError
// when the message matches, or returns the original error.
func classifyFetchError(url string, err error, stderr string) error {
	msg := err.Error()
	if stderr != "" {
		msg = msg + ": " + stderr
	}
	if IsBotDetection(msg) {
		metrics.BotDetections.Add(1)
		return &BotDetectionError{URL: url, Message: TruncateRunes(msg, 300, "...")}
	}
	if stderr == "" {
		return err
	}
	return fmt.Errorf("%s: %w", TruncateRunes(stderr, 300, "..."), err)
}
