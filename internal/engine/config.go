package engine

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// TranscriptionMode selects which speech-to-text provider the pipeline uses.
type TranscriptionMode string

const (
	ModeAuto       TranscriptionMode = "auto"
	ModeWhisper    TranscriptionMode = "whisper"
	ModeAssemblyAI TranscriptionMode = "assemblyai"
	ModeDeepgram   TranscriptionMode = "deepgram"
)

// ParseTranscriptionMode coerces a raw value to a known mode.
// Unknown values fall back to auto.
func ParseTranscriptionMode(raw string) TranscriptionMode {
	switch TranscriptionMode(normalizeMode(raw)) {
	case ModeWhisper:
		return ModeWhisper
	case ModeAssemblyAI:
		return ModeAssemblyAI
	case ModeDeepgram:
		return ModeDeepgram
	default:
		return ModeAuto
	}
}

func normalizeMode(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Config holds all engine configuration, injected from main.
type Config struct {
	// Draft generation (free tier first, paid last).
	GroqAPIKey    string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	GroqAPIBase   string
	GeminiAPIBase string

	// Transcription.
	AssemblyAIKey         string
	DeepgramKey           string
	GoogleCredentialsPath string
	TranscriptionMode     TranscriptionMode

	// External tools.
	YtdlpPath       string // "yt-dlp" when empty
	WhisperPath     string // "whisper" when empty
	FFmpegExtraDirs []string
	FFmpegGlobs     []string

	// Cookie material.
	CookiesPath string // Netscape cookie file, reused across runs
	CookiesB64  string // base64 blob, written to an ephemeral file per run
	StateDir    string // persistent artifacts (recovery cookies, post store)

	// Bot detection marker phrases, matched case-insensitively as substrings.
	BotDetectPatterns []string

	MaxTranscriptChars int
	DownloadTimeout    time.Duration

	HTTPClient *http.Client
	// YouTubeLimiter paces innertube and timedtext calls.
	YouTubeLimiter *rate.Limiter
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (transcribe).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.YtdlpPath == "" {
		c.YtdlpPath = "yt-dlp"
	}
	if c.TranscriptionMode == "" {
		c.TranscriptionMode = ModeAuto
	}
	if c.GroqAPIBase == "" {
		c.GroqAPIBase = "https://api.groq.com/openai/v1"
	}
	if c.GeminiAPIBase == "" {
		c.GeminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/openai"
	}
	if c.WhisperPath == "" {
		c.WhisperPath = "whisper"
	}
	if c.MaxTranscriptChars == 0 {
		c.MaxTranscriptChars = 12000
	}
	if c.DownloadTimeout == 0 {
		c.DownloadTimeout = 10 * time.Minute
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.YouTubeLimiter == nil {
		c.YouTubeLimiter = rate.NewLimiter(rate.Every(200*time.Millisecond), 3)
	}
	if len(c.BotDetectPatterns) == 0 {
		c.BotDetectPatterns = DefaultBotDetectPatterns()
	}
	cfg = c
	Cfg = &cfg
}
