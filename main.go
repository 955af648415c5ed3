// tubeblog — YouTube-to-blog-post MCP server.
//
// Exposes five MCP tools: blog_generate, blog_get, blog_list, blog_delete,
// captcha_solve. Runs as HTTP MCP server or stdio transport.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"

	"tubeblog/internal/blogserver"
	"tubeblog/internal/blogstore"
	"tubeblog/internal/engine"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()

	stateDir := engine.Cfg.StateDir
	store, err := blogstore.Open(stateDir)
	if err != nil {
		slog.Error("post store init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	slog.Info("starting tubeblog",
		slog.String("port", mcpPort),
		slog.String("state_dir", stateDir),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "tubeblog",
		Version: version,
	}, nil)

	blogserver.RegisterTools(server, store)
	slog.Info("tools registered", slog.Int("count", 5))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "tubeblog",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	stateDir := env.Str("STATE_DIR", "")
	if stateDir == "" {
		stateDir = filepath.Join(os.Getenv("HOME"), ".tubeblog")
	}

	c := engine.Config{
		GroqAPIKey:            env.Str("GROQ_API_KEY", ""),
		GeminiAPIKey:          env.Str("GEMINI_API_KEY", ""),
		OpenAIAPIKey:          env.Str("OPENAI_API_KEY", ""),
		GroqAPIBase:           env.Str("GROQ_API_BASE", ""),
		GeminiAPIBase:         env.Str("GEMINI_API_BASE", ""),
		AssemblyAIKey:         env.Str("ASSEMBLYAI_API_KEY", ""),
		DeepgramKey:           env.Str("DEEPGRAM_API_KEY", ""),
		GoogleCredentialsPath: env.Str("GOOGLE_APPLICATION_CREDENTIALS", ""),
		TranscriptionMode:     engine.ParseTranscriptionMode(env.Str("TRANSCRIPTION_PROVIDER", "auto")),
		YtdlpPath:             env.Str("YTDLP_PATH", "yt-dlp"),
		WhisperPath:           env.Str("WHISPER_PATH", "whisper"),
		FFmpegExtraDirs:       env.List("FFMPEG_DIRS", ""),
		FFmpegGlobs:           env.List("FFMPEG_GLOBS", ""),
		CookiesPath:           env.Str("YTDLP_COOKIES_PATH", ""),
		CookiesB64:            env.Str("YTDLP_COOKIES_B64", ""),
		StateDir:              stateDir,
		BotDetectPatterns:     env.List("BOT_DETECT_PATTERNS", ""),
		MaxTranscriptChars:    env.Int("MAX_TRANSCRIPT_CHARS", 12000),
		DownloadTimeout:       env.Duration("DOWNLOAD_TIMEOUT", 10*time.Minute),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		YouTubeLimiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 3),
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL,
		env.Int("CACHE_MAX_ENTRIES", 1000),
		env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second))
}
