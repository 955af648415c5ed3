package blogserver

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tubeblog/internal/captcha"
)

// CaptchaSolveInput is the input for captcha_solve.
type CaptchaSolveInput struct {
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

func registerCaptchaSolve(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "captcha_solve",
		Description: "Open a visible browser window on a YouTube URL so a human can solve the bot-detection challenge. On success the session cookies are saved and reused by subsequent blog_generate runs. Use when blog_generate returns status=bot_detected. Default timeout: 300 seconds.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input CaptchaSolveInput) (*mcp.CallToolResult, captcha.Result, error) {
		if input.URL == "" {
			return nil, captcha.Result{}, errors.New("url is required")
		}
		timeout := time.Duration(input.TimeoutSeconds) * time.Second
		return nil, captcha.SolveInteractive(ctx, input.URL, timeout), nil
	})
}
