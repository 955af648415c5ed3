// Package captcha recovers from platform bot-detection blocks by opening a
// visible browser so a human can pass the challenge, then exporting the
// session cookies for yt-dlp.
package captcha

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"tubeblog/internal/engine"
)

// DefaultSolveTimeout bounds how long we wait for the human to pass the
// challenge before giving up.
const DefaultSolveTimeout = 5 * time.Minute

// playerSelectors are waited on to confirm the watch page loaded past the
// challenge.
const playerSelectors = `div#player, ytd-watch-flexy, #movie_player`

// Result reports one interactive recovery attempt.
type Result struct {
	Solved     bool   `json:"solved"`
	CookieFile string `json:"cookie_file,omitempty"`
	Cookies    int    `json:"cookies,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SolveInteractive opens a visible browser on the video URL and waits for the
// player to appear, which only happens once the challenge is passed. The
// session cookies are then written to a Netscape file and persisted as the
// recovery cookie artifact so subsequent pipeline runs pick them up.
func SolveInteractive(ctx context.Context, videoURL string, timeout time.Duration) Result {
	if timeout <= 0 {
		timeout = DefaultSolveTimeout
	}

	// The challenge needs a human, so the browser runs visible.
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", false),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.WindowSize(1280, 720),
			chromedp.UserAgent(engine.UserAgentSpoof),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	solveCtx, cancelSolve := context.WithTimeout(browserCtx, timeout)
	defer cancelSolve()

	slog.Info("opening browser for challenge recovery", "url", videoURL, "timeout", timeout)

	var cookies []*network.Cookie
	err := chromedp.Run(solveCtx,
		chromedp.Navigate(videoURL),
		chromedp.WaitVisible(playerSelectors, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			cookies, err = storage.GetCookies().Do(ctx)
			return err
		}),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Result{Error: fmt.Sprintf("challenge not solved within %s", timeout)}
		}
		return Result{Error: fmt.Sprintf("browser session failed: %v", err)}
	}
	if len(cookies) == 0 {
		return Result{Error: "no cookies captured after solving the challenge"}
	}

	cookieFile := filepath.Join(os.TempDir(),
		fmt.Sprintf("youtube_cookies_%s.txt", time.Now().Format("20060102_150405")))
	written, err := writeNetscapeCookieFile(cookieFile, cookies)
	if err != nil {
		return Result{Error: fmt.Sprintf("write cookie file: %v", err)}
	}
	if written == 0 {
		os.Remove(cookieFile)
		return Result{Error: "no YouTube cookies in the browser session"}
	}

	persisted, err := engine.PersistRecoveryCookies(cookieFile)
	if err != nil {
		slog.Warn("could not persist recovery cookies", "err", err)
		persisted = cookieFile
	}

	slog.Info("challenge recovery complete", "cookies", written, "file", persisted)
	return Result{Solved: true, CookieFile: persisted, Cookies: written}
}
