package engine

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// yt-dlp invocation helpers. The spoofed identity and the android/web player
// client negotiation reduce anti-bot triggers; cookie material is attached
// when available.

// ytdlpBaseArgs returns the arguments shared by every yt-dlp call.
func ytdlpBaseArgs(cookieFile string) []string {
	args := []string{
		"--no-warnings",
		"--user-agent", UserAgentSpoof,
		"--extractor-args", "youtube:player_client=android,web",
	}
	if cookieFile != "" {
		args = append(args, "--cookies", cookieFile)
	}
	return args
}

// runYtdlp executes yt-dlp with the given arguments. Stdout and stderr are
// captured into buffers so the downloader can never write to the surrounding
// process's streams. Returns stdout and the raw stderr text for error
// classification.
func runYtdlp(ctx context.Context, args []string) (stdout []byte, stderr string, err error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.DownloadTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.YtdlpPath, args...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	err = cmd.Run()
	return out.Bytes(), strings.TrimSpace(errBuf.String()), err
}
