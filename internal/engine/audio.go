package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// audioExtOrder is the order in which we probe for the downloaded file.
// wav first: when ffmpeg is available yt-dlp re-encodes to wav, otherwise
// it keeps whatever container YouTube served.
var audioExtOrder = []string{".wav", ".webm", ".m4a", ".mp3", ".opus", ".ogg"}

// DownloadAudio fetches the audio track of the video into a fresh temp
// directory and returns the path of the resulting file. The caller owns the
// file and is expected to remove its directory when done.
func DownloadAudio(ctx context.Context, url string) (string, error) {
	dir, err := os.MkdirTemp("", "tubeblog_audio_*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	path, err := downloadAudioInto(ctx, url, dir)
	if err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	metrics.AudioDownloads.Add(1)
	return path, nil
}

func downloadAudioInto(ctx context.Context, url, dir string) (string, error) {
	cookieFile, ephemeral := ResolveCookieFile()
	defer cleanupCookieFile(cookieFile, ephemeral)

	args := append(ytdlpBaseArgs(cookieFile),
		"-f", "bestaudio/best",
		"-o", filepath.Join(dir, "audio.%(ext)s"),
		"--no-progress",
	)
	if ffDir, ok := FFmpegLocator().LocatePair("ffmpeg", "ffprobe"); ok {
		args = append(args, "-x", "--audio-format", "wav", "--ffmpeg-location", ffDir)
	} else {
		slog.Debug("ffmpeg not found, keeping source audio container")
	}
	args = append(args, url)

	if _, stderr, err := runYtdlp(ctx, args); err != nil {
		cls := classifyFetchError(url, err, stderr)
		var bd *BotDetectionError
		if errors.As(cls, &bd) {
			return "", bd
		}
		return "", fmt.Errorf("audio download: %w", cls)
	}

	path, err := findDownloadedAudio(dir)
	if err != nil {
		return "", err
	}
	slog.Info("audio downloaded", "file", filepath.Base(path))
	return path, nil
}

// findDownloadedAudio locates the file yt-dlp produced. Known extensions are
// probed first, then any non-empty file with the expected prefix.
func findDownloadedAudio(dir string) (string, error) {
	for _, ext := range audioExtOrder {
		p := filepath.Join(dir, "audio"+ext)
		if fi, err := os.Stat(p); err == nil && fi.Size() > 0 {
			return p, nil
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scan download dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "audio.") {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if fi, err := os.Stat(p); err == nil && fi.Size() > 0 {
			return p, nil
		}
	}
	return "", errors.New("download produced no audio file")
}
