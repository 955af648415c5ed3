package engine

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// ytdlpInfo is the subset of yt-dlp's -J output the pipeline needs.
type ytdlpInfo struct {
	Title       string  `json:"title"`
	Uploader    string  `json:"uploader"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
}

// FetchVideoInfo retrieves title/channel/duration/description for a video URL
// via yt-dlp. A zero VideoInfo with nil error means the video could not be
// resolved; a *BotDetectionError means the platform blocked automated access.
// Results are cached by video ID.
func FetchVideoInfo(ctx context.Context, url string) (VideoInfo, error) {
	metrics.MetadataRequests.Add(1)

	videoID, ok := ExtractVideoID(url)
	if !ok {
		return VideoInfo{}, nil
	}

	key := CacheKey("video_info", videoID)
	var cached VideoInfo
	if CacheGetJSON(ctx, key, &cached) && !cached.IsZero() {
		return cached, nil
	}

	cookieFile, ephemeral := ResolveCookieFile()
	defer cleanupCookieFile(cookieFile, ephemeral)

	args := append(ytdlpBaseArgs(cookieFile), "-J", "--skip-download", url)
	out, stderr, err := runYtdlp(ctx, args)
	if err != nil {
		cls := classifyFetchError(url, err, stderr)
		var bd *BotDetectionError
		if errors.As(cls, &bd) {
			return VideoInfo{}, cls
		}
		slog.Error("metadata fetch failed", slog.String("id", videoID), slog.Any("error", cls))
		return VideoInfo{}, nil
	}

	var raw ytdlpInfo
	if err := json.Unmarshal(out, &raw); err != nil {
		slog.Error("metadata parse failed", slog.String("id", videoID), slog.Any("error", err))
		return VideoInfo{}, nil
	}

	info := VideoInfo{
		Title:       raw.Title,
		Channel:     raw.Uploader,
		Duration:    FormatDuration(int(raw.Duration)),
		Description: TruncateRunes(raw.Description, 500, ""),
	}
	CacheSetJSON(ctx, key, info)
	return info, nil
}
