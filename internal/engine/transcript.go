package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// transcriptLangs is the caption language preference order.
var transcriptLangs = []string{"en", "en-US", "en-GB"}

// FetchDirectTranscript tries to get existing captions for the video via the
// ANDROID Innertube /player endpoint. Returns "" (no error) when the video
// simply has no usable captions: the pipeline then falls back to audio
// transcription. Errors are reserved for transport-level failures.
func FetchDirectTranscript(ctx context.Context, videoID string) (string, error) {
	metrics.TranscriptRequests.Add(1)

	key := CacheKey("transcript", videoID)
	var cached string
	if CacheGetJSON(ctx, key, &cached) {
		return cached, nil
	}

	if cfg.YouTubeLimiter != nil {
		if err := cfg.YouTubeLimiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	text, err := fetchTranscriptViaPlayer(ctx, videoID, transcriptLangs)
	if err != nil {
		var term *noCaptionsError
		if errors.As(err, &term) {
			if term.unavailable {
				slog.Error("video unavailable", "id", videoID, "reason", term.reason)
			} else {
				slog.Info("no direct transcript", "id", videoID, "reason", term.reason)
			}
			return "", nil
		}
		return "", err
	}

	metrics.TranscriptDirect.Add(1)
	CacheSetJSON(ctx, key, text)
	return text, nil
}

// noCaptionsError marks terminal outcomes: no usable captions for this video.
// Retrying or failing the pipeline would be wrong. unavailable means the
// platform reported the video itself as unplayable.
type noCaptionsError struct {
	reason      string
	unavailable bool
}

func (e *noCaptionsError) Error() string { return "no captions: " + e.reason }

// fetchTranscriptViaPlayer uses the ANDROID Innertube /player endpoint.
func fetchTranscriptViaPlayer(ctx context.Context, videoID string, langs []string) (string, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return "", err
	}

	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, ytInnertubeURL+"?prettyPrint=false", bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	var playerResp innertubePlayerResp
	if err := json.NewDecoder(resp.Body).Decode(&playerResp); err != nil {
		return "", fmt.Errorf("decode player: %w", err)
	}
	if playerResp.Captions == nil {
		if ps := playerResp.PlayabilityStatus; ps != nil && ps.Reason != "" {
			return "", &noCaptionsError{reason: ps.Reason, unavailable: ps.Status != "OK"}
		}
		return "", &noCaptionsError{reason: "no captions in player response"}
	}
	tracks := playerResp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return "", &noCaptionsError{reason: "no caption tracks"}
	}
	track, ok := pickBestTrack(tracks, langs)
	if !ok {
		return "", &noCaptionsError{reason: "all caption tracks require PoToken"}
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language
// preferences. Skips tracks that require PoToken.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return tracks[0], false
	}
	// 1. Manual track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// 3. Any English track
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
// The endpoint serves browsers, so the request carries a browser identity.
func fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range ChromeHeaders() {
			req.Header.Set(k, v)
		}
		req.Header.Set("User-Agent", RandomUserAgent())
		return cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return "", err
	}
	return parseTimedText(body)
}

func parseTimedText(body []byte) (string, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	var sb strings.Builder
	for _, line := range tt.Lines {
		text := CleanHTML(line.Text)
		if text != "" {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
		}
	}
	return sb.String(), nil
}
