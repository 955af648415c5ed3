package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Transcriber converts an audio file to text. Implemented by the transcribe
// package; an interface here keeps the import graph acyclic and the pipeline
// testable.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Generator runs the full URL-to-blog-post pipeline. Collaborators are
// fields so tests can swap in stubs; production code uses NewGenerator.
type Generator struct {
	FetchInfo        func(ctx context.Context, url string) (VideoInfo, error)
	DirectTranscript func(ctx context.Context, videoID string) (string, error)
	DownloadAudio    func(ctx context.Context, url string) (string, error)
	Transcriber      Transcriber
	Draft            func(ctx context.Context, transcript string, info VideoInfo) BlogDraft
}

// NewGenerator wires the standard pipeline with the given speech-to-text
// backend.
func NewGenerator(t Transcriber) *Generator {
	return &Generator{
		FetchInfo:        FetchVideoInfo,
		DirectTranscript: FetchDirectTranscript,
		DownloadAudio:    DownloadAudio,
		Transcriber:      t,
		Draft:            GenerateBlogPost,
	}
}

// Process runs the pipeline for one video URL. It never returns an error:
// every failure mode is folded into the result's Status and Error fields so
// callers get one uniform contract. A panic anywhere in the run becomes a
// generic terminal error.
func (g *Generator) Process(ctx context.Context, url string) (result PipelineResult) {
	metrics.PipelineRuns.Add(1)
	res := PipelineResult{Status: StatusOK, URL: url}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("pipeline panic", "url", url, "panic", r)
			result = g.fail(res, fmt.Sprintf("internal error: %v", r))
		}
	}()

	videoID, ok := ExtractVideoID(url)
	if !ok {
		return g.fail(res, "Could not extract a video ID from the URL. Please check the URL.")
	}
	res.VideoID = videoID

	info, err := g.FetchInfo(ctx, url)
	if bd := asBotDetected(err); bd != nil {
		return g.botDetected(res, bd)
	}
	if err != nil || info.IsZero() {
		if err != nil {
			slog.Error("metadata fetch failed", "url", url, "err", err)
		}
		return g.fail(res, "Could not fetch video information. Please check the URL.")
	}
	res.VideoInfo = info

	transcript, err := g.DirectTranscript(ctx, videoID)
	if bd := asBotDetected(err); bd != nil {
		return g.botDetected(res, bd)
	}
	if err != nil {
		if ctx.Err() != nil {
			return g.fail(res, ctx.Err().Error())
		}
		slog.Warn("direct transcript failed, falling back to audio", "id", videoID, "err", err)
	}

	if transcript == "" {
		slog.Info("no direct captions, downloading audio", "id", videoID)
		audioPath, err := g.DownloadAudio(ctx, url)
		if bd := asBotDetected(err); bd != nil {
			return g.botDetected(res, bd)
		}
		if err != nil {
			slog.Error("audio download failed", "url", url, "err", err)
			return g.fail(res, "Could not download audio from the video.")
		}
		defer os.RemoveAll(filepath.Dir(audioPath))

		transcript, err = g.Transcriber.Transcribe(ctx, audioPath)
		if err != nil {
			slog.Error("transcription failed", "id", videoID, "err", err)
			return g.fail(res, "Could not transcribe the audio.")
		}
		if transcript == "" {
			return g.fail(res, "Could not get a transcript: no captions available and no transcription provider produced text.")
		}
	}
	res.Transcript = transcript

	res.BlogPost = g.Draft(ctx, transcript, info)
	return res
}

func (g *Generator) fail(res PipelineResult, msg string) PipelineResult {
	metrics.PipelineFailures.Add(1)
	res.Status = StatusFailed
	res.Error = msg
	return res
}

func (g *Generator) botDetected(res PipelineResult, bd *BotDetectionError) PipelineResult {
	slog.Warn("bot detection triggered", "url", bd.URL)
	res.Status = StatusBotDetected
	res.Error = bd.Error()
	return res
}

func asBotDetected(err error) *BotDetectionError {
	var bd *BotDetectionError
	if errors.As(err, &bd) {
		return bd
	}
	return nil
}
