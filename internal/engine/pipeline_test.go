package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type stubTranscriber struct {
	text  string
	err   error
	calls int
}

func (s *stubTranscriber) Transcribe(context.Context, string) (string, error) {
	s.calls++
	return s.text, s.err
}

const testWatchURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func testGenerator() *Generator {
	return &Generator{
		FetchInfo: func(context.Context, string) (VideoInfo, error) {
			return VideoInfo{Title: "Video", Channel: "Chan"}, nil
		},
		DirectTranscript: func(context.Context, string) (string, error) {
			return "direct transcript", nil
		},
		DownloadAudio: func(context.Context, string) (string, error) {
			return "", errors.New("should not download")
		},
		Transcriber: &stubTranscriber{},
		Draft: func(_ context.Context, transcript string, info VideoInfo) BlogDraft {
			return BlogDraft{Title: info.Title, Content: transcript}
		},
	}
}

func TestProcessDirectTranscript(t *testing.T) {
	Init(Config{})
	g := testGenerator()
	audioCalled := false
	g.DownloadAudio = func(context.Context, string) (string, error) {
		audioCalled = true
		return "", errors.New("nope")
	}

	res := g.Process(context.Background(), testWatchURL)
	if !res.Success() {
		t.Fatalf("status = %s, error = %s", res.Status, res.Error)
	}
	if res.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("video id = %q", res.VideoID)
	}
	if res.Transcript != "direct transcript" {
		t.Errorf("transcript = %q", res.Transcript)
	}
	if res.BlogPost.Content != "direct transcript" {
		t.Errorf("blog content = %q", res.BlogPost.Content)
	}
	if audioCalled {
		t.Error("audio downloaded despite direct transcript")
	}
}

func TestProcessAudioFallback(t *testing.T) {
	Init(Config{})
	g := testGenerator()
	g.DirectTranscript = func(context.Context, string) (string, error) { return "", nil }

	dir, err := os.MkdirTemp("", "pipeline_test_*")
	if err != nil {
		t.Fatal(err)
	}
	audio := filepath.Join(dir, "audio.wav")
	if err := os.WriteFile(audio, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	g.DownloadAudio = func(context.Context, string) (string, error) { return audio, nil }
	tr := &stubTranscriber{text: "spoken words"}
	g.Transcriber = tr

	res := g.Process(context.Background(), testWatchURL)
	if !res.Success() {
		t.Fatalf("status = %s, error = %s", res.Status, res.Error)
	}
	if res.Transcript != "spoken words" {
		t.Errorf("transcript = %q", res.Transcript)
	}
	if tr.calls != 1 {
		t.Errorf("transcriber calls = %d", tr.calls)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("audio directory not cleaned up")
	}
}

func TestProcessAudioCleanupOnFailure(t *testing.T) {
	Init(Config{})
	g := testGenerator()
	g.DirectTranscript = func(context.Context, string) (string, error) { return "", nil }

	dir, err := os.MkdirTemp("", "pipeline_test_*")
	if err != nil {
		t.Fatal(err)
	}
	audio := filepath.Join(dir, "audio.wav")
	if err := os.WriteFile(audio, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	g.DownloadAudio = func(context.Context, string) (string, error) { return audio, nil }
	g.Transcriber = &stubTranscriber{err: errors.New("codec error")}

	res := g.Process(context.Background(), testWatchURL)
	if res.Status != StatusFailed {
		t.Fatalf("status = %s", res.Status)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("audio directory not cleaned up after failure")
	}
}

func TestProcessNoTranscriptAnywhere(t *testing.T) {
	Init(Config{})
	g := testGenerator()
	g.DirectTranscript = func(context.Context, string) (string, error) { return "", nil }
	g.DownloadAudio = func(context.Context, string) (string, error) {
		dir := t.TempDir()
		audio := filepath.Join(dir, "audio.wav")
		os.WriteFile(audio, []byte("x"), 0644)
		return audio, nil
	}
	g.Transcriber = &stubTranscriber{text: ""}

	res := g.Process(context.Background(), testWatchURL)
	if res.Status != StatusFailed {
		t.Fatalf("status = %s", res.Status)
	}
	if res.Error == "" {
		t.Error("expected error message")
	}
}

func TestProcessBotDetection(t *testing.T) {
	Init(Config{})

	t.Run("during metadata", func(t *testing.T) {
		g := testGenerator()
		g.FetchInfo = func(_ context.Context, url string) (VideoInfo, error) {
			return VideoInfo{}, &BotDetectionError{URL: url, Message: "sign in to confirm you're not a bot"}
		}
		res := g.Process(context.Background(), testWatchURL)
		if res.Status != StatusBotDetected {
			t.Errorf("status = %s", res.Status)
		}
	})

	t.Run("during audio download", func(t *testing.T) {
		g := testGenerator()
		g.DirectTranscript = func(context.Context, string) (string, error) { return "", nil }
		g.DownloadAudio = func(_ context.Context, url string) (string, error) {
			return "", &BotDetectionError{URL: url, Message: "captcha"}
		}
		res := g.Process(context.Background(), testWatchURL)
		if res.Status != StatusBotDetected {
			t.Errorf("status = %s", res.Status)
		}
	})
}

func TestProcessRecoversPanic(t *testing.T) {
	Init(Config{})
	g := testGenerator()
	g.FetchInfo = func(context.Context, string) (VideoInfo, error) {
		panic("collaborator blew up")
	}
	res := g.Process(context.Background(), testWatchURL)
	if res.Status != StatusFailed {
		t.Fatalf("status = %s", res.Status)
	}
	if res.Error == "" {
		t.Error("expected error message")
	}
}

func TestProcessBadURL(t *testing.T) {
	Init(Config{})
	g := testGenerator()
	res := g.Process(context.Background(), "https://example.com/not-a-video")
	if res.Status != StatusFailed {
		t.Fatalf("status = %s", res.Status)
	}
}
