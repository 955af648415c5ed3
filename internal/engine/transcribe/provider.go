// Package transcribe converts downloaded audio to text through a chain of
// speech-to-text providers, free options first.
package transcribe

import (
	"context"
	"fmt"
	"log/slog"

	"tubeblog/internal/engine"
)

// Provider is a single speech-to-text backend.
type Provider interface {
	Name() string
	// Available reports whether the provider is usable with the current
	// configuration (API key present, CLI installed).
	Available() bool
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Chain runs providers according to the configured transcription mode.
type Chain struct {
	mode      engine.TranscriptionMode
	providers []Provider
}

// NewChain builds the provider chain from the engine configuration.
func NewChain() *Chain {
	return newChain(engine.Cfg.TranscriptionMode,
		&LocalWhisper{},
		&AssemblyAI{},
		&Deepgram{},
		&GoogleSpeech{},
		&WhisperAPI{},
	)
}

func newChain(mode engine.TranscriptionMode, providers ...Provider) *Chain {
	return &Chain{mode: mode, providers: providers}
}

// Transcribe converts the audio file to text. A forced mode uses exactly the
// named provider and yields "" when it is not configured. Auto mode walks the
// chain in order, skipping unavailable providers and stopping at the first
// non-empty transcript. An empty result with nil error means no provider
// could produce text.
func (c *Chain) Transcribe(ctx context.Context, audioPath string) (string, error) {
	engine.IncrTranscribeCalls()

	if c.mode != engine.ModeAuto {
		return c.transcribeForced(ctx, audioPath)
	}

	for _, p := range c.providers {
		if !p.Available() {
			continue
		}
		slog.Info("transcribing audio", "provider", p.Name())
		text, err := p.Transcribe(ctx, audioPath)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			slog.Warn("transcription failed", "provider", p.Name(), "err", err)
			continue
		}
		if text != "" {
			return text, nil
		}
		slog.Warn("provider returned empty transcript", "provider", p.Name())
	}
	return "", nil
}

func (c *Chain) transcribeForced(ctx context.Context, audioPath string) (string, error) {
	p, ok := c.forcedProvider()
	if !ok {
		return "", fmt.Errorf("unknown transcription mode %q", c.mode)
	}
	if !p.Available() {
		slog.Warn("forced transcription provider not configured", "provider", p.Name())
		return "", nil
	}
	slog.Info("transcribing audio", "provider", p.Name(), "forced", true)
	return p.Transcribe(ctx, audioPath)
}

func (c *Chain) forcedProvider() (Provider, bool) {
	want := map[engine.TranscriptionMode]string{
		engine.ModeWhisper:    "whisper",
		engine.ModeAssemblyAI: "assemblyai",
		engine.ModeDeepgram:   "deepgram",
	}[c.mode]
	for _, p := range c.providers {
		if p.Name() == want {
			return p, true
		}
	}
	return nil, false
}
