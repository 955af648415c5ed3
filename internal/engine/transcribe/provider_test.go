package transcribe

import (
	"context"
	"errors"
	"testing"

	"tubeblog/internal/engine"
)

type fakeProvider struct {
	name      string
	available bool
	text      string
	err       error
	calls     int
}

func (f *fakeProvider) Name() string    { return f.name }
func (f *fakeProvider) Available() bool { return f.available }

func (f *fakeProvider) Transcribe(context.Context, string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestChainAuto(t *testing.T) {
	engine.Init(engine.Config{})

	t.Run("first non-empty wins", func(t *testing.T) {
		skipped := &fakeProvider{name: "whisper", available: false, text: "never"}
		empty := &fakeProvider{name: "assemblyai", available: true, text: ""}
		good := &fakeProvider{name: "deepgram", available: true, text: "Hello world"}
		last := &fakeProvider{name: "google", available: true, text: "unused"}

		c := newChain(engine.ModeAuto, skipped, empty, good, last)
		got, err := c.Transcribe(context.Background(), "/tmp/a.wav")
		if err != nil {
			t.Fatal(err)
		}
		if got != "Hello world" {
			t.Errorf("got %q", got)
		}
		if skipped.calls != 0 {
			t.Error("unavailable provider was called")
		}
		if empty.calls != 1 || good.calls != 1 {
			t.Errorf("calls = %d/%d, want 1/1", empty.calls, good.calls)
		}
		if last.calls != 0 {
			t.Error("chain did not stop at first non-empty result")
		}
	})

	t.Run("errors skip to next provider", func(t *testing.T) {
		bad := &fakeProvider{name: "assemblyai", available: true, err: errors.New("boom")}
		good := &fakeProvider{name: "deepgram", available: true, text: "ok"}

		c := newChain(engine.ModeAuto, bad, good)
		got, err := c.Transcribe(context.Background(), "/tmp/a.wav")
		if err != nil {
			t.Fatal(err)
		}
		if got != "ok" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("all exhausted yields empty", func(t *testing.T) {
		c := newChain(engine.ModeAuto,
			&fakeProvider{name: "whisper", available: false},
			&fakeProvider{name: "deepgram", available: true, err: errors.New("boom")},
		)
		got, err := c.Transcribe(context.Background(), "/tmp/a.wav")
		if err != nil {
			t.Fatal(err)
		}
		if got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}

func TestChainForced(t *testing.T) {
	engine.Init(engine.Config{})

	t.Run("forced provider only", func(t *testing.T) {
		whisper := &fakeProvider{name: "whisper", available: true, text: "from whisper"}
		other := &fakeProvider{name: "deepgram", available: true, text: "from deepgram"}

		c := newChain(engine.ModeWhisper, whisper, other)
		got, err := c.Transcribe(context.Background(), "/tmp/a.wav")
		if err != nil {
			t.Fatal(err)
		}
		if got != "from whisper" {
			t.Errorf("got %q", got)
		}
		if other.calls != 0 {
			t.Error("forced mode called another provider")
		}
	})

	t.Run("forced but unavailable", func(t *testing.T) {
		whisper := &fakeProvider{name: "whisper", available: false}
		other := &fakeProvider{name: "deepgram", available: true, text: "from deepgram"}

		c := newChain(engine.ModeWhisper, whisper, other)
		got, err := c.Transcribe(context.Background(), "/tmp/a.wav")
		if err != nil {
			t.Fatal(err)
		}
		if got != "" {
			t.Errorf("got %q, want empty", got)
		}
		if other.calls != 0 {
			t.Error("forced mode fell back to another provider")
		}
	})

	t.Run("forced error propagates", func(t *testing.T) {
		dg := &fakeProvider{name: "deepgram", available: true, err: errors.New("boom")}
		c := newChain(engine.ModeDeepgram, dg)
		if _, err := c.Transcribe(context.Background(), "/tmp/a.wav"); err == nil {
			t.Error("expected error")
		}
	})
}
