package transcribe

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"tubeblog/internal/engine"
)

// WhisperAPI calls OpenAI's hosted whisper-1 model. Paid, last in the auto
// chain.
type WhisperAPI struct{}

func (w *WhisperAPI) Name() string { return "whisperapi" }

func (w *WhisperAPI) Available() bool { return engine.Cfg.OpenAIAPIKey != "" }

func (w *WhisperAPI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	client := openai.NewClient(engine.Cfg.OpenAIAPIKey)
	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
	})
	if err != nil {
		return "", fmt.Errorf("whisper api: %w", err)
	}
	return resp.Text, nil
}
