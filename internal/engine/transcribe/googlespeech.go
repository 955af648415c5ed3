package transcribe

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	speech "google.golang.org/api/speech/v1"

	"tubeblog/internal/engine"
)

// GoogleSpeech uses the Cloud Speech-to-Text synchronous recognize API.
// Suited to the wav output yt-dlp produces when ffmpeg is present.
type GoogleSpeech struct{}

func (g *GoogleSpeech) Name() string { return "google" }

func (g *GoogleSpeech) Available() bool {
	path := engine.Cfg.GoogleCredentialsPath
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func (g *GoogleSpeech) Transcribe(ctx context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", err
	}

	srv, err := speech.NewService(ctx, option.WithCredentialsFile(engine.Cfg.GoogleCredentialsPath))
	if err != nil {
		return "", fmt.Errorf("google speech: %w", err)
	}

	resp, err := srv.Speech.Recognize(&speech.RecognizeRequest{
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(data),
		},
		Config: &speech.RecognitionConfig{
			Encoding:                   "LINEAR16",
			SampleRateHertz:            16000,
			LanguageCode:               "en-US",
			EnableAutomaticPunctuation: true,
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("google speech recognize: %w", err)
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			parts = append(parts, result.Alternatives[0].Transcript)
		}
	}
	return strings.Join(parts, " "), nil
}
