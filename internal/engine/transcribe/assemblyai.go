package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"tubeblog/internal/engine"
)

// assemblyAIBase and assemblyAIPollInterval are variables so tests can point
// the provider at a local server and poll fast.
var (
	assemblyAIBase         = "https://api.assemblyai.com/v2"
	assemblyAIPollInterval = time.Second
)

// AssemblyAI uploads the audio file and polls an async transcription job.
// Free tier covers several hours per month.
type AssemblyAI struct{}

func (a *AssemblyAI) Name() string { return "assemblyai" }

func (a *AssemblyAI) Available() bool { return engine.Cfg.AssemblyAIKey != "" }

func (a *AssemblyAI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	audioURL, err := a.upload(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("assemblyai upload: %w", err)
	}
	jobID, err := a.createJob(ctx, audioURL)
	if err != nil {
		return "", fmt.Errorf("assemblyai job: %w", err)
	}
	return a.poll(ctx, jobID)
}

func (a *AssemblyAI) upload(ctx context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", err
	}
	body, err := a.request(ctx, http.MethodPost, assemblyAIBase+"/upload", "application/octet-stream", data)
	if err != nil {
		return "", err
	}
	var out struct {
		UploadURL string `json:"upload_url"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.UploadURL == "" {
		return "", errors.New("upload response missing upload_url")
	}
	return out.UploadURL, nil
}

func (a *AssemblyAI) createJob(ctx context.Context, audioURL string) (string, error) {
	payload, err := json.Marshal(map[string]string{"audio_url": audioURL})
	if err != nil {
		return "", err
	}
	body, err := a.request(ctx, http.MethodPost, assemblyAIBase+"/transcript", "application/json", payload)
	if err != nil {
		return "", err
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode job response: %w", err)
	}
	if out.ID == "" {
		return "", errors.New("job response missing id")
	}
	return out.ID, nil
}

func (a *AssemblyAI) poll(ctx context.Context, jobID string) (string, error) {
	for {
		body, err := a.request(ctx, http.MethodGet, assemblyAIBase+"/transcript/"+jobID, "", nil)
		if err != nil {
			return "", fmt.Errorf("assemblyai poll: %w", err)
		}
		var out struct {
			Status string `json:"status"`
			Text   string `json:"text"`
			Error  string `json:"error"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return "", fmt.Errorf("decode status response: %w", err)
		}
		switch out.Status {
		case "completed":
			return out.Text, nil
		case "error":
			return "", fmt.Errorf("assemblyai job failed: %s", out.Error)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(assemblyAIPollInterval):
		}
	}
}

// request issues one API call with the shared retry policy and returns the
// response body. Non-2xx statuses after retries are terminal.
func (a *AssemblyAI) request(ctx context.Context, method, url, contentType string, payload []byte) ([]byte, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("authorization", engine.Cfg.AssemblyAIKey)
		if contentType != "" {
			req.Header.Set("content-type", contentType)
		}
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
}
