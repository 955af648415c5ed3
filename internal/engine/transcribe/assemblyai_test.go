package transcribe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"tubeblog/internal/engine"
)

func TestAssemblyAITranscribe(t *testing.T) {
	var polls atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("authorization") != "test-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/upload":
			json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example/a.wav"})
		case r.Method == http.MethodPost && r.URL.Path == "/transcript":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["audio_url"] != "https://cdn.example/a.wav" {
				http.Error(w, "bad audio_url", http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "job-1"})
		case r.Method == http.MethodGet && r.URL.Path == "/transcript/job-1":
			if polls.Add(1) < 3 {
				json.NewEncoder(w).Encode(map[string]string{"status": "processing"})
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"status": "completed", "text": "Hello world"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	engine.Init(engine.Config{AssemblyAIKey: "test-key"})
	oldBase, oldInterval := assemblyAIBase, assemblyAIPollInterval
	assemblyAIBase, assemblyAIPollInterval = srv.URL, time.Millisecond
	defer func() { assemblyAIBase, assemblyAIPollInterval = oldBase, oldInterval }()

	audio := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(audio, []byte("RIFF fake audio"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := (&AssemblyAI{}).Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello world" {
		t.Errorf("got %q", got)
	}
	if polls.Load() < 3 {
		t.Errorf("polls = %d, want >= 3", polls.Load())
	}
}

func TestAssemblyAIJobError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/upload":
			json.NewEncoder(w).Encode(map[string]string{"upload_url": "u"})
		case r.URL.Path == "/transcript":
			json.NewEncoder(w).Encode(map[string]string{"id": "job-2"})
		default:
			json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "unsupported codec"})
		}
	}))
	defer srv.Close()

	engine.Init(engine.Config{AssemblyAIKey: "k"})
	oldBase, oldInterval := assemblyAIBase, assemblyAIPollInterval
	assemblyAIBase, assemblyAIPollInterval = srv.URL, time.Millisecond
	defer func() { assemblyAIBase, assemblyAIPollInterval = oldBase, oldInterval }()

	audio := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(audio, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := (&AssemblyAI{}).Transcribe(context.Background(), audio); err == nil {
		t.Error("expected error for failed job")
	}
}
