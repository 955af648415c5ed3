package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"tubeblog/internal/engine"
)

// LocalWhisper runs the whisper CLI on the host. Free, no API key, but needs
// the whisper binary and ffmpeg installed.
type LocalWhisper struct{}

func (w *LocalWhisper) Name() string { return "whisper" }

func (w *LocalWhisper) Available() bool {
	_, ok := w.locateWhisper()
	return ok
}

func (w *LocalWhisper) locateWhisper() (string, bool) {
	return engine.ToolLocator{}.Locate(engine.Cfg.WhisperPath)
}

// Transcribe shells out to the whisper CLI with the base model and reads the
// txt output it writes. Whisper loads audio through ffmpeg subprocesses, so
// the ffmpeg directory is prepended to the child's PATH without touching the
// parent environment.
func (w *LocalWhisper) Transcribe(ctx context.Context, audioPath string) (string, error) {
	whisperPath, ok := w.locateWhisper()
	if !ok {
		return "", errors.New("whisper CLI not found")
	}
	ffmpegDir, ok := engine.FFmpegLocator().LocatePair("ffmpeg", "ffprobe")
	if !ok {
		return "", errors.New("ffmpeg not found, whisper cannot load audio")
	}

	outDir, err := os.MkdirTemp("", "whisper_out_*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(outDir)

	cmd := exec.CommandContext(ctx, whisperPath, audioPath,
		"--model", "base",
		"--language", "en",
		"--output_format", "txt",
		"--output_dir", outDir,
	)
	cmd.Env = environWithPathPrefix(ffmpegDir)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("whisper: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	out, err := os.ReadFile(filepath.Join(outDir, base+".txt"))
	if err != nil {
		return "", fmt.Errorf("whisper output: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// environWithPathPrefix returns the current environment with dir prepended
// to PATH.
func environWithPathPrefix(dir string) []string {
	env := os.Environ()
	for i, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			env[i] = "PATH=" + dir + string(os.PathListSeparator) + kv[len("PATH="):]
			return env
		}
	}
	return append(env, "PATH="+dir)
}
