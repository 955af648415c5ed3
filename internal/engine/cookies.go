package engine

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// recoveryCookieName is the persistent artifact written after a successful
// CAPTCHA recovery; it is reused across runs until replaced.
const recoveryCookieName = "youtube-cookies.txt"

// ResolveCookieFile returns the Netscape cookie file to hand to the
// downloader, if any. ephemeral=true means the file was materialized for this
// single request and the caller must delete it when done.
//
// Order: configured file path, base64 blob, CAPTCHA-recovery artifact.
func ResolveCookieFile() (path string, ephemeral bool) {
	if p := cfg.CookiesPath; p != "" {
		if fi, err := os.Stat(p); err == nil {
			slog.Info("using cookie file", slog.String("path", p), slog.Int64("size", fi.Size()))
			return p, false
		}
		slog.Warn("configured cookie path does not exist", slog.String("path", p))
	}

	if b64 := cfg.CookiesB64; b64 != "" {
		content, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			slog.Warn("failed to decode base64 cookies", slog.Any("error", err))
		} else {
			f, err := os.CreateTemp("", "yt_cookies_*.txt")
			if err != nil {
				slog.Warn("failed to create ephemeral cookie file", slog.Any("error", err))
			} else {
				if _, err := f.Write(content); err != nil {
					f.Close()
					os.Remove(f.Name())
					slog.Warn("failed to write ephemeral cookie file", slog.Any("error", err))
				} else {
					f.Close()
					slog.Info("using cookies from base64 blob")
					return f.Name(), true
				}
			}
		}
	}

	if p := RecoveryCookiePath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			slog.Info("using recovery cookie artifact", slog.String("path", p))
			return p, false
		}
	}

	return "", false
}

// RecoveryCookiePath is where a CAPTCHA-recovery cookie file is persisted.
// Empty when no state directory is configured.
func RecoveryCookiePath() string {
	if cfg.StateDir == "" {
		return ""
	}
	return filepath.Join(cfg.StateDir, recoveryCookieName)
}

// PersistRecoveryCookies copies a recovery-produced cookie file into the
// state directory so subsequent pipeline runs pick it up.
func PersistRecoveryCookies(src string) (string, error) {
	dst := RecoveryCookiePath()
	if dst == "" {
		return "", fmt.Errorf("no state directory configured")
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return "", fmt.Errorf("state dir: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open recovery cookies: %w", err)
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("create cookie artifact: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("copy cookie artifact: %w", err)
	}
	slog.Info("persisted recovery cookies", slog.String("path", dst))
	return dst, nil
}

// cleanupCookieFile removes an ephemeral cookie file, ignoring errors.
func cleanupCookieFile(path string, ephemeral bool) {
	if path == "" || !ephemeral {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Debug("cookie cleanup failed", slog.Any("error", err))
	}
}
