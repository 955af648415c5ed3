package engine

import (
	"os"
	"os/exec"
	"path/filepath"
)

// ToolLocator finds external binaries like ffmpeg. The search strategy is
// pluggable so the pipeline core never hardcodes OS-specific install paths:
// PATH lookup first, then configured extra directories, then glob patterns
// for vendor app directories.
type ToolLocator struct {
	ExtraDirs []string
	Globs     []string
}

// Locate returns the absolute path of the named tool and whether it was found.
func (l ToolLocator) Locate(name string) (string, bool) {
	if p, err := exec.LookPath(name); err == nil {
		return p, true
	}
	for _, dir := range l.ExtraDirs {
		p := filepath.Join(dir, name)
		if isExecutableFile(p) {
			return p, true
		}
	}
	for _, pattern := range l.Globs {
		matches, err := filepath.Glob(filepath.Join(pattern, name))
		if err != nil {
			continue
		}
		for _, m := range matches {
			if isExecutableFile(m) {
				return m, true
			}
		}
	}
	return "", false
}

// LocatePair finds two tools that must live in the same directory
// (ffmpeg and ffprobe). Returns the shared directory.
func (l ToolLocator) LocatePair(a, b string) (dir string, ok bool) {
	pa, ok := l.Locate(a)
	if !ok {
		return "", false
	}
	dir = filepath.Dir(pa)
	if isExecutableFile(filepath.Join(dir, b)) {
		return dir, true
	}
	return "", false
}

func isExecutableFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}

// FFmpegLocator builds the locator for the media conversion tool from the
// engine configuration.
func FFmpegLocator() ToolLocator {
	return ToolLocator{ExtraDirs: cfg.FFmpegExtraDirs, Globs: cfg.FFmpegGlobs}
}
