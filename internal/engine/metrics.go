package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the pipeline.
var metrics struct {
	PipelineRuns       atomic.Int64
	PipelineFailures   atomic.Int64
	BotDetections      atomic.Int64
	MetadataRequests   atomic.Int64
	TranscriptRequests atomic.Int64
	TranscriptDirect   atomic.Int64
	AudioDownloads     atomic.Int64
	TranscribeCalls    atomic.Int64
	DraftCalls         atomic.Int64
	DraftErrors        atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"pipeline_runs":       metrics.PipelineRuns.Load(),
		"pipeline_failures":   metrics.PipelineFailures.Load(),
		"bot_detections":      metrics.BotDetections.Load(),
		"metadata_requests":   metrics.MetadataRequests.Load(),
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"transcript_direct":   metrics.TranscriptDirect.Load(),
		"audio_downloads":     metrics.AudioDownloads.Load(),
		"transcribe_calls":    metrics.TranscribeCalls.Load(),
		"draft_calls":         metrics.DraftCalls.Load(),
		"draft_errors":        metrics.DraftErrors.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"pipeline_runs", "pipeline_failures", "bot_detections",
		"metadata_requests", "transcript_requests", "transcript_direct",
		"audio_downloads", "transcribe_calls",
		"draft_calls", "draft_errors",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the transcribe sub-package.
func IncrTranscribeCalls() { metrics.TranscribeCalls.Add(1) }
