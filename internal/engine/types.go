package engine

// VideoInfo holds the metadata fetched for a single video.
// A zero VideoInfo means the video could not be resolved.
type VideoInfo struct {
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// IsZero reports whether no metadata was resolved.
func (v VideoInfo) IsZero() bool {
	return v.Title == "" && v.Channel == "" && v.Duration == "" && v.Description == ""
}

// BlogDraft is the structured output of draft generation.
type BlogDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// PipelineStatus is the terminal state of one pipeline run.
type PipelineStatus string

const (
	StatusOK          PipelineStatus = "ok"
	StatusBotDetected PipelineStatus = "bot_detected"
	StatusFailed      PipelineStatus = "failed"
)

// PipelineResult is the single contract returned to callers of the pipeline.
// Status != StatusOK always pairs with a non-empty Error; downstream fields
// are best-effort in that case.
type PipelineResult struct {
	Status     PipelineStatus `json:"status"`
	Error      string         `json:"error,omitempty"`
	URL        string         `json:"url"`
	VideoID    string         `json:"video_id,omitempty"`
	VideoInfo  VideoInfo      `json:"video_info"`
	Transcript string         `json:"transcript,omitempty"`
	BlogPost   BlogDraft      `json:"blog_post"`
}

// Success reports whether the run produced a usable blog post.
func (r *PipelineResult) Success() bool {
	return r.Status == StatusOK
}
