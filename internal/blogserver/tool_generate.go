package blogserver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tubeblog/internal/blogstore"
	"tubeblog/internal/engine"
)

// BlogGenerateInput is the input for blog_generate.
type BlogGenerateInput struct {
	URL  string `json:"url"`
	Save bool   `json:"save,omitempty"`
}

// BlogGenerateOutput is the output for blog_generate.
type BlogGenerateOutput struct {
	engine.PipelineResult
	PostID string `json:"post_id,omitempty"`
	Hint   string `json:"hint,omitempty"`
}

func registerBlogGenerate(server *mcp.Server, gen *engine.Generator, store *blogstore.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "blog_generate",
		Description: "Generate a blog post from a YouTube video URL. Fetches metadata, gets the transcript (existing captions first, audio transcription as fallback), and drafts a structured post. Set save=true to persist the result; the returned post_id works with blog_get/blog_delete. status=bot_detected means YouTube blocked automated access: run captcha_solve and retry.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input BlogGenerateInput) (*mcp.CallToolResult, BlogGenerateOutput, error) {
		if input.URL == "" {
			return nil, BlogGenerateOutput{}, errors.New("url is required")
		}

		out := BlogGenerateOutput{PipelineResult: gen.Process(ctx, input.URL)}

		if out.Status == engine.StatusBotDetected {
			out.Hint = "YouTube flagged automated access. Run the captcha_solve tool with this URL, solve the challenge in the browser window, then retry blog_generate."
			return nil, out, nil
		}
		if !out.Success() {
			return nil, out, nil
		}

		if input.Save {
			post, err := store.Save(ctx, blogstore.Post{
				VideoID:     out.VideoID,
				URL:         out.URL,
				Title:       out.BlogPost.Title,
				Description: out.BlogPost.Description,
				Content:     out.BlogPost.Content,
				Transcript:  out.Transcript,
			})
			if err != nil {
				slog.Error("failed to save post", "err", err)
				out.Hint = "post generated but could not be saved: " + err.Error()
				return nil, out, nil
			}
			out.PostID = post.ID
		}
		return nil, out, nil
	})
}
