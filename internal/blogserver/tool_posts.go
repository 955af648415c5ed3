package blogserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tubeblog/internal/blogstore"
	"tubeblog/internal/engine"
)

// BlogGetInput is the input for blog_get.
type BlogGetInput struct {
	ID string `json:"id"`
}

// BlogListInput is the input for blog_list.
type BlogListInput struct {
	Limit int `json:"limit,omitempty"`
}

// PostSummary is one blog_list entry: post metadata plus a short content
// preview instead of the full body.
type PostSummary struct {
	ID          string `json:"id"`
	VideoID     string `json:"video_id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Preview     string `json:"preview"`
	CreatedAt   string `json:"created_at"`
}

// BlogListOutput is the output for blog_list.
type BlogListOutput struct {
	Posts []PostSummary `json:"posts"`
	Total int           `json:"total"`
}

// BlogDeleteOutput is the output for blog_delete.
type BlogDeleteOutput struct {
	Message string `json:"message"`
}

func registerBlogGet(server *mcp.Server, store *blogstore.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "blog_get",
		Description: "Fetch a stored blog post by ID, including its full content and source transcript. Get IDs from blog_list or the post_id returned by blog_generate.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input BlogGetInput) (*mcp.CallToolResult, *blogstore.Post, error) {
		if input.ID == "" {
			return nil, nil, errors.New("id is required")
		}
		post, err := store.Get(ctx, input.ID)
		if err != nil {
			return nil, nil, err
		}
		return nil, &post, nil
	})
}

func registerBlogList(server *mcp.Server, store *blogstore.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "blog_list",
		Description: "List stored blog posts, newest first. Returns metadata and a short content preview; use blog_get for the full record.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input BlogListInput) (*mcp.CallToolResult, BlogListOutput, error) {
		posts, err := store.List(ctx, input.Limit)
		if err != nil {
			return nil, BlogListOutput{}, err
		}
		out := BlogListOutput{Posts: make([]PostSummary, 0, len(posts)), Total: len(posts)}
		for _, p := range posts {
			out.Posts = append(out.Posts, PostSummary{
				ID:          p.ID,
				VideoID:     p.VideoID,
				URL:         p.URL,
				Title:       p.Title,
				Description: p.Description,
				Preview:     engine.TruncateAtWord(p.Content, 300),
				CreatedAt:   p.CreatedAt,
			})
		}
		return nil, out, nil
	})
}

func registerBlogDelete(server *mcp.Server, store *blogstore.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "blog_delete",
		Description: "Delete a stored blog post by ID.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input BlogGetInput) (*mcp.CallToolResult, BlogDeleteOutput, error) {
		if input.ID == "" {
			return nil, BlogDeleteOutput{}, errors.New("id is required")
		}
		if err := store.Delete(ctx, input.ID); err != nil {
			return nil, BlogDeleteOutput{}, err
		}
		return nil, BlogDeleteOutput{Message: fmt.Sprintf("post %s deleted", input.ID)}, nil
	})
}
