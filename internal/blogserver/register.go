// Package blogserver exposes the blog generation pipeline and post store as
// MCP tools.
package blogserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tubeblog/internal/blogstore"
	"tubeblog/internal/engine"
	"tubeblog/internal/engine/transcribe"
)

// RegisterTools registers all blog tools on the given MCP server:
// blog_generate, blog_get, blog_list, blog_delete, captcha_solve.
func RegisterTools(server *mcp.Server, store *blogstore.Store) {
	gen := engine.NewGenerator(transcribe.NewChain())
	registerBlogGenerate(server, gen, store)
	registerBlogGet(server, store)
	registerBlogList(server, store)
	registerBlogDelete(server, store)
	registerCaptchaSolve(server)
}
