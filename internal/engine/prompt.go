package engine

import (
	"fmt"
	"strings"
)

const draftSystemPrompt = "You are a professional blog writer who creates engaging, well-structured blog posts from video transcripts."

// buildBlogPrompt renders the draft generation prompt. The transcript is
// clipped so the request fits inside every provider's context window.
func buildBlogPrompt(transcript string, info VideoInfo) string {
	title := info.Title
	if title == "" {
		title = "Unknown"
	}
	channel := info.Channel
	if channel == "" {
		channel = "Unknown"
	}
	clipped := TruncateRunes(transcript, cfg.MaxTranscriptChars, "")

	var sb strings.Builder
	sb.WriteString("You are a professional blog writer. Create a well-structured, engaging blog post based on the following video transcript.\n\n")
	fmt.Fprintf(&sb, "Video Title: %s\n", title)
	fmt.Fprintf(&sb, "Video Channel: %s\n\n", channel)
	fmt.Fprintf(&sb, "Transcript:\n%s\n\n", clipped)
	sb.WriteString(`Please create:
1. A compelling title (max 100 characters)
2. A brief description/summary (2-3 sentences, max 200 characters)
3. A well-structured blog post with:
   - An engaging introduction
   - Clear sections with headings
   - Key points and insights
   - A conclusion

Format the response as:
TITLE: [title]
DESCRIPTION: [description]
CONTENT:
[blog post content with proper formatting, headings, paragraphs, and structure]

Make it engaging, informative, and suitable for a blog audience.`)
	return sb.String()
}

// buildContinuationPrompt asks the model to resume a draft that was cut off
// by the provider's output token limit.
func buildContinuationPrompt(partial string) string {
	var sb strings.Builder
	sb.WriteString("The response was cut off. Continue ONLY the blog post content from the last sentence. ")
	sb.WriteString("Do NOT repeat the title or description. Continue in the same style.\n\n")
	sb.WriteString("Partial response:\n")
	sb.WriteString(partial)
	sb.WriteString("\n\nCONTINUATION:")
	return sb.String()
}
