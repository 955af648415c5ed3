package engine

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Model ladders per provider, newest first. A retired model advances the
// ladder; any other error abandons the provider.
var (
	groqModels   = []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768"}
	geminiModels = []string{"gemini-2.5-flash", "gemini-2.0-flash"}
	openaiModels = []string{"gpt-4o-mini", "gpt-3.5-turbo"}
)

const (
	draftMaxTokens        = 3500
	continuationMaxTokens = 1500
	draftTemperature      = 0.7
)

// DraftProvider produces a raw blog draft from a prompt pair.
type DraftProvider interface {
	Name() string
	Draft(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// chatProvider serves any OpenAI-compatible chat completion API. Groq and
// Gemini both expose one, so a single implementation covers all three tiers.
type chatProvider struct {
	name   string
	client *openai.Client
	models []string
}

func newChatProvider(name, apiKey, baseURL string, models []string) *chatProvider {
	c := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		c.BaseURL = baseURL
	}
	return &chatProvider{name: name, client: openai.NewClientWithConfig(c), models: models}
}

func (p *chatProvider) Name() string { return p.name }

// Draft walks the model ladder. Retired-model errors try the next model;
// anything else (rate limit, auth, network) gives up on this provider.
func (p *chatProvider) Draft(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var lastErr error
	for _, model := range p.models {
		text, finish, err := p.complete(ctx, model, systemPrompt, userPrompt, draftMaxTokens)
		if err != nil {
			if isRetiredModelError(err) {
				slog.Warn("model not available, trying next", "provider", p.name, "model", model, "err", err)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("%s [%s]: %w", p.name, model, err)
		}
		if finish == "length" {
			text = p.continueDraft(ctx, model, systemPrompt, text)
		}
		return text, nil
	}
	return "", fmt.Errorf("%s: all models retired: %w", p.name, lastErr)
}

// continueDraft issues a single follow-up request when the draft was cut off.
// A failed continuation keeps the partial text rather than failing the draft.
func (p *chatProvider) continueDraft(ctx context.Context, model, systemPrompt, partial string) string {
	cont, _, err := p.complete(ctx, model, systemPrompt, buildContinuationPrompt(partial), continuationMaxTokens)
	if err != nil || strings.TrimSpace(cont) == "" {
		slog.Warn("continuation failed, keeping partial draft", "provider", p.name, "model", model, "err", err)
		return partial
	}
	return partial + "\n" + strings.TrimSpace(cont)
}

func (p *chatProvider) complete(ctx context.Context, model, systemPrompt, userPrompt string, maxTokens int) (text, finishReason string, err error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: draftTemperature,
	})
	if err != nil {
		return "", "", err
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("empty choices from %s", model)
	}
	choice := resp.Choices[0]
	return choice.Message.Content, string(choice.FinishReason), nil
}

var retiredModelMarkers = []string{"decommissioned", "not found", "invalid"}

func isRetiredModelError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, m := range retiredModelMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// draftProviders builds the provider chain from configuration, free tiers
// first. Providers without a configured key are omitted.
func draftProviders() []DraftProvider {
	var out []DraftProvider
	if cfg.GroqAPIKey != "" {
		out = append(out, newChatProvider("groq", cfg.GroqAPIKey, cfg.GroqAPIBase, groqModels))
	}
	if cfg.GeminiAPIKey != "" {
		out = append(out, newChatProvider("gemini", cfg.GeminiAPIKey, cfg.GeminiAPIBase, geminiModels))
	}
	if cfg.OpenAIAPIKey != "" {
		out = append(out, newChatProvider("openai", cfg.OpenAIAPIKey, "", openaiModels))
	}
	return out
}

// GenerateBlogPost turns a transcript into a blog draft by walking the
// provider chain. It never fails: with no providers (or all of them erroring)
// the transcript itself becomes the post body.
func GenerateBlogPost(ctx context.Context, transcript string, info VideoInfo) BlogDraft {
	return generateWithProviders(ctx, draftProviders(), transcript, info)
}

func generateWithProviders(ctx context.Context, providers []DraftProvider, transcript string, info VideoInfo) BlogDraft {
	metrics.DraftCalls.Add(1)
	userPrompt := buildBlogPrompt(transcript, info)

	for _, p := range providers {
		slog.Info("generating blog post", "provider", p.Name())
		text, err := p.Draft(ctx, draftSystemPrompt, userPrompt)
		if err != nil {
			metrics.DraftErrors.Add(1)
			slog.Warn("draft provider failed", "provider", p.Name(), "err", err)
			continue
		}
		return parseBlogResponse(text, info)
	}
	return fallbackDraft(transcript, info)
}

var (
	draftTitleRe   = regexp.MustCompile(`(?i)TITLE:[ \t]*(.+?)\s*(?:\n|DESCRIPTION:)`)
	draftDescRe    = regexp.MustCompile(`(?i)DESCRIPTION:[ \t]*(.+?)\s*(?:\n|CONTENT:)`)
	draftContentRe = regexp.MustCompile(`(?is)CONTENT:\s*(.+)$`)
)

// parseBlogResponse extracts the TITLE/DESCRIPTION/CONTENT sections from a
// model response. Missing sections fall back to video metadata or the whole
// raw text, so a sloppily formatted response still yields a usable post.
func parseBlogResponse(blogText string, info VideoInfo) BlogDraft {
	draft := BlogDraft{
		Title:       fallbackTitle(info),
		Description: genericDescription,
		Content:     strings.TrimSpace(blogText),
	}
	if m := draftTitleRe.FindStringSubmatch(blogText); m != nil {
		draft.Title = strings.TrimSpace(m[1])
	}
	if m := draftDescRe.FindStringSubmatch(blogText); m != nil {
		draft.Description = strings.TrimSpace(m[1])
	}
	if m := draftContentRe.FindStringSubmatch(blogText); m != nil {
		draft.Content = strings.TrimSpace(m[1])
	}
	return draft
}

const genericDescription = "A blog post generated from a YouTube video."

func fallbackTitle(info VideoInfo) string {
	if info.Title != "" {
		return info.Title
	}
	return "Blog Post"
}

func fallbackDraft(transcript string, info VideoInfo) BlogDraft {
	content := transcript
	if content == "" {
		content = "Content generation requires an API key. Please set up Groq, Gemini, or OpenAI API."
	}
	return BlogDraft{
		Title:       fallbackTitle(info),
		Description: genericDescription,
		Content:     content,
	}
}
