package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const llmMaxTokens = 1024

// LLM translates through the Anthropic Messages API.
type LLM struct {
	client anthropic.Client
	model  string
	log    *slog.Logger
}

// NewLLM creates an LLM-backed translator. baseURL may be empty to use the
// public API endpoint.
func NewLLM(apiKey, baseURL, model string, timeout time.Duration, logger *slog.Logger, opts ...option.RequestOption) *LLM {
	all := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
	}
	if baseURL != "" {
		all = append(all, option.WithBaseURL(baseURL))
	}
	all = append(all, opts...)

	return &LLM{
		client: anthropic.NewClient(all...),
		model:  model,
		log:    logger.With("adapter", "translate_llm"),
	}
}

// Translate translates text into targetLanguage. The caller token is not
// used; access to this provider is gated by the premium check upstream.
func (l *LLM) Translate(ctx context.Context, _, text, targetLanguage string) (string, error) {
	msg, err := l.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(l.model),
		MaxTokens: llmMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(text, targetLanguage))),
		},
	})
	if err != nil {
		l.log.ErrorContext(ctx, "llm translate failed",
			slog.String("target", targetLanguage),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("translate: llm api call: %w", err)
	}

	if len(msg.Content) == 0 {
		return "", ErrEmptyTranslation
	}

	translated := strings.TrimSpace(msg.Content[0].Text)
	if translated == "" {
		return "", ErrEmptyTranslation
	}

	l.log.DebugContext(ctx, "llm translate done",
		slog.String("target", targetLanguage),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	return translated, nil
}

func buildPrompt(text, targetLanguage string) string {
	return fmt.Sprintf(`Translate the flashcard text below into the language with code %q.

Rules:
- Output ONLY the translation, no quotes, no explanations
- Keep punctuation and line breaks
- If the text is already in the target language, return it unchanged

Text:
%s`, targetLanguage, text)
}
