// Package translate provides translation backends for draft enrichment.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const retryDelay = 500 * time.Millisecond

// ErrEmptyTranslation is returned when the backend answers without text.
var ErrEmptyTranslation = errors.New("translate: empty translation")

// Client calls a LibreTranslate-compatible HTTP API. The caller's bearer
// token is forwarded so the backend can enforce its own entitlement.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates an HTTP translation client.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "translate"),
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Translate translates text into targetLanguage.
func (c *Client) Translate(ctx context.Context, token, text, targetLanguage string) (string, error) {
	payload, err := json.Marshal(translateRequest{
		Q:      text,
		Source: "auto",
		Target: targetLanguage,
		Format: "text",
		APIKey: c.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("translate: encode request: %w", err)
	}

	c.log.DebugContext(ctx, "translate request",
		slog.String("target", targetLanguage),
		slog.Int("chars", len(text)),
	)

	resp, err := c.doWithRetry(ctx, token, payload)
	if err != nil {
		c.log.ErrorContext(ctx, "translate request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("translate: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("translate: read body: %w", err)
	}

	var out translateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("translate: decode json (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return "", fmt.Errorf("translate: status %d: %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("translate: unexpected status %d", resp.StatusCode)
	}

	translated := strings.TrimSpace(out.TranslatedText)
	if translated == "" {
		return "", ErrEmptyTranslation
	}

	return translated, nil
}

func (c *Client) newRequest(ctx context.Context, token string, payload []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, token string, payload []byte) (*http.Response, error) {
	req, err := c.newRequest(ctx, token, payload)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || resp.StatusCode >= 500
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	c.log.WarnContext(ctx, "translate retry", slog.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	req, err = c.newRequest(ctx, token, payload)
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}
