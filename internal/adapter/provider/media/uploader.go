// Package media uploads draft images and audio to the media hosting service.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"github.com/heartmarshall/deck-authoring/internal/domain"
)

const formField = "file"

// ErrNotConfigured is returned when no endpoint is configured for a media kind.
var ErrNotConfigured = errors.New("media: upload endpoint not configured")

// Uploader posts files as multipart/form-data and returns the hosted URL.
// Image uploads forward the caller's bearer token; audio uploads are
// anonymous.
type Uploader struct {
	imageURL   string
	audioURL   string
	httpClient *http.Client
	log        *slog.Logger
}

// NewUploader creates an Uploader. Either endpoint may be empty, in which
// case uploads of that kind fail with ErrNotConfigured.
func NewUploader(imageURL, audioURL string, timeout time.Duration, logger *slog.Logger) *Uploader {
	return &Uploader{
		imageURL:   imageURL,
		audioURL:   audioURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "media"),
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadImage uploads an image on behalf of the token holder.
func (u *Uploader) UploadImage(ctx context.Context, token string, file domain.File) (string, error) {
	return u.upload(ctx, "image", u.imageURL, token, file)
}

// UploadAudio uploads an audio clip.
func (u *Uploader) UploadAudio(ctx context.Context, file domain.File) (string, error) {
	return u.upload(ctx, "audio", u.audioURL, "", file)
}

func (u *Uploader) upload(ctx context.Context, kind, endpoint, token string, file domain.File) (string, error) {
	if endpoint == "" {
		return "", fmt.Errorf("%s: %w", kind, ErrNotConfigured)
	}

	body, contentType, err := encodeForm(file)
	if err != nil {
		return "", fmt.Errorf("media: encode %s: %w", kind, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("media: create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("media: post %s: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("media: %s upload: unexpected status %d: %s", kind, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("media: decode response: %w", err)
	}

	hosted, err := url.Parse(out.URL)
	if err != nil || !hosted.IsAbs() {
		return "", fmt.Errorf("media: invalid hosted url %q", out.URL)
	}

	u.log.DebugContext(ctx, "media uploaded",
		slog.String("kind", kind),
		slog.String("name", file.Name),
		slog.Int("bytes", len(file.Content)),
		slog.Duration("took", time.Since(start)),
	)

	return hosted.String(), nil
}

func encodeForm(file domain.File) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := file.Name
	if name == "" {
		name = "upload"
	}
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, formField, name))
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", fmt.Errorf("write file data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
