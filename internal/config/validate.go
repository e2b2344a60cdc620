package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Authoring.validate(); err != nil {
		return fmt.Errorf("authoring: %w", err)
	}

	if err := c.Translate.validate(); err != nil {
		return fmt.Errorf("translate: %w", err)
	}

	if err := c.Media.validate(); err != nil {
		return fmt.Errorf("media: %w", err)
	}

	return nil
}

func (a *AuthoringConfig) validate() error {
	if a.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be > 0 (got %v)", a.SessionTTL)
	}
	if a.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be > 0 (got %v)", a.SweepInterval)
	}
	if a.UploadConcurrency <= 0 {
		return fmt.Errorf("upload_concurrency must be > 0 (got %d)", a.UploadConcurrency)
	}
	if a.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0 (got %d)", a.MaxUploadBytes)
	}
	if a.EnrichmentRatePerMinute < 0 {
		return fmt.Errorf("enrichment_rate_per_minute must be >= 0 (got %d)", a.EnrichmentRatePerMinute)
	}
	return nil
}

func (t *TranslateConfig) validate() error {
	if t.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0 (got %d)", t.CacheSize)
	}

	switch t.ProviderName() {
	case TranslateProviderStub:
		return nil
	case TranslateProviderHTTP:
		if err := validateURL(t.BaseURL); err != nil {
			return fmt.Errorf("base_url: %w", err)
		}
	case TranslateProviderLLM:
		if t.APIKey == "" {
			return fmt.Errorf("api_key is required for the llm provider")
		}
		if t.LLMModel == "" {
			return fmt.Errorf("llm_model is required for the llm provider")
		}
	default:
		return fmt.Errorf("unknown provider %q (want http, llm or stub)", t.Provider)
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", t.Timeout)
	}
	return nil
}

func (m *MediaConfig) validate() error {
	if m.ImageUploadURL != "" {
		if err := validateURL(m.ImageUploadURL); err != nil {
			return fmt.Errorf("image_upload_url: %w", err)
		}
	}
	if m.AudioUploadURL != "" {
		if err := validateURL(m.AudioUploadURL); err != nil {
			return fmt.Errorf("audio_upload_url: %w", err)
		}
	}
	if m.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", m.Timeout)
	}
	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an absolute http(s) URL (got %q)", raw)
	}
	return nil
}
