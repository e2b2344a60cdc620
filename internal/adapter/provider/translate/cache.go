package translate

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
)

// Translator is implemented by every backend in this package.
type Translator interface {
	Translate(ctx context.Context, token, text, targetLanguage string) (string, error)
}

// Cached remembers successful translations of a backend. Results are shared
// across callers; failures are never cached.
type Cached struct {
	next  Translator
	cache *ristretto.Cache[string, string]
}

// NewCached wraps next with a cache holding up to maxKeys translations.
func NewCached(next Translator, maxKeys int64) (*Cached, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: maxKeys * 10,
		MaxCost:     maxKeys,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("translate: create cache: %w", err)
	}
	return &Cached{next: next, cache: c}, nil
}

// Translate returns the cached translation of text into targetLanguage, or
// asks the wrapped backend and stores its answer.
func (c *Cached) Translate(ctx context.Context, token, text, targetLanguage string) (string, error) {
	key := targetLanguage + "\x00" + text
	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}

	v, err := c.next.Translate(ctx, token, text, targetLanguage)
	if err != nil {
		return "", err
	}

	c.cache.Set(key, v, 1)
	c.cache.Wait()
	return v, nil
}

// Close releases the cache's background goroutines.
func (c *Cached) Close() {
	c.cache.Close()
}
