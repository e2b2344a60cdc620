package translate

import "context"

// Stub is an offline translation provider for local development. It tags
// the text with the target language instead of translating it.
type Stub struct{}

// NewStub creates a new offline translation provider.
func NewStub() *Stub { return &Stub{} }

// Translate returns text prefixed with the target language code.
func (s *Stub) Translate(_ context.Context, _, text, targetLanguage string) (string, error) {
	return "[" + targetLanguage + "] " + text, nil
}
