package translate

import (
	"context"
	"testing"
)

func TestStub_Translate(t *testing.T) {
	t.Parallel()

	got, err := NewStub().Translate(context.Background(), "token", "hello", "fr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "[fr] hello" {
		t.Fatalf("Translate = %q, want %q", got, "[fr] hello")
	}
}
