package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/deck-authoring/internal/domain"
)

func TestIdentity_RoundTrip(t *testing.T) {
	t.Parallel()

	want := domain.Identity{UserID: uuid.New(), Token: "tok", Premium: true}
	ctx := WithIdentity(context.Background(), want)

	got, ok := IdentityFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	userID, ok := UserIDFromCtx(ctx)
	if !ok || userID != want.UserID {
		t.Fatalf("UserIDFromCtx = %s, %v", userID, ok)
	}
}

func TestIdentityFromCtx_Missing(t *testing.T) {
	t.Parallel()

	if _, ok := IdentityFromCtx(context.Background()); ok {
		t.Fatal("expected ok=false for empty context")
	}
	if _, ok := UserIDFromCtx(context.Background()); ok {
		t.Fatal("expected ok=false for empty context")
	}
}

func TestIdentityFromCtx_NilUser(t *testing.T) {
	t.Parallel()

	ctx := WithIdentity(context.Background(), domain.Identity{Token: "tok"})
	if _, ok := IdentityFromCtx(ctx); ok {
		t.Fatal("expected ok=false for nil user ID")
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}

	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestIDFromCtx(ctx); got != "req-1" {
		t.Fatalf("expected %q, got %q", "req-1", got)
	}
}
