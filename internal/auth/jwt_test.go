package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tier        string
		wantPremium bool
	}{
		{TierPremium, true},
		{TierFree, false},
		{"", false},
		{"PREMIUM", false},
	}

	for _, tt := range tests {
		t.Run("tier="+tt.tier, func(t *testing.T) {
			t.Parallel()

			manager := NewJWTManager(testSecret, "decks-test", 15*time.Minute)
			userID := uuid.New()

			token, err := manager.GenerateAccessToken(userID, tt.tier)
			if err != nil {
				t.Fatalf("GenerateAccessToken failed: %v", err)
			}

			id, err := manager.ValidateAccessToken(token)
			if err != nil {
				t.Fatalf("ValidateAccessToken failed: %v", err)
			}
			if id.UserID != userID {
				t.Errorf("expected userID %s, got %s", userID, id.UserID)
			}
			if id.Premium != tt.wantPremium {
				t.Errorf("Premium = %v, want %v", id.Premium, tt.wantPremium)
			}
			if id.Token != token {
				t.Error("identity must carry the raw token")
			}
		})
	}
}

func TestJWTManager_Validate_Expired(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(testSecret, "decks-test", -time.Minute)
	token, err := manager.GenerateAccessToken(uuid.New(), TierPremium)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestJWTManager_Validate_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewJWTManager(testSecret, "decks-test", time.Minute)
	verifier := NewJWTManager(strings.Repeat("x", 40), "decks-test", time.Minute)

	token, _ := issuer.GenerateAccessToken(uuid.New(), TierFree)
	if _, err := verifier.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestJWTManager_Validate_WrongIssuer(t *testing.T) {
	t.Parallel()

	a := NewJWTManager(testSecret, "issuer-a", time.Minute)
	b := NewJWTManager(testSecret, "issuer-b", time.Minute)

	token, _ := a.GenerateAccessToken(uuid.New(), TierFree)
	if _, err := b.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestJWTManager_Validate_Malformed(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(testSecret, "decks-test", time.Minute)

	for _, token := range []string{"", "not.a.jwt", "abc"} {
		if _, err := manager.ValidateAccessToken(token); err == nil {
			t.Errorf("expected error for token %q", token)
		}
	}
}

func TestJWTManager_Validate_BadSubject(t *testing.T) {
	t.Parallel()

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			Issuer:    "decks-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	manager := NewJWTManager(testSecret, "decks-test", time.Minute)
	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for non-UUID subject")
	}
}

func TestJWTManager_Validate_RejectsNoneAlg(t *testing.T) {
	t.Parallel()

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "decks-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Tier: TierPremium,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	manager := NewJWTManager(testSecret, "decks-test", time.Minute)
	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for unsigned token")
	}
}
