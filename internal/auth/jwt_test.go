package auth

import (
	"testing"
	"time"
)

const testAccount = "0x52908400098527886E0F7030069857D2E4169EE7"

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("secret", testAccount, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseSessionToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Account != testAccount {
		t.Errorf("account = %q, want %q", claims.Account, testAccount)
	}
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, _ := GenerateSessionToken("secret", testAccount, time.Hour)
	if _, err := ParseSessionToken("other", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestSessionToken_Expired(t *testing.T) {
	token, _ := GenerateSessionToken("secret", testAccount, -1)
	// ttl <= 0 falls back to the default lifetime
	if _, err := ParseSessionToken("secret", token); err != nil {
		t.Fatalf("default ttl token should be valid: %v", err)
	}

	expired, _ := GenerateSessionToken("secret", testAccount, time.Nanosecond)
	time.Sleep(1100 * time.Millisecond)
	if _, err := ParseSessionToken("secret", expired); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestSessionToken_Garbage(t *testing.T) {
	if _, err := ParseSessionToken("secret", "not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
