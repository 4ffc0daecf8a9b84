package auth

import (
	"strings"
	"testing"
)

var testSecret = SessionSecretBytes("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	cases := []Session{
		{Username: "alice"},
		{Admin: true},
		{Admin: true, Username: "alice"},
		{},
	}
	for _, want := range cases {
		token, err := CreateToken(want, testSecret)
		if err != nil {
			t.Fatalf("create token: %v", err)
		}
		got, err := VerifyToken(token, testSecret)
		if err != nil {
			t.Fatalf("verify token: %v", err)
		}
		if got != want {
			t.Errorf("round trip: got %+v, want %+v", got, want)
		}
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	token, err := CreateToken(Session{Username: "alice"}, testSecret)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	// Forge an admin payload while keeping the original signature.
	forged, err := CreateToken(Session{Admin: true, Username: "alice"}, testSecret)
	if err != nil {
		t.Fatalf("create forged token: %v", err)
	}
	forgedPayload := strings.SplitN(forged, ".", 2)[0]
	originalSig := strings.SplitN(token, ".", 2)[1]

	if _, err := VerifyToken(forgedPayload+"."+originalSig, testSecret); err == nil {
		t.Error("expected tampered payload to be rejected")
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := CreateToken(Session{Username: "alice"}, testSecret)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	if _, err := VerifyToken(token, SessionSecretBytes("other-secret")); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "no-dot", "a.b", "!!!.???"} {
		if _, err := VerifyToken(token, testSecret); err == nil {
			t.Errorf("expected %q to be rejected", token)
		}
	}
}

func TestSessionSecretBytesPadsShortSecrets(t *testing.T) {
	short := SessionSecretBytes("abc")
	if len(short) != 32 {
		t.Errorf("expected 32 bytes, got %d", len(short))
	}
	long := SessionSecretBytes(strings.Repeat("x", 64))
	if len(long) != 64 {
		t.Errorf("expected long secret untouched, got %d bytes", len(long))
	}
}

func TestSessionIsZero(t *testing.T) {
	if !(Session{}).IsZero() {
		t.Error("empty session should be zero")
	}
	if (Session{Admin: true}).IsZero() {
		t.Error("admin session should not be zero")
	}
	if (Session{Username: "alice"}).IsZero() {
		t.Error("user session should not be zero")
	}
}
