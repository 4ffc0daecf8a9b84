package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
)

// Session carries the two independent authentication flags of a client.
// Admin and Username are deliberately not mutually exclusive: a client may
// hold an admin session and a user session at the same time.
type Session struct {
	Admin    bool   `json:"admin,omitempty"`
	Username string `json:"user,omitempty"`
}

// IsZero reports whether the session carries no flag at all.
func (s Session) IsZero() bool {
	return !s.Admin && s.Username == ""
}

// CreateToken serializes and signs a session with HMAC-SHA256.
// Token format: base64url(payload) "." hex(hmac).
func CreateToken(session Session, secret []byte) (string, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	sig := hex.EncodeToString(mac.Sum(nil))
	return base64.RawURLEncoding.EncodeToString(payload) + "." + sig, nil
}

// VerifyToken checks the token signature and returns the embedded session.
func VerifyToken(token string, secret []byte) (Session, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return Session{}, errors.New("invalid token format")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return Session{}, err
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return Session{}, errors.New("invalid signature")
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

const sessionCookieName = "formchat_session"
const minSecretLen = 32

// SessionCookieName returns the session cookie name.
func SessionCookieName() string {
	return sessionCookieName
}

// SessionSecretBytes derives the signing key from a secret string,
// zero-padding it to a minimum of 32 bytes.
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
