package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/formchat/backend/internal/service"
	"github.com/formchat/backend/pkg/auth"
)

// AuthHandler handles registration and the two session lifecycles: the
// user session and the independent admin session.
type AuthHandler struct {
	authService   service.AuthService
	sessionSecret []byte
}

// NewAuthHandler creates an AuthHandler with the given service and session
// signing secret.
func NewAuthHandler(authService service.AuthService, sessionSecret []byte) *AuthHandler {
	return &AuthHandler{authService: authService, sessionSecret: sessionSecret}
}

// registerRequest is the expected JSON body for POST /register.
type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Gender   string `json:"gender" validate:"required,oneof=muž žena"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /register. A successful registration does not log
// the user in; clients follow up with /login.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if err := validate.Struct(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":  "validation_failed",
			"fields": fieldErrors(err),
		})
		return
	}

	_, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Gender, req.Password)
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "username_taken"})
		return
	case errors.Is(err, service.ErrEmailTaken):
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email_taken"})
		return
	case err != nil:
		slog.Error("register failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "register_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
}

// loginRequest is the expected JSON body for POST /login and POST /login_admin.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /login. The failure response is deliberately generic:
// it never reveals whether the username or the password was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if err := validate.Struct(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":  "validation_failed",
			"fields": fieldErrors(err),
		})
		return
	}

	user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_credentials"})
			return
		}
		slog.Error("login failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "login_failed"})
		return
	}

	// Preserve an already-held admin flag: the two flags are independent.
	session := auth.SessionFromRequest(r, h.sessionSecret)
	session.Username = user.Username
	if err := h.setSessionCookie(w, session); err != nil {
		slog.Error("issue session failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "login_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true", "username": user.Username})
}

// AdminLogin handles POST /login_admin: a literal comparison against the
// configured admin credentials, no hashing.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	if !h.authService.AdminLogin(req.Username, req.Password) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_credentials"})
		return
	}

	session := auth.SessionFromRequest(r, h.sessionSecret)
	session.Admin = true
	if err := h.setSessionCookie(w, session); err != nil {
		slog.Error("issue session failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "login_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
}

// Logout handles GET /logout. It clears both session flags at once.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
}

// setSessionCookie signs the session and writes it as a cookie without
// Max-Age: the session lives only as long as the client agent, and is not
// persisted across restarts on either side.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session auth.Session) error {
	token, err := auth.CreateToken(session, h.sessionSecret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("ENV") == "production",
	})
	return nil
}
