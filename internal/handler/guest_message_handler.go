package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/formchat/backend/internal/model"
	"github.com/formchat/backend/internal/repository"
	"github.com/formchat/backend/internal/service"
	"github.com/formchat/backend/pkg/auth"
)

// GuestMessageHandler handles the public contact form and its admin view.
type GuestMessageHandler struct {
	guestService service.GuestMessageService
}

// NewGuestMessageHandler creates a GuestMessageHandler with the given service.
func NewGuestMessageHandler(guestService service.GuestMessageService) *GuestMessageHandler {
	return &GuestMessageHandler{guestService: guestService}
}

// Form handles GET /. It tells the client which form applies: the full
// contact form for anonymous visitors, or the message-only form whose
// submissions are attributed to the logged-in user.
func (h *GuestMessageHandler) Form(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"authenticated": session.Username != "",
		"username":      session.Username,
	})
}

// anonymousSubmitRequest is the JSON body for an anonymous POST /.
type anonymousSubmitRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Gender  string `json:"gender" validate:"required,oneof=muž žena"`
	Message string `json:"message" validate:"required"`
}

// userSubmitRequest is the JSON body for a logged-in POST /.
type userSubmitRequest struct {
	Message string `json:"message" validate:"required"`
}

// Submit handles POST /. Logged-in users submit only a message; their
// profile fields are snapshotted server-side. Anonymous visitors supply
// the full form.
func (h *GuestMessageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	session, _ := auth.SessionFromContext(r.Context())
	if session.Username != "" {
		h.submitAsUser(w, r, session.Username)
		return
	}

	var req anonymousSubmitRequest
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

	id, err := h.guestService.SubmitAnonymous(r.Context(), req.Name, req.Email, req.Gender, req.Message)
	if err != nil {
		slog.Error("guest message submit failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "submit_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": "true", "id": id})
}

func (h *GuestMessageHandler) submitAsUser(w http.ResponseWriter, r *http.Request, username string) {
	var req userSubmitRequest
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

	id, err := h.guestService.SubmitAsUser(r.Context(), username, req.Message)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Session names a user that no longer resolves.
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unknown_user"})
			return
		}
		slog.Error("guest message submit failed", "error", err, "username", username)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "submit_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": "true", "id": id})
}

// adminListResponse is the JSON response for GET /admin.
type adminListResponse struct {
	Messages []*model.GuestMessage `json:"messages"`
}

// AdminList handles GET /admin (admin flag required). Messages are ordered
// by id ascending.
func (h *GuestMessageHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	messages, err := h.guestService.List(r.Context())
	if err != nil {
		slog.Error("list guest messages failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.GuestMessage{}
	}
	_ = json.NewEncoder(w).Encode(adminListResponse{Messages: messages})
}

// Delete handles POST /delete/{id} (admin flag required).
func (h *GuestMessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_id"})
		return
	}

	if err := h.guestService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("delete guest message failed", "error", err, "id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "delete_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
}
