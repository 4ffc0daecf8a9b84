package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/formchat/backend/internal/model"
	"github.com/formchat/backend/internal/repository"
	"github.com/formchat/backend/internal/service"
	"github.com/formchat/backend/pkg/auth"
)

// MessageHandler handles the direct-messaging endpoints: conversation
// list, thread view, sending, and user search.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a MessageHandler with the given service.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// listResponse is the JSON response for GET /messages.
type listResponse struct {
	Contacts []*model.Contact `json:"contacts"`
	Results  []*model.User    `json:"results"`
}

// List handles GET /messages (user flag required). The contact list is
// always present; the optional q query param adds user-search results.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	session, _ := auth.SessionFromContext(r.Context())

	contacts, err := h.messageService.Contacts(r.Context(), session.Username)
	if err != nil {
		h.writeContactsError(w, err, session.Username)
		return
	}

	var results []*model.User
	if q := r.URL.Query().Get("q"); q != "" {
		results, err = h.messageService.Search(r.Context(), q, session.Username)
		if err != nil {
			slog.Error("user search failed", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "search_failed"})
			return
		}
	}

	if contacts == nil {
		contacts = []*model.Contact{}
	}
	if results == nil {
		results = []*model.User{}
	}
	_ = json.NewEncoder(w).Encode(listResponse{Contacts: contacts, Results: results})
}

// threadResponse is the JSON response for GET /messages/{username}.
type threadResponse struct {
	User     *model.User            `json:"user"`
	Messages []*model.DirectMessage `json:"messages"`
	Contacts []*model.Contact       `json:"contacts"`
}

// Thread handles GET /messages/{username} (user flag required). The thread
// is chronological; the contact list rides along for the sidebar.
func (h *MessageHandler) Thread(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	session, _ := auth.SessionFromContext(r.Context())
	other := r.PathValue("username")

	user, messages, err := h.messageService.Thread(r.Context(), session.Username, other)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "user_not_found"})
			return
		}
		slog.Error("load thread failed", "error", err, "other", other)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "thread_failed"})
		return
	}

	contacts, err := h.messageService.Contacts(r.Context(), session.Username)
	if err != nil {
		h.writeContactsError(w, err, session.Username)
		return
	}

	if messages == nil {
		messages = []*model.DirectMessage{}
	}
	if contacts == nil {
		contacts = []*model.Contact{}
	}
	_ = json.NewEncoder(w).Encode(threadResponse{User: user, Messages: messages, Contacts: contacts})
}

// sendRequest is the JSON body for POST /messages/{username}.
type sendRequest struct {
	Message string `json:"message"`
}

// Send handles POST /messages/{username} (user flag required).
// Empty or whitespace-only content is dropped silently with 204.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())
	other := r.PathValue("username")

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	created, err := h.messageService.Send(r.Context(), session.Username, other, req.Message)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "user_not_found"})
			return
		}
		slog.Error("send message failed", "error", err, "other", other)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "send_failed"})
		return
	}
	if !created {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
}

// writeContactsError maps a contact-list failure. An unresolvable session
// user reads as an expired session, not a server fault.
func (h *MessageHandler) writeContactsError(w http.ResponseWriter, err error, username string) {
	if errors.Is(err, repository.ErrNotFound) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unknown_user"})
		return
	}
	slog.Error("build contact list failed", "error", err, "username", username)
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "contacts_failed"})
}
