package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/formchat/backend/internal/model"
	"github.com/formchat/backend/internal/repository"
	"github.com/formchat/backend/pkg/auth"
)

type mockMessageService struct {
	contactsFunc func(ctx context.Context, meUsername string) ([]*model.Contact, error)
	threadFunc   func(ctx context.Context, meUsername, otherUsername string) (*model.User, []*model.DirectMessage, error)
	sendFunc     func(ctx context.Context, meUsername, otherUsername, content string) (bool, error)
	searchFunc   func(ctx context.Context, query, meUsername string) ([]*model.User, error)
}

func (m *mockMessageService) Contacts(ctx context.Context, meUsername string) ([]*model.Contact, error) {
	if m.contactsFunc != nil {
		return m.contactsFunc(ctx, meUsername)
	}
	return nil, nil
}

func (m *mockMessageService) Thread(ctx context.Context, meUsername, otherUsername string) (*model.User, []*model.DirectMessage, error) {
	if m.threadFunc != nil {
		return m.threadFunc(ctx, meUsername, otherUsername)
	}
	return nil, nil, repository.ErrNotFound
}

func (m *mockMessageService) Send(ctx context.Context, meUsername, otherUsername, content string) (bool, error) {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, meUsername, otherUsername, content)
	}
	return false, repository.ErrNotFound
}

func (m *mockMessageService) Search(ctx context.Context, query, meUsername string) ([]*model.User, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query, meUsername)
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestMessageHandler_List_ContactsOnly(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{
		contactsFunc: func(ctx context.Context, meUsername string) ([]*model.Contact, error) {
			if meUsername != "alice" {
				t.Errorf("expected session username alice, got %q", meUsername)
			}
			return []*model.Contact{
				{User: &model.User{ID: 2, Username: "bob"}, Preview: "ahoj", LastTime: time.Now(), FromMe: true},
			}, nil
		},
		searchFunc: func(ctx context.Context, query, meUsername string) ([]*model.User, error) {
			t.Error("search must not run without the q parameter")
			return nil, nil
		},
	})

	req := withSession(httptest.NewRequest(http.MethodGet, "/messages", nil), auth.Session{Username: "alice"})
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	contacts, ok := body["contacts"].([]any)
	if !ok || len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %v", body["contacts"])
	}
	if results, ok := body["results"].([]any); !ok || len(results) != 0 {
		t.Errorf("expected empty results array, got %v", body["results"])
	}
}

func TestMessageHandler_List_WithSearch(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{
		searchFunc: func(ctx context.Context, query, meUsername string) ([]*model.User, error) {
			if query != "ann" || meUsername != "alice" {
				t.Errorf("unexpected search arguments: %q %q", query, meUsername)
			}
			return []*model.User{{ID: 3, Username: "ann"}, {ID: 4, Username: "annie"}}, nil
		},
	})

	req := withSession(httptest.NewRequest(http.MethodGet, "/messages?q=ann", nil), auth.Session{Username: "alice"})
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if results, ok := body["results"].([]any); !ok || len(results) != 2 {
		t.Fatalf("expected 2 search results, got %v", body["results"])
	}
}

func TestMessageHandler_List_EmptyIsArrays(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{})

	req := withSession(httptest.NewRequest(http.MethodGet, "/messages", nil), auth.Session{Username: "alice"})
	rec := httptest.NewRecorder()
	h.List(rec, req)

	got := rec.Body.String()
	if !strings.Contains(got, `"contacts":[]`) || !strings.Contains(got, `"results":[]`) {
		t.Errorf("expected empty arrays, got %s", got)
	}
}

func TestMessageHandler_List_UnresolvableSessionUser(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{
		contactsFunc: func(ctx context.Context, meUsername string) ([]*model.Contact, error) {
			return nil, repository.ErrNotFound
		},
	})

	req := withSession(httptest.NewRequest(http.MethodGet, "/messages", nil), auth.Session{Username: "ghost"})
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "unknown_user" {
		t.Errorf("expected error unknown_user, got %v", body["error"])
	}
}

// ---------------------------------------------------------------------------
// Thread
// ---------------------------------------------------------------------------

func TestMessageHandler_Thread(t *testing.T) {
	bob := &model.User{ID: 2, Username: "bob"}
	h := NewMessageHandler(&mockMessageService{
		threadFunc: func(ctx context.Context, meUsername, otherUsername string) (*model.User, []*model.DirectMessage, error) {
			if meUsername != "alice" || otherUsername != "bob" {
				t.Errorf("unexpected thread arguments: %q %q", meUsername, otherUsername)
			}
			return bob, []*model.DirectMessage{
				{ID: 1, SenderID: 1, ReceiverID: 2, Content: "hi"},
				{ID: 2, SenderID: 2, ReceiverID: 1, Content: "yo"},
			}, nil
		},
	})

	req := withSession(httptest.NewRequest(http.MethodGet, "/messages/bob", nil), auth.Session{Username: "alice"})
	req.SetPathValue("username", "bob")
	rec := httptest.NewRecorder()
	h.Thread(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]any)
	if !ok || user["username"] != "bob" {
		t.Errorf("expected counterpart bob, got %v", body["user"])
	}
	if messages, ok := body["messages"].([]any); !ok || len(messages) != 2 {
		t.Errorf("expected 2 messages, got %v", body["messages"])
	}
	if _, ok := body["contacts"].([]any); !ok {
		t.Errorf("expected contacts array, got %v", body["contacts"])
	}
}

func TestMessageHandler_Thread_UnknownUser(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{})

	req := withSession(httptest.NewRequest(http.MethodGet, "/messages/nobody", nil), auth.Session{Username: "alice"})
	req.SetPathValue("username", "nobody")
	rec := httptest.NewRecorder()
	h.Thread(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "user_not_found" {
		t.Errorf("expected error user_not_found, got %v", body["error"])
	}
}

// ---------------------------------------------------------------------------
// Send
// ---------------------------------------------------------------------------

func TestMessageHandler_Send_Created(t *testing.T) {
	var gotContent string
	h := NewMessageHandler(&mockMessageService{
		sendFunc: func(ctx context.Context, meUsername, otherUsername, content string) (bool, error) {
			gotContent = content
			return true, nil
		},
	})

	req := withSession(httptest.NewRequest(http.MethodPost, "/messages/bob",
		strings.NewReader(`{"message":"ahoj"}`)), auth.Session{Username: "alice"})
	req.SetPathValue("username", "bob")
	rec := httptest.NewRecorder()
	h.Send(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotContent != "ahoj" {
		t.Errorf("expected content passed through, got %q", gotContent)
	}
}

// TestMessageHandler_Send_WhitespaceIsNoContent: a dropped blank message
// answers 204 with no body.
func TestMessageHandler_Send_WhitespaceIsNoContent(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{
		sendFunc: func(ctx context.Context, meUsername, otherUsername, content string) (bool, error) {
			return false, nil
		},
	})

	req := withSession(httptest.NewRequest(http.MethodPost, "/messages/bob",
		strings.NewReader(`{"message":"   "}`)), auth.Session{Username: "alice"})
	req.SetPathValue("username", "bob")
	rec := httptest.NewRecorder()
	h.Send(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %s", rec.Body.String())
	}
}

func TestMessageHandler_Send_UnknownTarget(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{})

	req := withSession(httptest.NewRequest(http.MethodPost, "/messages/nobody",
		strings.NewReader(`{"message":"ahoj"}`)), auth.Session{Username: "alice"})
	req.SetPathValue("username", "nobody")
	rec := httptest.NewRecorder()
	h.Send(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "user_not_found" {
		t.Errorf("expected error user_not_found, got %v", body["error"])
	}
}

func TestMessageHandler_Send_MalformedJSON(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{
		sendFunc: func(ctx context.Context, meUsername, otherUsername, content string) (bool, error) {
			t.Error("service must not be called on malformed input")
			return false, nil
		},
	})

	req := withSession(httptest.NewRequest(http.MethodPost, "/messages/bob",
		strings.NewReader(`{broken`)), auth.Session{Username: "alice"})
	req.SetPathValue("username", "bob")
	rec := httptest.NewRecorder()
	h.Send(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
