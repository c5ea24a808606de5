package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/uvichacks/showcase/internal/model"
)

func TestRegisterForEventDuplicate(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter(t, db, newFakeDocumentStorage())

	// Account creation consumes the (user 1, event 1) pair, so add a second
	// event to register for explicitly.
	if err := db.Create(&model.Event{ID: 2, Title: "Workshop Night"}).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	w := doMultipart(t, router, http.MethodPost, "/api/account-reg", validAccountFields(), "", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("registration failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(router, http.MethodPost, "/api/events/register", `{"userId":1,"eventId":2}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(router, http.MethodPost, "/api/events/register", `{"userId":1,"eventId":2}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate pair, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.Model(&model.EventRegistration{}).
		Where("user_id = ? AND event_id = ?", 1, 2).
		Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one join row, got %d", count)
	}
}

func TestRegisterForEventMissingFields(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter(t, db, newFakeDocumentStorage())

	for _, body := range []string{`{}`, `{"userId":1}`, `{"eventId":1}`} {
		w := doJSON(router, http.MethodPost, "/api/events/register", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestAdminListAccounts(t *testing.T) {
	db := setupTestDB(t)
	docs := newFakeDocumentStorage()
	router := newTestRouter(t, db, docs)

	w := doMultipart(t, router, http.MethodPost, "/api/account-reg",
		validAccountFields(), "resume", "resume.pdf", []byte("pdf-bytes"))
	if w.Code != http.StatusCreated {
		t.Fatalf("registration failed: %d %s", w.Code, w.Body.String())
	}

	t.Run("no key", func(t *testing.T) {
		w := doRequest(router, httptestGet("/api/admin/registrations"))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("with key", func(t *testing.T) {
		req := httptestGet("/api/admin/registrations")
		req.Header.Set("x-api-key", testAPIKey)
		w := doRequest(router, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var listed []struct {
			Email     string  `json:"email"`
			ResumeURL *string `json:"resume_url"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if len(listed) != 1 {
			t.Fatalf("expected 1 account, got %d", len(listed))
		}
		if listed[0].ResumeURL == nil || !strings.Contains(*listed[0].ResumeURL, "signed") {
			t.Errorf("expected a signed resume url, got %v", listed[0].ResumeURL)
		}
	})
}

func TestAdminListDegradesOnSigningFailure(t *testing.T) {
	db := setupTestDB(t)
	docs := newFakeDocumentStorage()
	router := newTestRouter(t, db, docs)

	w := doMultipart(t, router, http.MethodPost, "/api/account-reg",
		validAccountFields(), "resume", "resume.pdf", []byte("pdf-bytes"))
	if w.Code != http.StatusCreated {
		t.Fatalf("registration failed: %d %s", w.Code, w.Body.String())
	}

	docs.signErr = true

	req := httptestGet("/api/admin/registrations")
	req.Header.Set("x-api-key", testAPIKey)
	w = doRequest(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("signing failure must not fail the listing, got %d: %s", w.Code, w.Body.String())
	}

	var listed []struct {
		ResumeURL *string `json:"resume_url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(listed) != 1 || listed[0].ResumeURL != nil {
		t.Errorf("expected a null resume_url, got %+v", listed)
	}
}
