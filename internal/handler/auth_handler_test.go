package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/uvichacks/showcase/internal/model"
)

func validAccountFields() map[string]string {
	return map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@uvic.ca",
		"vnumber":  "V00123456",
		"password": "correct-horse",
		"bio":      "First programmer.",
	}
}

func TestRegisterAccount(t *testing.T) {
	db := setupTestDB(t)
	docs := newFakeDocumentStorage()
	router := newTestRouter(t, db, docs)

	w := doMultipart(t, router, http.MethodPost, "/api/account-reg",
		validAccountFields(), "resume", "resume.pdf", []byte("pdf-bytes"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success    bool    `json:"success"`
		UserID     uint    `json:"userId"`
		ResumePath *string `json:"resume_path"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.UserID == 0 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.ResumePath == nil || !strings.HasPrefix(*resp.ResumePath, "resumes/") {
		t.Errorf("expected a resumes/ path, got %v", resp.ResumePath)
	}
	if len(docs.uploads) != 1 {
		t.Errorf("expected 1 uploaded document, got %d", len(docs.uploads))
	}

	// Account creation also signs the user up for the seeded event.
	var joinCount int64
	if err := db.Model(&model.EventRegistration{}).
		Where("user_id = ? AND event_id = ?", resp.UserID, 1).
		Count(&joinCount).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if joinCount != 1 {
		t.Errorf("expected 1 default event registration, got %d", joinCount)
	}

	// A stored password hash must never equal the plaintext.
	var user model.User
	if err := db.First(&user, resp.UserID).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if user.PasswordHash == "" || user.PasswordHash == "correct-horse" {
		t.Error("password was not hashed")
	}
}

func TestRegisterAccountDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter(t, db, newFakeDocumentStorage())

	w := doMultipart(t, router, http.MethodPost, "/api/account-reg", validAccountFields(), "", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("first registration failed: %d %s", w.Code, w.Body.String())
	}

	second := validAccountFields()
	second["vnumber"] = "V00999999"
	w = doMultipart(t, router, http.MethodPost, "/api/account-reg", second, "", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate email, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", "ada@uvic.ca").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one account with the email, got %d", count)
	}
}

func TestRegisterAccountDuplicateVNumber(t *testing.T) {
	db := setupTestDB(t)
	router := newTestRouter(t, db, newFakeDocumentStorage())

	w := doMultipart(t, router, http.MethodPost, "/api/account-reg", validAccountFields(), "", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("first registration failed: %d %s", w.Code, w.Body.String())
	}

	second := validAccountFields()
	second["email"] = "other@uvic.ca"
	w = doMultipart(t, router, http.MethodPost, "/api/account-reg", second, "", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate vnumber, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	docs := newFakeDocumentStorage()
	router := newTestRouter(t, db, docs)

	w := doMultipart(t, router, http.MethodPost, "/api/account-reg",
		validAccountFields(), "resume", "resume.pdf", []byte("pdf-bytes"))
	if w.Code != http.StatusCreated {
		t.Fatalf("registration failed: %d %s", w.Code, w.Body.String())
	}

	t.Run("success", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/login",
			`{"email":"ada@uvic.ca","password":"correct-horse"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Success   bool        `json:"success"`
			Token     string      `json:"token"`
			User      *model.User `json:"user"`
			ResumeURL *string     `json:"resume_url"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if !resp.Success || resp.Token == "" {
			t.Errorf("expected a token, got %+v", resp)
		}
		if resp.User == nil || resp.User.Email != "ada@uvic.ca" {
			t.Errorf("unexpected user: %+v", resp.User)
		}
		if resp.ResumeURL == nil || !strings.Contains(*resp.ResumeURL, "signed") {
			t.Errorf("expected a signed resume url, got %v", resp.ResumeURL)
		}
	})

	// Wrong password and unknown email must be indistinguishable.
	wrongPassword := doJSON(router, http.MethodPost, "/api/login",
		`{"email":"ada@uvic.ca","password":"wrong"}`)
	unknownEmail := doJSON(router, http.MethodPost, "/api/login",
		`{"email":"ghost@uvic.ca","password":"correct-horse"}`)

	if wrongPassword.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", wrongPassword.Code)
	}
	if unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email: expected 401, got %d", unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Errorf("401 bodies differ: %q vs %q", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}
