package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"talentmatch/internal/contextutil"
	"talentmatch/internal/storage"
	storage_mocks "talentmatch/internal/storage/mocks"
)

// stubObjects is a minimal object store double for handler tests.
type stubObjects struct {
	base    string
	puts    map[string][]byte
	deleted []string
}

func newStubObjects() *stubObjects {
	return &stubObjects{base: "http://localhost:8080", puts: make(map[string][]byte)}
}

func (s *stubObjects) Put(ctx context.Context, path string, data []byte) error {
	s.puts[path] = data
	return nil
}

func (s *stubObjects) URL(path string) string {
	return s.base + "/files/" + path
}

func (s *stubObjects) Delete(ctx context.Context, path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

func callerRequest(req *http.Request, caller contextutil.Caller) *http.Request {
	return req.WithContext(contextutil.WithCaller(req.Context(), caller))
}

func profileFixture() *storage.ProfileRecord {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &storage.ProfileRecord{
		ID:            "prof-1",
		FullName:      "Dana Fox",
		Email:         "dana@example.com",
		Role:          storage.RoleCandidate,
		RoleConfirmed: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func decodeProfile(t *testing.T, w *httptest.ResponseRecorder) ProfileResponse {
	t.Helper()
	var resp ProfileResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode profile response: %v", err)
	}
	return resp
}

func TestSignup_CreatesCandidateByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := storage_mocks.NewMockProfileStore(ctrl)
	h := NewProfileHandler(profiles, newStubObjects())

	profiles.EXPECT().GetByEmail(gomock.Any(), "dana@example.com").Return(nil, storage.ErrNotFound)
	profiles.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *storage.ProfileRecord) error {
			if p.Role != storage.RoleCandidate {
				t.Errorf("expected default candidate role, got %q", p.Role)
			}
			if p.RoleConfirmed {
				t.Error("signup must not confirm the role")
			}
			p.ID = "prof-1"
			return nil
		})
	created := profileFixture()
	created.RoleConfirmed = false
	profiles.EXPECT().GetByID(gomock.Any(), "prof-1").Return(created, nil)

	body := `{"full_name": "Dana Fox", "email": "dana@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Signup(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeProfile(t, w)
	if resp.ID != "prof-1" || resp.Email != "dana@example.com" {
		t.Errorf("unexpected profile in response: %+v", resp)
	}
	if resp.Role != string(storage.RoleCandidate) || resp.RoleConfirmed {
		t.Errorf("expected unconfirmed candidate, got role=%q confirmed=%v", resp.Role, resp.RoleConfirmed)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := storage_mocks.NewMockProfileStore(ctrl)
	h := NewProfileHandler(profiles, newStubObjects())

	profiles.EXPECT().GetByEmail(gomock.Any(), "dana@example.com").Return(profileFixture(), nil)

	body := `{"full_name": "Dana Fox", "email": "dana@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Signup(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
	if got := decodeError(t, w); got != "Email already registered" {
		t.Errorf("unexpected error message %q", got)
	}
}

func TestSignup_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing name", `{"email": "dana@example.com"}`},
		{"invalid email", `{"full_name": "Dana", "email": "not-an-email"}`},
		{"unknown role", `{"full_name": "Dana", "email": "dana@example.com", "role": "wizard"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No store calls expected for rejected input.
			h := NewProfileHandler(storage_mocks.NewMockProfileStore(ctrl), newStubObjects())

			req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Signup(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestGetProfile_RequiresAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewProfileHandler(storage_mocks.NewMockProfileStore(ctrl), newStubObjects())

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestGetProfile_DerivesResumeURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := storage_mocks.NewMockProfileStore(ctrl)
	h := NewProfileHandler(profiles, newStubObjects())

	profile := profileFixture()
	profile.ResumePath = "resumes/prof-1/123.pdf"
	profiles.EXPECT().GetByID(gomock.Any(), "prof-1").Return(profile, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req = callerRequest(req, contextutil.Caller{ID: "prof-1", Role: storage.RoleCandidate, RoleConfirmed: true})
	w := httptest.NewRecorder()
	h.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	resp := decodeProfile(t, w)
	want := "http://localhost:8080/files/resumes/prof-1/123.pdf"
	if resp.ResumeURL != want {
		t.Errorf("expected resume URL %q, got %q", want, resp.ResumeURL)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := storage_mocks.NewMockProfileStore(ctrl)
	h := NewProfileHandler(profiles, newStubObjects())

	profiles.EXPECT().GetByID(gomock.Any(), "prof-1").Return(profileFixture(), nil)
	profiles.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *storage.ProfileRecord) error {
			if p.FullName != "Dana R. Fox" {
				t.Errorf("expected updated name, got %q", p.FullName)
			}
			if p.GitHubURL != "https://github.com/danafox" {
				t.Errorf("expected github link, got %q", p.GitHubURL)
			}
			return nil
		})
	updated := profileFixture()
	updated.FullName = "Dana R. Fox"
	updated.GitHubURL = "https://github.com/danafox"
	profiles.EXPECT().GetByID(gomock.Any(), "prof-1").Return(updated, nil)

	body := `{"full_name": "Dana R. Fox", "github_url": "https://github.com/danafox"}`
	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(body))
	req = callerRequest(req, contextutil.Caller{ID: "prof-1", Role: storage.RoleCandidate, RoleConfirmed: true})
	w := httptest.NewRecorder()
	h.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp := decodeProfile(t, w); resp.GitHubURL != "https://github.com/danafox" {
		t.Errorf("unexpected github link %q", resp.GitHubURL)
	}
}

func TestUpdateProfile_RejectsBadLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewProfileHandler(storage_mocks.NewMockProfileStore(ctrl), newStubObjects())

	body := `{"full_name": "Dana Fox", "linkedin_url": "ftp://linkedin.example"}`
	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(body))
	req = callerRequest(req, contextutil.Caller{ID: "prof-1", Role: storage.RoleCandidate, RoleConfirmed: true})
	w := httptest.NewRecorder()
	h.Update(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if got := decodeError(t, w); got != "Links must be absolute http(s) URLs" {
		t.Errorf("unexpected error message %q", got)
	}
}

func TestConfirmRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := storage_mocks.NewMockProfileStore(ctrl)
	h := NewProfileHandler(profiles, newStubObjects())

	profiles.EXPECT().ConfirmRole(gomock.Any(), "prof-1", storage.RoleRecruiter).Return(nil)
	confirmed := profileFixture()
	confirmed.Role = storage.RoleRecruiter
	profiles.EXPECT().GetByID(gomock.Any(), "prof-1").Return(confirmed, nil)

	body := `{"role": "recruiter"}`
	req := httptest.NewRequest(http.MethodPut, "/api/profile/role", strings.NewReader(body))
	req = callerRequest(req, contextutil.Caller{ID: "prof-1", Role: storage.RoleCandidate})
	w := httptest.NewRecorder()
	h.ConfirmRole(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp := decodeProfile(t, w); resp.Role != string(storage.RoleRecruiter) {
		t.Errorf("expected recruiter role, got %q", resp.Role)
	}
}

func TestConfirmRole_UnknownRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewProfileHandler(storage_mocks.NewMockProfileStore(ctrl), newStubObjects())

	body := `{"role": "admin"}`
	req := httptest.NewRequest(http.MethodPut, "/api/profile/role", strings.NewReader(body))
	req = callerRequest(req, contextutil.Caller{ID: "prof-1", Role: storage.RoleCandidate})
	w := httptest.NewRecorder()
	h.ConfirmRole(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestValidateLink(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"", false},
		{"https://linkedin.com/in/dana", false},
		{"http://example.com", false},
		{"ftp://example.com", true},
		{"not a url", true},
		{"https://", true},
	}

	for _, tt := range tests {
		err := validateLink("website_url", tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateLink(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
	}
}
