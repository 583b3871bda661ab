package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/kloop/amco/api"
	"github.com/kloop/amco/internal/audit"
	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/internal/render"
	"github.com/kloop/amco/internal/session"
	"github.com/kloop/amco/internal/storage"
	"github.com/kloop/amco/pkg/repository/mock"
)

type teamFixture struct {
	mocks   *mock.Mocks
	handler *api.TeamHandler
}

func newTeamFixture(t *testing.T) *teamFixture {
	t.Helper()

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New error: %v", err)
	}
	files, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}
	mocks := mock.NewMocks()
	sessions := session.NewManager(mocks.Sessions, "testsecret", time.Hour, nil)
	recorder := audit.NewRecorder(mocks.Audit, nil)

	return &teamFixture{
		mocks:   mocks,
		handler: api.NewTeamHandler(mocks.Team, files, recorder, sessions, renderer),
	}
}

func TestAddMember(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		photoName  string
		wantStatus int
	}{
		{"Success", map[string]string{"name": "Dana", "job_title": "CTO"}, "dana.jpg", http.StatusSeeOther},
		{"MissingName", map[string]string{"job_title": "CTO"}, "dana.jpg", http.StatusBadRequest},
		{"MissingPhoto", map[string]string{"name": "Dana", "job_title": "CTO"}, "", http.StatusBadRequest},
		{"BadPhotoType", map[string]string{"name": "Dana", "job_title": "CTO"}, "dana.bmp", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTeamFixture(t)

			fileField := ""
			if tt.photoName != "" {
				fileField = "photo"
			}
			body, contentType := multipartForm(t, tt.fields, fileField, tt.photoName, "photo-bytes")
			req := httptest.NewRequest(http.MethodPost, "/tagin/team/add", body)
			req.Header.Set("Content-Type", contentType)

			rec := httptest.NewRecorder()
			f.handler.AddMember(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusSeeOther {
				if len(f.mocks.Team.Stored) != 0 {
					t.Fatalf("rejected submission stored a member")
				}
				return
			}

			if loc := rec.Header().Get("Location"); loc != "/tagin/team" {
				t.Fatalf("Location = %q, want /tagin/team", loc)
			}
			for _, m := range f.mocks.Team.Stored {
				if !strings.HasPrefix(m.PhotoURL, "/uploads/") || !strings.HasSuffix(m.PhotoURL, "_dana.jpg") {
					t.Fatalf("photo url %q not served from the upload dir", m.PhotoURL)
				}
			}
			if len(f.mocks.Audit.Stored) != 1 || f.mocks.Audit.Stored[0].EntityType != models.EntityTeamMember {
				t.Fatalf("audit trail %#v", f.mocks.Audit.Stored)
			}
		})
	}
}

func TestEditMemberKeepsPhotoWhenNotReuploaded(t *testing.T) {
	f := newTeamFixture(t)
	id, err := f.mocks.Team.CreateTeamMember(t.Context(), &models.TeamMember{Name: "Dana", JobTitle: "CTO", PhotoURL: "/uploads/orig.jpg"})
	if err != nil {
		t.Fatalf("CreateTeamMember error: %v", err)
	}

	body, contentType := multipartForm(t, map[string]string{"name": "Dana", "job_title": "CEO"}, "", "", "")
	req := httptest.NewRequest(http.MethodPost, "/tagin/team/edit/1", body)
	req.Header.Set("Content-Type", contentType)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})

	rec := httptest.NewRecorder()
	f.handler.EditMember(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body:\n%s", rec.Code, rec.Body.String())
	}
	m, err := f.mocks.Team.GetTeamMember(t.Context(), id)
	if err != nil {
		t.Fatalf("GetTeamMember error: %v", err)
	}
	if m.JobTitle != "CEO" {
		t.Fatalf("member not updated: %#v", m)
	}
	if m.PhotoURL != "/uploads/orig.jpg" {
		t.Fatalf("photo replaced without a new upload: %q", m.PhotoURL)
	}
}

func TestDeleteMember(t *testing.T) {
	f := newTeamFixture(t)
	if _, err := f.mocks.Team.CreateTeamMember(t.Context(), &models.TeamMember{Name: "Dana", JobTitle: "CTO", PhotoURL: "/uploads/d.jpg"}); err != nil {
		t.Fatalf("CreateTeamMember error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/tagin/team/delete/1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	f.handler.DeleteMember(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if len(f.mocks.Team.Stored) != 0 {
		t.Fatalf("member still present after delete")
	}
	if len(f.mocks.Audit.Stored) != 1 || f.mocks.Audit.Stored[0].Action != models.ActionDeleted {
		t.Fatalf("audit trail %#v", f.mocks.Audit.Stored)
	}
}
