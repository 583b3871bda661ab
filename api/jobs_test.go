package api_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/kloop/amco/api"
	"github.com/kloop/amco/internal/audit"
	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/internal/render"
	"github.com/kloop/amco/internal/session"
	"github.com/kloop/amco/pkg/repository/mock"
)

type jobsFixture struct {
	mocks   *mock.Mocks
	handler *api.JobsHandler
}

func newJobsFixture(t *testing.T) *jobsFixture {
	t.Helper()

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New error: %v", err)
	}
	mocks := mock.NewMocks()
	sessions := session.NewManager(mocks.Sessions, "testsecret", time.Hour, nil)
	recorder := audit.NewRecorder(mocks.Audit, nil)

	return &jobsFixture{
		mocks:   mocks,
		handler: api.NewJobsHandler(mocks.Jobs, mocks.Applications, recorder, sessions, renderer),
	}
}

func TestAddJob(t *testing.T) {
	tests := []struct {
		name         string
		form         url.Values
		wantStatus   int
		wantDeadline bool
	}{
		{
			name: "WithDeadline",
			form: url.Values{
				"title":        {"Engineer"},
				"description":  {"d"},
				"requirements": {"r"},
				"deadline":     {"2026-12-31T17:00"},
			},
			wantStatus:   http.StatusSeeOther,
			wantDeadline: true,
		},
		{
			name: "OpenEnded",
			form: url.Values{
				"title":        {"Engineer"},
				"description":  {"d"},
				"requirements": {"r"},
			},
			wantStatus: http.StatusSeeOther,
		},
		{
			name:       "MissingTitle",
			form:       url.Values{"description": {"d"}, "requirements": {"r"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "BadDeadline",
			form: url.Values{
				"title":        {"Engineer"},
				"description":  {"d"},
				"requirements": {"r"},
				"deadline":     {"next friday"},
			},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newJobsFixture(t)
			rec := httptest.NewRecorder()
			f.handler.AddJob(rec, postForm("/vadmin/add_job", tt.form))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusSeeOther {
				if len(f.mocks.Jobs.Stored) != 0 {
					t.Fatalf("rejected submission stored a job")
				}
				return
			}
			if len(f.mocks.Jobs.Stored) != 1 {
				t.Fatalf("expected 1 job, got %d", len(f.mocks.Jobs.Stored))
			}
			for _, j := range f.mocks.Jobs.Stored {
				if tt.wantDeadline != (j.Deadline != nil) {
					t.Fatalf("deadline = %v, want set: %v", j.Deadline, tt.wantDeadline)
				}
				if tt.wantDeadline {
					want := time.Date(2026, 12, 31, 17, 0, 0, 0, time.UTC)
					if !j.Deadline.Equal(want) {
						t.Fatalf("deadline = %v, want %v", j.Deadline, want)
					}
				}
			}
		})
	}
}

func TestDeleteAppliedJobRedirectsToItsList(t *testing.T) {
	f := newJobsFixture(t)
	if _, err := f.mocks.Applications.CreateApplication(t.Context(), &models.AppliedJob{JobID: 7, FirstName: "A", FatherName: "B", ApplicantEmail: "a@b.c", CVPath: "x.pdf"}); err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/vadmin/delete_applied_job/1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	f.handler.DeleteAppliedJob(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/vadmin/applied_jobs/7" {
		t.Fatalf("Location = %q, want /vadmin/applied_jobs/7", loc)
	}
	if len(f.mocks.Applications.Stored) != 0 {
		t.Fatalf("application still present after delete")
	}
}

func TestAppliedJobsListsOnlyThatJob(t *testing.T) {
	f := newJobsFixture(t)
	if _, err := f.mocks.Applications.CreateApplication(t.Context(), &models.AppliedJob{JobID: 1, FirstName: "Alice", FatherName: "B", ApplicantEmail: "a@b.c", CVPath: "a.pdf"}); err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}
	if _, err := f.mocks.Applications.CreateApplication(t.Context(), &models.AppliedJob{JobID: 2, FirstName: "Carol", FatherName: "D", ApplicantEmail: "c@d.e", CVPath: "c.pdf"}); err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/vadmin/applied_jobs/1", nil)
	req = mux.SetURLVars(req, map[string]string{"job_id": "1"})
	rec := httptest.NewRecorder()
	f.handler.AppliedJobs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Alice") {
		t.Fatalf("applicant missing:\n%s", body)
	}
	if strings.Contains(body, "Carol") {
		t.Fatalf("other job's applicant shown:\n%s", body)
	}
}
