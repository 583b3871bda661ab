package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kloop/amco/internal/audit"
	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/internal/render"
	"github.com/kloop/amco/internal/session"
	"github.com/kloop/amco/pkg/repository"
)

// deadlineLayout matches the browser's datetime-local input format.
const deadlineLayout = "2006-01-02T15:04"

type JobsHandler struct {
	jobs         repository.JobRepo
	applications repository.ApplicationRepo
	audit        audit.Recorder
	sessions     *session.Manager
	renderer     *render.Renderer
}

func NewJobsHandler(jobs repository.JobRepo, applications repository.ApplicationRepo, rec audit.Recorder, sessions *session.Manager, renderer *render.Renderer) *JobsHandler {
	return &JobsHandler{jobs: jobs, applications: applications, audit: rec, sessions: sessions, renderer: renderer}
}

// Dashboard lists every job, active or not, for the job admin.
func (h *JobsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.ListJobs(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}

	msg, level := h.sessions.PopFlash(r.Context(), sessionFromContext(r.Context()))
	renderPage(h.renderer, w, "vadmin.html", page{"Jobs": jobs, "Flash": msg, "FlashLevel": level})
}

func (h *JobsHandler) AddJob(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderPage(h.renderer, w, "job_form.html", page{"Title": "Add Job"})
		return
	}

	j, errMsg := jobForm(r)
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
		renderPage(h.renderer, w, "job_form.html", page{"Title": "Add Job", "Error": errMsg})
		return
	}

	id, err := h.jobs.CreateJob(r.Context(), j)
	if err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityJob, id, models.ActionAdded, fmt.Sprintf("Job %q added.", j.Title))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Job added successfully.", "success")
	http.Redirect(w, r, RealmJob.HomePath, http.StatusSeeOther)
}

func (h *JobsHandler) EditJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	existing, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		storageError(w, err)
		return
	}

	if r.Method == http.MethodGet {
		renderPage(h.renderer, w, "job_form.html", page{"Title": "Edit Job", "Job": existing})
		return
	}

	j, errMsg := jobForm(r)
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
		renderPage(h.renderer, w, "job_form.html", page{"Title": "Edit Job", "Job": existing, "Error": errMsg})
		return
	}

	j.ID = id
	if err := h.jobs.UpdateJob(r.Context(), j); err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityJob, id, models.ActionEdited, fmt.Sprintf("Job %q edited.", j.Title))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Job updated successfully.", "success")
	http.Redirect(w, r, RealmJob.HomePath, http.StatusSeeOther)
}

func (h *JobsHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	j, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		storageError(w, err)
		return
	}

	if err := h.jobs.DeleteJob(r.Context(), id); err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityJob, id, models.ActionDeleted, fmt.Sprintf("Job %q deleted.", j.Title))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Job deleted successfully.", "success")
	http.Redirect(w, r, RealmJob.HomePath, http.StatusSeeOther)
}

// AppliedJobs lists the applications submitted for one job.
func (h *JobsHandler) AppliedJobs(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(r, "job_id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	apps, err := h.applications.ListApplicationsByJob(r.Context(), jobID)
	if err != nil {
		storageError(w, err)
		return
	}

	msg, level := h.sessions.PopFlash(r.Context(), sessionFromContext(r.Context()))
	renderPage(h.renderer, w, "applied_jobs.html", page{"Applications": apps, "JobID": jobID, "Flash": msg, "FlashLevel": level})
}

func (h *JobsHandler) DeleteAppliedJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	app, err := h.applications.GetApplication(r.Context(), id)
	if err != nil {
		storageError(w, err)
		return
	}

	if err := h.applications.DeleteApplication(r.Context(), id); err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityAppliedJob, id, models.ActionDeleted, fmt.Sprintf("Application %d for job %d deleted.", id, app.JobID))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Application deleted successfully.", "success")
	http.Redirect(w, r, fmt.Sprintf("/vadmin/applied_jobs/%d", app.JobID), http.StatusSeeOther)
}

func jobForm(r *http.Request) (*models.Job, string) {
	if err := r.ParseForm(); err != nil {
		return nil, "Invalid form submission."
	}

	title := strings.TrimSpace(r.PostFormValue("title"))
	description := strings.TrimSpace(r.PostFormValue("description"))
	requirements := strings.TrimSpace(r.PostFormValue("requirements"))
	if title == "" || description == "" || requirements == "" {
		return nil, "Title, description and requirements are required."
	}

	j := &models.Job{Title: title, Description: description, Requirements: requirements}
	if raw := strings.TrimSpace(r.PostFormValue("deadline")); raw != "" {
		t, err := time.ParseInLocation(deadlineLayout, raw, time.UTC)
		if err != nil {
			return nil, "Deadline must be in YYYY-MM-DDTHH:MM format."
		}
		j.Deadline = &t
	}

	return j, ""
}
