package api

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/kloop/amco/internal/audit"
	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/internal/render"
	"github.com/kloop/amco/internal/storage"
	"github.com/kloop/amco/pkg/repository"
)

// PublicHandler serves the visitor-facing pages: home, catalog, vacancies,
// the application form, content and the team roster.
type PublicHandler struct {
	products     repository.ProductRepo
	jobs         repository.JobRepo
	applications repository.ApplicationRepo
	blog         repository.BlogRepo
	events       repository.EventRepo
	news         repository.NewsRepo
	team         repository.TeamRepo
	files        storage.FileStore
	audit        audit.Recorder
	renderer     *render.Renderer
}

func NewPublicHandler(
	products repository.ProductRepo,
	jobs repository.JobRepo,
	applications repository.ApplicationRepo,
	blog repository.BlogRepo,
	events repository.EventRepo,
	news repository.NewsRepo,
	team repository.TeamRepo,
	files storage.FileStore,
	rec audit.Recorder,
	renderer *render.Renderer,
) *PublicHandler {
	return &PublicHandler{
		products:     products,
		jobs:         jobs,
		applications: applications,
		blog:         blog,
		events:       events,
		news:         news,
		team:         team,
		files:        files,
		audit:        rec,
		renderer:     renderer,
	}
}

func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	renderPage(h.renderer, w, "home.html", page{})
}

func (h *PublicHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}

	renderPage(h.renderer, w, "prod.html", page{"Products": products})
}

// Vacancies lists only jobs still accepting applications.
func (h *PublicHandler) Vacancies(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.ListActiveJobs(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}

	renderPage(h.renderer, w, "vacancy.html", page{"Jobs": jobs})
}

// Search matches job titles case-insensitively on a substring.
func (h *PublicHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	term := strings.TrimSpace(r.PostFormValue("search_term"))

	jobs, err := h.jobs.SearchJobs(r.Context(), term)
	if err != nil {
		storageError(w, err)
		return
	}

	renderPage(h.renderer, w, "search_results.html", page{"Jobs": jobs, "SearchTerm": term})
}

func (h *PublicHandler) About(w http.ResponseWriter, r *http.Request) {
	members, err := h.team.ListTeamMembers(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}

	renderPage(h.renderer, w, "about.html", page{"Members": members})
}

func (h *PublicHandler) Blog(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.ListBlogPosts(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}
	events, err := h.events.ListEvents(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}
	articles, err := h.news.ListNewsArticles(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}

	renderPage(h.renderer, w, "bloog.html", page{"Posts": posts, "Events": events, "Articles": articles})
}

// Apply serves the application form and processes submissions. The deadline
// is checked on every request; a closed job never gains a row.
func (h *PublicHandler) Apply(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(r, "job_id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	job, err := h.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		storageError(w, err)
		return
	}

	if !job.Active(time.Now().UTC()) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
		}
		renderPage(h.renderer, w, "apply.html", page{"Job": job, "Closed": true, "Error": "Application deadline has passed."})
		return
	}

	if r.Method == http.MethodGet {
		renderPage(h.renderer, w, "apply.html", page{"Job": job})
		return
	}

	app, errMsg := h.applicationForm(r, jobID)
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
		renderPage(h.renderer, w, "apply.html", page{"Job": job, "Error": errMsg})
		return
	}

	id, err := h.applications.CreateApplication(r.Context(), app)
	if err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityAppliedJob, id, models.ActionAdded, fmt.Sprintf("Application for job %q received.", job.Title))
	http.Redirect(w, r, "/vacancy", http.StatusSeeOther)
}

// Uploads serves stored images inline.
func (h *PublicHandler) Uploads(w http.ResponseWriter, r *http.Request) {
	p, err := h.files.Path(mux.Vars(r)["filename"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}

		storageError(w, err)
		return
	}

	http.ServeFile(w, r, p)
}

// DownloadCV serves a stored CV as an attachment.
func (h *PublicHandler) DownloadCV(w http.ResponseWriter, r *http.Request) {
	p, err := h.files.Path(mux.Vars(r)["path"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}

		storageError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(p)))
	http.ServeFile(w, r, p)
}

func (h *PublicHandler) applicationForm(r *http.Request, jobID int64) (*models.AppliedJob, string) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, "Invalid form submission."
	}

	firstName := strings.TrimSpace(r.PostFormValue("first_name"))
	fatherName := strings.TrimSpace(r.PostFormValue("father_name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	if firstName == "" || fatherName == "" || email == "" {
		return nil, "First name, father name and email are required."
	}

	app := &models.AppliedJob{
		JobID:          jobID,
		FirstName:      firstName,
		FatherName:     fatherName,
		ApplicantEmail: email,
		Gender:         strings.TrimSpace(r.PostFormValue("gender")),
	}
	if raw := strings.TrimSpace(r.PostFormValue("age")); raw != "" {
		age, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || age < 0 {
			return nil, "Age must be a non-negative number."
		}
		app.Age = &age
	}

	file, header, err := r.FormFile("cv")
	if err != nil {
		return nil, "A CV file is required."
	}
	defer file.Close()

	stored, err := h.files.Save(header.Filename, file, storage.KindCV)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidType) {
			return nil, "CV must be a pdf, doc, docx or txt file."
		}
		return nil, "Could not store the uploaded CV."
	}
	app.CVPath = stored

	return app, ""
}
