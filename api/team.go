package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kloop/amco/internal/audit"
	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/internal/render"
	"github.com/kloop/amco/internal/session"
	"github.com/kloop/amco/internal/storage"
	"github.com/kloop/amco/pkg/repository"
)

type TeamHandler struct {
	team     repository.TeamRepo
	files    storage.FileStore
	audit    audit.Recorder
	sessions *session.Manager
	renderer *render.Renderer
}

func NewTeamHandler(team repository.TeamRepo, files storage.FileStore, rec audit.Recorder, sessions *session.Manager, renderer *render.Renderer) *TeamHandler {
	return &TeamHandler{team: team, files: files, audit: rec, sessions: sessions, renderer: renderer}
}

// Dashboard lists the roster and carries the add-member form.
func (h *TeamHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	members, err := h.team.ListTeamMembers(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}

	msg, level := h.sessions.PopFlash(r.Context(), sessionFromContext(r.Context()))
	renderPage(h.renderer, w, "team.html", page{"Members": members, "Flash": msg, "FlashLevel": level})
}

func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	m, errMsg := h.memberForm(r, true)
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
	}

	id, err := h.team.CreateTeamMember(r.Context(), m)
	if err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityTeamMember, id, models.ActionAdded, fmt.Sprintf("Team member %q added.", m.Name))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Team member added successfully.", "success")
	http.Redirect(w, r, RealmTeam.HomePath, http.StatusSeeOther)
}

func (h *TeamHandler) EditMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	existing, err := h.team.GetTeamMember(r.Context(), id)
	if err != nil {
		storageError(w, err)
		return
	}

	if r.Method == http.MethodGet {
		renderPage(h.renderer, w, "member_form.html", page{"Title": "Edit Team Member", "Member": existing})
		return
	}

	m, errMsg := h.memberForm(r, false)
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
		renderPage(h.renderer, w, "member_form.html", page{"Title": "Edit Team Member", "Member": existing, "Error": errMsg})
		return
	}

	m.ID = id
	if m.PhotoURL == "" {
		m.PhotoURL = existing.PhotoURL
	}
	if err := h.team.UpdateTeamMember(r.Context(), m); err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityTeamMember, id, models.ActionEdited, fmt.Sprintf("Team member %q edited.", m.Name))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Team member updated successfully.", "success")
	http.Redirect(w, r, RealmTeam.HomePath, http.StatusSeeOther)
}

func (h *TeamHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	m, err := h.team.GetTeamMember(r.Context(), id)
	if err != nil {
		storageError(w, err)
		return
	}

	if err := h.team.DeleteTeamMember(r.Context(), id); err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityTeamMember, id, models.ActionDeleted, fmt.Sprintf("Team member %q deleted.", m.Name))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Team member deleted successfully.", "success")
	http.Redirect(w, r, RealmTeam.HomePath, http.StatusSeeOther)
}

func (h *TeamHandler) memberForm(r *http.Request, requirePhoto bool) (*models.TeamMember, string) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, "Invalid form submission."
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	jobTitle := strings.TrimSpace(r.PostFormValue("job_title"))
	if name == "" || jobTitle == "" {
		return nil, "Name and job title are required."
	}

	m := &models.TeamMember{Name: name, JobTitle: jobTitle}

	file, header, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer file.Close()
		stored, err := h.files.Save(header.Filename, file, storage.KindImage)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidType) {
				return nil, "Photo must be a png, jpg, jpeg or gif file."
			}
			return nil, "Could not store the uploaded photo."
		}
		m.PhotoURL = "/uploads/" + stored
	case errors.Is(err, http.ErrMissingFile):
		if requirePhoto {
			return nil, "A photo file is required."
		}
	default:
		return nil, "Invalid photo upload."
	}

	return m, ""
}
