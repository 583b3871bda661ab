package api

import (
	"fmt"
	"net/http"

	"github.com/kloop/amco/internal/render"
	"github.com/kloop/amco/internal/session"
	"github.com/kloop/amco/pkg/repository"
)

// AuditLogHandler serves the audit admin: the full action history and the
// explicit delete route it insists on keeping.
type AuditLogHandler struct {
	actions  repository.AuditRepo
	sessions *session.Manager
	renderer *render.Renderer
}

func NewAuditLogHandler(actions repository.AuditRepo, sessions *session.Manager, renderer *render.Renderer) *AuditLogHandler {
	return &AuditLogHandler{actions: actions, sessions: sessions, renderer: renderer}
}

// Dashboard shows the full history, newest first.
func (h *AuditLogHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actions, err := h.actions.ListActions(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}

	msg, level := h.sessions.PopFlash(r.Context(), sessionFromContext(r.Context()))
	renderPage(h.renderer, w, "super.html", page{"Actions": actions, "Flash": msg, "FlashLevel": level})
}

func (h *AuditLogHandler) DeleteAction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if _, err := h.actions.GetAction(r.Context(), id); err != nil {
		storageError(w, err)
		return
	}

	if err := h.actions.DeleteAction(r.Context(), id); err != nil {
		storageError(w, err)
		return
	}

	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), fmt.Sprintf("Action %d deleted.", id), "success")
	http.Redirect(w, r, RealmAudit.HomePath, http.StatusSeeOther)
}
