package api

import (
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/kloop/amco/internal/render"
	"github.com/kloop/amco/internal/session"
	"github.com/kloop/amco/pkg/repository"
)

type AuthHandler struct {
	admins   repository.AdminRepo
	sessions *session.Manager
	renderer *render.Renderer
}

// NewAuthHandler creates an AuthHandler backed by the admins credential store.
func NewAuthHandler(admins repository.AdminRepo, sessions *session.Manager, renderer *render.Renderer) *AuthHandler {
	return &AuthHandler{admins: admins, sessions: sessions, renderer: renderer}
}

// Login serves the realm's login form and processes submissions. A successful
// login grants only this realm on the session.
func (h *AuthHandler) Login(realm Realm) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			renderPage(h.renderer, w, "login.html", page{"Title": realm.Title, "Action": realm.LoginPath})
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		username := strings.TrimSpace(r.PostFormValue("username"))
		password := r.PostFormValue("password")
		if username == "" || password == "" {
			w.WriteHeader(http.StatusBadRequest)
			renderPage(h.renderer, w, "login.html", page{"Title": realm.Title, "Action": realm.LoginPath, "Error": "Username and password are required."})
			return
		}

		admin, err := h.admins.GetAdminByUsername(r.Context(), username)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			storageError(w, err)
			return
		}
		if admin == nil || bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
			w.WriteHeader(http.StatusUnauthorized)
			renderPage(h.renderer, w, "login.html", page{"Title": realm.Title, "Action": realm.LoginPath, "Error": "Invalid username or password."})
			return
		}

		s, err := h.sessions.Ensure(w, r)
		if err != nil {
			storageError(w, err)
			return
		}
		s.GrantRealm(realm.Name)
		if err := h.sessions.Save(r.Context(), s); err != nil {
			storageError(w, err)
			return
		}

		logger.Info("login", slog.String("realm", realm.Name), slog.String("username", username))
		http.Redirect(w, r, realm.HomePath, http.StatusSeeOther)
	}
}

// Logout revokes this realm's grant and redirects to its login page. Grants
// for other realms on the same session are untouched.
func (h *AuthHandler) Logout(realm Realm) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := h.sessions.Load(r)
		if err != nil {
			storageError(w, err)
			return
		}
		if s != nil && s.HasRealm(realm.Name) {
			s.RevokeRealm(realm.Name)
			if err := h.sessions.Save(r.Context(), s); err != nil {
				storageError(w, err)
				return
			}
		}

		http.Redirect(w, r, realm.LoginPath, http.StatusFound)
	}
}
