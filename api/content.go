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

const eventDateLayout = "2006-01-02"

// ContentHandler serves the content admin: blog posts, events and news
// articles share one dashboard and three structurally identical CRUD triples.
type ContentHandler struct {
	blog     repository.BlogRepo
	events   repository.EventRepo
	news     repository.NewsRepo
	audit    audit.Recorder
	sessions *session.Manager
	renderer *render.Renderer
}

func NewContentHandler(blog repository.BlogRepo, events repository.EventRepo, news repository.NewsRepo, rec audit.Recorder, sessions *session.Manager, renderer *render.Renderer) *ContentHandler {
	return &ContentHandler{blog: blog, events: events, news: news, audit: rec, sessions: sessions, renderer: renderer}
}

func (h *ContentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
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

	msg, level := h.sessions.PopFlash(r.Context(), sessionFromContext(r.Context()))
	renderPage(h.renderer, w, "badmin.html", page{"Posts": posts, "Events": events, "Articles": articles, "Flash": msg, "FlashLevel": level})
}

func (h *ContentHandler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderPage(h.renderer, w, "blog_form.html", page{"Title": "Create Blog Post"})
		return
	}

	p, errMsg := blogForm(r)
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
		renderPage(h.renderer, w, "blog_form.html", page{"Title": "Create Blog Post", "Error": errMsg})
		return
	}

	id, err := h.blog.CreateBlogPost(r.Context(), p)
	if err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityBlogPost, id, models.ActionAdded, fmt.Sprintf("Blog post %q created.", p.Title))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Blog post created successfully.", "success")
	http.Redirect(w, r, RealmContent.HomePath, http.StatusSeeOther)
}

func (h *ContentHandler) EditBlogPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	existing, err := h.blog.GetBlogPost(r.Context(), id)
	if err != nil {
		storageError(w, err)
		return
	}

	if r.Method == http.MethodGet {
		renderPage(h.renderer, w, "blog_form.html", page{"Title": "Edit Blog Post", "Post": existing})
		return
	}

	p, errMsg := blogForm(r)
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
		renderPage(h.renderer, w, "blog_form.html", page{"Title": "Edit Blog Post", "Post": existing, "Error": errMsg})
		return
	}

	p.ID = id
	if err := h.blog.UpdateBlogPost(r.Context(), p); err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityBlogPost, id, models.ActionEdited, fmt.Sprintf("Blog post %q edited.", p.Title))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Blog post updated successfully.", "success")
	http.Redirect(w, r, RealmContent.HomePath, http.StatusSeeOther)
}

func (h *ContentHandler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	p, err := h.blog.GetBlogPost(r.Context(), id)
	if err != nil {
		storageError(w, err)
		return
	}

	if err := h.blog.DeleteBlogPost(r.Context(), id); err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityBlogPost, id, models.ActionDeleted, fmt.Sprintf("Blog post %q deleted.", p.Title))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Blog post deleted successfully.", "success")
	http.Redirect(w, r, RealmContent.HomePath, http.StatusSeeOther)
}

func (h *ContentHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderPage(h.renderer, w, "event_form.html", page{"Title": "Create Event"})
		return
	}

	e, errMsg := eventForm(r)
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
		renderPage(h.renderer, w, "event_form.html", page{"Title": "Create Event", "Error": errMsg})
		return
	}

	id, err := h.events.CreateEvent(r.Context(), e)
	if err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityEvent, id, models.ActionAdded, fmt.Sprintf("Event %q created.", e.Title))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Event created successfully.", "success")
	http.Redirect(w, r, RealmContent.HomePath, http.StatusSeeOther)
}

func (h *ContentHandler) EditEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	existing, err := h.events.GetEvent(r.Context(), id)
	if err != nil {
		storageError(w, err)
		return
	}

	if r.Method == http.MethodGet {
		renderPage(h.renderer, w, "event_form.html", page{"Title": "Edit Event", "Event": existing})
		return
	}

	e, errMsg := eventForm(r)
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
		renderPage(h.renderer, w, "event_form.html", page{"Title": "Edit Event", "Event": existing, "Error": errMsg})
		return
	}

	e.ID = id
	if err := h.events.UpdateEvent(r.Context(), e); err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityEvent, id, models.ActionEdited, fmt.Sprintf("Event %q edited.", e.Title))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Event updated successfully.", "success")
	http.Redirect(w, r, RealmContent.HomePath, http.StatusSeeOther)
}

func (h *ContentHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	e, err := h.events.GetEvent(r.Context(), id)
	if err != nil {
		storageError(w, err)
		return
	}

	if err := h.events.DeleteEvent(r.Context(), id); err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityEvent, id, models.ActionDeleted, fmt.Sprintf("Event %q deleted.", e.Title))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Event deleted successfully.", "success")
	http.Redirect(w, r, RealmContent.HomePath, http.StatusSeeOther)
}

func (h *ContentHandler) CreateNewsArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderPage(h.renderer, w, "news_form.html", page{"Title": "Create News Article"})
		return
	}

	n, errMsg := newsForm(r)
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
		renderPage(h.renderer, w, "news_form.html", page{"Title": "Create News Article", "Error": errMsg})
		return
	}

	id, err := h.news.CreateNewsArticle(r.Context(), n)
	if err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityNewsArticle, id, models.ActionAdded, fmt.Sprintf("News article %q created.", n.Title))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "News article created successfully.", "success")
	http.Redirect(w, r, RealmContent.HomePath, http.StatusSeeOther)
}

func (h *ContentHandler) EditNewsArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	existing, err := h.news.GetNewsArticle(r.Context(), id)
	if err != nil {
		storageError(w, err)
		return
	}

	if r.Method == http.MethodGet {
		renderPage(h.renderer, w, "news_form.html", page{"Title": "Edit News Article", "Article": existing})
		return
	}

	n, errMsg := newsForm(r)
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
		renderPage(h.renderer, w, "news_form.html", page{"Title": "Edit News Article", "Article": existing, "Error": errMsg})
		return
	}

	n.ID = id
	if err := h.news.UpdateNewsArticle(r.Context(), n); err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityNewsArticle, id, models.ActionEdited, fmt.Sprintf("News article %q edited.", n.Title))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "News article updated successfully.", "success")
	http.Redirect(w, r, RealmContent.HomePath, http.StatusSeeOther)
}

func (h *ContentHandler) DeleteNewsArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	n, err := h.news.GetNewsArticle(r.Context(), id)
	if err != nil {
		storageError(w, err)
		return
	}

	if err := h.news.DeleteNewsArticle(r.Context(), id); err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityNewsArticle, id, models.ActionDeleted, fmt.Sprintf("News article %q deleted.", n.Title))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "News article deleted successfully.", "success")
	http.Redirect(w, r, RealmContent.HomePath, http.StatusSeeOther)
}

func blogForm(r *http.Request) (*models.BlogPost, string) {
	if err := r.ParseForm(); err != nil {
		return nil, "Invalid form submission."
	}

	title := strings.TrimSpace(r.PostFormValue("title"))
	content := strings.TrimSpace(r.PostFormValue("content"))
	author := strings.TrimSpace(r.PostFormValue("author"))
	if title == "" || content == "" || author == "" {
		return nil, "Title, content and author are required."
	}

	return &models.BlogPost{Title: title, Content: content, Author: author}, ""
}

func eventForm(r *http.Request) (*models.Event, string) {
	if err := r.ParseForm(); err != nil {
		return nil, "Invalid form submission."
	}

	title := strings.TrimSpace(r.PostFormValue("title"))
	description := strings.TrimSpace(r.PostFormValue("description"))
	dateStr := strings.TrimSpace(r.PostFormValue("date"))
	location := strings.TrimSpace(r.PostFormValue("location"))
	if title == "" || description == "" || dateStr == "" || location == "" {
		return nil, "Title, description, date and location are required."
	}
	date, err := time.ParseInLocation(eventDateLayout, dateStr, time.UTC)
	if err != nil {
		return nil, "Date must be in YYYY-MM-DD format."
	}

	return &models.Event{Title: title, Description: description, Date: date, Location: location}, ""
}

func newsForm(r *http.Request) (*models.NewsArticle, string) {
	if err := r.ParseForm(); err != nil {
		return nil, "Invalid form submission."
	}

	title := strings.TrimSpace(r.PostFormValue("title"))
	content := strings.TrimSpace(r.PostFormValue("content"))
	author := strings.TrimSpace(r.PostFormValue("author"))
	if title == "" || content == "" || author == "" {
		return nil, "Title, content and author are required."
	}

	return &models.NewsArticle{Title: title, Content: content, Author: author}, ""
}
