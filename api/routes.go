package api

import (
	"github.com/gorilla/mux"

	"github.com/kloop/amco/internal/audit"
	"github.com/kloop/amco/internal/config"
	"github.com/kloop/amco/internal/db"
	"github.com/kloop/amco/internal/render"
	"github.com/kloop/amco/internal/repository/sqlite"
	"github.com/kloop/amco/internal/session"
	"github.com/kloop/amco/internal/storage"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, conn *db.DB) (*mux.Router, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, err
	}
	files, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	repo := sqlite.New(conn, logger)
	sessions := session.NewManager(repo, cfg.SessionSecret, cfg.SessionTTL, logger)
	recorder := audit.NewRecorder(repo, logger)

	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, sessions, renderer)
	publicHandler := NewPublicHandler(repo, repo, repo, repo, repo, repo, repo, files, recorder, renderer)
	productsHandler := NewProductsHandler(repo, files, recorder, sessions, renderer)
	jobsHandler := NewJobsHandler(repo, repo, recorder, sessions, renderer)
	contentHandler := NewContentHandler(repo, repo, repo, recorder, sessions, renderer)
	teamHandler := NewTeamHandler(repo, files, recorder, sessions, renderer)
	auditHandler := NewAuditLogHandler(repo, sessions, renderer)

	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	// System endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// Public pages
	r.HandleFunc("/", publicHandler.Home).Methods("GET")
	r.HandleFunc("/home", publicHandler.Home).Methods("GET")
	r.HandleFunc("/prod", publicHandler.Products).Methods("GET")
	r.HandleFunc("/vacancy", publicHandler.Vacancies).Methods("GET")
	r.HandleFunc("/search", publicHandler.Search).Methods("GET", "POST")
	r.HandleFunc("/about", publicHandler.About).Methods("GET")
	r.HandleFunc("/bloog", publicHandler.Blog).Methods("GET")
	r.HandleFunc("/apply/{job_id}", publicHandler.Apply).Methods("GET", "POST")
	r.HandleFunc("/uploads/{filename}", publicHandler.Uploads).Methods("GET")
	r.HandleFunc("/download_cv/{path:.*}", publicHandler.DownloadCV).Methods("GET")

	// Product realm
	r.HandleFunc("/login", authHandler.Login(RealmProduct)).Methods("GET", "POST")
	r.HandleFunc("/logout", authHandler.Logout(RealmProduct)).Methods("GET")
	r.HandleFunc("/admin", requireRealm(sessions, RealmProduct, productsHandler.Dashboard)).Methods("GET")
	r.HandleFunc("/admin/add_product", requireRealm(sessions, RealmProduct, productsHandler.AddProduct)).Methods("GET", "POST")
	r.HandleFunc("/admin/edit_product/{id}", requireRealm(sessions, RealmProduct, productsHandler.EditProduct)).Methods("GET", "POST")
	r.HandleFunc("/admin/delete_product/{id}", requireRealm(sessions, RealmProduct, productsHandler.DeleteProduct)).Methods("POST")

	// Job realm
	r.HandleFunc("/lagin", authHandler.Login(RealmJob)).Methods("GET", "POST")
	r.HandleFunc("/lagout", authHandler.Logout(RealmJob)).Methods("GET")
	r.HandleFunc("/vadmin", requireRealm(sessions, RealmJob, jobsHandler.Dashboard)).Methods("GET")
	r.HandleFunc("/vadmin/add_job", requireRealm(sessions, RealmJob, jobsHandler.AddJob)).Methods("GET", "POST")
	r.HandleFunc("/vadmin/edit_job/{id}", requireRealm(sessions, RealmJob, jobsHandler.EditJob)).Methods("GET", "POST")
	r.HandleFunc("/vadmin/delete_job/{id}", requireRealm(sessions, RealmJob, jobsHandler.DeleteJob)).Methods("POST")
	r.HandleFunc("/vadmin/applied_jobs/{job_id}", requireRealm(sessions, RealmJob, jobsHandler.AppliedJobs)).Methods("GET")
	r.HandleFunc("/vadmin/delete_applied_job/{id}", requireRealm(sessions, RealmJob, jobsHandler.DeleteAppliedJob)).Methods("POST")

	// Content realm
	r.HandleFunc("/bagin", authHandler.Login(RealmContent)).Methods("GET", "POST")
	r.HandleFunc("/bagout", authHandler.Logout(RealmContent)).Methods("GET")
	r.HandleFunc("/badmin", requireRealm(sessions, RealmContent, contentHandler.Dashboard)).Methods("GET")
	r.HandleFunc("/badmin/blog/create", requireRealm(sessions, RealmContent, contentHandler.CreateBlogPost)).Methods("GET", "POST")
	r.HandleFunc("/badmin/blog/edit/{id}", requireRealm(sessions, RealmContent, contentHandler.EditBlogPost)).Methods("GET", "POST")
	r.HandleFunc("/badmin/blog/delete/{id}", requireRealm(sessions, RealmContent, contentHandler.DeleteBlogPost)).Methods("POST")
	r.HandleFunc("/badmin/events/create", requireRealm(sessions, RealmContent, contentHandler.CreateEvent)).Methods("GET", "POST")
	r.HandleFunc("/badmin/events/edit/{id}", requireRealm(sessions, RealmContent, contentHandler.EditEvent)).Methods("GET", "POST")
	r.HandleFunc("/badmin/events/delete/{id}", requireRealm(sessions, RealmContent, contentHandler.DeleteEvent)).Methods("POST")
	r.HandleFunc("/badmin/news/create", requireRealm(sessions, RealmContent, contentHandler.CreateNewsArticle)).Methods("GET", "POST")
	r.HandleFunc("/badmin/news/edit/{id}", requireRealm(sessions, RealmContent, contentHandler.EditNewsArticle)).Methods("GET", "POST")
	r.HandleFunc("/badmin/news/delete/{id}", requireRealm(sessions, RealmContent, contentHandler.DeleteNewsArticle)).Methods("POST")

	// Audit realm
	r.HandleFunc("/sagin", authHandler.Login(RealmAudit)).Methods("GET", "POST")
	r.HandleFunc("/sagout", authHandler.Logout(RealmAudit)).Methods("GET")
	r.HandleFunc("/sagin/super", requireRealm(sessions, RealmAudit, auditHandler.Dashboard)).Methods("GET")
	r.HandleFunc("/sagin/delete_action/{id}", requireRealm(sessions, RealmAudit, auditHandler.DeleteAction)).Methods("POST")

	// Team realm
	r.HandleFunc("/tagin", authHandler.Login(RealmTeam)).Methods("GET", "POST")
	r.HandleFunc("/tagout", authHandler.Logout(RealmTeam)).Methods("GET")
	r.HandleFunc("/tagin/team", requireRealm(sessions, RealmTeam, teamHandler.Dashboard)).Methods("GET")
	r.HandleFunc("/tagin/team/add", requireRealm(sessions, RealmTeam, teamHandler.AddMember)).Methods("POST")
	r.HandleFunc("/tagin/team/edit/{id}", requireRealm(sessions, RealmTeam, teamHandler.EditMember)).Methods("GET", "POST")
	r.HandleFunc("/tagin/team/delete/{id}", requireRealm(sessions, RealmTeam, teamHandler.DeleteMember)).Methods("POST")

	return r, nil
}
