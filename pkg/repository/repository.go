package repository

import (
	"context"
	"errors"

	"github.com/kloop/amco/internal/models"
)

// ErrNotFound is returned by by-id lookups when no row exists. Handlers map
// it to a 404.
var ErrNotFound = errors.New("not found")

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type ProductRepo interface {
	CreateProduct(ctx context.Context, p *models.Product) (int64, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	ListJobs(ctx context.Context) ([]models.Job, error)
	// ListActiveJobs returns jobs whose deadline is unset or strictly after
	// the repository clock.
	ListActiveJobs(ctx context.Context) ([]models.Job, error)
	// SearchJobs matches title substrings case-insensitively.
	SearchJobs(ctx context.Context, term string) ([]models.Job, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id int64) error
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.AppliedJob) (int64, error)
	GetApplication(ctx context.Context, id int64) (*models.AppliedJob, error)
	ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.AppliedJob, error)
	DeleteApplication(ctx context.Context, id int64) error
}

type BlogRepo interface {
	CreateBlogPost(ctx context.Context, p *models.BlogPost) (int64, error)
	GetBlogPost(ctx context.Context, id int64) (*models.BlogPost, error)
	ListBlogPosts(ctx context.Context) ([]models.BlogPost, error)
	UpdateBlogPost(ctx context.Context, p *models.BlogPost) error
	DeleteBlogPost(ctx context.Context, id int64) error
}

type EventRepo interface {
	CreateEvent(ctx context.Context, e *models.Event) (int64, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	UpdateEvent(ctx context.Context, e *models.Event) error
	DeleteEvent(ctx context.Context, id int64) error
}

type NewsRepo interface {
	CreateNewsArticle(ctx context.Context, n *models.NewsArticle) (int64, error)
	GetNewsArticle(ctx context.Context, id int64) (*models.NewsArticle, error)
	ListNewsArticles(ctx context.Context) ([]models.NewsArticle, error)
	UpdateNewsArticle(ctx context.Context, n *models.NewsArticle) error
	DeleteNewsArticle(ctx context.Context, id int64) error
}

type TeamRepo interface {
	CreateTeamMember(ctx context.Context, m *models.TeamMember) (int64, error)
	GetTeamMember(ctx context.Context, id int64) (*models.TeamMember, error)
	ListTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	UpdateTeamMember(ctx context.Context, m *models.TeamMember) error
	DeleteTeamMember(ctx context.Context, id int64) error
}

type AuditRepo interface {
	CreateAction(ctx context.Context, a *models.ActionHistory) (int64, error)
	// ListActions returns the full history, newest first.
	ListActions(ctx context.Context) ([]models.ActionHistory, error)
	GetAction(ctx context.Context, id int64) (*models.ActionHistory, error)
	DeleteAction(ctx context.Context, id int64) error
}

type AdminRepo interface {
	CreateAdmin(ctx context.Context, a *models.Admin) (int64, error)
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	CountAdmins(ctx context.Context) (int64, error)
}

type SessionRepo interface {
	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	UpdateSession(ctx context.Context, s *models.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}
