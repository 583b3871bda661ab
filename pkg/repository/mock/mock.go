// Package mock holds hand-written in-memory repositories for handler tests.
package mock

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository"
)

// Mocks bundles one mock per repository interface.
type Mocks struct {
	Admins       *AdminRepo
	Sessions     *SessionRepo
	Products     *ProductRepo
	Jobs         *JobRepo
	Applications *ApplicationRepo
	Blog         *BlogRepo
	Events       *EventRepo
	News         *NewsRepo
	Team         *TeamRepo
	Audit        *AuditRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Admins:       &AdminRepo{},
		Sessions:     &SessionRepo{Stored: map[string]*models.Session{}},
		Products:     &ProductRepo{Stored: map[int64]*models.Product{}},
		Jobs:         &JobRepo{Stored: map[int64]*models.Job{}},
		Applications: &ApplicationRepo{Stored: map[int64]*models.AppliedJob{}},
		Blog:         &BlogRepo{Stored: map[int64]*models.BlogPost{}},
		Events:       &EventRepo{Stored: map[int64]*models.Event{}},
		News:         &NewsRepo{Stored: map[int64]*models.NewsArticle{}},
		Team:         &TeamRepo{Stored: map[int64]*models.TeamMember{}},
		Audit:        &AuditRepo{},
	}
}

type AdminRepo struct {
	Stored    []*models.Admin
	CreateErr error
	GetErr    error
}

var _ repository.AdminRepo = (*AdminRepo)(nil)

func (m *AdminRepo) CreateAdmin(ctx context.Context, a *models.Admin) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	cp := *a
	cp.ID = int64(len(m.Stored) + 1)
	m.Stored = append(m.Stored, &cp)
	return cp.ID, nil
}

func (m *AdminRepo) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, a := range m.Stored {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *AdminRepo) CountAdmins(ctx context.Context) (int64, error) {
	return int64(len(m.Stored)), nil
}

type SessionRepo struct {
	Stored    map[string]*models.Session
	CreateErr error
	UpdateErr error
}

var _ repository.SessionRepo = (*SessionRepo)(nil)

func (m *SessionRepo) CreateSession(ctx context.Context, s *models.Session) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	cp := *s
	m.Stored[s.ID] = &cp
	return nil
}

func (m *SessionRepo) GetSession(ctx context.Context, id string) (*models.Session, error) {
	s, ok := m.Stored[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *SessionRepo) UpdateSession(ctx context.Context, s *models.Session) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.Stored[s.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *s
	m.Stored[s.ID] = &cp
	return nil
}

func (m *SessionRepo) DeleteSession(ctx context.Context, id string) error {
	delete(m.Stored, id)
	return nil
}

func (m *SessionRepo) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	var n int64
	now := time.Now().UTC()
	for id, s := range m.Stored {
		if !s.Expires.After(now) {
			delete(m.Stored, id)
			n++
		}
	}
	return n, nil
}

type ProductRepo struct {
	Stored    map[int64]*models.Product
	NextID    int64
	CreateErr error
}

var _ repository.ProductRepo = (*ProductRepo)(nil)

func (m *ProductRepo) CreateProduct(ctx context.Context, p *models.Product) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.NextID++
	cp := *p
	cp.ID = m.NextID
	m.Stored[cp.ID] = &cp
	return cp.ID, nil
}

func (m *ProductRepo) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, ok := m.Stored[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *ProductRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	out := []models.Product{}
	for _, id := range sortedKeys(m.Stored) {
		out = append(out, *m.Stored[id])
	}
	return out, nil
}

func (m *ProductRepo) UpdateProduct(ctx context.Context, p *models.Product) error {
	if _, ok := m.Stored[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	m.Stored[p.ID] = &cp
	return nil
}

func (m *ProductRepo) DeleteProduct(ctx context.Context, id int64) error {
	if _, ok := m.Stored[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Stored, id)
	return nil
}

type JobRepo struct {
	Stored map[int64]*models.Job
	NextID int64
}

var _ repository.JobRepo = (*JobRepo)(nil)

func (m *JobRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	m.NextID++
	cp := *j
	cp.ID = m.NextID
	m.Stored[cp.ID] = &cp
	return cp.ID, nil
}

func (m *JobRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	j, ok := m.Stored[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *JobRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	out := []models.Job{}
	for _, id := range sortedKeys(m.Stored) {
		out = append(out, *m.Stored[id])
	}
	return out, nil
}

func (m *JobRepo) ListActiveJobs(ctx context.Context) ([]models.Job, error) {
	now := time.Now().UTC()
	out := []models.Job{}
	for _, id := range sortedKeys(m.Stored) {
		if m.Stored[id].Active(now) {
			out = append(out, *m.Stored[id])
		}
	}
	return out, nil
}

func (m *JobRepo) SearchJobs(ctx context.Context, term string) ([]models.Job, error) {
	term = strings.ToLower(term)
	out := []models.Job{}
	for _, id := range sortedKeys(m.Stored) {
		if strings.Contains(strings.ToLower(m.Stored[id].Title), term) {
			out = append(out, *m.Stored[id])
		}
	}
	return out, nil
}

func (m *JobRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if _, ok := m.Stored[j.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *j
	m.Stored[j.ID] = &cp
	return nil
}

func (m *JobRepo) DeleteJob(ctx context.Context, id int64) error {
	if _, ok := m.Stored[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Stored, id)
	return nil
}

type ApplicationRepo struct {
	Stored    map[int64]*models.AppliedJob
	NextID    int64
	CreateErr error
}

var _ repository.ApplicationRepo = (*ApplicationRepo)(nil)

func (m *ApplicationRepo) CreateApplication(ctx context.Context, a *models.AppliedJob) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.NextID++
	cp := *a
	cp.ID = m.NextID
	m.Stored[cp.ID] = &cp
	return cp.ID, nil
}

func (m *ApplicationRepo) GetApplication(ctx context.Context, id int64) (*models.AppliedJob, error) {
	a, ok := m.Stored[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *ApplicationRepo) ListApplicationsByJob(ctx context.Context, jobID int64) ([]models.AppliedJob, error) {
	out := []models.AppliedJob{}
	for _, id := range sortedKeys(m.Stored) {
		if m.Stored[id].JobID == jobID {
			out = append(out, *m.Stored[id])
		}
	}
	return out, nil
}

func (m *ApplicationRepo) DeleteApplication(ctx context.Context, id int64) error {
	if _, ok := m.Stored[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Stored, id)
	return nil
}

type BlogRepo struct {
	Stored map[int64]*models.BlogPost
	NextID int64
}

var _ repository.BlogRepo = (*BlogRepo)(nil)

func (m *BlogRepo) CreateBlogPost(ctx context.Context, p *models.BlogPost) (int64, error) {
	m.NextID++
	cp := *p
	cp.ID = m.NextID
	m.Stored[cp.ID] = &cp
	return cp.ID, nil
}

func (m *BlogRepo) GetBlogPost(ctx context.Context, id int64) (*models.BlogPost, error) {
	p, ok := m.Stored[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *BlogRepo) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	out := []models.BlogPost{}
	for _, id := range sortedKeys(m.Stored) {
		out = append(out, *m.Stored[id])
	}
	return out, nil
}

func (m *BlogRepo) UpdateBlogPost(ctx context.Context, p *models.BlogPost) error {
	if _, ok := m.Stored[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	m.Stored[p.ID] = &cp
	return nil
}

func (m *BlogRepo) DeleteBlogPost(ctx context.Context, id int64) error {
	if _, ok := m.Stored[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Stored, id)
	return nil
}

type EventRepo struct {
	Stored map[int64]*models.Event
	NextID int64
}

var _ repository.EventRepo = (*EventRepo)(nil)

func (m *EventRepo) CreateEvent(ctx context.Context, e *models.Event) (int64, error) {
	m.NextID++
	cp := *e
	cp.ID = m.NextID
	m.Stored[cp.ID] = &cp
	return cp.ID, nil
}

func (m *EventRepo) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	e, ok := m.Stored[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *EventRepo) ListEvents(ctx context.Context) ([]models.Event, error) {
	out := []models.Event{}
	for _, id := range sortedKeys(m.Stored) {
		out = append(out, *m.Stored[id])
	}
	return out, nil
}

func (m *EventRepo) UpdateEvent(ctx context.Context, e *models.Event) error {
	if _, ok := m.Stored[e.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *e
	m.Stored[e.ID] = &cp
	return nil
}

func (m *EventRepo) DeleteEvent(ctx context.Context, id int64) error {
	if _, ok := m.Stored[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Stored, id)
	return nil
}

type NewsRepo struct {
	Stored map[int64]*models.NewsArticle
	NextID int64
}

var _ repository.NewsRepo = (*NewsRepo)(nil)

func (m *NewsRepo) CreateNewsArticle(ctx context.Context, n *models.NewsArticle) (int64, error) {
	m.NextID++
	cp := *n
	cp.ID = m.NextID
	m.Stored[cp.ID] = &cp
	return cp.ID, nil
}

func (m *NewsRepo) GetNewsArticle(ctx context.Context, id int64) (*models.NewsArticle, error) {
	n, ok := m.Stored[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (m *NewsRepo) ListNewsArticles(ctx context.Context) ([]models.NewsArticle, error) {
	out := []models.NewsArticle{}
	for _, id := range sortedKeys(m.Stored) {
		out = append(out, *m.Stored[id])
	}
	return out, nil
}

func (m *NewsRepo) UpdateNewsArticle(ctx context.Context, n *models.NewsArticle) error {
	if _, ok := m.Stored[n.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *n
	m.Stored[n.ID] = &cp
	return nil
}

func (m *NewsRepo) DeleteNewsArticle(ctx context.Context, id int64) error {
	if _, ok := m.Stored[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Stored, id)
	return nil
}

type TeamRepo struct {
	Stored map[int64]*models.TeamMember
	NextID int64
}

var _ repository.TeamRepo = (*TeamRepo)(nil)

func (m *TeamRepo) CreateTeamMember(ctx context.Context, tm *models.TeamMember) (int64, error) {
	m.NextID++
	cp := *tm
	cp.ID = m.NextID
	m.Stored[cp.ID] = &cp
	return cp.ID, nil
}

func (m *TeamRepo) GetTeamMember(ctx context.Context, id int64) (*models.TeamMember, error) {
	tm, ok := m.Stored[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *tm
	return &cp, nil
}

func (m *TeamRepo) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	out := []models.TeamMember{}
	for _, id := range sortedKeys(m.Stored) {
		out = append(out, *m.Stored[id])
	}
	return out, nil
}

func (m *TeamRepo) UpdateTeamMember(ctx context.Context, tm *models.TeamMember) error {
	if _, ok := m.Stored[tm.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *tm
	m.Stored[tm.ID] = &cp
	return nil
}

func (m *TeamRepo) DeleteTeamMember(ctx context.Context, id int64) error {
	if _, ok := m.Stored[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Stored, id)
	return nil
}

type AuditRepo struct {
	Stored    []*models.ActionHistory
	CreateErr error
}

var _ repository.AuditRepo = (*AuditRepo)(nil)

func (m *AuditRepo) CreateAction(ctx context.Context, a *models.ActionHistory) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	cp := *a
	cp.ID = int64(len(m.Stored) + 1)
	if cp.Timestamp.IsZero() {
		cp.Timestamp = time.Now().UTC()
	}
	m.Stored = append(m.Stored, &cp)
	return cp.ID, nil
}

func (m *AuditRepo) ListActions(ctx context.Context) ([]models.ActionHistory, error) {
	out := []models.ActionHistory{}
	for i := len(m.Stored) - 1; i >= 0; i-- {
		out = append(out, *m.Stored[i])
	}
	return out, nil
}

func (m *AuditRepo) GetAction(ctx context.Context, id int64) (*models.ActionHistory, error) {
	for _, a := range m.Stored {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *AuditRepo) DeleteAction(ctx context.Context, id int64) error {
	for i, a := range m.Stored {
		if a.ID == id {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func sortedKeys[V any](m map[int64]*V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
