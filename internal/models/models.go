package models

import (
	"strings"
	"time"
)

// Entity type tags recorded in the action history.
const (
	EntityProduct     = "Product"
	EntityJob         = "Job"
	EntityAppliedJob  = "AppliedJob"
	EntityBlogPost    = "BlogPost"
	EntityEvent       = "Event"
	EntityNewsArticle = "NewsArticle"
	EntityTeamMember  = "TeamMember"
)

// Actions recorded in the action history.
const (
	ActionAdded   = "Added"
	ActionEdited  = "Edited"
	ActionDeleted = "Deleted"
)

type Product struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Price       float64 `json:"price" db:"price"`
	Image       string  `json:"image" db:"image"`
	Description string  `json:"description" db:"description"`
}

type Job struct {
	ID           int64      `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	Requirements string     `json:"requirements" db:"requirements"`
	Deadline     *time.Time `json:"deadline,omitempty" db:"deadline"`
}

// Active reports whether the job still accepts applications at the given
// instant. It is computed on every read; nothing is stored.
func (j *Job) Active(now time.Time) bool {
	return j.Deadline == nil || j.Deadline.After(now)
}

type AppliedJob struct {
	ID             int64  `json:"id" db:"id"`
	JobID          int64  `json:"job_id" db:"job_id"`
	FirstName      string `json:"first_name" db:"first_name"`
	FatherName     string `json:"father_name" db:"father_name"`
	ApplicantEmail string `json:"applicant_email" db:"applicant_email"`
	Gender         string `json:"gender,omitempty" db:"gender"`
	Age            *int64 `json:"age,omitempty" db:"age"`
	CVPath         string `json:"cv_path" db:"cv_path"`
}

type BlogPost struct {
	ID      int64  `json:"id" db:"id"`
	Title   string `json:"title" db:"title"`
	Content string `json:"content" db:"content"`
	Author  string `json:"author" db:"author"`
}

type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	Location    string    `json:"location" db:"location"`
}

type NewsArticle struct {
	ID      int64  `json:"id" db:"id"`
	Title   string `json:"title" db:"title"`
	Content string `json:"content" db:"content"`
	Author  string `json:"author" db:"author"`
}

type TeamMember struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	JobTitle string `json:"job_title" db:"job_title"`
	PhotoURL string `json:"photo_url" db:"photo_url"`
}

type ActionHistory struct {
	ID         int64     `json:"id" db:"id"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   int64     `json:"entity_id" db:"entity_id"`
	Action     string    `json:"action" db:"action"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`
	Details    string    `json:"details" db:"details"`
}

type Admin struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// Session is a server-side session row. Realms holds the admin realms the
// session has authenticated into, comma-joined in storage.
type Session struct {
	ID         string    `json:"id" db:"id"`
	Realms     string    `json:"realms" db:"realms"`
	FlashMsg   string    `json:"flash_message,omitempty" db:"flash_message"`
	FlashLevel string    `json:"flash_level,omitempty" db:"flash_level"`
	Created    time.Time `json:"created" db:"created"`
	Expires    time.Time `json:"expires" db:"expires"`
}

// HasRealm reports whether the session has authenticated into realm.
func (s *Session) HasRealm(realm string) bool {
	for _, r := range strings.Split(s.Realms, ",") {
		if r == realm {
			return true
		}
	}
	return false
}

// GrantRealm adds realm to the session's granted set.
func (s *Session) GrantRealm(realm string) {
	if s.HasRealm(realm) {
		return
	}
	if s.Realms == "" {
		s.Realms = realm
		return
	}
	s.Realms += "," + realm
}

// RevokeRealm removes realm from the session's granted set.
func (s *Session) RevokeRealm(realm string) {
	parts := strings.Split(s.Realms, ",")
	kept := parts[:0]
	for _, r := range parts {
		if r != "" && r != realm {
			kept = append(kept, r)
		}
	}
	s.Realms = strings.Join(kept, ",")
}
