package models_test

import (
	"testing"
	"time"

	"github.com/kloop/amco/internal/models"
)

func TestJobActive(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		deadline *time.Time
		want     bool
	}{
		{"no deadline", nil, true},
		{"future deadline", &future, true},
		{"past deadline", &past, false},
		{"deadline exactly now", &now, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := &models.Job{Title: "x", Deadline: tt.deadline}
			if got := j.Active(now); got != tt.want {
				t.Errorf("Active = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionRealms(t *testing.T) {
	s := &models.Session{}

	if s.HasRealm("product") {
		t.Fatalf("fresh session should have no realms")
	}

	s.GrantRealm("product")
	s.GrantRealm("job")
	s.GrantRealm("product") // idempotent
	if s.Realms != "product,job" {
		t.Fatalf("Realms = %q, want %q", s.Realms, "product,job")
	}
	if !s.HasRealm("product") || !s.HasRealm("job") || s.HasRealm("content") {
		t.Fatalf("unexpected realm membership: %q", s.Realms)
	}

	// "product" must not match as a substring of another realm name
	if s.HasRealm("prod") {
		t.Fatalf("HasRealm matched a prefix")
	}

	s.RevokeRealm("product")
	if s.HasRealm("product") || !s.HasRealm("job") {
		t.Fatalf("revoke removed the wrong realm: %q", s.Realms)
	}

	s.RevokeRealm("job")
	if s.Realms != "" {
		t.Fatalf("Realms = %q after revoking everything", s.Realms)
	}

	// revoking on an empty set is a no-op
	s.RevokeRealm("job")
	if s.Realms != "" {
		t.Fatalf("Realms = %q", s.Realms)
	}
}
