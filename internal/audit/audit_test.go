package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kloop/amco/internal/audit"
	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository/mock"
)

func TestRecord(t *testing.T) {
	repo := &mock.AuditRepo{}
	rec := audit.NewRecorder(repo, nil)

	rec.Record(context.Background(), models.EntityProduct, 42, models.ActionAdded, "Product 'Widget' added.")

	if len(repo.Stored) != 1 {
		t.Fatalf("expected 1 action, got %d", len(repo.Stored))
	}
	got := repo.Stored[0]
	if got.EntityType != models.EntityProduct || got.EntityID != 42 || got.Action != models.ActionAdded {
		t.Fatalf("unexpected action row: %#v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestRecordSwallowsStorageErrors(t *testing.T) {
	repo := &mock.AuditRepo{CreateErr: errors.New("disk full")}
	rec := audit.NewRecorder(repo, nil)

	// must not panic or propagate; the user-visible write already succeeded
	rec.Record(context.Background(), models.EntityJob, 1, models.ActionDeleted, "Job deleted.")

	if len(repo.Stored) != 0 {
		t.Fatalf("expected no stored actions, got %d", len(repo.Stored))
	}
}
