// Package audit records one action-history row per entity mutation. Every
// write path goes through the same Recorder, so no entity type is silently
// left out of the trail.
package audit

import (
	"context"

	"log/slog"

	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/pkg/repository"
)

// Recorder is the audit sink invoked by every write operation. Failures must
// never fail the user-visible write; implementations log and move on.
type Recorder interface {
	Record(ctx context.Context, entityType string, entityID int64, action, details string)
}

type repoRecorder struct {
	repo   repository.AuditRepo
	logger *slog.Logger
}

func NewRecorder(repo repository.AuditRepo, logger *slog.Logger) Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &repoRecorder{repo: repo, logger: logger}
}

func (r *repoRecorder) Record(ctx context.Context, entityType string, entityID int64, action, details string) {
	entry := &models.ActionHistory{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
	}
	if _, err := r.repo.CreateAction(ctx, entry); err != nil {
		r.logger.Error("record action",
			slog.String("entity_type", entityType),
			slog.Int64("entity_id", entityID),
			slog.String("action", action),
			slog.Any("err", err),
		)
	}
}
