package sqlite

import (
	"time"

	"log/slog"

	"github.com/kloop/amco/internal/db"
	"github.com/kloop/amco/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.ProductRepo = (*SQLiteRepo)(nil)
var _ repository.JobRepo = (*SQLiteRepo)(nil)
var _ repository.ApplicationRepo = (*SQLiteRepo)(nil)
var _ repository.BlogRepo = (*SQLiteRepo)(nil)
var _ repository.EventRepo = (*SQLiteRepo)(nil)
var _ repository.NewsRepo = (*SQLiteRepo)(nil)
var _ repository.TeamRepo = (*SQLiteRepo)(nil)
var _ repository.AuditRepo = (*SQLiteRepo)(nil)
var _ repository.AdminRepo = (*SQLiteRepo)(nil)
var _ repository.SessionRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().Unix()
}

// fromUnix converts a stored unix-seconds column back to UTC time.
func fromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
