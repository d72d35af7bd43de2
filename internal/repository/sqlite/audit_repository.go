package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cardinal-portal/internal/domain"
	"cardinal-portal/internal/repository"
)

const createAuditTable = `
CREATE TABLE IF NOT EXISTS audit_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	event_type TEXT NOT NULL,
	username TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
`

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAuditTable); err != nil {
		return fmt.Errorf("create audit_events table: %w", err)
	}
	return nil
}

func (r *AuditRepository) Record(ctx context.Context, event *domain.AuditEvent) (int64, error) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO audit_events (event_type, username, detail, created_at)
VALUES (?, ?, ?, ?)`,
		string(event.Type),
		event.Username,
		event.Detail,
		event.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert audit event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("audit event last insert id: %w", err)
	}
	event.ID = id
	return id, nil
}

func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, event_type, username, detail, created_at
FROM audit_events
ORDER BY id DESC
LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		var event domain.AuditEvent
		var eventType string
		if err := rows.Scan(&event.ID, &eventType, &event.Username, &event.Detail, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Type = domain.AuditEventType(eventType)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
