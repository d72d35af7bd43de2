package repository

import (
	"context"

	"cardinal-portal/internal/domain"
)

// AuditRepository persists security audit events.
type AuditRepository interface {
	Init(ctx context.Context) error
	Record(ctx context.Context, event *domain.AuditEvent) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}
