package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"cardinal-portal/internal/domain"
	"cardinal-portal/internal/repository"
)

// AuditRecorder appends events to the security audit trail. Recording is
// best-effort: a storage failure is logged and swallowed so auditing can
// never fail the request being audited. A nil *AuditRecorder is valid and
// records nothing, which is how auditing is disabled.
type AuditRecorder struct {
	events repository.AuditRepository
	logger *logrus.Logger
}

func NewAuditRecorder(events repository.AuditRepository, logger *logrus.Logger) *AuditRecorder {
	return &AuditRecorder{events: events, logger: logger}
}

func (a *AuditRecorder) Record(ctx context.Context, eventType domain.AuditEventType, username, detail string) {
	if a == nil || a.events == nil {
		return
	}

	event := &domain.AuditEvent{
		Type:     eventType,
		Username: username,
		Detail:   detail,
	}
	if _, err := a.events.Record(ctx, event); err != nil && a.logger != nil {
		a.logger.Warnf("record audit event %s: %v", eventType, err)
	}
}
