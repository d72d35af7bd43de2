package domain

import "time"

// AuditEventType identifies the kind of security-relevant event recorded.
type AuditEventType string

const (
	AuditAccountCreate AuditEventType = "account_create"
	AuditLoginSuccess  AuditEventType = "login_success"
	AuditLoginFailure  AuditEventType = "login_failure"
	AuditLogout        AuditEventType = "logout"
	AuditRegister      AuditEventType = "register"
)

// AuditEvent is a single entry in the security audit trail.
type AuditEvent struct {
	ID        int64
	Type      AuditEventType
	Username  string
	Detail    string
	CreatedAt time.Time
}
