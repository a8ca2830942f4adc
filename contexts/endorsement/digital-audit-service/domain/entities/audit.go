package entities

import "time"

type AuditStatus string

const (
	AuditStatusPending   AuditStatus = "audit_pending"
	AuditStatusRunning   AuditStatus = "running"
	AuditStatusCompleted AuditStatus = "audit_completed"
	AuditStatusFailed    AuditStatus = "audit_failed"
)

// Active reports whether the audit still occupies the per-vetting slot. At
// most one active audit may exist per vetting at any time.
func (s AuditStatus) Active() bool {
	return s == AuditStatusPending || s == AuditStatusRunning
}

// DigitalAudit is one run of the digital presence research job. Re-runs
// create new rows; history is preserved.
type DigitalAudit struct {
	AuditID      string
	VettingID    string
	Status       AuditStatus
	TriggeredBy  string
	ErrorMessage string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// AuditPlatform is one researched platform or entity under an audit,
// read-only after the audit job writes it.
type AuditPlatform struct {
	PlatformID string
	AuditID    string
	EntityType string
	EntityName string
	TotalScore float64
	Findings   map[string]string
	CreatedAt  time.Time
}
