package ports

import (
	"context"
	"time"

	"caucus/contexts/endorsement/digital-audit-service/domain/entities"
)

// ActorContext mirrors the membership collaborator's resolved identity.
type ActorContext struct {
	MemberID        string
	IsChair         bool
	IsNationalAdmin bool
}

type ActorDirectory interface {
	ResolveActor(ctx context.Context, memberID string) (ActorContext, error)
}

// VettingDirectory confirms the vetting exists and supplies the candidate
// fields the researcher needs.
type VettingProjection struct {
	VettingID     string
	CandidateName string
	State         string
	Office        string
}

type VettingDirectory interface {
	GetVetting(ctx context.Context, vettingID string) (VettingProjection, bool, error)
}

type AuditRepository interface {
	// InsertAudit persists a new audit_pending row. It returns
	// ErrDuplicateAudit when another pending/running audit already holds the
	// per-vetting slot; storage enforces this as the backstop behind the
	// orchestrator's pre-check.
	InsertAudit(ctx context.Context, audit entities.DigitalAudit) error
	GetAudit(ctx context.Context, auditID string) (entities.DigitalAudit, error)
	GetLatestAudit(ctx context.Context, vettingID string) (entities.DigitalAudit, bool, error)
	GetActiveAudit(ctx context.Context, vettingID string) (entities.DigitalAudit, bool, error)
	UpdateAuditStatus(ctx context.Context, auditID string, status entities.AuditStatus, errorMessage string, completedAt *time.Time) error
	ListStaleRunning(ctx context.Context, olderThan time.Time) ([]entities.DigitalAudit, error)
	SavePlatform(ctx context.Context, platform entities.AuditPlatform) error
	ListPlatforms(ctx context.Context, auditID string) ([]entities.AuditPlatform, error)
}

// PlatformFinding is one researched entity produced by the research
// collaborator before persistence assigns ids.
type PlatformFinding struct {
	EntityType string
	EntityName string
	TotalScore float64
	Findings   map[string]string
}

// Researcher is the pluggable multi-platform research function. It throws on
// failure; the runner owns status bookkeeping.
type Researcher interface {
	ResearchPlatform(ctx context.Context, vetting VettingProjection, platform string) (PlatformFinding, error)
	Platforms() []string
}

// Dispatcher detaches the audit job from the triggering request's lifetime.
// Implementations must not inherit the request's cancellation scope and must
// recover panics inside the task.
type Dispatcher interface {
	Dispatch(task func(ctx context.Context))
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
