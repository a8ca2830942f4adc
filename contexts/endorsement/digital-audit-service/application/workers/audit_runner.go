package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	application "caucus/contexts/endorsement/digital-audit-service/application"
	"caucus/contexts/endorsement/digital-audit-service/domain/entities"
	"caucus/contexts/endorsement/digital-audit-service/ports"
)

// AuditRunner executes one digital audit end to end. It owns the status
// lifecycle: running while research is in flight, audit_completed or
// audit_failed afterwards. It never returns an error to its caller because
// nobody is waiting; every failure is recorded on the audit row and logged.
type AuditRunner struct {
	Audits     ports.AuditRepository
	Researcher ports.Researcher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (r AuditRunner) Run(ctx context.Context, auditID string, vetting ports.VettingProjection) {
	logger := application.ResolveLogger(r.Logger).With(
		"module", "endorsement/digital-audit-service",
		"layer", "worker",
		"audit_id", auditID,
		"vetting_id", vetting.VettingID,
	)

	if err := r.Audits.UpdateAuditStatus(ctx, auditID, entities.AuditStatusRunning, "", nil); err != nil {
		logger.Error("failed to mark audit running", "event", "audit_status_update_failed", "error", err)
		return
	}
	logger.Info("digital audit started", "event", "audit_started", "candidate", vetting.CandidateName)

	if err := r.research(ctx, auditID, vetting); err != nil {
		r.finish(ctx, logger, auditID, entities.AuditStatusFailed, err.Error())
		return
	}
	r.finish(ctx, logger, auditID, entities.AuditStatusCompleted, "")
}

// research fans out one goroutine per platform and persists each finding as
// it arrives. The first platform error cancels the remaining lookups.
func (r AuditRunner) research(ctx context.Context, auditID string, vetting ports.VettingProjection) error {
	group, groupCtx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	for _, platform := range r.Researcher.Platforms() {
		platform := platform
		group.Go(func() error {
			finding, err := r.Researcher.ResearchPlatform(groupCtx, vetting, platform)
			if err != nil {
				return err
			}
			platformID, err := r.IDGen.NewID(groupCtx)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return r.Audits.SavePlatform(groupCtx, entities.AuditPlatform{
				PlatformID: platformID,
				AuditID:    auditID,
				EntityType: finding.EntityType,
				EntityName: finding.EntityName,
				TotalScore: finding.TotalScore,
				Findings:   finding.Findings,
				CreatedAt:  r.now(),
			})
		})
	}
	return group.Wait()
}

func (r AuditRunner) finish(ctx context.Context, logger *slog.Logger, auditID string, status entities.AuditStatus, errorMessage string) {
	completedAt := r.now()
	if err := r.Audits.UpdateAuditStatus(ctx, auditID, status, errorMessage, &completedAt); err != nil {
		// The audit is now an orphan; the stale-running sweep will report it.
		logger.Error("failed to record audit outcome",
			"event", "audit_status_update_failed",
			"status", string(status),
			"error", err,
		)
		return
	}
	if status == entities.AuditStatusFailed {
		logger.Error("digital audit failed", "event", "audit_failed", "reason", errorMessage)
		return
	}
	logger.Info("digital audit completed", "event", "audit_completed")
}

func (r AuditRunner) now() time.Time {
	if r.Clock != nil {
		return r.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
