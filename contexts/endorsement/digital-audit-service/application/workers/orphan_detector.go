package workers

import (
	"context"
	"log/slog"
	"time"

	application "caucus/contexts/endorsement/digital-audit-service/application"
	"caucus/contexts/endorsement/digital-audit-service/domain/entities"
	"caucus/contexts/endorsement/digital-audit-service/ports"
)

// OrphanDetector sweeps for audits stuck in running longer than MaxAge,
// typically after a process crash between dispatch and completion. Orphans
// are failed with an explanatory message so the per-vetting slot frees up.
type OrphanDetector struct {
	Audits ports.AuditRepository
	Clock  ports.Clock
	MaxAge time.Duration
	Logger *slog.Logger
}

const orphanMessage = "audit did not complete; the worker likely restarted mid-run"

func (d OrphanDetector) RunOnce(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(d.Logger)
	cutoff := d.now().Add(-d.MaxAge)

	stale, err := d.Audits.ListStaleRunning(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	recovered := 0
	for _, audit := range stale {
		completedAt := d.now()
		if err := d.Audits.UpdateAuditStatus(ctx, audit.AuditID, entities.AuditStatusFailed, orphanMessage, &completedAt); err != nil {
			logger.Error("failed to fail orphaned audit",
				"event", "audit_orphan_recovery_failed",
				"module", "endorsement/digital-audit-service",
				"layer", "worker",
				"audit_id", audit.AuditID,
				"error", err,
			)
			continue
		}
		recovered++
		logger.Warn("orphaned audit marked failed",
			"event", "audit_orphan_recovered",
			"module", "endorsement/digital-audit-service",
			"layer", "worker",
			"audit_id", audit.AuditID,
			"vetting_id", audit.VettingID,
			"started_at", audit.CreatedAt,
		)
	}
	return recovered, nil
}

func (d OrphanDetector) now() time.Time {
	if d.Clock != nil {
		return d.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
