package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "caucus/contexts/endorsement/digital-audit-service/application"
	"caucus/contexts/endorsement/digital-audit-service/application/workers"
	"caucus/contexts/endorsement/digital-audit-service/domain/entities"
	domainerrors "caucus/contexts/endorsement/digital-audit-service/domain/errors"
	"caucus/contexts/endorsement/digital-audit-service/ports"
)

type TriggerAuditCommand struct {
	ActorID   string
	VettingID string
	Force     bool
}

type TriggerAuditResult struct {
	AuditID string
	// Status reported to the caller is "running": the row is persisted as
	// audit_pending but the job is dispatched before the response leaves.
	Status entities.AuditStatus
}

// TriggerUseCase is the synchronous half of the audit orchestrator: it
// enforces duplicate prevention, persists the audit_pending row, and
// dispatches the background runner after the response can be sent.
type TriggerUseCase struct {
	Audits     ports.AuditRepository
	Vettings   ports.VettingDirectory
	Actors     ports.ActorDirectory
	Dispatcher ports.Dispatcher
	Runner     workers.AuditRunner
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc TriggerUseCase) TriggerAudit(ctx context.Context, cmd TriggerAuditCommand) (TriggerAuditResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return TriggerAuditResult{}, domainerrors.ErrForbidden
	}
	actor, err := uc.Actors.ResolveActor(ctx, strings.TrimSpace(cmd.ActorID))
	if err != nil {
		return TriggerAuditResult{}, err
	}
	if !actor.IsChair && !actor.IsNationalAdmin {
		return TriggerAuditResult{}, domainerrors.ErrForbidden
	}

	vettingID := strings.TrimSpace(cmd.VettingID)
	vetting, found, err := uc.Vettings.GetVetting(ctx, vettingID)
	if err != nil {
		return TriggerAuditResult{}, err
	}
	if !found {
		return TriggerAuditResult{}, domainerrors.ErrVettingNotFound
	}

	// A running audit can never be force-restarted; it must finish or fail.
	if active, ok, err := uc.Audits.GetActiveAudit(ctx, vettingID); err != nil {
		return TriggerAuditResult{}, err
	} else if ok {
		return TriggerAuditResult{}, &domainerrors.DuplicateAuditError{
			AuditID: active.AuditID,
			Reason:  domainerrors.ErrAuditRunning,
		}
	}
	if latest, ok, err := uc.Audits.GetLatestAudit(ctx, vettingID); err != nil {
		return TriggerAuditResult{}, err
	} else if ok && latest.Status == entities.AuditStatusCompleted && !cmd.Force {
		return TriggerAuditResult{}, &domainerrors.DuplicateAuditError{
			AuditID: latest.AuditID,
			Reason:  domainerrors.ErrDuplicateAudit,
		}
	}

	auditID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return TriggerAuditResult{}, err
	}
	audit := entities.DigitalAudit{
		AuditID:     auditID,
		VettingID:   vettingID,
		Status:      entities.AuditStatusPending,
		TriggeredBy: actor.MemberID,
		CreatedAt:   uc.now(),
	}
	if err := uc.Audits.InsertAudit(ctx, audit); err != nil {
		// Storage backstop: a concurrent trigger slipped past the pre-check.
		if errors.Is(err, domainerrors.ErrDuplicateAudit) {
			if active, ok, lookupErr := uc.Audits.GetActiveAudit(ctx, vettingID); lookupErr == nil && ok {
				return TriggerAuditResult{}, &domainerrors.DuplicateAuditError{
					AuditID: active.AuditID,
					Reason:  domainerrors.ErrAuditRunning,
				}
			}
		}
		return TriggerAuditResult{}, err
	}

	logger.Info("digital audit accepted",
		"event", "audit_trigger_accepted",
		"module", "endorsement/digital-audit-service",
		"layer", "application",
		"audit_id", audit.AuditID,
		"vetting_id", vettingID,
		"triggered_by", actor.MemberID,
		"force", cmd.Force,
	)

	runner := uc.Runner
	uc.Dispatcher.Dispatch(func(taskCtx context.Context) {
		runner.Run(taskCtx, audit.AuditID, vetting)
	})

	return TriggerAuditResult{
		AuditID: audit.AuditID,
		Status:  entities.AuditStatusRunning,
	}, nil
}

func (uc TriggerUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
