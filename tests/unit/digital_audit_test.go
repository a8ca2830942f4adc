package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	digitalauditservice "caucus/contexts/endorsement/digital-audit-service"
	auditmemory "caucus/contexts/endorsement/digital-audit-service/adapters/memory"
	auditworkers "caucus/contexts/endorsement/digital-audit-service/application/workers"
	"caucus/contexts/endorsement/digital-audit-service/domain/entities"
	auditerrors "caucus/contexts/endorsement/digital-audit-service/domain/errors"
	"caucus/contexts/endorsement/digital-audit-service/ports"
	httptransport "caucus/contexts/endorsement/digital-audit-service/transport/http"
)

type auditActorStub struct {
	actors map[string]ports.ActorContext
}

func (s auditActorStub) ResolveActor(_ context.Context, memberID string) (ports.ActorContext, error) {
	actor, ok := s.actors[memberID]
	if !ok {
		return ports.ActorContext{}, auditerrors.ErrForbidden
	}
	return actor, nil
}

type auditVettingStub struct {
	vettings map[string]ports.VettingProjection
}

func (s auditVettingStub) GetVetting(_ context.Context, vettingID string) (ports.VettingProjection, bool, error) {
	vetting, ok := s.vettings[vettingID]
	return vetting, ok, nil
}

func auditTestModule() digitalauditservice.Module {
	vettings := auditVettingStub{vettings: map[string]ports.VettingProjection{
		"vet-1": {
			VettingID:     "vet-1",
			CandidateName: "Jordan Avery",
			State:         "CO",
			Office:        "State Senate",
		},
	}}
	actors := auditActorStub{actors: map[string]ports.ActorContext{
		"chair-1":  {MemberID: "chair-1", IsChair: true},
		"admin-1":  {MemberID: "admin-1", IsNationalAdmin: true},
		"member-1": {MemberID: "member-1"},
	}}
	return digitalauditservice.NewInMemoryModule(vettings, actors, nil)
}

func TestAuditTriggerRunsToCompletion(t *testing.T) {
	module := auditTestModule()
	ctx := context.Background()

	accepted, err := module.Handler.TriggerAuditHandler(ctx, "chair-1", "vet-1", httptransport.TriggerAuditRequest{})
	if err != nil {
		t.Fatalf("trigger failed: %v", err)
	}
	if accepted.Status != "running" {
		t.Fatalf("expected running status in the accept response, got %s", accepted.Status)
	}
	module.Dispatcher.Wait()

	view, err := module.Handler.GetLatestAuditHandler(ctx, "vet-1")
	if err != nil {
		t.Fatalf("get latest audit failed: %v", err)
	}
	if view.Audit == nil {
		t.Fatalf("expected an audit")
	}
	if view.Audit.Status != "audit_completed" {
		t.Fatalf("expected completed audit, got %s", view.Audit.Status)
	}
	if view.Audit.CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}
	if len(view.Platforms) != 4 {
		t.Fatalf("expected 4 platform findings, got %d", len(view.Platforms))
	}
	wantOrder := []string{"campaign_site", "facebook", "news", "twitter"}
	for i, platform := range view.Platforms {
		if platform.EntityType != wantOrder[i] {
			t.Fatalf("expected %s at %d, got %s", wantOrder[i], i, platform.EntityType)
		}
		if platform.Findings["handle"] != "jordan.avery@"+platform.EntityType {
			t.Fatalf("unexpected handle: %s", platform.Findings["handle"])
		}
	}
}

func TestAuditGetLatestWithoutAudit(t *testing.T) {
	module := auditTestModule()

	view, err := module.Handler.GetLatestAuditHandler(context.Background(), "vet-1")
	if err != nil {
		t.Fatalf("get latest audit failed: %v", err)
	}
	if view.Audit != nil {
		t.Fatalf("expected null audit before any trigger, got %+v", view.Audit)
	}

	_, err = module.Handler.GetLatestAuditHandler(context.Background(), "vet-unknown")
	if !errors.Is(err, auditerrors.ErrVettingNotFound) {
		t.Fatalf("expected vetting not found, got %v", err)
	}
}

func TestAuditDuplicatePreventionAndForce(t *testing.T) {
	module := auditTestModule()
	ctx := context.Background()

	first, err := module.Handler.TriggerAuditHandler(ctx, "chair-1", "vet-1", httptransport.TriggerAuditRequest{})
	if err != nil {
		t.Fatalf("first trigger failed: %v", err)
	}
	module.Dispatcher.Wait()

	_, err = module.Handler.TriggerAuditHandler(ctx, "chair-1", "vet-1", httptransport.TriggerAuditRequest{})
	var duplicate *auditerrors.DuplicateAuditError
	if !errors.As(err, &duplicate) {
		t.Fatalf("expected duplicate audit error, got %v", err)
	}
	if duplicate.AuditID != first.AuditID {
		t.Fatalf("expected conflicting audit id %s, got %s", first.AuditID, duplicate.AuditID)
	}
	if !errors.Is(err, auditerrors.ErrDuplicateAudit) {
		t.Fatalf("expected duplicate reason, got %v", duplicate.Reason)
	}

	rerun, err := module.Handler.TriggerAuditHandler(ctx, "admin-1", "vet-1", httptransport.TriggerAuditRequest{Force: true})
	if err != nil {
		t.Fatalf("forced rerun failed: %v", err)
	}
	if rerun.AuditID == first.AuditID {
		t.Fatalf("expected a new audit id on forced rerun")
	}
	module.Dispatcher.Wait()
}

func TestAuditRunningBlocksEvenWithForce(t *testing.T) {
	module := auditTestModule()
	ctx := context.Background()

	running := entities.DigitalAudit{
		AuditID:     "audit-running",
		VettingID:   "vet-1",
		Status:      entities.AuditStatusRunning,
		TriggeredBy: "chair-1",
		CreatedAt:   time.Now().UTC(),
	}
	if err := module.Store.InsertAudit(ctx, running); err != nil {
		t.Fatalf("seed running audit failed: %v", err)
	}

	_, err := module.Handler.TriggerAuditHandler(ctx, "chair-1", "vet-1", httptransport.TriggerAuditRequest{Force: true})
	var duplicate *auditerrors.DuplicateAuditError
	if !errors.As(err, &duplicate) {
		t.Fatalf("expected duplicate audit error, got %v", err)
	}
	if !errors.Is(err, auditerrors.ErrAuditRunning) {
		t.Fatalf("expected running reason, got %v", duplicate.Reason)
	}
	if duplicate.AuditID != "audit-running" {
		t.Fatalf("expected the running audit id, got %s", duplicate.AuditID)
	}
}

func TestAuditTriggerPermissions(t *testing.T) {
	module := auditTestModule()
	ctx := context.Background()

	_, err := module.Handler.TriggerAuditHandler(ctx, "member-1", "vet-1", httptransport.TriggerAuditRequest{})
	if !errors.Is(err, auditerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for plain member, got %v", err)
	}
	_, err = module.Handler.TriggerAuditHandler(ctx, "chair-1", "vet-unknown", httptransport.TriggerAuditRequest{})
	if !errors.Is(err, auditerrors.ErrVettingNotFound) {
		t.Fatalf("expected vetting not found, got %v", err)
	}
}

func TestOrphanDetectorFailsStaleRunningAudits(t *testing.T) {
	store := auditmemory.NewStore()
	ctx := context.Background()

	if err := store.InsertAudit(ctx, entities.DigitalAudit{
		AuditID:   "audit-stale",
		VettingID: "vet-1",
		Status:    entities.AuditStatusRunning,
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
	}); err != nil {
		t.Fatalf("seed stale audit failed: %v", err)
	}
	if err := store.InsertAudit(ctx, entities.DigitalAudit{
		AuditID:   "audit-fresh",
		VettingID: "vet-2",
		Status:    entities.AuditStatusRunning,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed fresh audit failed: %v", err)
	}

	detector := auditworkers.OrphanDetector{
		Audits: store,
		MaxAge: 30 * time.Minute,
	}
	recovered, err := detector.RunOnce(ctx)
	if err != nil {
		t.Fatalf("orphan sweep failed: %v", err)
	}
	if recovered != 1 {
		t.Fatalf("expected one recovered orphan, got %d", recovered)
	}

	stale, err := store.GetAudit(ctx, "audit-stale")
	if err != nil {
		t.Fatalf("get stale audit failed: %v", err)
	}
	if stale.Status != entities.AuditStatusFailed {
		t.Fatalf("expected failed status, got %s", stale.Status)
	}
	if stale.ErrorMessage == "" || stale.CompletedAt == nil {
		t.Fatalf("expected error message and completed_at on the orphan")
	}

	fresh, err := store.GetAudit(ctx, "audit-fresh")
	if err != nil {
		t.Fatalf("get fresh audit failed: %v", err)
	}
	if fresh.Status != entities.AuditStatusRunning {
		t.Fatalf("fresh running audit must be untouched, got %s", fresh.Status)
	}
}
