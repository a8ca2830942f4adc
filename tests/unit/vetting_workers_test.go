package unit

import (
	"context"
	"errors"
	"testing"

	vettingservice "caucus/contexts/endorsement/vetting-service"
	vettingworkers "caucus/contexts/endorsement/vetting-service/application/workers"
	"caucus/contexts/endorsement/vetting-service/ports"
	httptransport "caucus/contexts/endorsement/vetting-service/transport/http"
)

type recordingPublisher struct {
	topics []string
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ ports.EventEnvelope) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.topics = append(p.topics, topic)
	return nil
}

func seedOutboxRows(t *testing.T, module vettingservice.Module) {
	t.Helper()
	ctx := context.Background()
	vetting, err := module.Handler.OpenVettingHandler(ctx, "member-1", httptransport.OpenVettingRequest{
		CandidateName: "Jordan Avery",
		Office:        "State Senate",
	})
	if err != nil {
		t.Fatalf("open vetting failed: %v", err)
	}
	for _, stage := range []string{"committee_review", "interview"} {
		if _, err := module.Handler.AdvanceStageHandler(ctx, "member-1", vetting.VettingID, httptransport.AdvanceStageRequest{
			TargetStage: stage,
		}); err != nil {
			t.Fatalf("advance to %s failed: %v", stage, err)
		}
	}
}

func TestOutboxRelayPublishesAndMarks(t *testing.T) {
	module := vettingservice.NewInMemoryModule(nil, vettingTestActors(), &pressStub{}, nil)
	seedOutboxRows(t, module)
	if module.Store.PendingOutboxCount() != 2 {
		t.Fatalf("expected 2 pending outbox rows, got %d", module.Store.PendingOutboxCount())
	}

	publisher := &recordingPublisher{}
	relay := vettingworkers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: publisher,
		BatchSize: 10,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if module.Store.PendingOutboxCount() != 0 {
		t.Fatalf("expected outbox drained, got %d pending", module.Store.PendingOutboxCount())
	}
	if len(publisher.topics) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.topics))
	}
	for _, topic := range publisher.topics {
		if topic != "vetting.stage_changed" {
			t.Fatalf("expected vetting.stage_changed topic, got %s", topic)
		}
	}

	// A second cycle with nothing pending is a no-op.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("empty relay run failed: %v", err)
	}
	if len(publisher.topics) != 2 {
		t.Fatalf("expected no additional publishes, got %d", len(publisher.topics))
	}
}

func TestOutboxRelayKeepsRowsOnPublishFailure(t *testing.T) {
	module := vettingservice.NewInMemoryModule(nil, vettingTestActors(), &pressStub{}, nil)
	seedOutboxRows(t, module)

	publisher := &recordingPublisher{fail: true}
	relay := vettingworkers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: publisher,
		BatchSize: 10,
	}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected relay failure when the broker is down")
	}
	if module.Store.PendingOutboxCount() != 2 {
		t.Fatalf("rows must stay pending after a failed publish, got %d", module.Store.PendingOutboxCount())
	}

	publisher.fail = false
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("retry run failed: %v", err)
	}
	if module.Store.PendingOutboxCount() != 0 {
		t.Fatalf("expected outbox drained after retry, got %d", module.Store.PendingOutboxCount())
	}
}
