package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"caucus/contexts/endorsement/vetting-service/domain/entities"
)

func TestFinalizeVettingExactlyOneWinner(t *testing.T) {
	store := NewStore([]entities.Vetting{{
		VettingID: "vet-1",
		Stage:     entities.StageBoardVote,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}})

	const attempts = 2
	results := make([]bool, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		i := i
		go func() {
			defer wg.Done()
			ok, err := store.FinalizeVetting(
				context.Background(),
				"vet-1",
				entities.DecisionEndorse,
				time.Now().UTC(),
			)
			if err != nil {
				t.Errorf("finalize failed: %v", err)
				return
			}
			results[i] = ok
		}()
	}
	wg.Wait()

	winners := 0
	for _, ok := range results {
		if ok {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}

	vetting, err := store.GetVetting(context.Background(), "vet-1")
	if err != nil {
		t.Fatalf("get vetting failed: %v", err)
	}
	if vetting.EndorsementResult == nil || *vetting.EndorsementResult != entities.DecisionEndorse {
		t.Fatalf("expected committed endorse result, got %+v", vetting.EndorsementResult)
	}
	if vetting.Stage != entities.StageEndorsed {
		t.Fatalf("expected endorsed stage, got %s", vetting.Stage)
	}
}

func TestSaveVettingPreservesCommittedResult(t *testing.T) {
	store := NewStore([]entities.Vetting{{
		VettingID: "vet-1",
		Stage:     entities.StageBoardVote,
	}})

	endorsedAt := time.Now().UTC()
	if ok, err := store.FinalizeVetting(context.Background(), "vet-1", entities.DecisionDoNotEndorse, endorsedAt); err != nil || !ok {
		t.Fatalf("finalize failed: ok=%v err=%v", ok, err)
	}

	// A later save of a stale snapshot must not clear the committed pair.
	stale, err := store.GetVetting(context.Background(), "vet-1")
	if err != nil {
		t.Fatalf("get vetting failed: %v", err)
	}
	stale.EndorsementResult = nil
	stale.EndorsedAt = nil
	if err := store.SaveVetting(context.Background(), stale); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	current, err := store.GetVetting(context.Background(), "vet-1")
	if err != nil {
		t.Fatalf("get vetting failed: %v", err)
	}
	if current.EndorsementResult == nil || *current.EndorsementResult != entities.DecisionDoNotEndorse {
		t.Fatalf("committed result was lost: %+v", current.EndorsementResult)
	}
	if current.EndorsedAt == nil {
		t.Fatalf("committed endorsed_at was lost")
	}
}

func TestFinalizeVettingSecondCallLoses(t *testing.T) {
	store := NewStore([]entities.Vetting{{
		VettingID: "vet-1",
		Stage:     entities.StageBoardVote,
	}})

	first, err := store.FinalizeVetting(context.Background(), "vet-1", entities.DecisionEndorse, time.Now().UTC())
	if err != nil || !first {
		t.Fatalf("first finalize failed: ok=%v err=%v", first, err)
	}
	second, err := store.FinalizeVetting(context.Background(), "vet-1", entities.DecisionDoNotEndorse, time.Now().UTC())
	if err != nil {
		t.Fatalf("second finalize errored: %v", err)
	}
	if second {
		t.Fatalf("second finalize should report zero rows changed")
	}

	vetting, err := store.GetVetting(context.Background(), "vet-1")
	if err != nil {
		t.Fatalf("get vetting failed: %v", err)
	}
	if *vetting.EndorsementResult != entities.DecisionEndorse {
		t.Fatalf("first result was overwritten: %s", *vetting.EndorsementResult)
	}
}
