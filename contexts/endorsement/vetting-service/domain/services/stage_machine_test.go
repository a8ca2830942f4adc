package services

import (
	"errors"
	"testing"

	"caucus/contexts/endorsement/vetting-service/domain/entities"
	domainerrors "caucus/contexts/endorsement/vetting-service/domain/errors"
)

func TestCanTransitionForwardOnly(t *testing.T) {
	if err := CanTransition(entities.StageIntake, entities.StageCommitteeReview); err != nil {
		t.Fatalf("forward transition rejected: %v", err)
	}
	if err := CanTransition(entities.StageIntake, entities.StageBoardVote); err != nil {
		t.Fatalf("forward skip rejected: %v", err)
	}
	if err := CanTransition(entities.StageInterview, entities.StageCommitteeReview); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition going backward, got %v", err)
	}
	if err := CanTransition(entities.StageInterview, entities.StageInterview); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for same stage, got %v", err)
	}
}

func TestCanTransitionReservesOutcomeStages(t *testing.T) {
	for _, target := range []entities.Stage{
		entities.StageEndorsed,
		entities.StageRejected,
		entities.StageNoPosition,
		entities.StagePressReleaseCreated,
	} {
		if err := CanTransition(entities.StageBoardVote, target); !errors.Is(err, domainerrors.ErrFinalizeOnly) {
			t.Fatalf("expected finalize-only for %s, got %v", target, err)
		}
	}
}

func TestCanTransitionUnknownStage(t *testing.T) {
	if err := CanTransition("garbage", entities.StageInterview); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestAllowedTargets(t *testing.T) {
	targets := AllowedTargets(entities.StageInterview)
	want := []entities.Stage{entities.StageRecommendation, entities.StageBoardVote}
	if len(targets) != len(want) {
		t.Fatalf("expected %d targets, got %v", len(want), targets)
	}
	for i, stage := range want {
		if targets[i] != stage {
			t.Fatalf("expected %s at %d, got %s", stage, i, targets[i])
		}
	}
	if got := AllowedTargets(entities.StageEndorsed); len(got) != 0 {
		t.Fatalf("expected no targets from an outcome stage, got %v", got)
	}
}

func TestBoardVoteEntryGate(t *testing.T) {
	recommendation := entities.DecisionEndorse
	vetting := entities.Vetting{
		VettingID:      "vet-1",
		Stage:          entities.StageRecommendation,
		Recommendation: &recommendation,
	}
	required := []entities.SectionType{
		entities.SectionExecutiveSummary,
		entities.SectionCandidateBackground,
	}

	err := BoardVoteEntryGate(vetting, nil, required)
	if !errors.Is(err, domainerrors.ErrSectionsIncomplete) {
		t.Fatalf("expected sections incomplete, got %v", err)
	}

	sections := []entities.ReportSection{
		{SectionType: entities.SectionExecutiveSummary, Status: entities.SectionStatusCompleted},
		{SectionType: entities.SectionCandidateBackground, Status: entities.SectionStatusInProgress},
	}
	err = BoardVoteEntryGate(vetting, sections, required)
	if !errors.Is(err, domainerrors.ErrSectionsIncomplete) {
		t.Fatalf("expected sections incomplete with in-progress section, got %v", err)
	}

	sections[1].Status = entities.SectionStatusCompleted
	if err := BoardVoteEntryGate(vetting, sections, required); err != nil {
		t.Fatalf("gate rejected a complete vetting: %v", err)
	}

	vetting.Recommendation = nil
	err = BoardVoteEntryGate(vetting, sections, required)
	if !errors.Is(err, domainerrors.ErrRecommendationMissing) {
		t.Fatalf("expected recommendation missing, got %v", err)
	}
}
