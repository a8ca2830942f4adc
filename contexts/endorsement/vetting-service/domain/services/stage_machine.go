package services

import (
	"caucus/contexts/endorsement/vetting-service/domain/entities"
	domainerrors "caucus/contexts/endorsement/vetting-service/domain/errors"
)

// stageOrder assigns each stage its position in the linear workflow. The three
// outcome stages share a slot because a vetting reaches exactly one of them.
var stageOrder = map[entities.Stage]int{
	entities.StageIntake:              0,
	entities.StageCommitteeReview:     1,
	entities.StageInterview:           2,
	entities.StageRecommendation:      3,
	entities.StageBoardVote:           4,
	entities.StageEndorsed:            5,
	entities.StageRejected:            5,
	entities.StageNoPosition:          5,
	entities.StagePressReleaseCreated: 6,
}

func isOutcomeStage(stage entities.Stage) bool {
	switch stage {
	case entities.StageEndorsed, entities.StageRejected, entities.StageNoPosition:
		return true
	default:
		return false
	}
}

// CanTransition validates a manual stage edit. Transitions only move forward
// along the defined order, and the board_vote -> outcome jump is reserved for
// the finalization coordinator.
func CanTransition(current entities.Stage, target entities.Stage) error {
	currentOrder, ok := stageOrder[current]
	if !ok {
		return domainerrors.ErrInvalidTransition
	}
	targetOrder, ok := stageOrder[target]
	if !ok {
		return domainerrors.ErrInvalidTransition
	}
	if isOutcomeStage(target) || target == entities.StagePressReleaseCreated {
		return domainerrors.ErrFinalizeOnly
	}
	if targetOrder <= currentOrder {
		return domainerrors.ErrInvalidTransition
	}
	return nil
}

// AllowedTargets lists the stages a manual edit may move to from current.
// Used to build actionable InvalidTransition responses.
func AllowedTargets(current entities.Stage) []entities.Stage {
	currentOrder, ok := stageOrder[current]
	if !ok {
		return nil
	}
	targets := make([]entities.Stage, 0, 4)
	for _, stage := range []entities.Stage{
		entities.StageCommitteeReview,
		entities.StageInterview,
		entities.StageRecommendation,
		entities.StageBoardVote,
	} {
		if stageOrder[stage] > currentOrder {
			targets = append(targets, stage)
		}
	}
	return targets
}

// BoardVoteEntryGate checks the preconditions for opening the board vote: the
// committee must have produced a recommendation and the required sections must
// be completed. The required-section set is configuration, not domain policy.
func BoardVoteEntryGate(
	vetting entities.Vetting,
	sections []entities.ReportSection,
	required []entities.SectionType,
) error {
	if vetting.Recommendation == nil {
		return domainerrors.ErrRecommendationMissing
	}
	completed := make(map[entities.SectionType]bool, len(sections))
	for _, section := range sections {
		if section.Status == entities.SectionStatusCompleted {
			completed[section.SectionType] = true
		}
	}
	for _, sectionType := range required {
		if !completed[sectionType] {
			return domainerrors.ErrSectionsIncomplete
		}
	}
	return nil
}
