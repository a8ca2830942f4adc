package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "caucus/contexts/endorsement/vetting-service/application"
	"caucus/contexts/endorsement/vetting-service/domain/entities"
	domainerrors "caucus/contexts/endorsement/vetting-service/domain/errors"
	"caucus/contexts/endorsement/vetting-service/domain/services"
	"caucus/contexts/endorsement/vetting-service/ports"
)

type FinalizeCommand struct {
	ActorID   string
	VettingID string
}

// FinalizeResult is everything the caller needs after a committed decision.
// PressReleasePostID is empty when draft creation failed; the decision itself
// is still committed.
type FinalizeResult struct {
	Vetting            entities.Vetting
	Tally              entities.Tally
	EndorsementResult  entities.Decision
	PressReleasePostID string
}

// FinalizeUseCase is the finalization coordinator: it tallies the board votes
// and commits the decision exactly once under a compare-and-swap on
// endorsed_at, then runs best-effort side effects (candidate response mirror,
// press-release draft, outbox event). Side-effect failures are logged and
// never roll back or fail the commit.
type FinalizeUseCase struct {
	Vettings   ports.VettingRepository
	Votes      ports.VoteRepository
	Actors     ports.ActorDirectory
	Candidates ports.CandidateResponseDirectory
	Press      ports.PressPublisher
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	TiePolicy  services.TiePolicy
	OrgName    string
	Logger     *slog.Logger
}

func (uc FinalizeUseCase) Finalize(ctx context.Context, cmd FinalizeCommand) (FinalizeResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return FinalizeResult{}, domainerrors.ErrForbidden
	}
	actor, err := uc.Actors.ResolveActor(ctx, strings.TrimSpace(cmd.ActorID))
	if err != nil {
		return FinalizeResult{}, err
	}
	if !actor.IsChair && !actor.IsNationalAdmin {
		return FinalizeResult{}, domainerrors.ErrForbidden
	}

	vetting, err := uc.Vettings.GetVetting(ctx, strings.TrimSpace(cmd.VettingID))
	if err != nil {
		return FinalizeResult{}, err
	}
	// Preconditions are checked in order so each failure is reported
	// distinctly: stage, then finalized guard, then vote sufficiency.
	if vetting.Stage != entities.StageBoardVote {
		return FinalizeResult{}, domainerrors.ErrInvalidStage
	}
	if vetting.Finalized() {
		return FinalizeResult{}, domainerrors.ErrAlreadyFinalized
	}

	votes, err := uc.Votes.ListVotes(ctx, vetting.VettingID)
	if err != nil {
		return FinalizeResult{}, err
	}
	tally, result, err := services.ComputeTally(votes, uc.TiePolicy)
	if err != nil {
		return FinalizeResult{}, err
	}

	// Commit point. The repository write is conditioned on endorsed_at still
	// being null; a read-then-write would reintroduce the race.
	endorsedAt := uc.now()
	committed, err := uc.Vettings.FinalizeVetting(ctx, vetting.VettingID, result, endorsedAt)
	if err != nil {
		return FinalizeResult{}, err
	}
	if !committed {
		logger.Warn("finalize lost compare-and-swap race",
			"event", "vetting_finalize_cas_lost",
			"module", "endorsement/vetting-service",
			"layer", "application",
			"vetting_id", vetting.VettingID,
			"actor_id", actor.MemberID,
		)
		return FinalizeResult{}, domainerrors.ErrConcurrentFinalization
	}

	vetting.EndorsementResult = &result
	vetting.EndorsedAt = &endorsedAt
	vetting.Stage = entities.OutcomeStage(result)
	vetting.UpdatedAt = endorsedAt

	logger.Info("vetting finalized",
		"event", "vetting_finalized",
		"module", "endorsement/vetting-service",
		"layer", "application",
		"vetting_id", vetting.VettingID,
		"endorsement_result", string(result),
		"endorse_count", tally.Endorse,
		"do_not_endorse_count", tally.DoNotEndorse,
		"no_position_count", tally.NoPosition,
		"abstain_count", tally.Abstain,
		"actor_id", actor.MemberID,
	)

	postID := uc.runSideEffects(ctx, &vetting, result, endorsedAt)

	return FinalizeResult{
		Vetting:            vetting,
		Tally:              tally,
		EndorsementResult:  result,
		PressReleasePostID: postID,
	}, nil
}

// runSideEffects performs the post-commit propagation. Each effect fails
// independently; failures are logged and the finalize call still succeeds.
func (uc FinalizeUseCase) runSideEffects(
	ctx context.Context,
	vetting *entities.Vetting,
	result entities.Decision,
	endorsedAt time.Time,
) string {
	logger := application.ResolveLogger(uc.Logger)

	if vetting.CandidateResponseID != "" && uc.Candidates != nil {
		if err := uc.Candidates.SyncEndorsement(ctx, vetting.CandidateResponseID, result, endorsedAt); err != nil {
			logger.Error("candidate response sync failed",
				"event", "vetting_candidate_sync_failed",
				"module", "endorsement/vetting-service",
				"layer", "application",
				"vetting_id", vetting.VettingID,
				"candidate_response_id", vetting.CandidateResponseID,
				"error", err.Error(),
			)
		}
	}

	postID := ""
	if uc.Press != nil {
		draft := services.DraftPressRelease(result, *vetting, uc.OrgName, endorsedAt)
		createdID, err := uc.Press.PublishDraft(ctx, draft)
		if err != nil {
			logger.Error("press release draft failed",
				"event", "vetting_press_release_failed",
				"module", "endorsement/vetting-service",
				"layer", "application",
				"vetting_id", vetting.VettingID,
				"error", err.Error(),
			)
		} else {
			postID = createdID
			if err := uc.Vettings.SetPressRelease(ctx, vetting.VettingID, postID, entities.StagePressReleaseCreated, uc.now()); err != nil {
				logger.Error("press release link failed",
					"event", "vetting_press_release_link_failed",
					"module", "endorsement/vetting-service",
					"layer", "application",
					"vetting_id", vetting.VettingID,
					"post_id", postID,
					"error", err.Error(),
				)
			} else {
				vetting.PressReleasePostID = postID
				vetting.Stage = entities.StagePressReleaseCreated
			}
		}
	}

	if uc.Outbox != nil {
		if err := uc.appendFinalizedEvent(ctx, *vetting, result, endorsedAt, postID); err != nil {
			logger.Error("finalized event append failed",
				"event", "vetting_finalized_event_failed",
				"module", "endorsement/vetting-service",
				"layer", "application",
				"vetting_id", vetting.VettingID,
				"error", err.Error(),
			)
		}
	}
	return postID
}

func (uc FinalizeUseCase) appendFinalizedEvent(
	ctx context.Context,
	vetting entities.Vetting,
	result entities.Decision,
	endorsedAt time.Time,
	postID string,
) error {
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newVettingEnvelope(eventID, "vetting.finalized", vetting.VettingID, endorsedAt, map[string]any{
		"vetting_id":            vetting.VettingID,
		"endorsement_result":    string(result),
		"endorsed_at":           endorsedAt.Format(time.RFC3339),
		"press_release_post_id": postID,
	})
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}

func (uc FinalizeUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
