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

// OpenVettingCommand opens a vetting case, optionally linked to the candidate
// survey response that triggered it.
type OpenVettingCommand struct {
	ActorID             string
	CandidateResponseID string
	CandidateName       string
	Office              string
	State               string
	District            string
	Party               string
}

type AdvanceStageCommand struct {
	ActorID     string
	VettingID   string
	TargetStage entities.Stage
}

type UpsertSectionCommand struct {
	ActorID     string
	VettingID   string
	SectionType entities.SectionType
	Data        map[string]string
	Status      entities.SectionStatus
}

type SectionReviewCommand struct {
	ActorID     string
	VettingID   string
	SectionType entities.SectionType
	Approve     bool
}

type SetRecommendationCommand struct {
	ActorID        string
	VettingID      string
	Recommendation entities.Decision
	Notes          string
}

type CastVoteCommand struct {
	ActorID   string
	VettingID string
	Vote      entities.VoteValue
	Notes     string
}

// VettingUseCase orchestrates the committee-side pipeline: case creation,
// section research, stage transitions, the recommendation, and board votes.
// Finalization lives in FinalizeUseCase.
type VettingUseCase struct {
	Vettings         ports.VettingRepository
	Sections         ports.SectionRepository
	Votes            ports.VoteRepository
	Actors           ports.ActorDirectory
	Candidates       ports.CandidateResponseDirectory
	Outbox           ports.OutboxWriter
	Clock            ports.Clock
	IDGen            ports.IDGenerator
	RequiredSections []entities.SectionType
	Logger           *slog.Logger
}

// OpenVetting creates the case record. Candidate display fields are copied
// from the linked response when present so report rendering never has to join
// back to the survey store.
func (uc VettingUseCase) OpenVetting(ctx context.Context, cmd OpenVettingCommand) (entities.Vetting, error) {
	logger := application.ResolveLogger(uc.Logger)
	actor, err := uc.resolveActor(ctx, cmd.ActorID)
	if err != nil {
		return entities.Vetting{}, err
	}
	if !actor.IsCommitteeMember && !actor.IsNationalAdmin {
		return entities.Vetting{}, domainerrors.ErrForbidden
	}

	vetting := entities.Vetting{
		CandidateResponseID: strings.TrimSpace(cmd.CandidateResponseID),
		Stage:               entities.StageIntake,
		CandidateName:       strings.TrimSpace(cmd.CandidateName),
		Office:              strings.TrimSpace(cmd.Office),
		State:               strings.TrimSpace(cmd.State),
		District:            strings.TrimSpace(cmd.District),
		Party:               strings.TrimSpace(cmd.Party),
	}
	if vetting.CandidateResponseID != "" && uc.Candidates != nil {
		response, found, err := uc.Candidates.GetCandidateResponse(ctx, vetting.CandidateResponseID)
		if err != nil {
			return entities.Vetting{}, err
		}
		if found {
			vetting.CandidateName = response.CandidateName
			vetting.Office = response.Office
			vetting.State = response.State
			vetting.District = response.District
			vetting.Party = response.Party
		}
	}
	if vetting.CandidateName == "" {
		return entities.Vetting{}, domainerrors.ErrInvalidVettingInput
	}

	vettingID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Vetting{}, err
	}
	now := uc.now()
	vetting.VettingID = vettingID
	vetting.CreatedAt = now
	vetting.UpdatedAt = now
	if err := uc.Vettings.SaveVetting(ctx, vetting); err != nil {
		return entities.Vetting{}, err
	}
	logger.Info("vetting opened",
		"event", "vetting_opened",
		"module", "endorsement/vetting-service",
		"layer", "application",
		"vetting_id", vetting.VettingID,
		"candidate_response_id", vetting.CandidateResponseID,
		"actor_id", actor.MemberID,
	)
	return vetting, nil
}

// AdvanceStage applies a manual forward transition. Entering board_vote is
// chair-gated and requires the recommendation plus the configured completed
// sections; outcome stages are rejected here and only set by finalization.
func (uc VettingUseCase) AdvanceStage(ctx context.Context, cmd AdvanceStageCommand) (entities.Vetting, error) {
	logger := application.ResolveLogger(uc.Logger)
	actor, err := uc.resolveActor(ctx, cmd.ActorID)
	if err != nil {
		return entities.Vetting{}, err
	}
	if !actor.IsCommitteeMember && !actor.IsNationalAdmin {
		return entities.Vetting{}, domainerrors.ErrForbidden
	}

	vetting, err := uc.Vettings.GetVetting(ctx, strings.TrimSpace(cmd.VettingID))
	if err != nil {
		return entities.Vetting{}, err
	}
	if err := services.CanTransition(vetting.Stage, cmd.TargetStage); err != nil {
		logger.Warn("stage transition rejected",
			"event", "vetting_stage_transition_rejected",
			"module", "endorsement/vetting-service",
			"layer", "application",
			"vetting_id", vetting.VettingID,
			"current_stage", string(vetting.Stage),
			"target_stage", string(cmd.TargetStage),
			"actor_id", actor.MemberID,
		)
		allowed := services.AllowedTargets(vetting.Stage)
		stages := make([]string, 0, len(allowed))
		for _, stage := range allowed {
			stages = append(stages, string(stage))
		}
		return entities.Vetting{}, &domainerrors.TransitionError{Reason: err, AllowedStages: stages}
	}
	if cmd.TargetStage == entities.StageBoardVote {
		if !actor.IsChair && !actor.IsNationalAdmin {
			return entities.Vetting{}, domainerrors.ErrForbidden
		}
		sections, err := uc.Sections.ListSections(ctx, vetting.VettingID)
		if err != nil {
			return entities.Vetting{}, err
		}
		if err := services.BoardVoteEntryGate(vetting, sections, uc.RequiredSections); err != nil {
			return entities.Vetting{}, err
		}
	}

	now := uc.now()
	previous := vetting.Stage
	vetting.Stage = cmd.TargetStage
	vetting.UpdatedAt = now
	if err := uc.Vettings.SaveVetting(ctx, vetting); err != nil {
		return entities.Vetting{}, err
	}
	if err := uc.appendStageEvent(ctx, vetting, previous, now); err != nil {
		return entities.Vetting{}, err
	}
	logger.Info("vetting stage advanced",
		"event", "vetting_stage_advanced",
		"module", "endorsement/vetting-service",
		"layer", "application",
		"vetting_id", vetting.VettingID,
		"from_stage", string(previous),
		"to_stage", string(vetting.Stage),
		"actor_id", actor.MemberID,
	)
	return vetting, nil
}

// UpsertSection writes one report section. Sections are owned by their last
// writer; no cross-record locking.
func (uc VettingUseCase) UpsertSection(ctx context.Context, cmd UpsertSectionCommand) (entities.ReportSection, error) {
	actor, err := uc.resolveActor(ctx, cmd.ActorID)
	if err != nil {
		return entities.ReportSection{}, err
	}
	if !actor.IsCommitteeMember && !actor.IsNationalAdmin {
		return entities.ReportSection{}, domainerrors.ErrForbidden
	}
	if !entities.IsValidSectionType(cmd.SectionType) {
		return entities.ReportSection{}, domainerrors.ErrInvalidSectionType
	}
	switch cmd.Status {
	case entities.SectionStatusNotStarted, entities.SectionStatusInProgress, entities.SectionStatusCompleted:
	default:
		return entities.ReportSection{}, domainerrors.ErrInvalidVettingInput
	}

	vetting, err := uc.Vettings.GetVetting(ctx, strings.TrimSpace(cmd.VettingID))
	if err != nil {
		return entities.ReportSection{}, err
	}

	now := uc.now()
	section, found, err := uc.Sections.GetSection(ctx, vetting.VettingID, cmd.SectionType)
	if err != nil {
		return entities.ReportSection{}, err
	}
	if !found {
		section = entities.ReportSection{
			VettingID:   vetting.VettingID,
			SectionType: cmd.SectionType,
			CreatedAt:   now,
		}
	}
	section.Data = cmd.Data
	section.Status = cmd.Status
	section.UpdatedBy = actor.MemberID
	section.UpdatedAt = now
	if err := uc.Sections.SaveSection(ctx, section); err != nil {
		return entities.ReportSection{}, err
	}
	return section, nil
}

// ReviewSection approves or reopens a completed section. National-admin only.
func (uc VettingUseCase) ReviewSection(ctx context.Context, cmd SectionReviewCommand) (entities.ReportSection, error) {
	actor, err := uc.resolveActor(ctx, cmd.ActorID)
	if err != nil {
		return entities.ReportSection{}, err
	}
	if !actor.IsNationalAdmin {
		return entities.ReportSection{}, domainerrors.ErrForbidden
	}
	section, found, err := uc.Sections.GetSection(ctx, strings.TrimSpace(cmd.VettingID), cmd.SectionType)
	if err != nil {
		return entities.ReportSection{}, err
	}
	if !found {
		return entities.ReportSection{}, domainerrors.ErrSectionNotFound
	}
	if cmd.Approve {
		section.Status = entities.SectionStatusCompleted
	} else {
		section.Status = entities.SectionStatusInProgress
	}
	section.UpdatedBy = actor.MemberID
	section.UpdatedAt = uc.now()
	if err := uc.Sections.SaveSection(ctx, section); err != nil {
		return entities.ReportSection{}, err
	}
	return section, nil
}

// SetRecommendation records the committee's advisory pre-vote opinion. It is
// locked once the vetting reaches board_vote.
func (uc VettingUseCase) SetRecommendation(ctx context.Context, cmd SetRecommendationCommand) (entities.Vetting, error) {
	actor, err := uc.resolveActor(ctx, cmd.ActorID)
	if err != nil {
		return entities.Vetting{}, err
	}
	if !actor.IsCommitteeMember && !actor.IsNationalAdmin {
		return entities.Vetting{}, domainerrors.ErrForbidden
	}
	switch cmd.Recommendation {
	case entities.DecisionEndorse, entities.DecisionDoNotEndorse, entities.DecisionNoPosition:
	default:
		return entities.Vetting{}, domainerrors.ErrInvalidVettingInput
	}

	vetting, err := uc.Vettings.GetVetting(ctx, strings.TrimSpace(cmd.VettingID))
	if err != nil {
		return entities.Vetting{}, err
	}
	if vetting.Stage == entities.StageBoardVote || vetting.Finalized() {
		return entities.Vetting{}, domainerrors.ErrRecommendationLocked
	}

	recommendation := cmd.Recommendation
	vetting.Recommendation = &recommendation
	vetting.RecommendationNotes = strings.TrimSpace(cmd.Notes)
	vetting.UpdatedAt = uc.now()
	if err := uc.Vettings.SaveVetting(ctx, vetting); err != nil {
		return entities.Vetting{}, err
	}
	return vetting, nil
}

// CastVote records or updates one board member's vote. Votes are an upsert
// keyed by voter and become read-only once the vetting is finalized.
func (uc VettingUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (entities.BoardVote, error) {
	logger := application.ResolveLogger(uc.Logger)
	actor, err := uc.resolveActor(ctx, cmd.ActorID)
	if err != nil {
		return entities.BoardVote{}, err
	}
	if !actor.IsBoardMember {
		return entities.BoardVote{}, domainerrors.ErrForbidden
	}
	switch cmd.Vote {
	case entities.VoteEndorse, entities.VoteDoNotEndorse, entities.VoteNoPosition, entities.VoteAbstain:
	default:
		return entities.BoardVote{}, domainerrors.ErrInvalidVoteValue
	}

	vetting, err := uc.Vettings.GetVetting(ctx, strings.TrimSpace(cmd.VettingID))
	if err != nil {
		return entities.BoardVote{}, err
	}
	if vetting.Finalized() {
		return entities.BoardVote{}, domainerrors.ErrVoteLocked
	}
	if vetting.Stage != entities.StageBoardVote {
		return entities.BoardVote{}, domainerrors.ErrInvalidStage
	}

	now := uc.now()
	vote, found, err := uc.Votes.GetVoteByVoter(ctx, vetting.VettingID, actor.MemberID)
	if err != nil {
		return entities.BoardVote{}, err
	}
	if !found {
		voteID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.BoardVote{}, err
		}
		vote = entities.BoardVote{
			VoteID:    voteID,
			VettingID: vetting.VettingID,
			VoterID:   actor.MemberID,
			CreatedAt: now,
		}
	}
	vote.Vote = cmd.Vote
	vote.Notes = strings.TrimSpace(cmd.Notes)
	vote.UpdatedAt = now
	if err := uc.Votes.SaveVote(ctx, vote); err != nil {
		return entities.BoardVote{}, err
	}
	if err := uc.appendVoteEvent(ctx, vetting, vote, now); err != nil {
		return entities.BoardVote{}, err
	}
	logger.Info("board vote cast",
		"event", "vetting_board_vote_cast",
		"module", "endorsement/vetting-service",
		"layer", "application",
		"vetting_id", vetting.VettingID,
		"voter_id", actor.MemberID,
		"vote", string(vote.Vote),
		"was_update", found,
	)
	return vote, nil
}

func (uc VettingUseCase) resolveActor(ctx context.Context, actorID string) (ports.ActorContext, error) {
	if strings.TrimSpace(actorID) == "" {
		return ports.ActorContext{}, domainerrors.ErrForbidden
	}
	return uc.Actors.ResolveActor(ctx, strings.TrimSpace(actorID))
}

func (uc VettingUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (uc VettingUseCase) appendStageEvent(
	ctx context.Context,
	vetting entities.Vetting,
	previous entities.Stage,
	occurredAt time.Time,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newVettingEnvelope(eventID, "vetting.stage_changed", vetting.VettingID, occurredAt, map[string]any{
		"vetting_id": vetting.VettingID,
		"from_stage": string(previous),
		"to_stage":   string(vetting.Stage),
	})
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}

func (uc VettingUseCase) appendVoteEvent(
	ctx context.Context,
	vetting entities.Vetting,
	vote entities.BoardVote,
	occurredAt time.Time,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newVettingEnvelope(eventID, "board_vote.cast", vetting.VettingID, occurredAt, map[string]any{
		"vetting_id": vetting.VettingID,
		"vote_id":    vote.VoteID,
		"voter_id":   vote.VoterID,
		"vote":       string(vote.Vote),
	})
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}
