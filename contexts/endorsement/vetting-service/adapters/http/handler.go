package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"caucus/contexts/endorsement/vetting-service/application/commands"
	"caucus/contexts/endorsement/vetting-service/application/queries"
	"caucus/contexts/endorsement/vetting-service/domain/entities"
	httptransport "caucus/contexts/endorsement/vetting-service/transport/http"
)

type Handler struct {
	Vettings commands.VettingUseCase
	Finalize commands.FinalizeUseCase
	Reports  queries.ReportUseCase
	Logger   *slog.Logger
}

// OpenVettingHandler godoc
// @Summary Open a candidate vetting
// @Description Creates a vetting at the intake stage, denormalizing candidate fields from the linked response when present.
// @Tags vetting-service
// @Accept json
// @Produce json
// @Param X-Member-Id header string true "Acting member id"
// @Param request body httptransport.OpenVettingRequest true "Candidate details"
// @Success 201 {object} httptransport.VettingResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /vettings [post]
func (h Handler) OpenVettingHandler(
	ctx context.Context,
	actorID string,
	req httptransport.OpenVettingRequest,
) (httptransport.VettingResponse, error) {
	vetting, err := h.Vettings.OpenVetting(ctx, commands.OpenVettingCommand{
		ActorID:             actorID,
		CandidateResponseID: req.CandidateResponseID,
		CandidateName:       req.CandidateName,
		Office:              req.Office,
		State:               req.State,
		District:            req.District,
		Party:               req.Party,
	})
	if err != nil {
		return httptransport.VettingResponse{}, err
	}
	return mapVetting(vetting), nil
}

// AdvanceStageHandler godoc
// @Summary Advance the vetting stage
// @Description Applies a forward stage transition; entering board_vote is chair-gated and section-gated.
// @Tags vetting-service
// @Accept json
// @Produce json
// @Param X-Member-Id header string true "Acting member id"
// @Param vetting_id path string true "Vetting id"
// @Param request body httptransport.AdvanceStageRequest true "Target stage"
// @Success 200 {object} httptransport.VettingResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /vettings/{vetting_id}/stage [post]
func (h Handler) AdvanceStageHandler(
	ctx context.Context,
	actorID string,
	vettingID string,
	req httptransport.AdvanceStageRequest,
) (httptransport.VettingResponse, error) {
	vetting, err := h.Vettings.AdvanceStage(ctx, commands.AdvanceStageCommand{
		ActorID:     actorID,
		VettingID:   vettingID,
		TargetStage: entities.Stage(req.TargetStage),
	})
	if err != nil {
		return httptransport.VettingResponse{}, err
	}
	return mapVetting(vetting), nil
}

// UpsertSectionHandler godoc
// @Summary Create or update a report section
// @Description Last write wins; sections carry an open key/value document.
// @Tags vetting-service
// @Accept json
// @Produce json
// @Param X-Member-Id header string true "Acting member id"
// @Param vetting_id path string true "Vetting id"
// @Param section_type path string true "Section type"
// @Param request body httptransport.UpsertSectionRequest true "Section content"
// @Success 200 {object} httptransport.SectionResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /vettings/{vetting_id}/sections/{section_type} [put]
func (h Handler) UpsertSectionHandler(
	ctx context.Context,
	actorID string,
	vettingID string,
	sectionType string,
	req httptransport.UpsertSectionRequest,
) (httptransport.SectionResponse, error) {
	section, err := h.Vettings.UpsertSection(ctx, commands.UpsertSectionCommand{
		ActorID:     actorID,
		VettingID:   vettingID,
		SectionType: entities.SectionType(sectionType),
		Data:        req.Data,
		Status:      entities.SectionStatus(req.Status),
	})
	if err != nil {
		return httptransport.SectionResponse{}, err
	}
	return mapSection(section), nil
}

func (h Handler) ReviewSectionHandler(
	ctx context.Context,
	actorID string,
	vettingID string,
	sectionType string,
	approve bool,
) (httptransport.SectionResponse, error) {
	section, err := h.Vettings.ReviewSection(ctx, commands.SectionReviewCommand{
		ActorID:     actorID,
		VettingID:   vettingID,
		SectionType: entities.SectionType(sectionType),
		Approve:     approve,
	})
	if err != nil {
		return httptransport.SectionResponse{}, err
	}
	return mapSection(section), nil
}

func (h Handler) SetRecommendationHandler(
	ctx context.Context,
	actorID string,
	vettingID string,
	req httptransport.SetRecommendationRequest,
) (httptransport.VettingResponse, error) {
	vetting, err := h.Vettings.SetRecommendation(ctx, commands.SetRecommendationCommand{
		ActorID:        actorID,
		VettingID:      vettingID,
		Recommendation: entities.Decision(req.Recommendation),
		Notes:          req.Notes,
	})
	if err != nil {
		return httptransport.VettingResponse{}, err
	}
	return mapVetting(vetting), nil
}

// CastVoteHandler godoc
// @Summary Cast or update a board vote
// @Description Upserts the voter's ballot; refused once the vetting is finalized.
// @Tags vetting-service
// @Accept json
// @Produce json
// @Param X-Member-Id header string true "Acting member id"
// @Param vetting_id path string true "Vetting id"
// @Param request body httptransport.CastVoteRequest true "Vote"
// @Success 200 {object} httptransport.VoteResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /vettings/{vetting_id}/votes [post]
func (h Handler) CastVoteHandler(
	ctx context.Context,
	actorID string,
	vettingID string,
	req httptransport.CastVoteRequest,
) (httptransport.VoteResponse, error) {
	vote, err := h.Vettings.CastVote(ctx, commands.CastVoteCommand{
		ActorID:   actorID,
		VettingID: vettingID,
		Vote:      entities.VoteValue(req.Vote),
		Notes:     req.Notes,
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return mapVote(vote), nil
}

// FinalizeHandler godoc
// @Summary Finalize the board vote
// @Description Tallies substantive votes, commits the outcome exactly once, and drafts the press release.
// @Tags vetting-service
// @Produce json
// @Param X-Member-Id header string true "Acting member id"
// @Param vetting_id path string true "Vetting id"
// @Success 200 {object} httptransport.FinalizeResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /vettings/{vetting_id}/votes/finalize [post]
func (h Handler) FinalizeHandler(
	ctx context.Context,
	actorID string,
	vettingID string,
) (httptransport.FinalizeResponse, error) {
	result, err := h.Finalize.Finalize(ctx, commands.FinalizeCommand{
		ActorID:   actorID,
		VettingID: vettingID,
	})
	if err != nil {
		return httptransport.FinalizeResponse{}, err
	}
	return httptransport.FinalizeResponse{
		Vetting:            mapVetting(result.Vetting),
		Tally:              mapTally(result.Tally),
		EndorsementResult:  string(result.EndorsementResult),
		PressReleasePostID: result.PressReleasePostID,
	}, nil
}

// GetReportHandler godoc
// @Summary Get the vetting report
// @Description Returns the vetting with its sections, votes, and a live tally preview.
// @Tags vetting-service
// @Produce json
// @Param vetting_id path string true "Vetting id"
// @Success 200 {object} httptransport.ReportResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /vettings/{vetting_id} [get]
func (h Handler) GetReportHandler(ctx context.Context, vettingID string) (httptransport.ReportResponse, error) {
	report, err := h.Reports.GetReport(ctx, vettingID)
	if err != nil {
		return httptransport.ReportResponse{}, err
	}
	sections := make([]httptransport.SectionResponse, 0, len(report.Sections))
	for _, section := range report.Sections {
		sections = append(sections, mapSection(section))
	}
	votes := make([]httptransport.VoteResponse, 0, len(report.Votes))
	for _, vote := range report.Votes {
		votes = append(votes, mapVote(vote))
	}
	return httptransport.ReportResponse{
		Vetting:       mapVetting(report.Vetting),
		Sections:      sections,
		Votes:         votes,
		Tally:         mapTally(report.Tally),
		PreviewResult: decisionString(report.PreviewResult),
	}, nil
}

func (h Handler) ListVettingsHandler(ctx context.Context) (httptransport.ListVettingsResponse, error) {
	vettings, err := h.Reports.ListVettings(ctx)
	if err != nil {
		return httptransport.ListVettingsResponse{}, err
	}
	items := make([]httptransport.VettingResponse, 0, len(vettings))
	for _, vetting := range vettings {
		items = append(items, mapVetting(vetting))
	}
	return httptransport.ListVettingsResponse{Items: items}, nil
}

func mapVetting(vetting entities.Vetting) httptransport.VettingResponse {
	return httptransport.VettingResponse{
		VettingID:           vetting.VettingID,
		CandidateResponseID: vetting.CandidateResponseID,
		Stage:               string(vetting.Stage),
		Recommendation:      decisionString(vetting.Recommendation),
		RecommendationNotes: vetting.RecommendationNotes,
		EndorsementResult:   decisionString(vetting.EndorsementResult),
		EndorsedAt:          timeString(vetting.EndorsedAt),
		PressReleasePostID:  vetting.PressReleasePostID,
		CandidateName:       vetting.CandidateName,
		Office:              vetting.Office,
		State:               vetting.State,
		District:            vetting.District,
		Party:               vetting.Party,
		CreatedAt:           vetting.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:           vetting.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapSection(section entities.ReportSection) httptransport.SectionResponse {
	return httptransport.SectionResponse{
		VettingID:   section.VettingID,
		SectionType: string(section.SectionType),
		Data:        section.Data,
		Status:      string(section.Status),
		UpdatedBy:   section.UpdatedBy,
		UpdatedAt:   section.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapVote(vote entities.BoardVote) httptransport.VoteResponse {
	return httptransport.VoteResponse{
		VoteID:    vote.VoteID,
		VettingID: vote.VettingID,
		VoterID:   vote.VoterID,
		Vote:      string(vote.Vote),
		Notes:     vote.Notes,
		UpdatedAt: vote.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapTally(tally entities.Tally) httptransport.TallyResponse {
	return httptransport.TallyResponse{
		Endorse:      tally.Endorse,
		DoNotEndorse: tally.DoNotEndorse,
		NoPosition:   tally.NoPosition,
		Abstain:      tally.Abstain,
	}
}

func decisionString(decision *entities.Decision) *string {
	if decision == nil {
		return nil
	}
	value := string(*decision)
	return &value
}

func timeString(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.UTC().Format(time.RFC3339)
	return &formatted
}
