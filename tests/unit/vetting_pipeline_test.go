package unit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	vettingservice "caucus/contexts/endorsement/vetting-service"
	"caucus/contexts/endorsement/vetting-service/domain/entities"
	vettingerrors "caucus/contexts/endorsement/vetting-service/domain/errors"
	"caucus/contexts/endorsement/vetting-service/ports"
	httptransport "caucus/contexts/endorsement/vetting-service/transport/http"
	contractsv1 "caucus/contracts/gen/events/v1"
)

type vettingActorStub struct {
	actors map[string]ports.ActorContext
}

func (s vettingActorStub) ResolveActor(_ context.Context, memberID string) (ports.ActorContext, error) {
	actor, ok := s.actors[memberID]
	if !ok {
		return ports.ActorContext{}, vettingerrors.ErrForbidden
	}
	return actor, nil
}

type pressStub struct {
	mu     sync.Mutex
	drafts []entities.PressReleaseDraft
	fail   bool
}

func (s *pressStub) PublishDraft(_ context.Context, draft entities.PressReleaseDraft) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return "", errors.New("content store unavailable")
	}
	s.drafts = append(s.drafts, draft)
	return "post-123", nil
}

func vettingTestActors() vettingActorStub {
	return vettingActorStub{actors: map[string]ports.ActorContext{
		"chair-1":  {MemberID: "chair-1", IsCommitteeMember: true, IsChair: true},
		"member-1": {MemberID: "member-1", IsCommitteeMember: true},
		"board-1":  {MemberID: "board-1", IsBoardMember: true},
		"board-2":  {MemberID: "board-2", IsBoardMember: true},
		"board-3":  {MemberID: "board-3", IsBoardMember: true},
		"board-4":  {MemberID: "board-4", IsBoardMember: true},
	}}
}

func openBoardVoteVetting(t *testing.T, module vettingservice.Module) string {
	t.Helper()
	ctx := context.Background()
	vetting, err := module.Handler.OpenVettingHandler(ctx, "member-1", httptransport.OpenVettingRequest{
		CandidateName: "Jordan Avery",
		Office:        "State Senate",
		State:         "CO",
	})
	if err != nil {
		t.Fatalf("open vetting failed: %v", err)
	}
	for _, sectionType := range []string{"executive_summary", "candidate_background"} {
		_, err := module.Handler.UpsertSectionHandler(ctx, "member-1", vetting.VettingID, sectionType, httptransport.UpsertSectionRequest{
			Data:   map[string]string{"summary": "clean record"},
			Status: "completed",
		})
		if err != nil {
			t.Fatalf("upsert section %s failed: %v", sectionType, err)
		}
	}
	if _, err := module.Handler.SetRecommendationHandler(ctx, "member-1", vetting.VettingID, httptransport.SetRecommendationRequest{
		Recommendation: "endorse",
	}); err != nil {
		t.Fatalf("set recommendation failed: %v", err)
	}
	if _, err := module.Handler.AdvanceStageHandler(ctx, "chair-1", vetting.VettingID, httptransport.AdvanceStageRequest{
		TargetStage: "board_vote",
	}); err != nil {
		t.Fatalf("advance to board_vote failed: %v", err)
	}
	return vetting.VettingID
}

func TestVettingFinalizeHappyPath(t *testing.T) {
	press := &pressStub{}
	module := vettingservice.NewInMemoryModule(nil, vettingTestActors(), press, nil)
	ctx := context.Background()
	vettingID := openBoardVoteVetting(t, module)

	votes := map[string]string{
		"board-1": "endorse",
		"board-2": "endorse",
		"board-3": "do_not_endorse",
		"board-4": "abstain",
	}
	for voter, value := range votes {
		if _, err := module.Handler.CastVoteHandler(ctx, voter, vettingID, httptransport.CastVoteRequest{Vote: value}); err != nil {
			t.Fatalf("cast vote by %s failed: %v", voter, err)
		}
	}

	result, err := module.Handler.FinalizeHandler(ctx, "chair-1", vettingID)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if result.EndorsementResult != "endorse" {
		t.Fatalf("expected endorse result, got %s", result.EndorsementResult)
	}
	if result.Tally.Endorse != 2 || result.Tally.DoNotEndorse != 1 || result.Tally.Abstain != 1 {
		t.Fatalf("unexpected tally: %+v", result.Tally)
	}
	if result.PressReleasePostID != "post-123" {
		t.Fatalf("expected press release post id, got %q", result.PressReleasePostID)
	}
	if result.Vetting.Stage != "press_release_created" {
		t.Fatalf("expected press_release_created stage, got %s", result.Vetting.Stage)
	}
	if result.Vetting.EndorsedAt == nil {
		t.Fatalf("expected endorsed_at to be set")
	}
	if len(press.drafts) != 1 {
		t.Fatalf("expected one press draft, got %d", len(press.drafts))
	}

	// The committed decision also lands in the outbox, serialized as the
	// versioned contract envelope.
	pending, err := module.Store.ListPendingOutbox(ctx, 100)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	finalized := false
	for _, message := range pending {
		if message.EventType != "vetting.finalized" {
			continue
		}
		finalized = true
		var envelope contractsv1.Envelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			t.Fatalf("decode envelope failed: %v", err)
		}
		if envelope.PartitionKey != vettingID {
			t.Fatalf("expected vetting id partition key, got %s", envelope.PartitionKey)
		}
		if envelope.SourceService != "vetting-service" || envelope.SchemaVersion != 1 {
			t.Fatalf("unexpected envelope header: %+v", envelope)
		}
	}
	if !finalized {
		t.Fatalf("expected a vetting.finalized outbox message")
	}
}

func TestVettingFinalizeSecondCallRejected(t *testing.T) {
	module := vettingservice.NewInMemoryModule(nil, vettingTestActors(), &pressStub{}, nil)
	ctx := context.Background()
	vettingID := openBoardVoteVetting(t, module)

	if _, err := module.Handler.CastVoteHandler(ctx, "board-1", vettingID, httptransport.CastVoteRequest{Vote: "endorse"}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	first, err := module.Handler.FinalizeHandler(ctx, "chair-1", vettingID)
	if err != nil {
		t.Fatalf("first finalize failed: %v", err)
	}

	// The commit moved the vetting out of board_vote, so a repeat finalize
	// fails the stage precondition before anything else is looked at.
	_, err = module.Handler.FinalizeHandler(ctx, "chair-1", vettingID)
	if !errors.Is(err, vettingerrors.ErrInvalidStage) {
		t.Fatalf("expected invalid stage on repeat finalize, got %v", err)
	}
	_, err = module.Handler.CastVoteHandler(ctx, "board-2", vettingID, httptransport.CastVoteRequest{Vote: "endorse"})
	if !errors.Is(err, vettingerrors.ErrVoteLocked) {
		t.Fatalf("expected locked vote, got %v", err)
	}

	// The committed pair is untouched by the rejected second call.
	report, err := module.Handler.GetReportHandler(ctx, vettingID)
	if err != nil {
		t.Fatalf("get report failed: %v", err)
	}
	if report.Vetting.EndorsementResult == nil || *report.Vetting.EndorsementResult != first.EndorsementResult {
		t.Fatalf("committed result changed: %+v", report.Vetting.EndorsementResult)
	}
}

func TestVettingFinalizeCommitsEvenWhenPressFails(t *testing.T) {
	press := &pressStub{fail: true}
	module := vettingservice.NewInMemoryModule(nil, vettingTestActors(), press, nil)
	ctx := context.Background()
	vettingID := openBoardVoteVetting(t, module)

	if _, err := module.Handler.CastVoteHandler(ctx, "board-1", vettingID, httptransport.CastVoteRequest{Vote: "do_not_endorse"}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	result, err := module.Handler.FinalizeHandler(ctx, "chair-1", vettingID)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if result.EndorsementResult != "do_not_endorse" {
		t.Fatalf("expected do_not_endorse, got %s", result.EndorsementResult)
	}
	if result.PressReleasePostID != "" {
		t.Fatalf("expected no post id on press failure, got %q", result.PressReleasePostID)
	}
	if result.Vetting.Stage != "rejected" {
		t.Fatalf("expected rejected stage, got %s", result.Vetting.Stage)
	}
}

func TestVettingFinalizeTieRejected(t *testing.T) {
	module := vettingservice.NewInMemoryModule(nil, vettingTestActors(), &pressStub{}, nil)
	ctx := context.Background()
	vettingID := openBoardVoteVetting(t, module)

	if _, err := module.Handler.CastVoteHandler(ctx, "board-1", vettingID, httptransport.CastVoteRequest{Vote: "endorse"}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	if _, err := module.Handler.CastVoteHandler(ctx, "board-2", vettingID, httptransport.CastVoteRequest{Vote: "do_not_endorse"}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	_, err := module.Handler.FinalizeHandler(ctx, "chair-1", vettingID)
	if !errors.Is(err, vettingerrors.ErrTieVote) {
		t.Fatalf("expected tie vote, got %v", err)
	}

	vote, err := module.Handler.CastVoteHandler(ctx, "board-2", vettingID, httptransport.CastVoteRequest{Vote: "endorse"})
	if err != nil {
		t.Fatalf("vote change after tie failed: %v", err)
	}
	if vote.Vote != "endorse" {
		t.Fatalf("expected updated vote, got %s", vote.Vote)
	}
	result, err := module.Handler.FinalizeHandler(ctx, "chair-1", vettingID)
	if err != nil {
		t.Fatalf("finalize after tie break failed: %v", err)
	}
	if result.EndorsementResult != "endorse" {
		t.Fatalf("expected endorse, got %s", result.EndorsementResult)
	}
}

func TestVettingStageGateAndPermissions(t *testing.T) {
	module := vettingservice.NewInMemoryModule(nil, vettingTestActors(), &pressStub{}, nil)
	ctx := context.Background()

	vetting, err := module.Handler.OpenVettingHandler(ctx, "member-1", httptransport.OpenVettingRequest{
		CandidateName: "Jordan Avery",
		Office:        "State Senate",
	})
	if err != nil {
		t.Fatalf("open vetting failed: %v", err)
	}

	// board_vote entry fails before sections and recommendation exist.
	_, err = module.Handler.AdvanceStageHandler(ctx, "chair-1", vetting.VettingID, httptransport.AdvanceStageRequest{
		TargetStage: "board_vote",
	})
	if !errors.Is(err, vettingerrors.ErrSectionsIncomplete) {
		t.Fatalf("expected sections incomplete, got %v", err)
	}

	// non-chair committee members cannot enter board_vote at all.
	_, err = module.Handler.AdvanceStageHandler(ctx, "member-1", vetting.VettingID, httptransport.AdvanceStageRequest{
		TargetStage: "board_vote",
	})
	if !errors.Is(err, vettingerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if _, err := module.Handler.AdvanceStageHandler(ctx, "member-1", vetting.VettingID, httptransport.AdvanceStageRequest{
		TargetStage: "interview",
	}); err != nil {
		t.Fatalf("forward skip to interview failed: %v", err)
	}

	// backward transitions report the legal targets.
	_, err = module.Handler.AdvanceStageHandler(ctx, "member-1", vetting.VettingID, httptransport.AdvanceStageRequest{
		TargetStage: "intake",
	})
	var transitionErr *vettingerrors.TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected transition error, got %v", err)
	}
	if len(transitionErr.AllowedStages) != 2 ||
		transitionErr.AllowedStages[0] != "recommendation" ||
		transitionErr.AllowedStages[1] != "board_vote" {
		t.Fatalf("unexpected allowed stages: %v", transitionErr.AllowedStages)
	}

	// committee members cannot vote.
	_, err = module.Handler.CastVoteHandler(ctx, "member-1", vetting.VettingID, httptransport.CastVoteRequest{Vote: "endorse"})
	if !errors.Is(err, vettingerrors.ErrForbidden) {
		t.Fatalf("expected forbidden vote, got %v", err)
	}
}

func TestVettingRecommendationLockedInBoardVote(t *testing.T) {
	module := vettingservice.NewInMemoryModule(nil, vettingTestActors(), &pressStub{}, nil)
	ctx := context.Background()
	vettingID := openBoardVoteVetting(t, module)

	_, err := module.Handler.SetRecommendationHandler(ctx, "member-1", vettingID, httptransport.SetRecommendationRequest{
		Recommendation: "do_not_endorse",
	})
	if !errors.Is(err, vettingerrors.ErrRecommendationLocked) {
		t.Fatalf("expected locked recommendation, got %v", err)
	}
}

func TestVettingDenormalizesCandidateResponse(t *testing.T) {
	module := vettingservice.NewInMemoryModule(nil, vettingTestActors(), &pressStub{}, nil)
	ctx := context.Background()
	module.Store.SetCandidateResponse(ports.CandidateResponseProjection{
		ResponseID:    "resp-1",
		CandidateName: "Dana Whitfield",
		Office:        "US House",
		State:         "MI",
		District:      "MI-08",
		Party:         "Independent",
	})

	vetting, err := module.Handler.OpenVettingHandler(ctx, "member-1", httptransport.OpenVettingRequest{
		CandidateResponseID: "resp-1",
		CandidateName:       "ignored",
	})
	if err != nil {
		t.Fatalf("open vetting failed: %v", err)
	}
	if vetting.CandidateName != "Dana Whitfield" || vetting.District != "MI-08" {
		t.Fatalf("expected denormalized candidate fields, got %+v", vetting)
	}

	for _, sectionType := range []string{"executive_summary", "candidate_background"} {
		if _, err := module.Handler.UpsertSectionHandler(ctx, "member-1", vetting.VettingID, sectionType, httptransport.UpsertSectionRequest{
			Data:   map[string]string{"summary": "done"},
			Status: "completed",
		}); err != nil {
			t.Fatalf("upsert section failed: %v", err)
		}
	}
	if _, err := module.Handler.SetRecommendationHandler(ctx, "member-1", vetting.VettingID, httptransport.SetRecommendationRequest{Recommendation: "endorse"}); err != nil {
		t.Fatalf("set recommendation failed: %v", err)
	}
	if _, err := module.Handler.AdvanceStageHandler(ctx, "chair-1", vetting.VettingID, httptransport.AdvanceStageRequest{TargetStage: "board_vote"}); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if _, err := module.Handler.CastVoteHandler(ctx, "board-1", vetting.VettingID, httptransport.CastVoteRequest{Vote: "endorse"}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	if _, err := module.Handler.FinalizeHandler(ctx, "chair-1", vetting.VettingID); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	result, endorsedAt := module.Store.CandidateEndorsement("resp-1")
	if result == nil || *result != entities.DecisionEndorse {
		t.Fatalf("expected mirrored endorsement on the candidate response, got %v", result)
	}
	if endorsedAt == nil {
		t.Fatalf("expected mirrored endorsed_at")
	}
}

func TestVettingReportPreviewTally(t *testing.T) {
	module := vettingservice.NewInMemoryModule(nil, vettingTestActors(), &pressStub{}, nil)
	ctx := context.Background()
	vettingID := openBoardVoteVetting(t, module)

	if _, err := module.Handler.CastVoteHandler(ctx, "board-1", vettingID, httptransport.CastVoteRequest{Vote: "endorse"}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	if _, err := module.Handler.CastVoteHandler(ctx, "board-2", vettingID, httptransport.CastVoteRequest{Vote: "endorse"}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}

	report, err := module.Handler.GetReportHandler(ctx, vettingID)
	if err != nil {
		t.Fatalf("get report failed: %v", err)
	}
	if report.Tally.Endorse != 2 {
		t.Fatalf("expected live tally of 2 endorse, got %+v", report.Tally)
	}
	if report.PreviewResult == nil || *report.PreviewResult != "endorse" {
		t.Fatalf("expected endorse preview, got %v", report.PreviewResult)
	}
	if len(report.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(report.Sections))
	}
	if report.Vetting.EndorsementResult != nil {
		t.Fatalf("preview must not commit a result")
	}
}
