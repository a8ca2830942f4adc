package entities

import "time"

type Stage string

const (
	StageIntake              Stage = "intake"
	StageCommitteeReview     Stage = "committee_review"
	StageInterview           Stage = "interview"
	StageRecommendation      Stage = "recommendation"
	StageBoardVote           Stage = "board_vote"
	StageEndorsed            Stage = "endorsed"
	StageRejected            Stage = "rejected"
	StageNoPosition          Stage = "no_position"
	StagePressReleaseCreated Stage = "press_release_created"
)

type Decision string

const (
	DecisionEndorse      Decision = "endorse"
	DecisionDoNotEndorse Decision = "do_not_endorse"
	DecisionNoPosition   Decision = "no_position"
)

// Vetting is the case record tracking one candidate through the endorsement
// process. EndorsementResult and EndorsedAt are set together exactly once by
// the finalization coordinator and are immutable afterwards; EndorsedAt acts
// as the optimistic-concurrency guard.
type Vetting struct {
	VettingID           string
	CandidateResponseID string
	Stage               Stage
	Recommendation      *Decision
	RecommendationNotes string
	EndorsementResult   *Decision
	EndorsedAt          *time.Time
	PressReleasePostID  string

	CandidateName string
	Office        string
	State         string
	District      string
	Party         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Finalized reports whether the board decision has been committed.
func (v Vetting) Finalized() bool {
	return v.EndorsedAt != nil
}

// OutcomeStage maps a board decision to its terminal stage.
func OutcomeStage(decision Decision) Stage {
	switch decision {
	case DecisionEndorse:
		return StageEndorsed
	case DecisionDoNotEndorse:
		return StageRejected
	default:
		return StageNoPosition
	}
}

type SectionType string

const (
	SectionExecutiveSummary    SectionType = "executive_summary"
	SectionElectionSchedule    SectionType = "election_schedule"
	SectionVotingRules         SectionType = "voting_rules"
	SectionCandidateBackground SectionType = "candidate_background"
	SectionIncumbentRecord     SectionType = "incumbent_record"
	SectionOpponentResearch    SectionType = "opponent_research"
	SectionElectoralResults    SectionType = "electoral_results"
	SectionDistrictData        SectionType = "district_data"
	SectionDigitalPresence     SectionType = "digital_presence_audit"
)

// SectionTypes lists every report section in canonical render order.
func SectionTypes() []SectionType {
	return []SectionType{
		SectionExecutiveSummary,
		SectionElectionSchedule,
		SectionVotingRules,
		SectionCandidateBackground,
		SectionIncumbentRecord,
		SectionOpponentResearch,
		SectionElectoralResults,
		SectionDistrictData,
		SectionDigitalPresence,
	}
}

// IsValidSectionType guards the fixed section enumeration at write time.
func IsValidSectionType(sectionType SectionType) bool {
	for _, known := range SectionTypes() {
		if known == sectionType {
			return true
		}
	}
	return false
}

type SectionStatus string

const (
	SectionStatusNotStarted SectionStatus = "not_started"
	SectionStatusInProgress SectionStatus = "in_progress"
	SectionStatusCompleted  SectionStatus = "completed"
)

// ReportSection holds freeform per-section research data keyed by
// (vetting_id, section_type). Data is an open key/value document whose shape
// varies per section type; sections are last-write-wins.
type ReportSection struct {
	VettingID   string
	SectionType SectionType
	Data        map[string]string
	Status      SectionStatus
	UpdatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type VoteValue string

const (
	VoteEndorse      VoteValue = "endorse"
	VoteDoNotEndorse VoteValue = "do_not_endorse"
	VoteNoPosition   VoteValue = "no_position"
	VoteAbstain      VoteValue = "abstain"
)

// Substantive reports whether the vote counts toward a decision. Abstentions
// are recorded but can never produce an outcome on their own.
func (v VoteValue) Substantive() bool {
	return v == VoteEndorse || v == VoteDoNotEndorse || v == VoteNoPosition
}

// BoardVote is one board member's vote on a vetting, unique per
// (vetting_id, voter_id). Re-voting updates the existing row.
type BoardVote struct {
	VoteID    string
	VettingID string
	VoterID   string
	Vote      VoteValue
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tally is the per-choice count over the substantive votes of one vetting.
type Tally struct {
	Endorse      int
	DoNotEndorse int
	NoPosition   int
	Abstain      int
}

// Substantive returns the number of non-abstain votes counted.
func (t Tally) Substantive() int {
	return t.Endorse + t.DoNotEndorse + t.NoPosition
}
