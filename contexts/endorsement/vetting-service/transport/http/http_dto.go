package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// AllowedStages carries the legal targets on rejected transitions.
	AllowedStages []string `json:"allowed_stages,omitempty"`
}

type OpenVettingRequest struct {
	CandidateResponseID string `json:"candidate_response_id,omitempty"`
	CandidateName       string `json:"candidate_name,omitempty"`
	Office              string `json:"office,omitempty"`
	State               string `json:"state,omitempty"`
	District            string `json:"district,omitempty"`
	Party               string `json:"party,omitempty"`
}

type AdvanceStageRequest struct {
	TargetStage string `json:"target_stage"`
}

type UpsertSectionRequest struct {
	Data   map[string]string `json:"data"`
	Status string            `json:"status"`
}

type SetRecommendationRequest struct {
	Recommendation string `json:"recommendation"`
	Notes          string `json:"notes,omitempty"`
}

type CastVoteRequest struct {
	Vote  string `json:"vote"`
	Notes string `json:"notes,omitempty"`
}

type VettingResponse struct {
	VettingID           string  `json:"vetting_id"`
	CandidateResponseID string  `json:"candidate_response_id,omitempty"`
	Stage               string  `json:"stage"`
	Recommendation      *string `json:"recommendation"`
	RecommendationNotes string  `json:"recommendation_notes,omitempty"`
	EndorsementResult   *string `json:"endorsement_result"`
	EndorsedAt          *string `json:"endorsed_at"`
	PressReleasePostID  string  `json:"press_release_post_id,omitempty"`
	CandidateName       string  `json:"candidate_name"`
	Office              string  `json:"office"`
	State               string  `json:"state,omitempty"`
	District            string  `json:"district,omitempty"`
	Party               string  `json:"party,omitempty"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

type SectionResponse struct {
	VettingID   string            `json:"vetting_id"`
	SectionType string            `json:"section_type"`
	Data        map[string]string `json:"data"`
	Status      string            `json:"status"`
	UpdatedBy   string            `json:"updated_by,omitempty"`
	UpdatedAt   string            `json:"updated_at"`
}

type VoteResponse struct {
	VoteID    string `json:"vote_id"`
	VettingID string `json:"vetting_id"`
	VoterID   string `json:"voter_id"`
	Vote      string `json:"vote"`
	Notes     string `json:"notes,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

type TallyResponse struct {
	Endorse      int `json:"endorse"`
	DoNotEndorse int `json:"do_not_endorse"`
	NoPosition   int `json:"no_position"`
	Abstain      int `json:"abstain"`
}

type ReportResponse struct {
	Vetting       VettingResponse   `json:"vetting"`
	Sections      []SectionResponse `json:"sections"`
	Votes         []VoteResponse    `json:"votes"`
	Tally         TallyResponse     `json:"tally"`
	PreviewResult *string           `json:"preview_result"`
}

type ListVettingsResponse struct {
	Items []VettingResponse `json:"items"`
}

type FinalizeResponse struct {
	Vetting            VettingResponse `json:"vetting"`
	Tally              TallyResponse   `json:"tally"`
	EndorsementResult  string          `json:"endorsement_result"`
	PressReleasePostID string          `json:"press_release_post_id,omitempty"`
}
