package postgresadapter

import (
	"encoding/json"
	"strings"
	"time"

	"caucus/contexts/endorsement/vetting-service/domain/entities"
)

type vettingModel struct {
	ID                  string     `gorm:"column:id;primaryKey"`
	CandidateResponseID *string    `gorm:"column:candidate_response_id"`
	Stage               string     `gorm:"column:stage"`
	Recommendation      *string    `gorm:"column:recommendation"`
	RecommendationNotes string     `gorm:"column:recommendation_notes"`
	EndorsementResult   *string    `gorm:"column:endorsement_result"`
	EndorsedAt          *time.Time `gorm:"column:endorsed_at"`
	PressReleasePostID  string     `gorm:"column:press_release_post_id"`
	CandidateName       string     `gorm:"column:candidate_name"`
	Office              string     `gorm:"column:office"`
	State               string     `gorm:"column:state"`
	District            string     `gorm:"column:district"`
	Party               string     `gorm:"column:party"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (vettingModel) TableName() string {
	return "vettings"
}

func vettingModelFromEntity(vetting entities.Vetting) vettingModel {
	row := vettingModel{
		ID:                  strings.TrimSpace(vetting.VettingID),
		Stage:               string(vetting.Stage),
		RecommendationNotes: vetting.RecommendationNotes,
		PressReleasePostID:  strings.TrimSpace(vetting.PressReleasePostID),
		CandidateName:       strings.TrimSpace(vetting.CandidateName),
		Office:              strings.TrimSpace(vetting.Office),
		State:               strings.TrimSpace(vetting.State),
		District:            strings.TrimSpace(vetting.District),
		Party:               strings.TrimSpace(vetting.Party),
		CreatedAt:           vetting.CreatedAt.UTC(),
		UpdatedAt:           vetting.UpdatedAt.UTC(),
	}
	if responseID := strings.TrimSpace(vetting.CandidateResponseID); responseID != "" {
		row.CandidateResponseID = &responseID
	}
	if vetting.Recommendation != nil {
		recommendation := string(*vetting.Recommendation)
		row.Recommendation = &recommendation
	}
	if vetting.EndorsementResult != nil {
		result := string(*vetting.EndorsementResult)
		row.EndorsementResult = &result
	}
	if vetting.EndorsedAt != nil {
		endorsedAt := vetting.EndorsedAt.UTC()
		row.EndorsedAt = &endorsedAt
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m vettingModel) toEntity() entities.Vetting {
	vetting := entities.Vetting{
		VettingID:           m.ID,
		Stage:               entities.Stage(m.Stage),
		RecommendationNotes: m.RecommendationNotes,
		PressReleasePostID:  m.PressReleasePostID,
		CandidateName:       m.CandidateName,
		Office:              m.Office,
		State:               m.State,
		District:            m.District,
		Party:               m.Party,
		CreatedAt:           m.CreatedAt.UTC(),
		UpdatedAt:           m.UpdatedAt.UTC(),
	}
	if m.CandidateResponseID != nil {
		vetting.CandidateResponseID = strings.TrimSpace(*m.CandidateResponseID)
	}
	if m.Recommendation != nil {
		recommendation := entities.Decision(*m.Recommendation)
		vetting.Recommendation = &recommendation
	}
	if m.EndorsementResult != nil {
		result := entities.Decision(*m.EndorsementResult)
		vetting.EndorsementResult = &result
	}
	if m.EndorsedAt != nil {
		endorsedAt := m.EndorsedAt.UTC()
		vetting.EndorsedAt = &endorsedAt
	}
	return vetting
}

type reportSectionModel struct {
	VettingID   string    `gorm:"column:vetting_id;primaryKey"`
	SectionType string    `gorm:"column:section_type;primaryKey"`
	Data        []byte    `gorm:"column:data"`
	Status      string    `gorm:"column:status"`
	UpdatedBy   string    `gorm:"column:updated_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (reportSectionModel) TableName() string {
	return "vetting_report_sections"
}

func sectionModelFromEntity(section entities.ReportSection) (reportSectionModel, error) {
	data := section.Data
	if data == nil {
		data = map[string]string{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return reportSectionModel{}, err
	}
	row := reportSectionModel{
		VettingID:   strings.TrimSpace(section.VettingID),
		SectionType: string(section.SectionType),
		Data:        payload,
		Status:      string(section.Status),
		UpdatedBy:   strings.TrimSpace(section.UpdatedBy),
		CreatedAt:   section.CreatedAt.UTC(),
		UpdatedAt:   section.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row, nil
}

func (m reportSectionModel) toEntity() (entities.ReportSection, error) {
	data := map[string]string{}
	if len(m.Data) > 0 {
		if err := json.Unmarshal(m.Data, &data); err != nil {
			return entities.ReportSection{}, err
		}
	}
	return entities.ReportSection{
		VettingID:   m.VettingID,
		SectionType: entities.SectionType(m.SectionType),
		Data:        data,
		Status:      entities.SectionStatus(m.Status),
		UpdatedBy:   m.UpdatedBy,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}, nil
}

type boardVoteModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	VettingID string    `gorm:"column:vetting_id;uniqueIndex:idx_board_votes_voter"`
	VoterID   string    `gorm:"column:voter_id;uniqueIndex:idx_board_votes_voter"`
	Vote      string    `gorm:"column:vote"`
	Notes     string    `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (boardVoteModel) TableName() string {
	return "board_votes"
}

func voteModelFromEntity(vote entities.BoardVote) boardVoteModel {
	row := boardVoteModel{
		ID:        strings.TrimSpace(vote.VoteID),
		VettingID: strings.TrimSpace(vote.VettingID),
		VoterID:   strings.TrimSpace(vote.VoterID),
		Vote:      string(vote.Vote),
		Notes:     strings.TrimSpace(vote.Notes),
		CreatedAt: vote.CreatedAt.UTC(),
		UpdatedAt: vote.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m boardVoteModel) toEntity() entities.BoardVote {
	return entities.BoardVote{
		VoteID:    m.ID,
		VettingID: m.VettingID,
		VoterID:   m.VoterID,
		Vote:      entities.VoteValue(m.Vote),
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type candidateResponseModel struct {
	ID                string     `gorm:"column:id;primaryKey"`
	CandidateName     string     `gorm:"column:candidate_name"`
	Office            string     `gorm:"column:office"`
	State             string     `gorm:"column:state"`
	District          string     `gorm:"column:district"`
	Party             string     `gorm:"column:party"`
	EndorsementResult *string    `gorm:"column:endorsement_result"`
	EndorsedAt        *time.Time `gorm:"column:endorsed_at"`
}

func (candidateResponseModel) TableName() string {
	return "candidate_responses"
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "vetting_outbox"
}
