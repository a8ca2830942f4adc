package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"caucus/contexts/endorsement/vetting-service/domain/entities"
	domainerrors "caucus/contexts/endorsement/vetting-service/domain/errors"
	"caucus/contexts/endorsement/vetting-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) SaveVetting(ctx context.Context, vetting entities.Vetting) error {
	row := vettingModelFromEntity(vetting)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"stage":                row.Stage,
			"recommendation":       row.Recommendation,
			"recommendation_notes": row.RecommendationNotes,
			"updated_at":           row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("vetting_repo_save_vetting_failed", create.Error,
			"vetting_id", strings.TrimSpace(vetting.VettingID),
		)
	}
	return nil
}

func (r *Repository) GetVetting(ctx context.Context, vettingID string) (entities.Vetting, error) {
	var row vettingModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(vettingID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vetting{}, domainerrors.ErrVettingNotFound
		}
		return entities.Vetting{}, r.logError("vetting_repo_get_vetting_failed", err,
			"vetting_id", strings.TrimSpace(vettingID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListVettings(ctx context.Context) ([]entities.Vetting, error) {
	var rows []vettingModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("vetting_repo_list_vettings_failed", err)
	}
	items := make([]entities.Vetting, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// FinalizeVetting is the commit point of the endorsement pipeline. The update
// is conditioned on endorsed_at still being null; zero affected rows means a
// concurrent caller won the race and the caller must surface that, never
// silently succeed.
func (r *Repository) FinalizeVetting(
	ctx context.Context,
	vettingID string,
	result entities.Decision,
	endorsedAt time.Time,
) (bool, error) {
	update := r.db.WithContext(ctx).Model(&vettingModel{}).
		Where("id = ?", strings.TrimSpace(vettingID)).
		Where("endorsed_at IS NULL").
		Updates(map[string]any{
			"endorsement_result": string(result),
			"endorsed_at":        endorsedAt.UTC(),
			"stage":              string(entities.OutcomeStage(result)),
			"updated_at":         endorsedAt.UTC(),
		})
	if update.Error != nil {
		return false, r.logError("vetting_repo_finalize_failed", update.Error,
			"vetting_id", strings.TrimSpace(vettingID),
		)
	}
	return update.RowsAffected > 0, nil
}

func (r *Repository) SetPressRelease(
	ctx context.Context,
	vettingID string,
	postID string,
	stage entities.Stage,
	updatedAt time.Time,
) error {
	update := r.db.WithContext(ctx).Model(&vettingModel{}).
		Where("id = ?", strings.TrimSpace(vettingID)).
		Where("press_release_post_id IS NULL OR press_release_post_id = ''").
		Updates(map[string]any{
			"press_release_post_id": strings.TrimSpace(postID),
			"stage":                 string(stage),
			"updated_at":            updatedAt.UTC(),
		})
	if update.Error != nil {
		return r.logError("vetting_repo_set_press_release_failed", update.Error,
			"vetting_id", strings.TrimSpace(vettingID),
			"post_id", strings.TrimSpace(postID),
		)
	}
	return nil
}

func (r *Repository) SaveSection(ctx context.Context, section entities.ReportSection) error {
	row, err := sectionModelFromEntity(section)
	if err != nil {
		return err
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "vetting_id"}, {Name: "section_type"}},
		DoUpdates: clause.Assignments(map[string]any{
			"data":       row.Data,
			"status":     row.Status,
			"updated_by": row.UpdatedBy,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("vetting_repo_save_section_failed", create.Error,
			"vetting_id", strings.TrimSpace(section.VettingID),
			"section_type", string(section.SectionType),
		)
	}
	return nil
}

func (r *Repository) GetSection(
	ctx context.Context,
	vettingID string,
	sectionType entities.SectionType,
) (entities.ReportSection, bool, error) {
	var row reportSectionModel
	err := r.db.WithContext(ctx).
		Where("vetting_id = ?", strings.TrimSpace(vettingID)).
		Where("section_type = ?", string(sectionType)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ReportSection{}, false, nil
		}
		return entities.ReportSection{}, false, r.logError("vetting_repo_get_section_failed", err,
			"vetting_id", strings.TrimSpace(vettingID),
			"section_type", string(sectionType),
		)
	}
	section, err := row.toEntity()
	if err != nil {
		return entities.ReportSection{}, false, err
	}
	return section, true, nil
}

func (r *Repository) ListSections(ctx context.Context, vettingID string) ([]entities.ReportSection, error) {
	var rows []reportSectionModel
	if err := r.db.WithContext(ctx).
		Where("vetting_id = ?", strings.TrimSpace(vettingID)).
		Order("section_type ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("vetting_repo_list_sections_failed", err,
			"vetting_id", strings.TrimSpace(vettingID),
		)
	}
	items := make([]entities.ReportSection, 0, len(rows))
	for _, row := range rows {
		section, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, section)
	}
	return items, nil
}

func (r *Repository) SaveVote(ctx context.Context, vote entities.BoardVote) error {
	row := voteModelFromEntity(vote)
	// Uniqueness per (vetting_id, voter_id) makes re-voting an update, never a
	// second row.
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "vetting_id"}, {Name: "voter_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"vote":       row.Vote,
			"notes":      row.Notes,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrVoteLocked
		}
		return r.logError("vetting_repo_save_vote_failed", create.Error,
			"vetting_id", strings.TrimSpace(vote.VettingID),
			"voter_id", strings.TrimSpace(vote.VoterID),
		)
	}
	return nil
}

func (r *Repository) GetVoteByVoter(
	ctx context.Context,
	vettingID string,
	voterID string,
) (entities.BoardVote, bool, error) {
	var row boardVoteModel
	err := r.db.WithContext(ctx).
		Where("vetting_id = ?", strings.TrimSpace(vettingID)).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.BoardVote{}, false, nil
		}
		return entities.BoardVote{}, false, r.logError("vetting_repo_get_vote_by_voter_failed", err,
			"vetting_id", strings.TrimSpace(vettingID),
			"voter_id", strings.TrimSpace(voterID),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListVotes(ctx context.Context, vettingID string) ([]entities.BoardVote, error) {
	var rows []boardVoteModel
	if err := r.db.WithContext(ctx).
		Where("vetting_id = ?", strings.TrimSpace(vettingID)).
		Order("voter_id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("vetting_repo_list_votes_failed", err,
			"vetting_id", strings.TrimSpace(vettingID),
		)
	}
	items := make([]entities.BoardVote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetCandidateResponse(
	ctx context.Context,
	responseID string,
) (ports.CandidateResponseProjection, bool, error) {
	var row candidateResponseModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(responseID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CandidateResponseProjection{}, false, nil
		}
		return ports.CandidateResponseProjection{}, false, r.logError("vetting_repo_get_candidate_response_failed", err,
			"candidate_response_id", strings.TrimSpace(responseID),
		)
	}
	return ports.CandidateResponseProjection{
		ResponseID:    row.ID,
		CandidateName: row.CandidateName,
		Office:        row.Office,
		State:         row.State,
		District:      row.District,
		Party:         row.Party,
	}, true, nil
}

func (r *Repository) SyncEndorsement(
	ctx context.Context,
	responseID string,
	result entities.Decision,
	endorsedAt time.Time,
) error {
	update := r.db.WithContext(ctx).Model(&candidateResponseModel{}).
		Where("id = ?", strings.TrimSpace(responseID)).
		Updates(map[string]any{
			"endorsement_result": string(result),
			"endorsed_at":        endorsedAt.UTC(),
		})
	if update.Error != nil {
		return r.logError("vetting_repo_sync_endorsement_failed", update.Error,
			"candidate_response_id", strings.TrimSpace(responseID),
		)
	}
	if update.RowsAffected == 0 {
		return domainerrors.ErrVettingNotFound
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, event ports.EventEnvelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return r.logError("vetting_repo_append_outbox_marshal_failed", err,
			"event_id", event.EventID,
		)
	}
	row := outboxModel{
		OutboxID:  event.EventID,
		EventType: event.EventType,
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: event.OccurredAt.UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("vetting_repo_append_outbox_insert_failed", create.Error,
			"event_id", event.EventID,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("vetting_repo_list_pending_outbox_failed", err, "limit", limit)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	stamp := publishedAt.UTC()
	result := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Where("status = ?", outboxStatusPending).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &stamp,
		})
	if result.Error != nil {
		return r.logError("vetting_repo_mark_outbox_published_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "endorsement/vetting-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("vetting repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.VettingRepository = (*Repository)(nil)
var _ ports.SectionRepository = (*Repository)(nil)
var _ ports.VoteRepository = (*Repository)(nil)
var _ ports.CandidateResponseDirectory = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
