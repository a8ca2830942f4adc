package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"caucus/contexts/endorsement/vetting-service/domain/entities"
	domainerrors "caucus/contexts/endorsement/vetting-service/domain/errors"
	"caucus/contexts/endorsement/vetting-service/ports"

	"github.com/google/uuid"
)

type sectionKey struct {
	vettingID   string
	sectionType entities.SectionType
}

type voterKey struct {
	vettingID string
	voterID   string
}

type candidateRecord struct {
	projection ports.CandidateResponseProjection
	result     *entities.Decision
	endorsedAt *time.Time
}

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store backs every vetting port in memory for tests and local wiring. It
// honors the same write semantics as the postgres adapter, in particular the
// conditional finalize update, so concurrency properties hold here too.
type Store struct {
	mu sync.RWMutex

	vettings   map[string]entities.Vetting
	sections   map[sectionKey]entities.ReportSection
	votes      map[voterKey]entities.BoardVote
	candidates map[string]candidateRecord
	outbox     map[string]outboxRecord
}

func NewStore(seed []entities.Vetting) *Store {
	vettings := make(map[string]entities.Vetting, len(seed))
	for _, vetting := range seed {
		vettings[vetting.VettingID] = vetting
	}
	return &Store{
		vettings:   vettings,
		sections:   make(map[sectionKey]entities.ReportSection),
		votes:      make(map[voterKey]entities.BoardVote),
		candidates: make(map[string]candidateRecord),
		outbox:     make(map[string]outboxRecord),
	}
}

// SetCandidateResponse seeds the candidate response projection for tests.
func (s *Store) SetCandidateResponse(projection ports.CandidateResponseProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[strings.TrimSpace(projection.ResponseID)] = candidateRecord{projection: projection}
}

// CandidateEndorsement reads back the mirrored decision for assertions.
func (s *Store) CandidateEndorsement(responseID string) (*entities.Decision, *time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record := s.candidates[strings.TrimSpace(responseID)]
	return record.result, record.endorsedAt
}

func (s *Store) SaveVetting(_ context.Context, vetting entities.Vetting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.vettings[strings.TrimSpace(vetting.VettingID)]
	if ok && stored.EndorsementResult != nil {
		// endorsement_result is immutable once set; preserve the committed pair.
		vetting.EndorsementResult = stored.EndorsementResult
		vetting.EndorsedAt = stored.EndorsedAt
	}
	s.vettings[strings.TrimSpace(vetting.VettingID)] = vetting
	return nil
}

func (s *Store) GetVetting(_ context.Context, vettingID string) (entities.Vetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vetting, ok := s.vettings[strings.TrimSpace(vettingID)]
	if !ok {
		return entities.Vetting{}, domainerrors.ErrVettingNotFound
	}
	return vetting, nil
}

func (s *Store) ListVettings(_ context.Context) ([]entities.Vetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Vetting, 0, len(s.vettings))
	for _, vetting := range s.vettings {
		items = append(items, vetting)
	}
	return items, nil
}

func (s *Store) FinalizeVetting(
	_ context.Context,
	vettingID string,
	result entities.Decision,
	endorsedAt time.Time,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vetting, ok := s.vettings[strings.TrimSpace(vettingID)]
	if !ok {
		return false, domainerrors.ErrVettingNotFound
	}
	if vetting.EndorsedAt != nil {
		return false, nil
	}
	committed := endorsedAt.UTC()
	vetting.EndorsementResult = &result
	vetting.EndorsedAt = &committed
	vetting.Stage = entities.OutcomeStage(result)
	vetting.UpdatedAt = committed
	s.vettings[strings.TrimSpace(vettingID)] = vetting
	return true, nil
}

func (s *Store) SetPressRelease(
	_ context.Context,
	vettingID string,
	postID string,
	stage entities.Stage,
	updatedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vetting, ok := s.vettings[strings.TrimSpace(vettingID)]
	if !ok {
		return domainerrors.ErrVettingNotFound
	}
	if vetting.PressReleasePostID != "" {
		return nil
	}
	vetting.PressReleasePostID = strings.TrimSpace(postID)
	vetting.Stage = stage
	vetting.UpdatedAt = updatedAt.UTC()
	s.vettings[strings.TrimSpace(vettingID)] = vetting
	return nil
}

func (s *Store) SaveSection(_ context.Context, section entities.ReportSection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sectionKey{
		vettingID:   strings.TrimSpace(section.VettingID),
		sectionType: section.SectionType,
	}
	s.sections[key] = section
	return nil
}

func (s *Store) GetSection(
	_ context.Context,
	vettingID string,
	sectionType entities.SectionType,
) (entities.ReportSection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	section, ok := s.sections[sectionKey{
		vettingID:   strings.TrimSpace(vettingID),
		sectionType: sectionType,
	}]
	return section, ok, nil
}

func (s *Store) ListSections(_ context.Context, vettingID string) ([]entities.ReportSection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.ReportSection, 0)
	for key, section := range s.sections {
		if key.vettingID == strings.TrimSpace(vettingID) {
			items = append(items, section)
		}
	}
	return items, nil
}

func (s *Store) SaveVote(_ context.Context, vote entities.BoardVote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[voterKey{
		vettingID: strings.TrimSpace(vote.VettingID),
		voterID:   strings.TrimSpace(vote.VoterID),
	}] = vote
	return nil
}

func (s *Store) GetVoteByVoter(
	_ context.Context,
	vettingID string,
	voterID string,
) (entities.BoardVote, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vote, ok := s.votes[voterKey{
		vettingID: strings.TrimSpace(vettingID),
		voterID:   strings.TrimSpace(voterID),
	}]
	return vote, ok, nil
}

func (s *Store) ListVotes(_ context.Context, vettingID string) ([]entities.BoardVote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.BoardVote, 0)
	for key, vote := range s.votes {
		if key.vettingID == strings.TrimSpace(vettingID) {
			items = append(items, vote)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].VoterID < items[j].VoterID
	})
	return items, nil
}

func (s *Store) GetCandidateResponse(
	_ context.Context,
	responseID string,
) (ports.CandidateResponseProjection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.candidates[strings.TrimSpace(responseID)]
	return record.projection, ok, nil
}

func (s *Store) SyncEndorsement(
	_ context.Context,
	responseID string,
	result entities.Decision,
	endorsedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.candidates[strings.TrimSpace(responseID)]
	if !ok {
		return domainerrors.ErrVettingNotFound
	}
	committed := endorsedAt.UTC()
	record.result = &result
	record.endorsedAt = &committed
	s.candidates[strings.TrimSpace(responseID)] = record
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, event ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := marshalEnvelope(event)
	if err != nil {
		return err
	}
	s.outbox[event.EventID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:  event.EventID,
			EventType: event.EventType,
			Payload:   payload,
			CreatedAt: event.OccurredAt,
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.OutboxMessage, 0)
	for _, record := range s.outbox {
		if record.published {
			continue
		}
		items = append(items, record.message)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return nil
	}
	record.published = true
	s.outbox[strings.TrimSpace(outboxID)] = record
	return nil
}

// PendingOutboxCount supports relay tests.
func (s *Store) PendingOutboxCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, record := range s.outbox {
		if !record.published {
			count++
		}
	}
	return count
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.VettingRepository = (*Store)(nil)
var _ ports.SectionRepository = (*Store)(nil)
var _ ports.VoteRepository = (*Store)(nil)
var _ ports.CandidateResponseDirectory = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
