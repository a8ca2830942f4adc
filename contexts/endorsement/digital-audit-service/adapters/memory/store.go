package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"caucus/contexts/endorsement/digital-audit-service/domain/entities"
	domainerrors "caucus/contexts/endorsement/digital-audit-service/domain/errors"
	"caucus/contexts/endorsement/digital-audit-service/ports"
)

// Store is the in-memory audit repository used by tests and local runs. It
// enforces the same single-active-audit-per-vetting rule the postgres
// adapter enforces with a partial unique index.
type Store struct {
	mu        sync.Mutex
	audits    map[string]entities.DigitalAudit
	platforms map[string][]entities.AuditPlatform
	order     []string
}

func NewStore() *Store {
	return &Store{
		audits:    make(map[string]entities.DigitalAudit),
		platforms: make(map[string][]entities.AuditPlatform),
	}
}

func (s *Store) InsertAudit(_ context.Context, audit entities.DigitalAudit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.audits {
		if existing.VettingID == audit.VettingID && existing.Status.Active() {
			return domainerrors.ErrDuplicateAudit
		}
	}
	s.audits[audit.AuditID] = audit
	s.order = append(s.order, audit.AuditID)
	return nil
}

func (s *Store) GetAudit(_ context.Context, auditID string) (entities.DigitalAudit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	audit, ok := s.audits[auditID]
	if !ok {
		return entities.DigitalAudit{}, domainerrors.ErrAuditNotFound
	}
	return audit, nil
}

func (s *Store) GetLatestAudit(_ context.Context, vettingID string) (entities.DigitalAudit, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.order) - 1; i >= 0; i-- {
		audit := s.audits[s.order[i]]
		if audit.VettingID == vettingID {
			return audit, true, nil
		}
	}
	return entities.DigitalAudit{}, false, nil
}

func (s *Store) GetActiveAudit(_ context.Context, vettingID string) (entities.DigitalAudit, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.order) - 1; i >= 0; i-- {
		audit := s.audits[s.order[i]]
		if audit.VettingID == vettingID && audit.Status.Active() {
			return audit, true, nil
		}
	}
	return entities.DigitalAudit{}, false, nil
}

func (s *Store) UpdateAuditStatus(_ context.Context, auditID string, status entities.AuditStatus, errorMessage string, completedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	audit, ok := s.audits[auditID]
	if !ok {
		return domainerrors.ErrAuditNotFound
	}
	audit.Status = status
	audit.ErrorMessage = errorMessage
	audit.CompletedAt = completedAt
	s.audits[auditID] = audit
	return nil
}

func (s *Store) ListStaleRunning(_ context.Context, olderThan time.Time) ([]entities.DigitalAudit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stale []entities.DigitalAudit
	for _, id := range s.order {
		audit := s.audits[id]
		if audit.Status == entities.AuditStatusRunning && audit.CreatedAt.Before(olderThan) {
			stale = append(stale, audit)
		}
	}
	return stale, nil
}

func (s *Store) SavePlatform(_ context.Context, platform entities.AuditPlatform) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.platforms[platform.AuditID] = append(s.platforms[platform.AuditID], platform)
	return nil
}

func (s *Store) ListPlatforms(_ context.Context, auditID string) ([]entities.AuditPlatform, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	platforms := s.platforms[auditID]
	out := make([]entities.AuditPlatform, len(platforms))
	copy(out, platforms)
	return out, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var (
	_ ports.AuditRepository = (*Store)(nil)
	_ ports.Clock           = (*Store)(nil)
	_ ports.IDGenerator     = (*Store)(nil)
)
