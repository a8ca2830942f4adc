package memory

import (
	"context"
	"sync"
	"time"

	"caucus/contexts/identity/membership-service/domain/entities"
	domainerrors "caucus/contexts/identity/membership-service/domain/errors"
	"caucus/contexts/identity/membership-service/ports"
)

type Store struct {
	mu      sync.Mutex
	members map[string]entities.Member
}

func NewStore(seed []entities.Member) *Store {
	members := make(map[string]entities.Member, len(seed))
	for _, member := range seed {
		members[member.MemberID] = member
	}
	return &Store{members: members}
}

func (s *Store) SaveMember(_ context.Context, member entities.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[member.MemberID] = member
	return nil
}

func (s *Store) GetMember(_ context.Context, memberID string) (entities.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	member, ok := s.members[memberID]
	if !ok {
		return entities.Member{}, domainerrors.ErrMemberNotFound
	}
	return member, nil
}

func (s *Store) GrantRole(_ context.Context, memberID string, role entities.Role, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	member, ok := s.members[memberID]
	if !ok {
		return domainerrors.ErrMemberNotFound
	}
	if member.HasRole(role) {
		return nil
	}
	member.Roles = append(member.Roles, role)
	member.UpdatedAt = updatedAt.UTC()
	s.members[memberID] = member
	return nil
}

func (s *Store) RevokeRole(_ context.Context, memberID string, role entities.Role, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	member, ok := s.members[memberID]
	if !ok {
		return domainerrors.ErrMemberNotFound
	}
	kept := member.Roles[:0]
	for _, r := range member.Roles {
		if r != role {
			kept = append(kept, r)
		}
	}
	member.Roles = kept
	member.UpdatedAt = updatedAt.UTC()
	s.members[memberID] = member
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var (
	_ ports.MemberRepository = (*Store)(nil)
	_ ports.Clock            = (*Store)(nil)
)
