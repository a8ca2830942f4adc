package ports

import (
	"context"
	"time"

	"caucus/contexts/identity/membership-service/domain/entities"
)

// ActorContext is the resolved permission projection the other modules
// consume through their own directory ports.
type ActorContext struct {
	MemberID          string
	IsCommitteeMember bool
	IsChair           bool
	IsBoardMember     bool
	IsNationalAdmin   bool
}

type MemberRepository interface {
	SaveMember(ctx context.Context, member entities.Member) error
	GetMember(ctx context.Context, memberID string) (entities.Member, error)
	// GrantRole and RevokeRole are idempotent: granting a held role or
	// revoking an absent one succeeds without effect.
	GrantRole(ctx context.Context, memberID string, role entities.Role, updatedAt time.Time) error
	RevokeRole(ctx context.Context, memberID string, role entities.Role, updatedAt time.Time) error
}

type Clock interface {
	Now() time.Time
}
