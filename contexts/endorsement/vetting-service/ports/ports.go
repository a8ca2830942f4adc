package ports

import (
	"context"
	"time"

	"caucus/contexts/endorsement/vetting-service/domain/entities"

	contractsv1 "caucus/contracts/gen/events/v1"
)

// ActorContext is the resolved identity projection supplied by the
// membership collaborator. The pipeline never resolves roles itself.
type ActorContext struct {
	MemberID          string
	IsCommitteeMember bool
	IsChair           bool
	IsBoardMember     bool
	IsNationalAdmin   bool
}

type ActorDirectory interface {
	ResolveActor(ctx context.Context, memberID string) (ActorContext, error)
}

type VettingRepository interface {
	SaveVetting(ctx context.Context, vetting entities.Vetting) error
	GetVetting(ctx context.Context, vettingID string) (entities.Vetting, error)
	ListVettings(ctx context.Context) ([]entities.Vetting, error)
	// FinalizeVetting commits the board decision only while endorsed_at is
	// still null (compare-and-swap). It returns false when zero rows changed,
	// meaning another caller finalized first.
	FinalizeVetting(ctx context.Context, vettingID string, result entities.Decision, endorsedAt time.Time) (bool, error)
	SetPressRelease(ctx context.Context, vettingID string, postID string, stage entities.Stage, updatedAt time.Time) error
}

type SectionRepository interface {
	SaveSection(ctx context.Context, section entities.ReportSection) error
	GetSection(ctx context.Context, vettingID string, sectionType entities.SectionType) (entities.ReportSection, bool, error)
	ListSections(ctx context.Context, vettingID string) ([]entities.ReportSection, error)
}

type VoteRepository interface {
	SaveVote(ctx context.Context, vote entities.BoardVote) error
	GetVoteByVoter(ctx context.Context, vettingID string, voterID string) (entities.BoardVote, bool, error)
	ListVotes(ctx context.Context, vettingID string) ([]entities.BoardVote, error)
}

// CandidateResponseProjection carries the denormalized display fields copied
// onto a vetting at creation.
type CandidateResponseProjection struct {
	ResponseID    string
	CandidateName string
	Office        string
	State         string
	District      string
	Party         string
}

type CandidateResponseDirectory interface {
	GetCandidateResponse(ctx context.Context, responseID string) (CandidateResponseProjection, bool, error)
	// SyncEndorsement mirrors the committed decision onto the originating
	// candidate response. Best-effort post-commit side effect.
	SyncEndorsement(ctx context.Context, responseID string, result entities.Decision, endorsedAt time.Time) error
}

// PressPublisher is the content collaborator boundary: it accepts a rendered
// draft and returns the created post id.
type PressPublisher interface {
	PublishDraft(ctx context.Context, draft entities.PressReleaseDraft) (string, error)
}

// EventEnvelope is the versioned wire shape published on the bus. The type
// lives in the contracts module so non-Go consumers share one schema.
type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, event EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
