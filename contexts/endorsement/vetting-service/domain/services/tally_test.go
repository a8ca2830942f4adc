package services

import (
	"errors"
	"testing"

	"caucus/contexts/endorsement/vetting-service/domain/entities"
	domainerrors "caucus/contexts/endorsement/vetting-service/domain/errors"
)

func votesOf(values ...entities.VoteValue) []entities.BoardVote {
	votes := make([]entities.BoardVote, 0, len(values))
	for i, value := range values {
		votes = append(votes, entities.BoardVote{
			VoteID:  string(rune('a' + i)),
			VoterID: string(rune('a' + i)),
			Vote:    value,
		})
	}
	return votes
}

func TestComputeTallyMajorityWithAbstain(t *testing.T) {
	tally, decision, err := ComputeTally(votesOf(
		entities.VoteEndorse,
		entities.VoteEndorse,
		entities.VoteDoNotEndorse,
		entities.VoteAbstain,
	), TiePolicyReject)
	if err != nil {
		t.Fatalf("compute tally failed: %v", err)
	}
	if decision != entities.DecisionEndorse {
		t.Fatalf("expected endorse, got %s", decision)
	}
	if tally.Endorse != 2 || tally.DoNotEndorse != 1 || tally.Abstain != 1 {
		t.Fatalf("unexpected tally: %+v", tally)
	}
	if tally.Substantive() != 3 {
		t.Fatalf("expected 3 substantive votes, got %d", tally.Substantive())
	}
}

func TestComputeTallyAbstainOnlyIsInsufficient(t *testing.T) {
	_, _, err := ComputeTally(votesOf(entities.VoteAbstain, entities.VoteAbstain), TiePolicyReject)
	if !errors.Is(err, domainerrors.ErrInsufficientVotes) {
		t.Fatalf("expected insufficient votes, got %v", err)
	}
}

func TestComputeTallyNoVotesIsInsufficient(t *testing.T) {
	_, _, err := ComputeTally(nil, TiePolicyReject)
	if !errors.Is(err, domainerrors.ErrInsufficientVotes) {
		t.Fatalf("expected insufficient votes, got %v", err)
	}
}

func TestComputeTallyTieRejectedByDefaultPolicy(t *testing.T) {
	_, _, err := ComputeTally(votesOf(
		entities.VoteEndorse,
		entities.VoteDoNotEndorse,
	), TiePolicyReject)
	if !errors.Is(err, domainerrors.ErrTieVote) {
		t.Fatalf("expected tie vote, got %v", err)
	}
}

func TestComputeTallyConservativePolicyBreaksTies(t *testing.T) {
	cases := []struct {
		name   string
		votes  []entities.BoardVote
		expect entities.Decision
	}{
		{
			name:   "endorse vs do_not_endorse",
			votes:  votesOf(entities.VoteEndorse, entities.VoteDoNotEndorse),
			expect: entities.DecisionDoNotEndorse,
		},
		{
			name:   "endorse vs no_position",
			votes:  votesOf(entities.VoteEndorse, entities.VoteNoPosition),
			expect: entities.DecisionNoPosition,
		},
		{
			name: "three way tie",
			votes: votesOf(
				entities.VoteEndorse,
				entities.VoteDoNotEndorse,
				entities.VoteNoPosition,
			),
			expect: entities.DecisionDoNotEndorse,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, decision, err := ComputeTally(tc.votes, TiePolicyConservative)
			if err != nil {
				t.Fatalf("compute tally failed: %v", err)
			}
			if decision != tc.expect {
				t.Fatalf("expected %s, got %s", tc.expect, decision)
			}
		})
	}
}

func TestComputeTallyOrderIndependent(t *testing.T) {
	forward := votesOf(entities.VoteDoNotEndorse, entities.VoteDoNotEndorse, entities.VoteEndorse)
	reversed := votesOf(entities.VoteEndorse, entities.VoteDoNotEndorse, entities.VoteDoNotEndorse)

	_, first, err := ComputeTally(forward, TiePolicyReject)
	if err != nil {
		t.Fatalf("compute tally failed: %v", err)
	}
	_, second, err := ComputeTally(reversed, TiePolicyReject)
	if err != nil {
		t.Fatalf("compute tally failed: %v", err)
	}
	if first != second || first != entities.DecisionDoNotEndorse {
		t.Fatalf("expected do_not_endorse regardless of order, got %s and %s", first, second)
	}
}
