package services

import (
	"caucus/contexts/endorsement/vetting-service/domain/entities"
	domainerrors "caucus/contexts/endorsement/vetting-service/domain/errors"
)

type TiePolicy string

const (
	// TiePolicyReject refuses finalization on an exact tie; the board must
	// re-vote. This is the default policy.
	TiePolicyReject TiePolicy = "reject"
	// TiePolicyConservative breaks ties by decision priority:
	// do_not_endorse > no_position > endorse.
	TiePolicyConservative TiePolicy = "conservative"
)

// ComputeTally counts the votes of one vetting and derives the board decision.
// It is pure: deterministic, order-independent, no I/O.
//
// Abstentions are counted but excluded from the decision; at least one
// substantive vote must exist. The winner is the strictly highest substantive
// count; exact ties are resolved by the configured policy.
func ComputeTally(votes []entities.BoardVote, policy TiePolicy) (entities.Tally, entities.Decision, error) {
	var tally entities.Tally
	for _, vote := range votes {
		switch vote.Vote {
		case entities.VoteEndorse:
			tally.Endorse++
		case entities.VoteDoNotEndorse:
			tally.DoNotEndorse++
		case entities.VoteNoPosition:
			tally.NoPosition++
		case entities.VoteAbstain:
			tally.Abstain++
		}
	}
	if tally.Substantive() == 0 {
		return tally, "", domainerrors.ErrInsufficientVotes
	}

	top := tally.Endorse
	if tally.DoNotEndorse > top {
		top = tally.DoNotEndorse
	}
	if tally.NoPosition > top {
		top = tally.NoPosition
	}

	leaders := make([]entities.Decision, 0, 3)
	// Priority order doubles as the conservative tie-break order.
	if tally.DoNotEndorse == top {
		leaders = append(leaders, entities.DecisionDoNotEndorse)
	}
	if tally.NoPosition == top {
		leaders = append(leaders, entities.DecisionNoPosition)
	}
	if tally.Endorse == top {
		leaders = append(leaders, entities.DecisionEndorse)
	}
	if len(leaders) == 1 {
		return tally, leaders[0], nil
	}
	if policy == TiePolicyConservative {
		return tally, leaders[0], nil
	}
	return tally, "", domainerrors.ErrTieVote
}
