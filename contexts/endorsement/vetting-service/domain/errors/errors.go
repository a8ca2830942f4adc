package errors

import "errors"

var (
	ErrInvalidVettingInput    = errors.New("invalid vetting input")
	ErrVettingNotFound        = errors.New("vetting not found")
	ErrSectionNotFound        = errors.New("report section not found")
	ErrInvalidSectionType     = errors.New("invalid report section type")
	ErrInvalidVoteValue       = errors.New("invalid vote value")
	ErrInvalidTransition      = errors.New("invalid stage transition")
	ErrFinalizeOnly           = errors.New("outcome stages are set by finalization, not stage edits")
	ErrSectionsIncomplete     = errors.New("required report sections are not completed")
	ErrRecommendationMissing  = errors.New("committee recommendation is required before the board vote")
	ErrRecommendationLocked   = errors.New("recommendation cannot change once the board vote has opened")
	ErrInvalidStage           = errors.New("vetting is not at the board vote stage")
	ErrAlreadyFinalized       = errors.New("vetting is already finalized")
	ErrInsufficientVotes      = errors.New("no substantive votes have been cast")
	ErrTieVote                = errors.New("board vote is tied")
	ErrConcurrentFinalization = errors.New("vetting was finalized by a concurrent request")
	ErrVoteLocked             = errors.New("votes are read-only once the vetting is finalized")
	ErrForbidden              = errors.New("forbidden")
)

// TransitionError reports a rejected stage edit together with the targets a
// manual transition could legally reach from the current stage.
type TransitionError struct {
	Reason        error
	AllowedStages []string
}

func (e *TransitionError) Error() string {
	return e.Reason.Error()
}

func (e *TransitionError) Unwrap() error {
	return e.Reason
}
