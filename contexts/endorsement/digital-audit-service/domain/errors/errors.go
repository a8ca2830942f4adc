package errors

import "errors"

var (
	ErrVettingNotFound = errors.New("vetting not found")
	ErrAuditNotFound   = errors.New("digital audit not found")
	ErrForbidden       = errors.New("forbidden")
	// ErrDuplicateAudit carries no audit id itself; the trigger use case wraps
	// it in a DuplicateAuditError so callers learn the conflicting run.
	ErrDuplicateAudit = errors.New("an audit already exists for this vetting")
	ErrAuditRunning   = errors.New("an audit is currently running for this vetting")
)

// DuplicateAuditError reports the audit that blocks a new trigger.
type DuplicateAuditError struct {
	AuditID string
	Reason  error
}

func (e *DuplicateAuditError) Error() string {
	return e.Reason.Error()
}

func (e *DuplicateAuditError) Unwrap() error {
	return e.Reason
}
